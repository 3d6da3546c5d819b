package solidity

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/abisol/abi"
	"github.com/teranos/abisol/errors"
)

// =============================================================================
// Test helpers
// =============================================================================

func parse(t *testing.T, abiJSON string) []abi.Entry {
	t.Helper()
	entries, err := abi.Parse([]byte(abiJSON))
	require.NoError(t, err)
	return entries
}

func generate(t *testing.T, abiJSON string, opts Options) string {
	t.Helper()
	out, err := Generate(parse(t, abiJSON), opts)
	require.NoError(t, err)
	return out
}

func generateErr(t *testing.T, abiJSON string, opts Options) error {
	t.Helper()
	out, err := Generate(parse(t, abiJSON), opts)
	require.Error(t, err)
	assert.Empty(t, out, "failures never produce partial output")
	return err
}

// embeddedABI extracts the JSON from the trailing notice
func embeddedABI(t *testing.T, source string) string {
	t.Helper()
	start := strings.Index(source, noticeHeader+"\n/*\n")
	require.GreaterOrEqual(t, start, 0, "notice missing")
	rest := source[start+len(noticeHeader)+len("\n/*\n"):]
	end := strings.Index(rest, "\n*/")
	require.GreaterOrEqual(t, end, 0, "notice not terminated")
	return rest[:end]
}

const fooABI = `[{"type":"function","name":"foo","inputs":[{"name":"","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}]`

const sameShapeABI = `[
  {"type":"function","name":"place","stateMutability":"nonpayable","outputs":[],"inputs":[
    {"name":"order","type":"tuple","internalType":"struct A.Order","components":[
      {"name":"maker","type":"address"},{"name":"amount","type":"uint256"}]}]},
  {"type":"function","name":"bid","stateMutability":"nonpayable","outputs":[],"inputs":[
    {"name":"bid","type":"tuple","internalType":"struct B.Bid","components":[
      {"name":"bidder","type":"address"},{"name":"value","type":"uint256"}]}]}
]`

const pointABI = `[{"type":"function","name":"plot","stateMutability":"nonpayable","outputs":[],"inputs":[
  {"name":"p","type":"tuple","internalType":"struct Point","components":[
    {"name":"x","type":"int256"},{"name":"y","type":"int256"}]}]}]`

// =============================================================================
// Scenarios
// =============================================================================

func TestGenerateSimpleFunction(t *testing.T) {
	out := generate(t, fooABI, Options{Name: "Simple", SolidityVersion: "^0.8.0", License: "MIT"})

	expected := `// SPDX-License-Identifier: MIT
// !! THIS FILE WAS AUTOGENERATED BY abisol dev. SEE SOURCE BELOW. !!
pragma solidity ^0.8.0;

interface Simple {
  function foo(uint256 ) external ;
}

// THIS FILE WAS AUTOGENERATED FROM THE FOLLOWING ABI JSON:
/*
[{"type":"function","name":"foo","inputs":[{"name":"","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}]
*/
`
	assert.Equal(t, expected, out)
}

func TestGenerateDefaults(t *testing.T) {
	out := generate(t, fooABI, Options{})

	assert.Contains(t, out, "// SPDX-License-Identifier: UNLICENSED\n")
	assert.Contains(t, out, "pragma solidity >=0.7.0 <0.9.0;\n")
	assert.Contains(t, out, "interface MyInterface {\n")
	assert.Contains(t, out, "function foo(uint256 ) external ;")
	assert.NotContains(t, out, "struct ")
}

func TestGenerateStringUnderMixedLocation(t *testing.T) {
	abiJSON := `[{"type":"function","name":"setName","inputs":[{"name":"name","type":"string"}],"outputs":[],"stateMutability":"nonpayable"}]`

	err := generateErr(t, abiJSON, Options{SolidityVersion: ">=0.4.0 <0.9.0"})
	assert.True(t, errors.IsRangeAmbiguous(err))
	assert.Contains(t, err.Error(), `"string"`)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestGenerateFallbackAbsorbsReceive(t *testing.T) {
	abiJSON := `[{"type":"fallback","stateMutability":"nonpayable"},{"type":"receive","stateMutability":"payable"}]`

	out := generate(t, abiJSON, Options{SolidityVersion: "^0.5.0"})
	assert.Equal(t, 1, strings.Count(out, "function () external payable ;"))
	assert.NotContains(t, out, "receive ()")
	assert.NotContains(t, out, "fallback ()")
}

func TestGenerateCustomErrorBelowFloor(t *testing.T) {
	abiJSON := `[{"type":"error","name":"Unauthorized","inputs":[{"name":"caller","type":"address"}]}]`

	for _, rng := range []string{"^0.7.0", "^0.8.0", ">=0.6.0 <0.8.4"} {
		t.Run(rng, func(t *testing.T) {
			err := generateErr(t, abiJSON, Options{SolidityVersion: rng})
			assert.True(t, errors.IsVersionFloor(err))
			assert.Contains(t, errors.FlattenHints(err), ">=0.8.4")
			assert.Contains(t, err.Error(), ">=0.8.4", "library callers see the floor without hints")
		})
	}

	out := generate(t, abiJSON, Options{SolidityVersion: "^0.8.4"})
	assert.Contains(t, out, "  error Unauthorized(address caller) ;\n")
}

func TestGenerateDeduplicatesStructs(t *testing.T) {
	out := generate(t, sameShapeABI, Options{Name: "Market", SolidityVersion: "^0.8.0"})

	assert.Equal(t, 1, strings.Count(out, "struct Order {"))
	assert.NotContains(t, out, "struct Bid {")
	assert.Contains(t, out, "interface A {\n  struct Order {\n    address maker;\n    uint256 amount;\n  }\n}\n\n")
	assert.Contains(t, out, "function place(A.Order calldata order) external ;")
	assert.Contains(t, out, "function bid(A.Order calldata bid) external ;")
}

// =============================================================================
// Properties
// =============================================================================

func TestGenerateIsIdempotent(t *testing.T) {
	opts := Options{Name: "Market", SolidityVersion: "^0.8.0"}
	first := generate(t, sameShapeABI, opts)
	second := generate(t, sameShapeABI, opts)
	assert.Equal(t, first, second)
}

func TestGenerateConcurrentCallsAgree(t *testing.T) {
	entries := parse(t, sameShapeABI)
	opts := Options{Name: "Market", SolidityVersion: "^0.8.0"}

	expected, err := Generate(entries, opts)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Generate(entries, opts)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, expected, r)
	}
}

func TestNoticeRoundTrip(t *testing.T) {
	abiJSON := `[
  {"type":"constructor","inputs":[{"name":"owner","type":"address"}],"stateMutability":"nonpayable"},
  {"type":"function","name":"route","inputs":[{"name":"r","type":"tuple[]","internalType":"struct Router.Route[]","components":[{"name":"to","type":"address"},{"name":"data","type":"bytes"}]}],"outputs":[{"name":"ok","type":"bool"}],"stateMutability":"payable"},
  {"type":"event","name":"Routed","inputs":[{"name":"to","type":"address","indexed":true}],"anonymous":false},
  {"type":"receive","stateMutability":"payable"}
]`
	entries := parse(t, abiJSON)

	out, err := Generate(entries, Options{SolidityVersion: "^0.8.0"})
	require.NoError(t, err)

	reparsed, err := abi.Parse([]byte(embeddedABI(t, out)))
	require.NoError(t, err)
	assert.Equal(t, entries, reparsed)
}

func TestStructBlockEmptyWithoutTuples(t *testing.T) {
	abiJSON := `[
  {"type":"function","name":"f","inputs":[{"name":"a","type":"uint256[]"},{"name":"b","type":"bytes"}],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
  {"type":"event","name":"E","inputs":[{"name":"x","type":"address","indexed":true}],"anonymous":false}
]`
	entries := parse(t, abiJSON)

	g, err := newGenerator(entries, DefaultOptions())
	require.NoError(t, err)

	block, err := g.structBlock()
	require.NoError(t, err)
	assert.Equal(t, "", block)

	inline, err := g.structs(g.opts.Name, indent)
	require.NoError(t, err)
	assert.Equal(t, "", inline)
}

func TestVisitHandlesEveryKind(t *testing.T) {
	samples := map[abi.Kind]abi.Entry{
		abi.KindFunction:    abi.Function{Name: "f", StateMutability: abi.View},
		abi.KindConstructor: abi.Constructor{StateMutability: abi.NonPayable},
		abi.KindFallback:    abi.Fallback{StateMutability: abi.NonPayable},
		abi.KindReceive:     abi.Receive{StateMutability: abi.Payable},
		abi.KindEvent:       abi.Event{Name: "E"},
		abi.KindError:       abi.Error{Name: "Err"},
	}

	g, err := newGenerator(nil, Options{SolidityVersion: "^0.8.4"}.withDefaults())
	require.NoError(t, err)

	for _, kind := range abi.Kinds() {
		entry, ok := samples[kind]
		require.True(t, ok, "no sample for kind %s", kind)
		_, err := g.visit(entry)
		assert.NoError(t, err, "kind %s", kind)
	}
}

// =============================================================================
// Entry kinds
// =============================================================================

func TestGenerateFunctionLocations(t *testing.T) {
	abiJSON := `[
  {"type":"function","name":"setName","inputs":[{"name":"name","type":"string"},{"name":"ids","type":"uint256[]"},{"name":"n","type":"uint8"}],"outputs":[],"stateMutability":"nonpayable"},
  {"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"},{"name":"","type":"bytes"},{"name":"","type":"address[2]"},{"name":"","type":"bool"}],"stateMutability":"view"},
  {"type":"function","name":"hash","inputs":[{"name":"b","type":"bytes"}],"outputs":[{"name":"","type":"bytes32"}],"stateMutability":"pure"},
  {"type":"function","name":"deposit","inputs":[],"outputs":[],"stateMutability":"payable"}
]`

	tests := []struct {
		rng      string
		expected []string
	}{
		{
			rng: "^0.8.0",
			expected: []string{
				"function setName(string calldata name, uint256[] calldata ids, uint8 n) external ;",
				"function name() external view returns (string memory , bytes memory , address[2] memory , bool ) ;",
				"function hash(bytes calldata b) external pure returns (bytes32 ) ;",
				"function deposit() external payable ;",
			},
		},
		{
			rng: "^0.4.24",
			expected: []string{
				"function setName(string name, uint256[] ids, uint8 n) external ;",
				"function name() external view returns (string memory , bytes memory , address[2] memory , bool ) ;",
				"function hash(bytes b) external pure returns (bytes32 ) ;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.rng, func(t *testing.T) {
			out := generate(t, abiJSON, Options{SolidityVersion: tt.rng})
			for _, line := range tt.expected {
				assert.Contains(t, out, line)
			}
		})
	}
}

func TestGenerateConstructorEmitsNothing(t *testing.T) {
	abiJSON := `[{"type":"constructor","inputs":[{"name":"owner","type":"address"}],"stateMutability":"nonpayable"}]`
	out := generate(t, abiJSON, Options{Name: "Empty", SolidityVersion: "^0.8.0"})
	assert.Contains(t, out, "interface Empty {\n}\n")
}

func TestGenerateFallbackAndReceive(t *testing.T) {
	tests := []struct {
		name     string
		abi      string
		rng      string
		expected []string
		absent   []string
	}{
		{
			name:     "receive keyword supported",
			abi:      `[{"type":"receive","stateMutability":"payable"}]`,
			rng:      "^0.8.0",
			expected: []string{"  receive () external payable ;\n"},
		},
		{
			name:     "fallback and receive both supported",
			abi:      `[{"type":"fallback","stateMutability":"nonpayable"},{"type":"receive","stateMutability":"payable"}]`,
			rng:      "^0.6.0",
			expected: []string{"  fallback () external ;\n", "  receive () external payable ;\n"},
		},
		{
			name:     "payable fallback",
			abi:      `[{"type":"fallback","stateMutability":"payable"}]`,
			rng:      "^0.7.0",
			expected: []string{"  fallback () external payable ;\n"},
		},
		{
			name:     "old fallback keeps mutability",
			abi:      `[{"type":"fallback","stateMutability":"nonpayable"}]`,
			rng:      "^0.5.0",
			expected: []string{"  function () external ;\n"},
		},
		{
			name:     "receive alone on old range becomes payable fallback",
			abi:      `[{"type":"receive","stateMutability":"payable"}]`,
			rng:      "^0.4.24",
			expected: []string{"  function () external payable ;\n"},
			absent:   []string{"receive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := generate(t, tt.abi, Options{SolidityVersion: tt.rng})
			for _, s := range tt.expected {
				assert.Contains(t, out, s)
			}
			body := out[:strings.Index(out, noticeHeader)]
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestGenerateFallbackMixedRange(t *testing.T) {
	for _, abiJSON := range []string{
		`[{"type":"fallback","stateMutability":"nonpayable"}]`,
		`[{"type":"receive","stateMutability":"payable"}]`,
	} {
		err := generateErr(t, abiJSON, Options{SolidityVersion: ">=0.5.0 <0.9.0"})
		assert.True(t, errors.IsRangeAmbiguous(err))
		assert.Contains(t, err.Error(), "fallback")
	}
}

func TestGenerateEvents(t *testing.T) {
	abiJSON := `[
  {"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}],"anonymous":false},
  {"type":"event","name":"Note","inputs":[{"name":"data","type":"bytes","indexed":false},{"name":"tags","type":"string[]","indexed":false}],"anonymous":true}
]`

	// no locations on event parameters even where functions would need them
	for _, rng := range []string{"^0.8.0", ">=0.4.0 <0.9.0"} {
		out := generate(t, abiJSON, Options{SolidityVersion: rng})
		assert.Contains(t, out, "  event Transfer(address indexed from, address indexed to, uint256 value) ;\n")
		assert.Contains(t, out, "  event Note(bytes data, string[] tags) anonymous ;\n")
	}
}

// =============================================================================
// Struct placement
// =============================================================================

func TestGenerateGlobalStructs(t *testing.T) {
	out := generate(t, pointABI, Options{Name: "Plotter", SolidityVersion: "^0.8.0"})

	assert.Contains(t, out, "\nstruct Point {\n  int256 x;\n  int256 y;\n}\n\ninterface Plotter {\n")
	assert.Contains(t, out, "function plot(Point calldata p) external ;")
	assert.NotContains(t, out, "pragma experimental ABIEncoderV2;\n")
}

func TestGenerateShimContainer(t *testing.T) {
	out := generate(t, pointABI, Options{Name: "Plotter", SolidityVersion: "^0.5.0"})

	assert.Contains(t, out, "interface $Structs {\n  struct Point {\n    int256 x;\n    int256 y;\n  }\n}\n\ninterface Plotter {\n")
	assert.Contains(t, out, "function plot($Structs.Point calldata p) external ;")

	custom := generate(t, pointABI, Options{Name: "Plotter", SolidityVersion: "^0.5.0", ShimContainer: "Shapes"})
	assert.Contains(t, custom, "interface Shapes {\n")
	assert.Contains(t, custom, "function plot(Shapes.Point calldata p) external ;")
}

func TestGenerateInlineAndCrossContainerStructs(t *testing.T) {
	abiJSON := `[{"type":"function","name":"swap","stateMutability":"nonpayable","inputs":[
  {"name":"route","type":"tuple","internalType":"struct Pool.Route","components":[
    {"name":"id","type":"uint256"},
    {"name":"legs","type":"tuple[]","internalType":"struct Lib.Leg[]","components":[
      {"name":"","type":"address"},{"name":"","type":"uint24"}]}]}],
  "outputs":[{"name":"","type":"tuple[2]","internalType":"struct Lib.Leg[2]","components":[
      {"name":"","type":"address"},{"name":"","type":"uint24"}]}]}]`

	out := generate(t, abiJSON, Options{Name: "Pool", SolidityVersion: "^0.8.0"})

	// Lib is a sibling container with unnamed fields filled in
	assert.Contains(t, out, "interface Lib {\n  struct Leg {\n    address field0;\n    uint24 field1;\n  }\n}\n\n")
	// Pool structs are inline and reference Lib qualified
	assert.Contains(t, out, "interface Pool {\n  struct Route {\n    uint256 id;\n    Lib.Leg[] legs;\n  }\n")
	// Route is local to Pool so it is unqualified; outputs keep the array suffix
	assert.Contains(t, out, "function swap(Route calldata route) external returns (Lib.Leg[2] memory ) ;")
}

func TestGenerateAbiEncoderPragma(t *testing.T) {
	tests := []struct {
		rng    string
		pragma bool
	}{
		{"^0.7.0", true},
		{"^0.8.0", false},
		{">=0.7.0 <0.9.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.rng, func(t *testing.T) {
			out := generate(t, pointABI, Options{SolidityVersion: tt.rng})
			assert.Equal(t, tt.pragma, strings.Contains(out, "pragma experimental ABIEncoderV2;\n"))
		})
	}

	out := generate(t, fooABI, Options{SolidityVersion: "^0.7.0"})
	assert.NotContains(t, out, "ABIEncoderV2", "scalar-only ABIs need no pragma")
}

func TestGenerateStructsBelowFloor(t *testing.T) {
	err := generateErr(t, pointABI, Options{SolidityVersion: "^0.4.24"})
	assert.True(t, errors.IsVersionFloor(err))
	assert.Contains(t, errors.FlattenHints(err), ">=0.5.0")
}

func TestGenerateInvalidRange(t *testing.T) {
	err := generateErr(t, fooABI, Options{SolidityVersion: "latest please"})
	assert.True(t, errors.Is(err, errors.ErrInvalidRange))
}

// =============================================================================
// Formatting
// =============================================================================

func TestGeneratePrettifyBuiltin(t *testing.T) {
	out := generate(t, fooABI, Options{SolidityVersion: "^0.8.0", Prettify: true})
	assert.Contains(t, out, "interface MyInterface {\n    function foo(uint256) external;\n}\n")
	// the embedded ABI is left alone
	assert.Contains(t, out, `[{"type":"function","name":"foo","inputs":[{"name":"","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}]`)
}

func TestGeneratePrettifyCustomFormatter(t *testing.T) {
	upper := func(source string) (string, error) { return strings.ToUpper(source), nil }
	out := generate(t, fooABI, Options{SolidityVersion: "^0.8.0", Prettify: true, Formatter: upper})
	assert.Contains(t, out, "FUNCTION FOO(UINT256 ) EXTERNAL ;")

	unused := generate(t, fooABI, Options{SolidityVersion: "^0.8.0", Formatter: upper})
	assert.Contains(t, unused, "function foo(uint256 ) external ;", "formatter only runs with Prettify")
}

func TestGeneratePrettifyFailureIsSwallowed(t *testing.T) {
	failing := func(string) (string, error) { return "", errors.New("formatter crashed") }

	plain := generate(t, fooABI, Options{SolidityVersion: "^0.8.0"})
	out := generate(t, fooABI, Options{SolidityVersion: "^0.8.0", Prettify: true, Formatter: failing})
	assert.Equal(t, plain, out)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultName, opts.Name)
	assert.Equal(t, DefaultSolidityVersion, opts.SolidityVersion)
	assert.Equal(t, DefaultLicense, opts.License)
	assert.False(t, opts.Prettify)
}
