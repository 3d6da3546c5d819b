// Package abifeatures computes the global facts about an ABI that emission
// decisions depend on.
package abifeatures

import "github.com/teranos/abisol/abi"

// Features are boolean facts about one ABI
type Features struct {
	DefinesFallback   bool
	DefinesReceive    bool
	NeedsAbiEncoderV2 bool
}

// Scan makes a single read-only pass over entries
func Scan(entries []abi.Entry) Features {
	var f Features
	for _, e := range entries {
		switch e.(type) {
		case abi.Fallback:
			f.DefinesFallback = true
		case abi.Receive:
			f.DefinesReceive = true
		}

		for _, p := range abi.Parameters(e) {
			if needsAbiEncoderV2(p) {
				f.NeedsAbiEncoderV2 = true
			}
		}
	}
	return f
}

// needsAbiEncoderV2 reports whether the legacy encoder cannot handle the
// parameter: tuples, nested arrays, and arrays of dynamic bytes or strings
func needsAbiEncoderV2(p abi.Parameter) bool {
	if p.IsTuple() {
		return true
	}
	if p.ArrayDepth() > 1 {
		return true
	}
	if p.IsArray() {
		switch p.BaseType() {
		case "string", "bytes":
			return true
		}
	}
	return false
}
