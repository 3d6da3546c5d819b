// Package declarations collects the struct declarations an ABI needs.
//
// Every tuple type is keyed by its structural Signature, so identically shaped
// tuples share one declaration regardless of field or type names. Each
// declaration is assigned to exactly one container (an interface scope), or to
// the global scope when the target range allows file-level structs.
//
// Collect is a pure fold over the ABI: it returns a fresh Declarations value
// and keeps no state between calls.
package declarations

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/teranos/abisol/abi"
	"github.com/teranos/abisol/errors"
	"github.com/teranos/abisol/logger"
	"github.com/teranos/abisol/solidity/features"
)

// DefaultShimContainer holds container-less structs when the target range
// has no file-level structs. '$' is a legal Solidity identifier character.
const DefaultShimContainer = "$Structs"

// Global is the container name of file-level declarations
const Global = ""

// Identifier names a declaration within its container
type Identifier struct {
	Container string
	Name      string
}

// String returns the qualified name, "Container.Name" or "Name"
func (id Identifier) String() string {
	if id.Container == Global {
		return id.Name
	}
	return id.Container + "." + id.Name
}

// Declaration is one struct declaration
type Declaration struct {
	Identifier Identifier
	Signature  string
	Components []abi.Parameter
}

// Declarations is the result of collection.
//
// Every signature listed in ContainerSignatures has an entry in
// SignatureDeclarations, and every tuple signature used by the ABI is listed
// under exactly one container.
type Declarations struct {
	SignatureDeclarations map[string]Declaration
	ContainerSignatures   map[string][]string
}

// Options controls container placement
type Options struct {
	// Features are the resolved version features of the target range
	Features features.Features
	// ShimContainer replaces DefaultShimContainer when set
	ShimContainer string
}

// Len returns the number of distinct declarations
func (d *Declarations) Len() int {
	return len(d.SignatureDeclarations)
}

// Containers returns every container holding at least one declaration,
// sorted, with the global scope first when present
func (d *Declarations) Containers() []string {
	containers := make([]string, 0, len(d.ContainerSignatures))
	for c, sigs := range d.ContainerSignatures {
		if len(sigs) > 0 {
			containers = append(containers, c)
		}
	}
	sort.Strings(containers)
	return containers
}

// InContainer returns the declarations of one container in first-seen order
func (d *Declarations) InContainer(container string) []Declaration {
	sigs := d.ContainerSignatures[container]
	decls := make([]Declaration, 0, len(sigs))
	for _, sig := range sigs {
		decls = append(decls, d.SignatureDeclarations[sig])
	}
	return decls
}

// Lookup returns the declaration for a tuple parameter
func (d *Declarations) Lookup(p abi.Parameter) (Declaration, bool) {
	if !p.IsTuple() {
		return Declaration{}, false
	}
	decl, ok := d.SignatureDeclarations[abi.TupleSignature(p.Components)]
	return decl, ok
}

type collector struct {
	opts  Options
	shim  string
	decls *Declarations
	// names tracks which signature owns each name within a container
	names map[string]map[string]string
	// explicit holds the names internal types spell out, per container.
	// Collision suffixes never take one of them.
	explicit map[string]map[string]bool
}

// Collect walks every parameter of every entry and returns the declarations
// the ABI needs. It fails when declarations are needed but the target range
// cannot declare structs inside interfaces.
func Collect(entries []abi.Entry, opts Options) (*Declarations, error) {
	c := &collector{
		opts: opts,
		shim: opts.ShimContainer,
		decls: &Declarations{
			SignatureDeclarations: make(map[string]Declaration),
			ContainerSignatures:   make(map[string][]string),
		},
		names:    make(map[string]map[string]string),
		explicit: make(map[string]map[string]bool),
	}
	if c.shim == "" {
		c.shim = DefaultShimContainer
	}

	for _, e := range entries {
		for _, p := range abi.Parameters(e) {
			c.reserve(p)
		}
	}
	for _, e := range entries {
		for _, p := range abi.Parameters(e) {
			c.parameter(p)
		}
	}

	if c.decls.Len() > 0 && !opts.Features.Get(features.StructsInInterfaces).IsTrue() {
		return nil, errors.NewVersionFloorError(features.StructsInInterfacesMinimum,
			"ABI needs %d struct declaration(s) but the version range does not support structs in interfaces",
			c.decls.Len())
	}
	return c.decls, nil
}

func (c *collector) parameter(p abi.Parameter) {
	if !p.IsTuple() {
		return
	}

	// Inner tuples first, so they are declared before the structs using them
	for _, component := range p.Components {
		c.parameter(component)
	}

	sig := abi.TupleSignature(p.Components)
	if _, exists := c.decls.SignatureDeclarations[sig]; exists {
		return
	}

	id := c.identify(p, sig)
	c.decls.SignatureDeclarations[sig] = Declaration{
		Identifier: id,
		Signature:  sig,
		Components: p.Components,
	}
	c.decls.ContainerSignatures[id.Container] = append(c.decls.ContainerSignatures[id.Container], sig)

	logger.Debugw("Collected struct declaration",
		logger.FieldDeclaration, id.String(),
		logger.FieldSignature, sig)
}

// reserve records every struct name spelled out by an internal type
func (c *collector) reserve(p abi.Parameter) {
	if !p.IsTuple() {
		return
	}
	for _, component := range p.Components {
		c.reserve(component)
	}

	container, name, ok := parseInternalType(p.InternalType)
	if !ok {
		return
	}
	container = c.place(container)
	if c.explicit[container] == nil {
		c.explicit[container] = make(map[string]bool)
	}
	c.explicit[container][name] = true
}

// place maps the global scope to the shim when the range has no file-level structs
func (c *collector) place(container string) string {
	if container == Global && !c.opts.Features.Get(features.GlobalStructs).IsTrue() {
		return c.shim
	}
	return container
}

// identify picks the container and a unique name for a new signature
func (c *collector) identify(p abi.Parameter, sig string) Identifier {
	container, name, ok := parseInternalType(p.InternalType)
	if !ok {
		name = generatedName(sig)
	}

	if placed := c.place(container); placed != container {
		container = placed
		logger.Debugw("No file-level structs in range, using shim container",
			logger.FieldSignature, sig,
			logger.FieldContainer, container)
	}

	return Identifier{Container: container, Name: c.claim(container, name, sig)}
}

// claim reserves name in container for sig. On collision it appends the
// first "_n" suffix that no other signature owns and no internal type names.
func (c *collector) claim(container, name, sig string) string {
	taken, ok := c.names[container]
	if !ok {
		taken = make(map[string]string)
		c.names[container] = taken
	}

	candidate := name
	for i := 1; ; i++ {
		owner, used := taken[candidate]
		if !used || owner == sig {
			taken[candidate] = sig
			return candidate
		}
		for {
			candidate = name + "_" + strconv.Itoa(i)
			if !c.explicit[container][candidate] {
				break
			}
			i++
		}
	}
}

// parseInternalType reads "struct Container.Name[]" style hints
func parseInternalType(internalType string) (container, name string, ok bool) {
	rest, found := strings.CutPrefix(internalType, "struct ")
	if !found || rest == "" {
		return "", "", false
	}
	if i := strings.IndexByte(rest, '['); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		return rest[:i], rest[i+1:], true
	}
	return Global, rest, true
}

// generatedName derives a stable name from the signature hash
func generatedName(sig string) string {
	hash := crypto.Keccak256Hash([]byte(sig)).Hex()
	return "S_" + hash[2:10]
}
