// Package abi models a contract ABI as a closed set of entry variants.
//
// Each entry kind (function, constructor, fallback, receive, event, error)
// is its own struct implementing Entry. Consumers switch over the concrete
// types; Kinds lists every variant so tests can assert a switch is exhaustive.
package abi

import "strings"

// Kind names an ABI entry variant, using the ABI JSON "type" spelling
type Kind string

const (
	KindFunction    Kind = "function"
	KindConstructor Kind = "constructor"
	KindFallback    Kind = "fallback"
	KindReceive     Kind = "receive"
	KindEvent       Kind = "event"
	KindError       Kind = "error"
)

// NumKinds is the number of entry kinds. Consumers that switch over entries
// pin this value so adding a kind fails to compile until they handle it.
const NumKinds = 6

// Kinds returns every entry kind, in ABI documentation order
func Kinds() []Kind {
	return []Kind{KindFunction, KindConstructor, KindFallback, KindReceive, KindEvent, KindError}
}

// StateMutability is the ABI stateMutability value
type StateMutability string

const (
	Pure       StateMutability = "pure"
	View       StateMutability = "view"
	NonPayable StateMutability = "nonpayable"
	Payable    StateMutability = "payable"
)

// Parameter is a typed input, output or tuple component.
// Components is only set for tuple types (tuple, tuple[], tuple[2][] ...).
type Parameter struct {
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	InternalType string      `json:"internalType,omitempty"`
	Components   []Parameter `json:"components,omitempty"`
	Indexed      bool        `json:"indexed,omitempty"`
}

// Entry is one ABI item. The set of implementations is closed.
type Entry interface {
	Kind() Kind
	entry()
}

type Function struct {
	Name            string
	Inputs          []Parameter
	Outputs         []Parameter
	StateMutability StateMutability
}

type Constructor struct {
	Inputs          []Parameter
	StateMutability StateMutability
}

type Fallback struct {
	StateMutability StateMutability
}

type Receive struct {
	StateMutability StateMutability
}

type Event struct {
	Name      string
	Inputs    []Parameter
	Anonymous bool
}

type Error struct {
	Name   string
	Inputs []Parameter
}

func (Function) Kind() Kind    { return KindFunction }
func (Constructor) Kind() Kind { return KindConstructor }
func (Fallback) Kind() Kind    { return KindFallback }
func (Receive) Kind() Kind     { return KindReceive }
func (Event) Kind() Kind       { return KindEvent }
func (Error) Kind() Kind       { return KindError }

func (Function) entry()    {}
func (Constructor) entry() {}
func (Fallback) entry()    {}
func (Receive) entry()     {}
func (Event) entry()       {}
func (Error) entry()       {}

// Parameters returns every top-level parameter of an entry (inputs then outputs)
func Parameters(e Entry) []Parameter {
	switch e := e.(type) {
	case Function:
		params := make([]Parameter, 0, len(e.Inputs)+len(e.Outputs))
		params = append(params, e.Inputs...)
		return append(params, e.Outputs...)
	case Constructor:
		return e.Inputs
	case Event:
		return e.Inputs
	case Error:
		return e.Inputs
	default:
		return nil
	}
}

// IsTuple reports whether the parameter is a tuple or an array of tuples
func (p Parameter) IsTuple() bool {
	return strings.HasPrefix(p.Type, "tuple")
}

// IsArray reports whether the parameter type carries an array suffix
func (p Parameter) IsArray() bool {
	return strings.HasSuffix(p.Type, "]")
}

// BaseType strips every array suffix: "tuple[2][]" -> "tuple"
func (p Parameter) BaseType() string {
	if i := strings.IndexByte(p.Type, '['); i >= 0 {
		return p.Type[:i]
	}
	return p.Type
}

// ArraySuffix returns the array dimensions: "tuple[2][]" -> "[2][]"
func (p Parameter) ArraySuffix() string {
	if i := strings.IndexByte(p.Type, '['); i >= 0 {
		return p.Type[i:]
	}
	return ""
}

// ArrayDepth counts array dimensions
func (p Parameter) ArrayDepth() int {
	return strings.Count(p.ArraySuffix(), "[")
}
