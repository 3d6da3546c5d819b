package features

import "strconv"

// State distinguishes the three outcomes of resolving a feature over a range
type State int

const (
	// NotApplicable means no sub-range of the table assigns the feature a value
	// for the requested range, or the assigning sub-range leaves it unset
	NotApplicable State = iota
	// Definite means every version in the range agrees on one value
	Definite
	// Mixed means the range spans versions that disagree on the value
	Mixed
)

func (s State) String() string {
	switch s {
	case NotApplicable:
		return "not-applicable"
	case Definite:
		return "definite"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

type valueKind int

const (
	kindNone valueKind = iota
	kindBool
	kindToken
)

// Value is a resolved feature value: Definite(bool | token), Mixed, or
// NotApplicable. The zero Value is NotApplicable.
type Value struct {
	state State
	kind  valueKind
	b     bool
	token string
}

// Bool returns a Definite boolean value
func Bool(b bool) Value {
	return Value{state: Definite, kind: kindBool, b: b}
}

// Token returns a Definite syntax-token value (e.g. "calldata")
func Token(s string) Value {
	return Value{state: Definite, kind: kindToken, token: s}
}

// Unset returns the NotApplicable value, for table steps that assign nothing
func Unset() Value {
	return Value{}
}

// Ambiguous returns the Mixed value
func Ambiguous() Value {
	return Value{state: Mixed}
}

// State reports how the value resolved
func (v Value) State() State {
	return v.state
}

// IsTrue reports whether the value is Definite(true)
func (v Value) IsTrue() bool {
	return v.state == Definite && v.kind == kindBool && v.b
}

// IsMixed reports whether the range disagrees on the value
func (v Value) IsMixed() bool {
	return v.state == Mixed
}

// TokenValue returns the token of a Definite token value
func (v Value) TokenValue() (string, bool) {
	if v.state != Definite || v.kind != kindToken {
		return "", false
	}
	return v.token, true
}

// Is reports whether v is Definite and equal to the token s
func (v Value) Is(s string) bool {
	tok, ok := v.TokenValue()
	return ok && tok == s
}

func (v Value) String() string {
	switch v.state {
	case Mixed:
		return "mixed"
	case NotApplicable:
		return "n/a"
	}
	if v.kind == kindBool {
		return strconv.FormatBool(v.b)
	}
	return v.token
}
