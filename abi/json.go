package abi

import (
	"bytes"
	"encoding/json"

	"github.com/teranos/abisol/errors"
)

// rawEntry is the ABI JSON shape of any entry kind, including the legacy
// constant/payable flags emitted by pre-0.4.16 compilers
type rawEntry struct {
	Type            string       `json:"type,omitempty"`
	Name            string       `json:"name,omitempty"`
	Inputs          *[]Parameter `json:"inputs,omitempty"`
	Outputs         *[]Parameter `json:"outputs,omitempty"`
	StateMutability string       `json:"stateMutability,omitempty"`
	Anonymous       *bool        `json:"anonymous,omitempty"`
	Constant        *bool        `json:"constant,omitempty"`
	Payable         *bool        `json:"payable,omitempty"`
}

// artifact is a compiler or framework artifact wrapping the ABI
type artifact struct {
	ABI json.RawMessage `json:"abi"`
}

// Parse decodes ABI JSON. It accepts either a bare ABI array or an artifact
// object carrying the ABI under an "abi" key.
func Parse(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidABI, "empty input")
	}

	if trimmed[0] == '{' {
		var a artifact
		if err := json.Unmarshal(trimmed, &a); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidABI, err.Error())
		}
		if len(a.ABI) == 0 {
			return nil, errors.Wrap(errors.ErrInvalidABI, `object input has no "abi" field`)
		}
		trimmed = a.ABI
	}

	var raw []rawEntry
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidABI, err.Error())
	}

	entries := make([]Entry, 0, len(raw))
	for i, r := range raw {
		e, err := r.toEntry()
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r rawEntry) toEntry() (Entry, error) {
	kind := Kind(r.Type)
	if kind == "" {
		kind = KindFunction
	}

	switch kind {
	case KindFunction:
		return Function{
			Name:            r.Name,
			Inputs:          deref(r.Inputs),
			Outputs:         deref(r.Outputs),
			StateMutability: r.mutability(NonPayable),
		}, nil
	case KindConstructor:
		return Constructor{
			Inputs:          deref(r.Inputs),
			StateMutability: r.mutability(NonPayable),
		}, nil
	case KindFallback:
		return Fallback{StateMutability: r.mutability(NonPayable)}, nil
	case KindReceive:
		return Receive{StateMutability: r.mutability(Payable)}, nil
	case KindEvent:
		return Event{
			Name:      r.Name,
			Inputs:    deref(r.Inputs),
			Anonymous: r.Anonymous != nil && *r.Anonymous,
		}, nil
	case KindError:
		return Error{Name: r.Name, Inputs: deref(r.Inputs)}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidABI, "unknown entry type %q", r.Type)
	}
}

// mutability resolves stateMutability, falling back to the legacy flags
func (r rawEntry) mutability(fallback StateMutability) StateMutability {
	if r.StateMutability != "" {
		return StateMutability(r.StateMutability)
	}
	if r.Constant != nil && *r.Constant {
		return View
	}
	if r.Payable != nil && *r.Payable {
		return Payable
	}
	return fallback
}

// deref normalizes absent and empty parameter lists to nil, recursively
func deref(p *[]Parameter) []Parameter {
	if p == nil || len(*p) == 0 {
		return nil
	}
	params := make([]Parameter, len(*p))
	for i, param := range *p {
		param.Components = deref(&param.Components)
		params[i] = param
	}
	return params
}

func fromEntry(e Entry) rawEntry {
	inputs := func(p []Parameter) *[]Parameter {
		if p == nil {
			p = []Parameter{}
		}
		return &p
	}

	switch e := e.(type) {
	case Function:
		return rawEntry{
			Type:            string(KindFunction),
			Name:            e.Name,
			Inputs:          inputs(e.Inputs),
			Outputs:         inputs(e.Outputs),
			StateMutability: string(e.StateMutability),
		}
	case Constructor:
		return rawEntry{
			Type:            string(KindConstructor),
			Inputs:          inputs(e.Inputs),
			StateMutability: string(e.StateMutability),
		}
	case Fallback:
		return rawEntry{Type: string(KindFallback), StateMutability: string(e.StateMutability)}
	case Receive:
		return rawEntry{Type: string(KindReceive), StateMutability: string(e.StateMutability)}
	case Event:
		anonymous := e.Anonymous
		return rawEntry{
			Type:      string(KindEvent),
			Name:      e.Name,
			Inputs:    inputs(e.Inputs),
			Anonymous: &anonymous,
		}
	case Error:
		return rawEntry{Type: string(KindError), Name: e.Name, Inputs: inputs(e.Inputs)}
	default:
		return rawEntry{}
	}
}

// Marshal encodes entries back into compact ABI JSON. Parsing the result
// yields entries equal to the input. HTML escaping is disabled so type
// strings and names are copied verbatim.
func Marshal(entries []Entry) ([]byte, error) {
	raw := make([]rawEntry, 0, len(entries))
	for _, e := range entries {
		raw = append(raw, fromEntry(e))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(raw); err != nil {
		return nil, errors.Wrap(err, "failed to encode ABI")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
