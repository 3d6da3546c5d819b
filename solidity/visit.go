package solidity

import (
	"strings"

	"github.com/teranos/abisol/abi"
	"github.com/teranos/abisol/errors"
	"github.com/teranos/abisol/logger"
	"github.com/teranos/abisol/solidity/features"
)

// visit handles exactly abi.NumKinds entry kinds; this fails to compile when
// a kind is added or removed
var _ = [1]struct{}{}[abi.NumKinds-6]

// modifierRule decides the modifier written between a parameter's type and
// name: a data location, "indexed", or nothing
type modifierRule func(p abi.Parameter) (string, error)

// scope is the per-entry emission context
type scope struct {
	container string
	modifier  modifierRule
}

func (g *generator) visit(e abi.Entry) (string, error) {
	switch e := e.(type) {
	case abi.Function:
		return g.function(e)
	case abi.Constructor:
		logger.Debugw("Skipping entry with no interface member",
			logger.FieldKind, e.Kind())
		return "", nil
	case abi.Fallback:
		return g.fallback(e.StateMutability)
	case abi.Receive:
		return g.receive()
	case abi.Event:
		return g.event(e)
	case abi.Error:
		return g.customError(e)
	default:
		return "", errors.AssertionFailedf("unhandled ABI entry kind %q", e.Kind())
	}
}

func (g *generator) function(f abi.Function) (string, error) {
	inputs, err := g.parameters(f.Inputs, scope{container: g.opts.Name, modifier: g.inputLocation})
	if err != nil {
		return "", errors.Wrapf(err, "function %s", f.Name)
	}
	outputs, err := g.parameters(f.Outputs, scope{container: g.opts.Name, modifier: outputLocation})
	if err != nil {
		return "", errors.Wrapf(err, "function %s", f.Name)
	}

	parts := []string{"function " + f.Name + "(" + inputs + ")", "external", mutability(f.StateMutability)}
	if len(f.Outputs) > 0 {
		parts = append(parts, "returns ("+outputs+")")
	}
	return member(parts...), nil
}

// fallback emits the fallback entry. When the ABI has a receive entry the
// range cannot spell, the fallback absorbs its payability.
func (g *generator) fallback(m abi.StateMutability) (string, error) {
	keyword, err := g.fallbackKeyword()
	if err != nil {
		return "", err
	}

	payable := m == abi.Payable ||
		(g.af.DefinesReceive && !g.vf.Get(features.ReceiveKeyword).IsTrue())

	var modifier string
	if payable {
		modifier = string(abi.Payable)
	}
	return member(keyword+" ()", "external", modifier), nil
}

func (g *generator) fallbackKeyword() (string, error) {
	v := g.vf.Get(features.FallbackKeyword)
	switch {
	case v.IsMixed():
		return "", errors.WithHint(
			errors.NewRangeAmbiguousError("version range %q has no single spelling for the fallback function (feature %s)",
				g.opts.SolidityVersion, features.FallbackKeyword),
			"use a range entirely below or entirely at/above 0.6.0",
		)
	case v.IsTrue():
		return "fallback", nil
	default:
		return "function", nil
	}
}

func (g *generator) receive() (string, error) {
	if g.vf.Get(features.ReceiveKeyword).IsTrue() {
		return member("receive ()", "external", string(abi.Payable)), nil
	}
	if g.af.DefinesFallback {
		// the fallback entry already carries receive's payability
		return "", nil
	}
	return g.fallback(abi.Payable)
}

func (g *generator) event(e abi.Event) (string, error) {
	params, err := g.parameters(e.Inputs, scope{container: g.opts.Name, modifier: indexed})
	if err != nil {
		return "", errors.Wrapf(err, "event %s", e.Name)
	}

	var anonymous string
	if e.Anonymous {
		anonymous = "anonymous"
	}
	return member("event "+e.Name+"("+params+")", anonymous), nil
}

func (g *generator) customError(e abi.Error) (string, error) {
	if !g.vf.Get(features.CustomErrors).IsTrue() {
		return "", errors.NewVersionFloorError(features.CustomErrorsMinimum,
			"error %s: version range %q does not support custom errors", e.Name, g.opts.SolidityVersion)
	}

	params, err := g.parameters(e.Inputs, scope{container: g.opts.Name, modifier: none})
	if err != nil {
		return "", errors.Wrapf(err, "error %s", e.Name)
	}
	return member("error " + e.Name + "(" + params + ")"), nil
}

func (g *generator) parameters(params []abi.Parameter, sc scope) (string, error) {
	rendered := make([]string, 0, len(params))
	for _, p := range params {
		s, err := g.parameter(p, sc)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, s)
	}
	return strings.Join(rendered, ", "), nil
}

// parameter renders "TYPE [MODIFIER ]NAME"
func (g *generator) parameter(p abi.Parameter, sc scope) (string, error) {
	typ, err := g.typeName(p, sc.container)
	if err != nil {
		return "", err
	}
	modifier, err := sc.modifier(p)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(typ)
	sb.WriteString(" ")
	if modifier != "" {
		sb.WriteString(modifier)
		sb.WriteString(" ")
	}
	sb.WriteString(p.Name)
	return sb.String(), nil
}

// typeName returns the primitive type, or the struct reference for tuples,
// qualified with its container only when referenced from another container
func (g *generator) typeName(p abi.Parameter, container string) (string, error) {
	if !p.IsTuple() {
		return p.Type, nil
	}

	decl, ok := g.decls.Lookup(p)
	if !ok {
		return "", errors.AssertionFailedf("no struct declaration for tuple %s", abi.TypeSignature(p))
	}

	name := decl.Identifier.Name
	if decl.Identifier.Container != container {
		name = decl.Identifier.String()
	}
	return name + p.ArraySuffix(), nil
}

// inputLocation applies the range's data location to reference-type inputs
func (g *generator) inputLocation(p abi.Parameter) (string, error) {
	if !needsLocation(p) {
		return "", nil
	}

	v := g.vf.Get(features.ArrayParameterLocation)
	switch v.State() {
	case features.Mixed:
		return "", errors.WithHint(
			errors.NewRangeAmbiguousError("version range %q lacks an unambiguous location specifier for parameter of type %q",
				g.opts.SolidityVersion, p.Type),
			"use a range entirely below or entirely at/above 0.5.0",
		)
	case features.Definite:
		location, _ := v.TokenValue()
		return location, nil
	default:
		return "", nil
	}
}

// outputLocation is fixed: returned reference types are always memory
func outputLocation(p abi.Parameter) (string, error) {
	if needsLocation(p) {
		return "memory", nil
	}
	return "", nil
}

func indexed(p abi.Parameter) (string, error) {
	if p.Indexed {
		return "indexed", nil
	}
	return "", nil
}

func none(abi.Parameter) (string, error) {
	return "", nil
}

func needsLocation(p abi.Parameter) bool {
	return p.IsArray() || p.IsTuple() || p.Type == "bytes" || p.Type == "string"
}

func mutability(m abi.StateMutability) string {
	if m == abi.NonPayable || m == "" {
		return ""
	}
	return string(m)
}

// member joins the non-empty parts of a member declaration and terminates it
func member(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ") + " ;"
}
