package abi

import "strings"

// TupleSignature returns the canonical shape key of a tuple's components:
// "(" + component signatures joined by "," + ")". Names and internal type
// names never contribute, so identically shaped tuples share a signature.
func TupleSignature(components []Parameter) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, c := range components {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(TypeSignature(c))
	}
	sb.WriteByte(')')
	return sb.String()
}

// TypeSignature returns the type string with a leading "tuple" replaced by the
// recursive tuple signature: tuple[] of (uint256,address) -> "(uint256,address)[]"
func TypeSignature(p Parameter) string {
	if !p.IsTuple() {
		return p.Type
	}
	return TupleSignature(p.Components) + strings.TrimPrefix(p.Type, "tuple")
}
