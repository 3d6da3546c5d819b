// Package solidity generates Solidity interface source from an ABI.
//
// # Pipeline
//
// Generate runs three independent analyses before emitting anything:
//  1. features.Resolve maps the requested version range to syntax features
//  2. abifeatures.Scan computes global facts about the ABI
//  3. declarations.Collect deduplicates tuple types into struct declarations
//
// The emitter then walks the ABI once with all three as read-only context.
// Generation is all-or-nothing: an error means no output.
//
// Generate keeps no state between calls and is safe for concurrent use.
package solidity

import (
	"fmt"
	"strings"
	"time"

	"github.com/teranos/abisol/abi"
	"github.com/teranos/abisol/logger"
	"github.com/teranos/abisol/solidity/abifeatures"
	"github.com/teranos/abisol/solidity/declarations"
	"github.com/teranos/abisol/solidity/features"
	"github.com/teranos/abisol/solidity/format"
	"github.com/teranos/abisol/version"
)

const (
	noticeHeader = "// THIS FILE WAS AUTOGENERATED FROM THE FOLLOWING ABI JSON:"
	indent       = "  "
)

type generator struct {
	opts  Options
	vf    features.Features
	af    abifeatures.Features
	decls *declarations.Declarations
}

// Generate returns Solidity source declaring an interface equivalent to
// entries, valid for every compiler version in opts.SolidityVersion
func Generate(entries []abi.Entry, opts Options) (string, error) {
	start := time.Now()
	opts = opts.withDefaults()

	g, err := newGenerator(entries, opts)
	if err != nil {
		return "", err
	}

	body, err := g.body(entries)
	if err != nil {
		return "", err
	}

	trailer, err := notice(entries)
	if err != nil {
		return "", err
	}

	source := g.header() + body + trailer
	if opts.Prettify {
		source = prettify(source, opts.Formatter)
	}

	logger.Debugw("Generated interface",
		logger.FieldInterface, opts.Name,
		logger.FieldRange, opts.SolidityVersion,
		logger.FieldLicense, opts.License,
		logger.FieldEntries, len(entries),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return source, nil
}

func newGenerator(entries []abi.Entry, opts Options) (*generator, error) {
	vf, err := features.Resolve(opts.SolidityVersion)
	if err != nil {
		return nil, err
	}

	decls, err := declarations.Collect(entries, declarations.Options{
		Features:      vf,
		ShimContainer: opts.ShimContainer,
	})
	if err != nil {
		return nil, err
	}

	return &generator{
		opts:  opts,
		vf:    vf,
		af:    abifeatures.Scan(entries),
		decls: decls,
	}, nil
}

func (g *generator) header() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// SPDX-License-Identifier: %s\n", g.opts.License)
	fmt.Fprintf(&sb, "// !! THIS FILE WAS AUTOGENERATED BY %s. SEE SOURCE BELOW. !!\n", version.Get().Tool())
	fmt.Fprintf(&sb, "pragma solidity %s;\n", g.opts.SolidityVersion)
	if g.af.NeedsAbiEncoderV2 && !g.vf.Get(features.AbiEncoderV2).Is("default") {
		sb.WriteString("pragma experimental ABIEncoderV2;\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// body emits file-level structs, sibling struct containers, then the
// primary interface
func (g *generator) body(entries []abi.Entry) (string, error) {
	var sb strings.Builder

	block, err := g.structBlock()
	if err != nil {
		return "", err
	}
	sb.WriteString(block)

	fmt.Fprintf(&sb, "interface %s {\n", g.opts.Name)

	inline, err := g.structs(g.opts.Name, indent)
	if err != nil {
		return "", err
	}
	sb.WriteString(inline)

	for _, e := range entries {
		member, err := g.visit(e)
		if err != nil {
			return "", err
		}
		if member != "" {
			sb.WriteString(indent + member + "\n")
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// structBlock emits every declaration that does not live inside the primary
// interface. It is empty when the ABI has no tuples.
func (g *generator) structBlock() (string, error) {
	var sb strings.Builder

	for _, container := range g.decls.Containers() {
		if container == g.opts.Name {
			continue
		}

		if container == declarations.Global {
			global, err := g.structs(declarations.Global, "")
			if err != nil {
				return "", err
			}
			sb.WriteString(global + "\n")
			continue
		}

		inner, err := g.structs(container, indent)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "interface %s {\n%s}\n\n", container, inner)
	}

	return sb.String(), nil
}

// structs emits the declarations assigned to one container
func (g *generator) structs(container, prefix string) (string, error) {
	var sb strings.Builder
	for _, decl := range g.decls.InContainer(container) {
		fmt.Fprintf(&sb, "%sstruct %s {\n", prefix, decl.Identifier.Name)
		for i, component := range decl.Components {
			typ, err := g.typeName(component, container)
			if err != nil {
				return "", err
			}
			name := component.Name
			if name == "" {
				name = fmt.Sprintf("field%d", i)
			}
			fmt.Fprintf(&sb, "%s%s%s %s;\n", prefix, indent, typ, name)
		}
		fmt.Fprintf(&sb, "%s}\n", prefix)
	}
	return sb.String(), nil
}

// notice returns the trailing comment carrying the input ABI verbatim as JSON
func notice(entries []abi.Entry) (string, error) {
	data, err := abi.Marshal(entries)
	if err != nil {
		return "", err
	}
	return "\n" + noticeHeader + "\n/*\n" + string(data) + "\n*/\n", nil
}

func prettify(source string, formatter Formatter) string {
	if formatter == nil {
		formatter = format.Indent
	}

	formatted, err := formatter(source)
	if err != nil {
		logger.Debugw("Formatter failed, keeping unformatted output",
			logger.FieldError, err)
		return source
	}
	return formatted
}
