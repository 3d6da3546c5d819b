// Package format prettifies generated Solidity source.
//
// Formatters have the shape func(source string) (string, error). A failing
// formatter never aborts generation; the caller falls back to the
// unformatted text.
package format

import (
	"regexp"
	"strings"

	"github.com/teranos/abisol/errors"
)

const indentUnit = "    "

var spacing = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`\s+;`), ";"},
	{regexp.MustCompile(`\s+,`), ","},
	{regexp.MustCompile(`\(\s+`), "("},
	{regexp.MustCompile(`\s+\)`), ")"},
	{regexp.MustCompile(`\b(fallback|receive|function)\s+\(`), "$1("},
	{regexp.MustCompile(`\s{2,}`), " "},
}

// Indent re-indents source by brace depth and tightens spacing around
// punctuation. Comment lines and /* */ blocks are copied unchanged.
func Indent(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	depth := 0
	inBlock := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case inBlock:
			out = append(out, line)
			if strings.Contains(trimmed, "*/") {
				inBlock = false
			}
			continue
		case strings.HasPrefix(trimmed, "/*"):
			out = append(out, line)
			inBlock = !strings.Contains(trimmed, "*/")
			continue
		case trimmed == "":
			out = append(out, "")
			continue
		case strings.HasPrefix(trimmed, "//"):
			out = append(out, strings.Repeat(indentUnit, depth)+trimmed)
			continue
		}

		trimmed = tighten(trimmed)
		opens := strings.Count(trimmed, "{")
		closes := strings.Count(trimmed, "}")
		if strings.HasPrefix(trimmed, "}") {
			depth--
			closes--
		}
		if depth < 0 {
			return "", errors.Newf("unbalanced closing brace on line %d", i+1)
		}

		out = append(out, strings.Repeat(indentUnit, depth)+trimmed)
		depth += opens - closes
	}

	if depth != 0 {
		return "", errors.Newf("unbalanced braces: %d left open", depth)
	}
	if inBlock {
		return "", errors.New("unterminated block comment")
	}
	return strings.Join(out, "\n"), nil
}

func tighten(line string) string {
	for _, s := range spacing {
		line = s.pattern.ReplaceAllString(line, s.replace)
	}
	return line
}
