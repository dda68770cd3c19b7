package asciidoc

import "strings"

// DefinitionList renders callouts as an AsciiDoc labeled list: the code
// line becomes the backtick-quoted term, the explanation its definition.
// Blank lines inside an explanation become `+` continuation markers so
// the list stays syntactically contiguous; conditional directives pass
// through untouched (the preprocessor handles them).
type DefinitionList struct{}

func (DefinitionList) Name() string { return "deflist" }

func (DefinitionList) Convert(in ConvertInput) []string {
	var out []string

	if in.Title != "" {
		out = append(out, in.Title+", where:", "")
	}

	for gi, g := range in.Groups {
		if gi > 0 {
			out = append(out, "")
		}
		out = append(out, "`"+g.CodeLine+"`::")

		for ni, n := range g.Numbers {
			if ni > 0 {
				// Multiple callouts on one code line share the term;
				// their explanations chain with a continuation marker.
				out = append(out, "+")
			}
			out = append(out, explanationBody(explanationFor(in.Explanations, n))...)
		}
	}

	return out
}

// explanationBody renders one explanation's lines for a labeled list,
// applying the Optional prefix and the blank-line-to-`+` conversion.
func explanationBody(c Callout) []string {
	var out []string
	first := true
	for _, line := range c.Lines {
		switch {
		case strings.TrimSpace(line) == "":
			out = append(out, "+")
		case isConditional(line):
			out = append(out, line)
		case first:
			out = append(out, renderFirstLine(c, line))
			first = false
		default:
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}
