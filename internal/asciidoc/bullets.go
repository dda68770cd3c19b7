package asciidoc

import "strings"

const bulletIndent = "    "

// BulletedList renders callouts as `*   ` bullets: the code line in
// backticks, a colon, then the explanation. Continuation lines are
// indented under the bullet and a blank separator line follows every
// bullet. A group with several callout numbers merges all their
// explanations under one bullet, separated by blank lines.
type BulletedList struct{}

func (BulletedList) Name() string { return "bullets" }

func (BulletedList) Convert(in ConvertInput) []string {
	var out []string

	if in.Title != "" {
		out = append(out, in.Title+", where:", "")
	}

	for _, g := range in.Groups {
		for ni, n := range g.Numbers {
			c := explanationFor(in.Explanations, n)
			lines := bulletBody(c)
			if ni == 0 {
				out = append(out, "*   `"+g.CodeLine+"`: "+lines[0])
			} else {
				out = append(out, "", bulletIndent+lines[0])
			}
			for _, line := range lines[1:] {
				out = append(out, line)
			}
		}
		out = append(out, "")
	}

	return out
}

// bulletBody renders one explanation for a bullet: first text line bare
// (the caller attaches it to the bullet or indents it), the rest
// indented. Conditional directives pass through unindented.
func bulletBody(c Callout) []string {
	out := []string{""}
	first := true
	for _, line := range c.Lines {
		switch {
		case first && strings.TrimSpace(line) != "" && !isConditional(line):
			out[0] = renderFirstLine(c, line)
			first = false
		case strings.TrimSpace(line) == "":
			out = append(out, "")
		case isConditional(line):
			out = append(out, line)
		default:
			out = append(out, bulletIndent+line)
		}
	}
	return out
}
