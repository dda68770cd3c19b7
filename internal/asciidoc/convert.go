package asciidoc

import "fmt"

// ConvertInput is everything a converter may consume. Groups and
// Explanations drive the list-style converters; the inline converter
// additionally needs the raw block content and language since it rewrites
// the code lines themselves. Converters never mutate any of it.
type ConvertInput struct {
	Groups       []CalloutGroup
	Explanations map[int]Callout
	Title        string
	Code         []string // raw block content, markers intact
	Language     string
}

// Converter renders a (callout groups, explanation map) pair into a
// replacement line sequence. The three implementations are
// interchangeable; the caller picks one by policy.
type Converter interface {
	Name() string
	Convert(in ConvertInput) []string
}

// NewConverter builds a converter by policy name: "deflist", "bullets" or
// "inline". The inline converter takes its length policy from the two
// trailing arguments.
func NewConverter(name string, maxCommentLen int, overflow string) (Converter, error) {
	switch name {
	case "deflist", "":
		return DefinitionList{}, nil
	case "bullets":
		return BulletedList{}, nil
	case "inline":
		return InlineComments{MaxLength: maxCommentLen, Overflow: overflow}, nil
	default:
		return nil, fmt.Errorf("unknown converter %q", name)
	}
}

// explanationFor looks up the callout for n, synthesizing an empty one
// when the map has no entry (the validator has already warned; converters
// stay total).
func explanationFor(expl map[int]Callout, n int) Callout {
	if c, ok := expl[n]; ok {
		return c
	}
	return Callout{Number: n, Lines: []string{""}}
}

// renderFirstLine prefixes the explanation's first text line with
// "Optional. " when the callout is optional.
func renderFirstLine(c Callout, line string) string {
	if c.Optional {
		return "Optional. " + line
	}
	return line
}
