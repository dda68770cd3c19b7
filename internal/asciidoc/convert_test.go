package asciidoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expl(entries ...Callout) map[int]Callout {
	m := make(map[int]Callout)
	for _, c := range entries {
		m[c.Number] = c
	}
	return m
}

func TestNewConverter(t *testing.T) {
	for _, name := range []string{"deflist", "bullets", "inline"} {
		conv, err := NewConverter(name, 0, "")
		require.NoError(t, err)
		assert.Equal(t, name, conv.Name())
	}
	_, err := NewConverter("sidebar", 0, "")
	assert.Error(t, err)
}

func TestDefinitionListBasic(t *testing.T) {
	in := ConvertInput{
		Groups:       []CalloutGroup{{CodeLine: "key: <val>", Numbers: []int{1}}},
		Explanations: expl(Callout{Number: 1, Lines: []string{"Sets the value."}}),
	}

	got := DefinitionList{}.Convert(in)
	want := []string{
		"`key: <val>`::",
		"Sets the value.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionListMergedGroup(t *testing.T) {
	in := ConvertInput{
		Groups: []CalloutGroup{{CodeLine: "x();", Numbers: []int{1, 2}}},
		Explanations: expl(
			Callout{Number: 1, Lines: []string{"First."}},
			Callout{Number: 2, Lines: []string{"Second."}},
		),
	}

	got := DefinitionList{}.Convert(in)
	want := []string{
		"`x();`::",
		"First.",
		"+",
		"Second.",
	}
	assert.Equal(t, want, got)
}

func TestDefinitionListTitleAndContinuations(t *testing.T) {
	in := ConvertInput{
		Title:  "Connection settings",
		Groups: []CalloutGroup{{CodeLine: "timeout: 30", Numbers: []int{1}}},
		Explanations: expl(Callout{Number: 1, Lines: []string{
			"First paragraph.",
			"",
			"ifdef::enterprise[]",
			"Enterprise only.",
			"endif::[]",
		}}),
	}

	got := DefinitionList{}.Convert(in)
	want := []string{
		"Connection settings, where:",
		"",
		"`timeout: 30`::",
		"First paragraph.",
		"+",
		"ifdef::enterprise[]",
		"Enterprise only.",
		"endif::[]",
	}
	assert.Equal(t, want, got)
}

func TestDefinitionListOptionalPrefix(t *testing.T) {
	in := ConvertInput{
		Groups:       []CalloutGroup{{CodeLine: "x", Numbers: []int{1}}},
		Explanations: expl(Callout{Number: 1, Lines: []string{"Sets X"}, Optional: true}),
	}
	got := DefinitionList{}.Convert(in)
	assert.Equal(t, []string{"`x`::", "Optional. Sets X"}, got)
}

func TestBulletedListMergesGroupExplanations(t *testing.T) {
	in := ConvertInput{
		Groups: []CalloutGroup{{CodeLine: "x();", Numbers: []int{1, 2}}},
		Explanations: expl(
			Callout{Number: 1, Lines: []string{"First."}},
			Callout{Number: 2, Lines: []string{"Second."}},
		),
	}

	got := BulletedList{}.Convert(in)
	want := []string{
		"*   `x();`: First.",
		"",
		"    Second.",
		"",
	}
	assert.Equal(t, want, got)
}

func TestBulletedListContinuationIndent(t *testing.T) {
	in := ConvertInput{
		Groups: []CalloutGroup{{CodeLine: "x", Numbers: []int{1}}},
		Explanations: expl(Callout{Number: 1, Lines: []string{
			"First line.",
			"Second line.",
		}}),
	}

	got := BulletedList{}.Convert(in)
	want := []string{
		"*   `x`: First line.",
		"    Second line.",
		"",
	}
	assert.Equal(t, want, got)
}

func TestBulletedListOptionalPrefix(t *testing.T) {
	in := ConvertInput{
		Groups:       []CalloutGroup{{CodeLine: "x", Numbers: []int{1}}},
		Explanations: expl(Callout{Number: 1, Lines: []string{"Sets X"}, Optional: true}),
	}
	got := BulletedList{}.Convert(in)
	assert.Equal(t, "*   `x`: Optional. Sets X", got[0])
}

func TestInlineComments(t *testing.T) {
	in := ConvertInput{
		Groups: []CalloutGroup{{CodeLine: "x()", Numbers: []int{1}}},
		Explanations: expl(
			Callout{Number: 1, Lines: []string{"Does X."}},
			Callout{Number: 2, Lines: []string{"Does Y."}},
		),
		Code:     []string{"x() // <1>", "plain()", "y() // <2>"},
		Language: "go",
	}
	in.Groups = append(in.Groups, CalloutGroup{CodeLine: "y()", Numbers: []int{2}})

	got := InlineComments{}.Convert(in)
	want := []string{
		"x() // Does X.",
		"plain()",
		"y() // Does Y.",
	}
	assert.Equal(t, want, got)
}

func TestInlineCommentsMergesMarkersOnOneLine(t *testing.T) {
	in := ConvertInput{
		Explanations: expl(
			Callout{Number: 1, Lines: []string{"First."}},
			Callout{Number: 2, Lines: []string{"Second."}},
		),
		Code:     []string{"x(); <1> <2>"},
		Language: "python",
	}

	got := InlineComments{}.Convert(in)
	assert.Equal(t, []string{"x(); # First.; Second."}, got)
}

func TestInlineCommentsLanguageStyles(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"go", "x // Does X."},
		{"python", "x # Does X."},
		{"sql", "x -- Does X."},
		{"html", "x <!-- Does X. -->"},
		{"unknownlang", "x # Does X."},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			in := ConvertInput{
				Explanations: expl(Callout{Number: 1, Lines: []string{"Does X."}}),
				Code:         []string{"x <1>"},
				Language:     tt.lang,
			}
			assert.Equal(t, []string{tt.want}, InlineComments{}.Convert(in))
		})
	}
}

func TestInlineCommentsOptionalPrefix(t *testing.T) {
	in := ConvertInput{
		Explanations: expl(Callout{Number: 1, Lines: []string{"Sets X."}, Optional: true}),
		Code:         []string{"x <1>"},
		Language:     "go",
	}
	assert.Equal(t, []string{"x // Optional. Sets X."}, InlineComments{}.Convert(in))
}

func TestInlineCommentsShorten(t *testing.T) {
	long := "First sentence. And quite a bit more text after it."
	in := ConvertInput{
		Groups:       []CalloutGroup{{CodeLine: "x", Numbers: []int{1}}},
		Explanations: expl(Callout{Number: 1, Lines: []string{long}}),
		Code:         []string{"x <1>"},
		Language:     "go",
	}

	ic := InlineComments{MaxLength: 20, Overflow: "shorten"}
	assert.Equal(t, []int{1}, ic.Overlong(in))
	assert.Equal(t, []string{"x // First sentence."}, ic.Convert(in))
}

func TestShortenToSentence(t *testing.T) {
	assert.Equal(t, "One.", ShortenToSentence("One. Two."))
	assert.Equal(t, "Really!", ShortenToSentence("Really! Yes."))
	assert.Equal(t, "Why?", ShortenToSentence("Why? Because."))
	assert.Equal(t, "No boundary here", ShortenToSentence("No boundary here"))
}

func TestInlineRoundTrip(t *testing.T) {
	code := []string{
		"first() // <1>",
		"middle()",
		"second() // <2>",
	}
	blockOf := CodeBlock{Content: code, Language: "go"}
	groups := ExtractCallouts(blockOf)

	in := ConvertInput{
		Groups: groups,
		Explanations: expl(
			Callout{Number: 1, Lines: []string{"First."}},
			Callout{Number: 2, Lines: []string{"Second."}},
		),
		Code:     code,
		Language: "go",
	}
	converted := InlineComments{}.Convert(in)

	stripped, commentLines := StripInlineComments(converted, "go")
	assert.Equal(t, []string{"first()", "middle()", "second()"}, stripped)
	assert.Equal(t, []int{0, 2}, commentLines, "comments sit exactly where markers were")
}
