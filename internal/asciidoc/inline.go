package asciidoc

import (
	"regexp"
	"strconv"
	"strings"
)

var sentenceEndRe = regexp.MustCompile(`[.!?] `)

// InlineComments rewrites the code lines themselves: each `<N>` marker
// (with its leading comment token) is replaced by a language-appropriate
// comment carrying the explanation text. The explanation layout after the
// block is left for the caller to drop. MaxLength, when > 0, bounds the
// rendered comment text; Overflow decides what happens beyond it:
// "shorten" cuts at the first sentence boundary, anything else keeps the
// full text (callers wanting convert-to-list or skip decide before
// converting, via Overlong).
type InlineComments struct {
	MaxLength int
	Overflow  string
}

func (InlineComments) Name() string { return "inline" }

func (ic InlineComments) Convert(in ConvertInput) []string {
	style := CommentStyleFor(in.Language)
	out := make([]string, 0, len(in.Code))

	for _, line := range in.Code {
		matches := calloutRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			out = append(out, line)
			continue
		}

		bare := calloutRe.ReplaceAllString(line, "")
		bare = trailingCommentRe.ReplaceAllString(bare, "")
		bare = strings.TrimRight(bare, " \t")

		text := ic.commentText(lineNumbers(matches), in.Explanations)
		out = append(out, bare+" "+style.Comment(text))
	}

	return out
}

// Overlong returns the callout numbers whose rendered comment text would
// exceed MaxLength, so the caller can choose shorten/convert-to-list/skip
// before committing to inline conversion.
func (ic InlineComments) Overlong(in ConvertInput) []int {
	if ic.MaxLength <= 0 {
		return nil
	}
	var nums []int
	for _, g := range in.Groups {
		for _, n := range g.Numbers {
			if len(flattenExplanation(explanationFor(in.Explanations, n))) > ic.MaxLength {
				nums = append(nums, n)
			}
		}
	}
	return nums
}

// commentText joins the explanations for all markers on one code line
// into a single comment, applying the length policy.
func (ic InlineComments) commentText(nums []int, expl map[int]Callout) string {
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		text := flattenExplanation(explanationFor(expl, n))
		if ic.MaxLength > 0 && len(text) > ic.MaxLength && ic.Overflow == "shorten" {
			text = ShortenToSentence(text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "; ")
}

// flattenExplanation collapses a multi-line explanation into one line,
// skipping blank lines and conditional directives.
func flattenExplanation(c Callout) string {
	var parts []string
	for _, line := range c.Lines {
		if strings.TrimSpace(line) == "" || isConditional(line) {
			continue
		}
		parts = append(parts, strings.TrimSpace(line))
	}
	return renderFirstLine(c, strings.Join(parts, " "))
}

// lineNumbers extracts the marker numbers from a line's regexp matches in
// left-to-right order.
func lineNumbers(matches [][]string) []int {
	nums := make([]int, 0, len(matches))
	seen := make(map[int]bool)
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 || seen[n] {
			continue
		}
		seen[n] = true
		nums = append(nums, n)
	}
	return nums
}

// ShortenToSentence cuts text at the first sentence boundary (". ", "! "
// or "? "), keeping the punctuation.
func ShortenToSentence(text string) string {
	if loc := sentenceEndRe.FindStringIndex(text); loc != nil {
		return text[:loc[0]+1]
	}
	return text
}

// StripInlineComments is the inverse of InlineComments for languages with
// a one-token opening comment: it removes a trailing comment from each
// line and reports which line indices carried one. Used to verify that
// inline conversion preserves marker positions.
func StripInlineComments(lines []string, lang string) ([]string, []int) {
	style := CommentStyleFor(lang)
	out := make([]string, len(lines))
	var stripped []int

	for i, line := range lines {
		idx := strings.LastIndex(line, " "+style.Open+" ")
		if idx < 0 {
			out[i] = line
			continue
		}
		out[i] = strings.TrimRight(line[:idx], " \t")
		stripped = append(stripped, i)
	}

	return out, stripped
}
