package asciidoc

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultSearchWindow is how many lines after a code block the resolver
// scans for an explanation before giving up. Tunable via Resolver.Window;
// the default matches what authors produce in practice but has no deeper
// grounding.
const DefaultSearchWindow = 10

var (
	listItemRe   = regexp.MustCompile(`^<(\d+)>\s+(.*)$`)
	firstCellNum = regexp.MustCompile(`^(?:<(\d+)>|(\d+))$`)
	optionalRe   = regexp.MustCompile(`(?i)^\s*(?:\(optional\)|optional[.:])\s*`)
)

// headerKeywords identify a table header row when its first cell is not a
// number.
var headerKeywords = []string{"item", "description", "value", "callout", "number"}

// Resolver locates and normalizes the explanation layout following a code
// block. Zero value is ready to use. Resolvers hold no cross-call state;
// everything the caller might want to inspect afterwards is on the
// returned Resolution.
type Resolver struct {
	// Window overrides DefaultSearchWindow when > 0.
	Window int
}

// Resolve determines which explanation layout follows the code block
// ending at afterLine (index of the closing delimiter) and produces the
// uniform number->explanation map.
//
// Search order: scan forward up to Window lines, skipping blank and `+`
// continuation lines. A list item found closer always wins over a table
// found farther away; a new code block ends the search. A table that
// parses but is not callout-shaped resolves to LayoutNone.
func (r *Resolver) Resolve(lines []string, afterLine int) Resolution {
	window := r.Window
	if window <= 0 {
		window = DefaultSearchWindow
	}

	none := Resolution{Layout: LayoutNone, Start: -1, End: -1}

	for i := afterLine + 1; i < len(lines) && i <= afterLine+window; i++ {
		trimmed := strings.TrimSpace(lines[i])

		switch {
		case trimmed == "" || trimmed == "+":
			continue

		case listItemRe.MatchString(trimmed):
			return resolveList(lines, i)

		case sourceAttrRe.MatchString(trimmed) || blockDelimRe.MatchString(trimmed):
			// Another code block before any explanation.
			return none

		case tableDelimRe.MatchString(trimmed):
			table, ok := ParseTable(lines, i)
			if !ok {
				return none
			}
			return resolveTable(table)

		case colsAttrRe.MatchString(trimmed) || titleRe.MatchString(trimmed):
			// Attribute or title line announcing a table; keep scanning
			// for its delimiter.
			continue
		}
	}

	return none
}

// resolveList parses consecutive `<N> text` lines starting at idx.
// Continuation lines are any non-blank lines that are not themselves a
// new marker; a blank line terminates the list. Continuations stay as raw
// trailing text on the current item.
func resolveList(lines []string, idx int) Resolution {
	res := Resolution{
		Layout:       LayoutList,
		Explanations: make(map[int]Callout),
		Start:        idx,
		End:          idx - 1,
	}

	var current *Callout
	flush := func() {
		if current == nil {
			return
		}
		res.Explanations[current.Number] = *current
		res.Order = append(res.Order, current.Number)
		current = nil
	}

	for i := idx; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			break
		}
		if m := listItemRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			n, _ := strconv.Atoi(m[1])
			text, optional := stripOptional(m[2])
			current = &Callout{Number: n, Lines: []string{text}, Optional: optional}
			res.End = i
			continue
		}
		if current == nil {
			break
		}
		if sourceAttrRe.MatchString(trimmed) || blockDelimRe.MatchString(trimmed) || tableDelimRe.MatchString(trimmed) {
			break
		}
		current.Lines = append(current.Lines, trimmed)
		res.End = i
	}
	flush()

	if len(res.Order) == 0 {
		return Resolution{Layout: LayoutNone, Start: -1, End: -1}
	}
	return res
}

// resolveTable classifies a parsed table as a 2- or 3-column callout
// table and extracts its explanations. The classification predicates are
// exclusive: every data row must have the same cell count, so a table
// cannot satisfy both shapes.
func resolveTable(t *Table) Resolution {
	none := Resolution{Layout: LayoutNone, Start: -1, End: -1}

	rows := t.Rows
	if len(rows) > 0 && isHeaderRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return none
	}

	width := len(rows[0].Cells)
	if width != 2 && width != 3 {
		return none
	}
	for _, row := range rows {
		if len(row.Cells) != width {
			return none
		}
		if _, ok := cellNumber(row.Cells[0]); !ok {
			return none
		}
	}

	layout := LayoutTable2
	if width == 3 {
		layout = LayoutTable3
	}

	res := Resolution{
		Layout:       layout,
		Explanations: make(map[int]Callout),
		Table:        t,
		Title:        t.Title,
		Start:        t.Start,
		End:          t.End,
	}

	for _, row := range rows {
		n, _ := cellNumber(row.Cells[0])

		var content []string
		content = append(content, row.CondsBefore...)
		if width == 3 {
			if value := strings.TrimSpace(strings.Join(row.Cells[1].Content, " ")); value != "" {
				content = append(content, "`"+value+"`:")
			}
			content = append(content, row.Cells[2].Content...)
		} else {
			content = append(content, row.Cells[1].Content...)
		}
		content = append(content, row.CondsAfter...)

		content, optional := stripOptionalLines(content)
		if len(content) == 0 {
			content = []string{""}
		}

		// Duplicate numbers resolve last-write-wins; Order keeps every
		// occurrence so the validator can surface the duplicate.
		res.Explanations[n] = Callout{Number: n, Lines: content, Optional: optional}
		res.Order = append(res.Order, n)
	}

	return res
}

// isHeaderRow detects a header row: first cell is not a number and some
// cell carries a recognizable header keyword.
func isHeaderRow(row TableRow) bool {
	if len(row.Cells) == 0 {
		return false
	}
	if _, ok := cellNumber(row.Cells[0]); ok {
		return false
	}
	for _, cell := range row.Cells {
		text := strings.ToLower(strings.Join(cell.Content, " "))
		for _, kw := range headerKeywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

// cellNumber extracts the callout number from a first-column cell holding
// a bare or bracketed integer.
func cellNumber(cell TableCell) (int, bool) {
	if len(cell.Content) != 1 {
		return 0, false
	}
	m := firstCellNum.FindStringSubmatch(strings.TrimSpace(cell.Content[0]))
	if m == nil {
		return 0, false
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// stripOptional removes a leading "Optional." / "Optional:" /
// "(Optional)" marker, case-insensitively.
func stripOptional(text string) (string, bool) {
	if loc := optionalRe.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[loc[1]:]), true
	}
	return text, false
}

// stripOptionalLines applies stripOptional to the first non-directive,
// non-blank line of an explanation.
func stripOptionalLines(content []string) ([]string, bool) {
	for i, line := range content {
		if strings.TrimSpace(line) == "" || isConditional(line) {
			continue
		}
		text, optional := stripOptional(line)
		if !optional {
			return content, false
		}
		out := make([]string, len(content))
		copy(out, content)
		if text == "" {
			out = append(out[:i], out[i+1:]...)
		} else {
			out[i] = text
		}
		return out, true
	}
	return content, false
}
