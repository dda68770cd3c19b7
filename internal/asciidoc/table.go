package asciidoc

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	tableDelimRe = regexp.MustCompile(`^\|===\s*$`)
	colsAttrRe   = regexp.MustCompile(`^\[cols="([^"]*)"[^\]]*\]\s*$`)
	titleRe      = regexp.MustCompile(`^\.(\S.*)$`)
	condRe       = regexp.MustCompile(`^(ifdef|ifndef|endif)::[^\[]*\[\]?\s*$`)

	// Span/style specifier glued to the left of a cell separator:
	// `a|`, `l|`, `2+|`, `3*a|`, ...
	specTokenRe = regexp.MustCompile(`^(\d+(\.\d+)?[+*])?[adehlmsv]?$`)
)

// cellState tracks what the scanner is currently accumulating.
type cellState int

const (
	cellNone     cellState = iota // between cells
	cellPlain                     // ordinary cell: blank line ends the row
	cellAsciiDoc                  // a| cell: blank lines are content
)

// isConditional reports whether the line is an ifdef/ifndef/endif
// preprocessor directive.
func isConditional(line string) bool {
	return condRe.MatchString(strings.TrimSpace(line))
}

// columnCount derives the column count from a cols="..." specifier.
// Supports a bare repeat count ("3"), the repeat form ("3*" / "3*2") and
// comma-separated specs ("1,2,3" or "1h,3d"). Returns 0 when the count
// cannot be determined.
func columnCount(attrs string) int {
	spec := strings.TrimSpace(attrs)
	if spec == "" {
		return 0
	}
	if n, err := strconv.Atoi(spec); err == nil {
		return n
	}
	if i := strings.Index(spec, "*"); i > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(spec[:i])); err == nil {
			return n
		}
	}
	return len(strings.Split(spec, ","))
}

// cellStart marks one cell separator found on a physical line.
type cellStart struct {
	spec         string
	specStart    int // where the glued specifier (or the pipe) begins
	contentStart int // first byte after the pipe
}

// findCellStarts locates every unescaped `|` on the line, together with
// any span/style specifier glued to its left.
func findCellStarts(line string) []cellStart {
	var starts []cellStart
	for i := 0; i < len(line); i++ {
		if line[i] != '|' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		j := i
		for j > 0 && line[j-1] != ' ' && line[j-1] != '\t' && line[j-1] != '|' {
			j--
		}
		tok := line[j:i]
		if tok != "" && specTokenRe.MatchString(tok) {
			starts = append(starts, cellStart{spec: tok, specStart: j, contentStart: i + 1})
		} else {
			starts = append(starts, cellStart{specStart: i, contentStart: i + 1})
		}
	}
	return starts
}

func unescapeCell(s string) string {
	return strings.ReplaceAll(s, `\|`, `|`)
}

// tableScanner is the row/cell state machine behind ParseTable. It exists
// per call; nothing is shared between invocations.
type tableScanner struct {
	cols    int
	state   cellState
	cell    []string
	row     TableRow
	pending []string // conditionals waiting for the next row
	rows    []TableRow
}

func (s *tableScanner) startRowIfNeeded() {
	if len(s.pending) > 0 {
		s.row.CondsBefore = append(s.row.CondsBefore, s.pending...)
		s.pending = nil
	}
}

// closeCell flushes the accumulating cell into the current row.
func (s *tableScanner) closeCell() {
	if s.state == cellNone {
		return
	}
	s.row.Cells = append(s.row.Cells, TableCell{Content: trimTrailingBlank(s.cell)})
	s.cell = nil
	s.state = cellNone
}

// closeRow flushes the current row, carrying any pending conditionals.
func (s *tableScanner) closeRow() {
	s.closeCell()
	if len(s.row.Cells) == 0 {
		// Conditionals with no cells of their own attach to the previous
		// row instead.
		if n := len(s.rows); n > 0 && len(s.row.CondsBefore) > 0 {
			s.rows[n-1].CondsAfter = append(s.rows[n-1].CondsAfter, s.row.CondsBefore...)
		}
		s.row = TableRow{}
		return
	}
	s.rows = append(s.rows, s.row)
	s.row = TableRow{}
}

// rowComplete reports whether the accumulated cell count satisfies the
// column count parsed from cols="...".
func (s *tableScanner) rowComplete() bool {
	return s.cols > 0 && len(s.row.Cells) >= s.cols
}

func (s *tableScanner) feed(line string) {
	trimmed := strings.TrimSpace(line)

	if isConditional(trimmed) {
		switch {
		case s.state != cellNone:
			s.cell = append(s.cell, trimmed)
		case len(s.row.Cells) > 0:
			s.row.CondsAfter = append(s.row.CondsAfter, trimmed)
		default:
			s.pending = append(s.pending, trimmed)
		}
		return
	}

	if trimmed == "" {
		if s.state == cellAsciiDoc {
			s.cell = append(s.cell, "")
			return
		}
		s.closeRow()
		return
	}

	starts := findCellStarts(line)
	if len(starts) == 0 {
		// Continuation of the current cell. Stray text outside any cell is
		// tolerated and dropped.
		if s.state != cellNone {
			s.cell = append(s.cell, strings.TrimRight(line, " \t"))
		}
		return
	}

	// Text before the first separator continues the previous cell.
	if prefix := strings.TrimSpace(line[:starts[0].specStart]); prefix != "" && s.state != cellNone {
		s.cell = append(s.cell, prefix)
	}

	s.closeCell()
	if s.rowComplete() {
		s.closeRow()
	}
	s.startRowIfNeeded()

	if len(starts) > 1 {
		// Inline multi-cell line: every segment is one cell and the row
		// always closes.
		for i, st := range starts {
			end := len(line)
			if i+1 < len(starts) {
				end = starts[i+1].specStart
			}
			s.row.Cells = append(s.row.Cells, TableCell{
				Content: []string{unescapeCell(strings.TrimSpace(line[st.contentStart:end]))},
			})
		}
		s.closeRow()
		return
	}

	// Single cell start: begin accumulating, possibly across lines.
	st := starts[0]
	if strings.HasSuffix(st.spec, "a") {
		s.state = cellAsciiDoc
	} else {
		s.state = cellPlain
	}
	if rest := unescapeCell(strings.TrimSpace(line[st.contentStart:])); rest != "" {
		s.cell = append(s.cell, rest)
	}
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if lines == nil {
		return []string{}
	}
	return lines
}

// ParseTable scans forward from the |=== delimiter at delimIdx and builds
// a Table. Up to two lines before the delimiter are inspected for a
// [cols="..."] attribute and a .Title line. Returns (nil, false) when no
// closing delimiter exists; callers treat that as "no table found" rather
// than an error so the rest of the document keeps processing.
func ParseTable(lines []string, delimIdx int) (*Table, bool) {
	if delimIdx < 0 || delimIdx >= len(lines) || !tableDelimRe.MatchString(strings.TrimSpace(lines[delimIdx])) {
		return nil, false
	}

	t := &Table{Start: delimIdx, End: -1}

	// Attribute and title lines directly above the delimiter.
	at := delimIdx - 1
	if at >= 0 {
		if m := colsAttrRe.FindStringSubmatch(strings.TrimSpace(lines[at])); m != nil {
			t.Attributes = m[1]
			t.Start = at
			at--
		}
	}
	if at >= 0 {
		if m := titleRe.FindStringSubmatch(strings.TrimSpace(lines[at])); m != nil && !strings.HasPrefix(m[1], ".") {
			t.Title = m[1]
			t.Start = at
		}
	}

	scan := &tableScanner{cols: columnCount(t.Attributes)}
	for i := delimIdx + 1; i < len(lines); i++ {
		if tableDelimRe.MatchString(strings.TrimSpace(lines[i])) {
			scan.closeRow()
			// Conditionals still pending at the closing delimiter belong
			// to the last row.
			if n := len(scan.rows); n > 0 && len(scan.pending) > 0 {
				scan.rows[n-1].CondsAfter = append(scan.rows[n-1].CondsAfter, scan.pending...)
				scan.pending = nil
			}
			t.End = i
			break
		}
		scan.feed(lines[i])
	}
	if t.End < 0 {
		return nil, false
	}
	t.Rows = scan.rows
	return t, true
}
