// Package asciidoc recovers callout annotations from AsciiDoc source
// listings and re-renders them into alternative layouts.
//
// A listing annotated with numbered markers (`<1>`, `<2>`, ...) is followed
// by explanations in one of three authoring layouts: an ordered list, a
// 2-column table, or a 3-column table. This package scans listings,
// extracts the markers, resolves whichever explanation layout is present
// into a uniform number->explanation map, validates that code and
// explanations agree, and converts the pair into a definition list, a
// bulleted list, or inline source comments.
//
// Processing is tolerant by design: malformed tables, unmatched delimiters
// and number mismatches produce warnings and skipped blocks, never a
// failure for the whole document.
package asciidoc

// CodeBlock is one delimited source listing. Line fields are indices into
// the document's line slice. Content excludes the delimiter lines.
type CodeBlock struct {
	Start        int    // attribute line ([source,...]) or opening delimiter
	ContentStart int    // first content line
	End          int    // closing delimiter line
	Delimiter    string // "----" or "...."
	Language     string // from [source,<lang>], may be empty
	Content      []string
}

// Callout is the explanation attached to one callout number. Lines keeps
// embedded blank lines and conditional directives in place so converters
// can re-insert continuation markers at the right point.
type Callout struct {
	Number   int
	Lines    []string
	Optional bool
}

// CalloutGroup is one or more callout numbers annotating the same code
// line. CodeLine has the markers and their leading comment syntax removed.
// Numbers are in left-to-right order and unique within the group.
type CalloutGroup struct {
	CodeLine string
	Numbers  []int
}

// TableCell is one table cell. A cell may span several physical lines;
// for AsciiDoc-flavored cells blank lines are content rather than row
// separators.
type TableCell struct {
	Content []string
}

// TableRow is one table row plus any conditional directives attached to
// the row but outside any cell.
type TableRow struct {
	Cells       []TableCell
	CondsBefore []string
	CondsAfter  []string
}

// Table is a parsed |=== ... |=== block. Attributes is the raw cols="..."
// specifier from the preceding [cols=...] line, if any.
type Table struct {
	Start      int // title or attribute line when present, else delimiter
	End        int // closing delimiter line
	Attributes string
	Title      string
	Rows       []TableRow
}

// Layout identifies which explanation layout the resolver found.
type Layout int

const (
	LayoutNone   Layout = iota // no explanations located
	LayoutList                 // `<N> text` ordered list
	LayoutTable2               // 2-column callout table
	LayoutTable3               // 3-column callout table
)

func (l Layout) String() string {
	switch l {
	case LayoutList:
		return "list"
	case LayoutTable2:
		return "table2"
	case LayoutTable3:
		return "table3"
	default:
		return "none"
	}
}

// Resolution is the resolver's result. Explanations maps callout number to
// explanation; for duplicate numbers in a table the last row wins, while
// Order preserves every number in appearance order for diagnostics. Table
// is non-nil for table layouts so callers can inspect what was parsed
// without any shared detector state.
type Resolution struct {
	Layout       Layout
	Explanations map[int]Callout
	Order        []int
	Table        *Table
	Title        string
	Start        int // first line of the explanation region
	End          int // last line of the explanation region
}

// Verdict is the validator's comparison of code vs explanation numbers.
// ExplNums is sorted with duplicates preserved so a duplicated table row
// is visible in diagnostics.
type Verdict struct {
	Valid    bool
	CodeNums []int
	ExplNums []int
}

// Warning records one skipped block for batch reporting.
type Warning struct {
	File      string
	StartLine int
	EndLine   int
	CodeNums  []int
	ExplNums  []int
	Reason    string
}
