package asciidoc

import (
	"strings"

	"go.uber.org/zap"
)

// Document is one in-memory file: a name for diagnostics plus its lines.
type Document struct {
	Name  string
	Lines []string
}

// Result is the outcome of processing one document. Lines is the full
// document with every convertible block replaced; skipped blocks keep
// their original text and contribute a Warning.
type Result struct {
	Lines     []string
	Converted int
	Skipped   int
	Warnings  []Warning
}

// Processor runs the full pipeline per document: scan -> extract ->
// resolve -> validate -> convert -> splice. It is a pure function of its
// input; instances are safe to share across goroutines processing
// independent documents.
type Processor struct {
	converter Converter
	resolver  Resolver
	log       *zap.Logger
}

// NewProcessor builds a Processor. converter must be non-nil; a zero
// window selects DefaultSearchWindow; a nil logger is replaced with Nop.
func NewProcessor(converter Converter, window int, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		converter: converter,
		resolver:  Resolver{Window: window},
		log:       log,
	}
}

// Process converts every callout-annotated code block in the document.
// Individual blocks that fail to resolve or validate are skipped with a
// warning; nothing here aborts the document.
func (p *Processor) Process(doc Document) Result {
	res := Result{Lines: doc.Lines}
	blocks := ScanCodeBlocks(doc.Lines)

	// Splice back-to-front so earlier block indices stay valid.
	for i := len(blocks) - 1; i >= 0; i-- {
		block := blocks[i]

		groups := ExtractCallouts(block)
		if len(groups) == 0 {
			continue
		}

		resolution := p.resolver.Resolve(doc.Lines, block.End)
		if resolution.Layout == LayoutNone {
			p.warn(&res, doc, block, Verdict{}, "no explanations found")
			continue
		}

		verdict := Validate(groups, resolution)
		if !verdict.Valid {
			p.warn(&res, doc, block, verdict, "callout numbers disagree")
			continue
		}

		in := ConvertInput{
			Groups:       groups,
			Explanations: resolution.Explanations,
			Title:        resolution.Title,
			Code:         block.Content,
			Language:     block.Language,
		}

		var from, to int
		var repl []string
		if ic, inline := p.converter.(InlineComments); inline {
			if overlong := ic.Overlong(in); len(overlong) > 0 {
				switch ic.Overflow {
				case "list":
					// Too long for a comment: fall back to a definition
					// list for this one block.
					repl = DefinitionList{}.Convert(in)
					res.Lines = splice(res.Lines, block.Start, resolution.End, repl)
					res.Converted++
					continue
				case "skip":
					p.warn(&res, doc, block, Verdict{CodeNums: overlong}, "inline comment too long")
					continue
				}
				// "shorten" (and the permissive default) fall through to
				// the converter, which applies its own length policy.
			}
			// Inline keeps the listing: rewrite its content in place and
			// drop the explanation region.
			repl = p.converter.Convert(in)
			from, to = block.ContentStart, block.End-1
			res.Lines = splice(res.Lines, resolution.Start, resolution.End, nil)
		} else {
			// List-style converters replace the whole listing plus its
			// explanations.
			repl = p.converter.Convert(in)
			from, to = block.Start, resolution.End
		}
		res.Lines = splice(res.Lines, from, to, repl)
		res.Converted++

		p.log.Debug("converted block",
			zap.String("file", doc.Name),
			zap.Int("start", block.Start+1),
			zap.String("layout", resolution.Layout.String()),
			zap.String("converter", p.converter.Name()))
	}

	return res
}

func (p *Processor) warn(res *Result, doc Document, block CodeBlock, v Verdict, reason string) {
	res.Skipped++
	res.Warnings = append(res.Warnings, Warning{
		File:      doc.Name,
		StartLine: block.Start + 1,
		EndLine:   block.End + 1,
		CodeNums:  v.CodeNums,
		ExplNums:  v.ExplNums,
		Reason:    reason,
	})
	p.log.Warn("skipping block",
		zap.String("file", doc.Name),
		zap.Int("start", block.Start+1),
		zap.Int("end", block.End+1),
		zap.Ints("code_numbers", v.CodeNums),
		zap.Ints("explanation_numbers", v.ExplNums),
		zap.String("reason", reason))
}

// splice replaces lines[from..to] (inclusive) with repl.
func splice(lines []string, from, to int, repl []string) []string {
	if from < 0 || to >= len(lines) || from > to {
		return lines
	}
	out := make([]string, 0, len(lines)-(to-from+1)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	out = append(out, lines[to+1:]...)
	return out
}

// ConvertTableAt is the standalone table-to-definition-list conversion:
// the table whose |=== delimiter sits at delimIdx becomes a labeled list
// with the first column as term and the remaining columns as definition.
// No callout semantics apply. Returns the replacement for the table's
// full span (title and attribute lines included) and the span itself.
func ConvertTableAt(lines []string, delimIdx int) ([]string, int, int, bool) {
	t, ok := ParseTable(lines, delimIdx)
	if !ok {
		return nil, 0, 0, false
	}

	var out []string
	if t.Title != "" {
		out = append(out, t.Title+", where:", "")
	}

	rows := t.Rows
	if len(rows) > 0 && isHeaderRow(rows[0]) {
		rows = rows[1:]
	}

	for ri, row := range rows {
		if len(row.Cells) == 0 {
			continue
		}
		if ri > 0 {
			out = append(out, "")
		}
		out = append(out, row.CondsBefore...)
		term := strings.TrimSpace(strings.Join(row.Cells[0].Content, " "))
		out = append(out, "`"+term+"`::")
		for ci, cell := range row.Cells[1:] {
			if ci > 0 {
				out = append(out, "+")
			}
			for _, line := range cell.Content {
				if strings.TrimSpace(line) == "" {
					out = append(out, "+")
					continue
				}
				out = append(out, line)
			}
		}
		out = append(out, row.CondsAfter...)
	}

	return out, t.Start, t.End, true
}
