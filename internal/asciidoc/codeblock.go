package asciidoc

import (
	"regexp"
	"strings"
)

var (
	sourceAttrRe = regexp.MustCompile(`^\[source(?:%\w+)?(?:,\s*([A-Za-z0-9_+-]+))?(?:,[^\]]*)?\]\s*$`)
	blockDelimRe = regexp.MustCompile(`^(-{4,}|\.{4,})\s*$`)
	calloutRe    = regexp.MustCompile(`<(\d+)>`)
)

// ScanCodeBlocks finds every delimited listing block in the document.
// A block is either a [source]-style attribute line followed by a ----
// or .... delimiter, or a bare delimited block whose content contains at
// least one callout marker (plain delimited blocks without callouts are
// not code for our purposes). Original line indices are preserved so the
// caller can splice replacements back in. An opening delimiter without a
// matching close yields no block, never an error.
func ScanCodeBlocks(lines []string) []CodeBlock {
	var blocks []CodeBlock

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if m := sourceAttrRe.FindStringSubmatch(line); m != nil {
			if i+1 >= len(lines) {
				break
			}
			dm := blockDelimRe.FindStringSubmatch(strings.TrimSpace(lines[i+1]))
			if dm == nil {
				continue
			}
			block, end := scanDelimited(lines, i, i+1, dm[1])
			if block == nil {
				continue
			}
			block.Language = strings.ToLower(m[1])
			blocks = append(blocks, *block)
			i = end
			continue
		}

		if dm := blockDelimRe.FindStringSubmatch(line); dm != nil {
			block, end := scanDelimited(lines, i, i, dm[1])
			if block == nil {
				continue
			}
			if !hasCallout(block.Content) {
				i = end
				continue
			}
			blocks = append(blocks, *block)
			i = end
		}
	}

	return blocks
}

// scanDelimited reads content from after the delimiter at delimIdx to the
// matching closing delimiter. Returns (nil, 0) when the block never
// closes.
func scanDelimited(lines []string, start, delimIdx int, delim string) (*CodeBlock, int) {
	for i := delimIdx + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			content := make([]string, i-delimIdx-1)
			copy(content, lines[delimIdx+1:i])
			return &CodeBlock{
				Start:        start,
				ContentStart: delimIdx + 1,
				End:          i,
				Delimiter:    delim,
				Content:      content,
			}, i
		}
	}
	return nil, 0
}

func hasCallout(lines []string) bool {
	for _, l := range lines {
		if calloutRe.MatchString(l) {
			return true
		}
	}
	return false
}
