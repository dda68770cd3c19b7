package batch

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Preview renders a line-level diff of the conversion for dry-run output.
// Uses a line-level reduction to avoid newline boundary artifacts when
// converting character diffs to line ops.
func Preview(before, after string) string {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitDiffLines(d.Text) {
			if d.Type == diffmatchpatch.DiffEqual {
				continue // keep previews compact: changes only
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitDiffLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
