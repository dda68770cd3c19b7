package asciidoc

import "sort"

// Validate compares the callout numbers found in code against the numbers
// found in explanations. The pass condition is set equality; ExplNums is
// sorted with duplicates preserved so a duplicated table row shows up in
// diagnostics. Validation failure is recoverable: callers log a warning
// and skip conversion of the one block, continuing with the rest of the
// document.
func Validate(groups []CalloutGroup, res Resolution) Verdict {
	codeNums := CodeNumbers(groups)

	explNums := make([]int, len(res.Order))
	copy(explNums, res.Order)
	sort.Ints(explNums)

	explSet := make(map[int]bool, len(explNums))
	for _, n := range explNums {
		explSet[n] = true
	}

	valid := len(codeNums) == len(explSet)
	if valid {
		for _, n := range codeNums {
			if !explSet[n] {
				valid = false
				break
			}
		}
	}

	return Verdict{Valid: valid, CodeNums: codeNums, ExplNums: explNums}
}
