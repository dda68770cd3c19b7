package asciidoc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// trailingCommentRe strips the line-comment token that authors put in
// front of callout markers (`x() // <1>`). Only //, # and -- are
// recognized; anything else stays part of the code line.
var trailingCommentRe = regexp.MustCompile(`\s*(//|#|--)\s*$`)

// ExtractCallouts scans a code block's content for callout markers. Every
// code line carrying markers produces exactly one CalloutGroup: a line
// like `x(); <1> <2>` yields one group with numbers [1 2], not two
// groups. The returned code line has the markers and the comment token
// directly preceding them removed, with trailing whitespace trimmed.
func ExtractCallouts(block CodeBlock) []CalloutGroup {
	var groups []CalloutGroup

	for _, line := range block.Content {
		matches := calloutRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		var nums []int
		seen := make(map[int]bool)
		for _, m := range matches {
			n, err := strconv.Atoi(m[1])
			if err != nil || n <= 0 || seen[n] {
				continue
			}
			seen[n] = true
			nums = append(nums, n)
		}
		if len(nums) == 0 {
			continue
		}

		code := calloutRe.ReplaceAllString(line, "")
		code = trailingCommentRe.ReplaceAllString(code, "")
		code = strings.TrimRight(code, " \t")

		groups = append(groups, CalloutGroup{CodeLine: code, Numbers: nums})
	}

	return groups
}

// CodeNumbers returns the union of callout numbers over all groups,
// deduplicated and sorted.
func CodeNumbers(groups []CalloutGroup) []int {
	seen := make(map[int]bool)
	var nums []int
	for _, g := range groups {
		for _, n := range g.Numbers {
			if !seen[n] {
				seen[n] = true
				nums = append(nums, n)
			}
		}
	}
	sort.Ints(nums)
	return nums
}
