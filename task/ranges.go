package task

import (
	"sort"
	"strconv"
	"strings"
)

// ParseRanges parses a 1-based page-range expression such as "1-3,6-7" into
// a sorted, deduplicated set of 0-based page indices within [0, totalPages).
// Malformed tokens and inverted ranges are skipped rather than fatal: a bad
// expression degrades to fewer pages, possibly none, and the caller treats an
// empty result as "nothing to do".
func ParseRanges(expr string, totalPages int) []int {
	seen := make(map[int]struct{})
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if strings.Contains(token, "-") {
			halves := strings.SplitN(token, "-", 2)
			start, err1 := strconv.Atoi(strings.TrimSpace(halves[0]))
			end, err2 := strconv.Atoi(strings.TrimSpace(halves[1]))
			if err1 != nil || err2 != nil || start > end {
				continue
			}
			for p := start - 1; p <= end-1; p++ {
				if p >= 0 && p < totalPages {
					seen[p] = struct{}{}
				}
			}
		} else {
			v, err := strconv.Atoi(token)
			if err != nil {
				continue
			}
			if p := v - 1; p >= 0 && p < totalPages {
				seen[p] = struct{}{}
			}
		}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
