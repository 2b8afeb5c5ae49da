package model

import "fmt"

// SuffixDuplicateNames returns display names for an enemy roster.
// Names that occur once are returned unchanged; every occurrence of a
// repeated name gets a letter suffix in roster order: "Slime (A)",
// "Slime (B)", ... Past 'Z' the suffix becomes a number.
func SuffixDuplicateNames(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}

	next := make(map[string]int, len(counts))
	out := make([]string, len(names))
	for i, n := range names {
		if counts[n] < 2 {
			out[i] = n
			continue
		}
		idx := next[n]
		next[n] = idx + 1
		out[i] = fmt.Sprintf("%s (%s)", n, suffix(idx))
	}
	return out
}

func suffix(idx int) string {
	if idx < 26 {
		return string(rune('A' + idx))
	}
	return fmt.Sprintf("%d", idx+1)
}
