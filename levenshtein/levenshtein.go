/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package levenshtein computes edit distance between short identifiers, for
// "did you mean" suggestions on unknown directives and instructions.
package levenshtein

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-character insertions, deletions, or
// substitutions needed to turn a into b.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Closest returns the candidate nearest to target by edit distance, and
// whether its distance is within maxDistance. candidates must be
// non-empty for a meaningful result.
func Closest(target string, candidates []string, maxDistance int) (string, bool) {
	best := ""
	bestDist := maxDistance + 1
	for _, c := range candidates {
		d := Distance(target, c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, bestDist <= maxDistance
}
