// Package fuzzy scores string similarity on a 0-100 scale and picks the best
// candidate out of a reference list.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Process lowercases s, turns every non-alphanumeric rune into a space and
// trims the result.
func Process(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(mapped)
}

// Ratio is the edit-distance similarity of a and b.
func Ratio(a, b string) int {
	return round(similarity(a, b))
}

// PartialRatio scores the shorter string against its best-aligned window in
// the longer one.
func PartialRatio(a, b string) int {
	return round(partial(a, b))
}

// TokenSortRatio compares both strings after sorting their tokens.
func TokenSortRatio(a, b string) int {
	return round(similarity(sortedTokens(a), sortedTokens(b)))
}

// TokenSetRatio compares the shared tokens against each side's remainder, so
// extra words on one side do not count against the match.
func TokenSetRatio(a, b string) int {
	return round(tokenSet(a, b, similarity))
}

// WRatio blends the other scorers, weighting partial and token matches by how
// different the two lengths are.
func WRatio(a, b string) int {
	p1, p2 := Process(a), Process(b)
	if p1 == "" || p2 == "" {
		return 0
	}

	const unbaseScale = 0.95
	partialScale := 0.90

	base := similarity(p1, p2)

	l1, l2 := len([]rune(p1)), len([]rune(p2))
	lenRatio := float64(max(l1, l2)) / float64(min(l1, l2))

	if lenRatio < 1.5 {
		tsor := similarity(sortedTokens(p1), sortedTokens(p2)) * unbaseScale
		tser := tokenSet(p1, p2, similarity) * unbaseScale
		return round(math.Max(base, math.Max(tsor, tser)))
	}

	if lenRatio > 8 {
		partialScale = 0.6
	}

	part := partial(p1, p2) * partialScale
	ptsor := partial(sortedTokens(p1), sortedTokens(p2)) * unbaseScale * partialScale
	ptser := tokenSet(p1, p2, partial) * unbaseScale * partialScale

	return round(math.Max(math.Max(base, part), math.Max(ptsor, ptser)))
}

// ExtractOne returns the index and WRatio score of the best choice for query.
// The first choice wins a tie. An empty choice list yields index -1.
func ExtractOne(query string, choices []string) (int, int) {
	best, bestScore := -1, -1
	for i, choice := range choices {
		score := WRatio(query, choice)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, bestScore
}

// ============================================================================
// SCORING HELPERS
// ============================================================================

func similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(max(la, lb)))
}

func partial(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		score := similarity(s, string(long[i:i+len(short)]))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

func tokenSet(a, b string, scorer func(string, string) float64) float64 {
	setA := tokenSetOf(a)
	setB := tokenSetOf(b)

	var shared, onlyA, onlyB []string
	for tok := range setA {
		if setB[tok] {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(shared, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	scores := []float64{scorer(combinedA, combinedB)}
	if sect != "" {
		scores = append(scores, scorer(sect, combinedA), scorer(sect, combinedB))
	}

	best := 0.0
	for _, s := range scores {
		best = math.Max(best, s)
	}
	return best
}

func tokenSetOf(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(Process(s)) {
		set[tok] = true
	}
	return set
}

func sortedTokens(s string) string {
	toks := strings.Fields(Process(s))
	sort.Strings(toks)
	return strings.Join(toks, " ")
}

func round(f float64) int {
	return int(math.Round(f))
}
