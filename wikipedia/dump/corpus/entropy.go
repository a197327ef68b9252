package corpus

import "math"

// Accumulator folds article texts into a character-frequency distribution
// without keeping the corpus itself around.
type Accumulator struct {
	counts map[rune]int64
	total  int64
}

func NewAccumulator() *Accumulator {
	return &Accumulator{counts: make(map[rune]int64)}
}

// Add counts the runes of one article text. Returns the text's rune length.
func (a *Accumulator) Add(text string) int {
	n := 0
	for _, r := range text {
		a.counts[r]++
		a.total++
		n++
	}
	return n
}

// Entropy is the Shannon entropy of the accumulated distribution in
// bits/character. An empty accumulator yields 0.
func (a *Accumulator) Entropy() float64 {
	if a.total == 0 {
		return 0
	}

	total := float64(a.total)
	e := 0.0
	for _, c := range a.counts {
		p := float64(c) / total
		e -= p * math.Log2(p)
	}
	return e
}

// Factor derives the multiplicative normalization from the reference
// language's entropy. The reference itself is pinned to 1.0 no matter what its
// entropy came out as; a zero own-entropy also falls back to 1.0 to dodge the
// division, not to claim equal density.
func Factor(refEntropy, ownEntropy float64, isReference bool) float64 {
	if isReference {
		return 1.0
	}
	if ownEntropy == 0 {
		return 1.0
	}
	return refEntropy / ownEntropy
}
