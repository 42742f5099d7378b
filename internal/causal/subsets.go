package causal

import "gonum.org/v1/gonum/stat/combin"

// subsetSeq yields the subsets of a candidate slice lazily, in ascending
// size, without materializing all C(n,k) combinations. Each call to next
// returns one subset; the zero-length subset comes first when minSize is 0.
// Restart by constructing a fresh sequence.
type subsetSeq struct {
	candidates []string
	size       int
	maxSize    int
	gen        *combin.CombinationGenerator
	buf        []int
}

// newSubsetSeq builds a sequence over sizes minSize..maxSize. Sizes beyond
// len(candidates) are skipped.
func newSubsetSeq(candidates []string, minSize, maxSize int) *subsetSeq {
	if maxSize > len(candidates) {
		maxSize = len(candidates)
	}
	if minSize < 0 {
		minSize = 0
	}
	return &subsetSeq{
		candidates: candidates,
		size:       minSize - 1, // advanced before first use
		maxSize:    maxSize,
	}
}

// next returns the next subset in the sequence, or false when exhausted.
// The returned slice is freshly allocated and safe to retain.
func (s *subsetSeq) next() ([]string, bool) {
	for {
		if s.gen == nil {
			s.size++
			if s.size > s.maxSize {
				return nil, false
			}
			if s.size == 0 {
				// Single empty subset for size zero; no generator needed.
				return []string{}, true
			}
			s.gen = combin.NewCombinationGenerator(len(s.candidates), s.size)
			s.buf = make([]int, s.size)
		}
		if !s.gen.Next() {
			s.gen = nil
			continue
		}
		s.gen.Combination(s.buf)
		subset := make([]string, s.size)
		for i, idx := range s.buf {
			subset[i] = s.candidates[idx]
		}
		return subset, true
	}
}
