package suggest

import (
	"sort"

	"github.com/bastiangx/hprompt/internal/utils"
)

// span is the minimal window of a candidate holding the pattern as a subsequence.
type span struct {
	length int
	start  int
}

type ranked struct {
	Candidate
	span
}

// matchSpan finds the shortest window of candidate containing pattern as a
// case-insensitive subsequence, preferring the earliest start among equally
// short windows. Offsets are in runes. An empty pattern matches at (0, 0).
func matchSpan(pattern, candidate []rune) (span, bool) {
	if len(pattern) == 0 {
		return span{}, true
	}
	best := span{length: -1}
	for start := range candidate {
		if !utils.EqualFold(candidate[start], pattern[0]) {
			continue
		}
		// greedy forward scan gives the earliest end for this start
		p := 1
		end := start
		for i := start + 1; i < len(candidate) && p < len(pattern); i++ {
			if utils.EqualFold(candidate[i], pattern[p]) {
				p++
				end = i
			}
		}
		if p < len(pattern) {
			// no later start can complete either
			break
		}
		if length := end - start + 1; best.length < 0 || length < best.length {
			best = span{length: length, start: start}
		}
	}
	return best, best.length >= 0
}

// rank keeps the candidates matching word and orders them by span length,
// then start offset, then name.
func rank(word string, candidates []Candidate) []ranked {
	pattern := []rune(word)
	out := make([]ranked, 0, len(candidates))
	for _, c := range candidates {
		if s, ok := matchSpan(pattern, []rune(c.Name)); ok {
			out = append(out, ranked{Candidate: c, span: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.length != b.length {
			return a.length < b.length
		}
		if a.start != b.start {
			return a.start < b.start
		}
		return a.Name < b.Name
	})
	return out
}
