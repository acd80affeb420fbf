package suggest

import (
	"reflect"
	"testing"
)

func TestMatchSpan(t *testing.T) {
	testCases := []struct {
		description string
		pattern     string
		candidate   string
		matched     bool
		length      int
		start       int
	}{
		{"prefix", "na", "name", true, 2, 0},
		{"empty pattern", "", "anything", true, 0, 0},
		{"case insensitive", "AU", "Authorization", true, 2, 0},
		{"non ascii fold", "é", "CAFÉ", true, 1, 3},
		{"minimal span beats leftmost start", "ab", "xaxxab", true, 2, 4},
		{"scattered", "ct", "Content-Type", true, 4, 0},
		{"repeated pattern chars", "aa", "a", false, 0, 0},
		{"repeated chars match", "ll", "hello", true, 2, 2},
		{"missing char", "na", "Content-Length", false, 0, 0},
		{"literal dot", "a.b", "axb", false, 0, 0},
		{"literal star", "*", "a*", true, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			s, ok := matchSpan([]rune(tc.pattern), []rune(tc.candidate))
			if ok != tc.matched {
				t.Fatalf("Pattern '%s' on '%s': expected matched=%v, got %v", tc.pattern, tc.candidate, tc.matched, ok)
			}
			if !ok {
				return
			}
			if s.length != tc.length || s.start != tc.start {
				t.Errorf("Pattern '%s' on '%s': expected (%d, %d), got (%d, %d)",
					tc.pattern, tc.candidate, tc.length, tc.start, s.length, s.start)
			}
		})
	}
}

func TestRankOrder(t *testing.T) {
	candidates := []Candidate{
		{Name: "nXa"},
		{Name: "banana"},
		{Name: "zna"},
		{Name: "name"},
		{Name: "other"},
		{Name: "Na"},
	}
	var got []string
	for _, r := range rank("na", candidates) {
		got = append(got, r.Name)
	}
	expected := []string{"Na", "name", "zna", "banana", "nXa"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestRankEmptyWordKeepsAll(t *testing.T) {
	candidates := []Candidate{{Name: "b"}, {Name: "c"}, {Name: "a"}}
	got := rank("", candidates)
	if len(got) != 3 {
		t.Fatalf("expected all candidates, got %d", len(got))
	}
	for i, name := range []string{"a", "b", "c"} {
		if got[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
}
