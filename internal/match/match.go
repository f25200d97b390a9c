// Package match resolves free-text values against reference tables (genders,
// states, task types) using exact, containment and edit-distance matching.
package match

import (
	"strings"
	"unicode"
)

// Threshold is the minimum similarity ratio, on a 0-100 scale, for an
// approximate match to be accepted.
const Threshold = 80

// Entry is one canonical reference row, in fetch order. Fetch order is the
// tie-break for equal similarity scores.
type Entry struct {
	ID   int64
	Name string
}

// Resolve maps value onto one of the reference entries. It tries, in order:
// exact case-insensitive equality, substring containment in either
// direction, then the best normalized edit-distance ratio at or above
// Threshold. An empty value or reference set resolves to nothing.
func Resolve(value string, refs []Entry) (int64, bool) {
	v := strings.TrimSpace(value)
	if v == "" || len(refs) == 0 {
		return 0, false
	}

	for _, r := range refs {
		if strings.EqualFold(v, r.Name) {
			return r.ID, true
		}
	}

	lv := strings.ToLower(v)
	for _, r := range refs {
		ln := strings.ToLower(r.Name)
		if strings.Contains(ln, lv) || strings.Contains(lv, ln) {
			return r.ID, true
		}
	}

	nv := normalize(v)
	best := -1
	var bestID int64
	for _, r := range refs {
		if s := Ratio(nv, normalize(r.Name)); s > best {
			best = s
			bestID = r.ID
		}
	}
	if best >= Threshold {
		return bestID, true
	}
	return 0, false
}

// Ratio scores the similarity of two strings as (1 - distance/maxLen) * 100,
// truncated toward zero. Equal strings score 100.
func Ratio(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 && len(br) == 0 {
		return 100
	}
	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}
	d := levenshtein(ar, br)
	return (maxLen - d) * 100 / maxLen
}

// normalize lowercases and collapses separators so that punctuation and
// spacing differences do not count as edits.
func normalize(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	lastSpace := false
	for _, r := range strings.ToLower(v) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r), r == '-', r == '_', r == '/':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func levenshtein(ar, br []rune) int {
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := 0; j <= len(br); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
