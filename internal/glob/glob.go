// Package glob implements the robots.txt pattern dialect: '*' matches any
// run of bytes (including empty) and a trailing '$' anchors the end of the
// path. Every other byte matches itself literally.
package glob

// Matcher evaluates patterns against paths using a reusable candidate-
// position buffer, avoiding an allocation per call.
//
// The candidate set P tracks every path offset the next pattern byte may
// resume from. It starts as {0}; a literal byte filters P down to the
// offsets that matched, and '*' widens P to every offset from its current
// minimum through the end of the path. This is worst-case
// O(len(path)*len(pattern)) with O(len(path)) auxiliary storage, unlike
// naive backtracking which can blow up on adversarial patterns like
// "*a*a*a*a*a*a*a" — both path and pattern here come from untrusted
// robots.txt files, so the bound is a security property, not a nicety.
type Matcher struct {
	candidates []int
}

// NewMatcher returns a Matcher with its buffer ready for reuse across calls.
func NewMatcher() *Matcher {
	return &Matcher{candidates: make([]int, 0, 16)}
}

// Matches reports whether pattern matches path, anchored at path's start.
func (m *Matcher) Matches(path, pattern string) bool {
	m.candidates = append(m.candidates[:0], 0)

	for i := 0; i < len(pattern); i++ {
		b := pattern[i]

		switch {
		case b == '$' && i == len(pattern)-1:
			return m.candidates[len(m.candidates)-1] == len(path)

		case b == '*':
			min := m.candidates[0]
			widened := m.candidates[:0]
			for p := min; p <= len(path); p++ {
				widened = append(widened, p)
			}
			m.candidates = widened

		default:
			filtered := m.candidates[:0]
			for _, p := range m.candidates {
				if p < len(path) && path[p] == b {
					filtered = append(filtered, p+1)
				}
			}
			m.candidates = filtered
			if len(m.candidates) == 0 {
				return false
			}
		}
	}

	return len(m.candidates) > 0
}

// Matches is a stateless convenience wrapper for callers that do not need
// to amortize the candidate buffer across many calls (tests, one-off
// checks). Hot paths such as the match engine should hold their own
// *Matcher instead.
func Matches(path, pattern string) bool {
	return NewMatcher().Matches(path, pattern)
}
