// Package evaluate scores a patient's answer against the expected one:
// a fast local exact tier first, then a semantic LLM tier only when the
// exact tier fails.
package evaluate

import "strings"

// ExactMatch is the synchronous first tier. Both strings are normalized
// (lowercased, punctuation treated as word breaks, whitespace collapsed)
// and the
// answer counts as correct on equality or when either normalized string
// fully contains the other — a patient saying "a red pan" for "pan"
// should not be marked wrong. An empty submission is always incorrect.
func ExactMatch(submitted, expected string) bool {
	sub := Normalize(submitted)
	exp := Normalize(expected)

	if sub == "" {
		return false
	}
	if sub == exp {
		return true
	}
	return strings.Contains(sub, exp) || strings.Contains(exp, sub)
}

// Normalize lowercases and collapses every run of non-alphanumeric
// runes to a single space, so "watering-can" and "watering can" come
// out identical.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true // swallow leading separators
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		// Whitespace, punctuation, and symbols all separate words.
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}

	return strings.TrimRight(b.String(), " ")
}
