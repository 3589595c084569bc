package corpus

import "strings"

// Wildcard matches any letter in a Pattern.
const Wildcard = '.'

// Pattern constrains candidate answers: a string the same length as the
// answer where Wildcard matches anything and any other byte must match
// exactly. The empty Pattern matches everything.
type Pattern string

// FixedLetter builds a pattern of the given length that is all wildcards
// except for one fixed letter.
func FixedLetter(length, at int, letter byte) Pattern {
	b := []byte(strings.Repeat(string(Wildcard), length))
	b[at] = letter
	return Pattern(b)
}

// Matches reports whether text satisfies the pattern.
func (p Pattern) Matches(text string) bool {
	if p == "" {
		return true
	}
	if len(p) != len(text) {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] != Wildcard && p[i] != text[i] {
			return false
		}
	}
	return true
}
