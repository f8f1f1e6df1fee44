package rules

import (
	"strings"
	"unicode/utf8"
)

// Apply runs the set's rules in order over one in-memory buffer, each rule a
// full-buffer global substitution, rule i's output feeding rule i+1. The
// input is never mutated and a no-match pass is a valid, expected outcome,
// not an error. Apply is a pure function of (content, PatternSet), so
// identical inputs always produce identical outputs.
//
// Decoding is best effort: invalid UTF-8 sequences are dropped rather than
// rejected, matching the tolerance the tool needs for the odd binary blob
// hiding under a watched extension.
func (ps *PatternSet) Apply(content []byte) []byte {
	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	for _, r := range ps.rules {
		text = r.apply(text)
	}
	return []byte(text)
}
