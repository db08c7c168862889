package index

import "golang.org/x/text/unicode/norm"

// NormalizingTokenizer composes text to NFC before handing it to the
// wrapped tokenizer, so decomposed Cyrillic letters such as и+breve reach
// the scanner as one two-byte pair. Documents and queries must go through
// the same instance.
//
// Composition also turns Latin letter+U+0301 into a precomposed letter the
// scanner treats as a separator, which is why it is opt-in.
type NormalizingTokenizer struct {
	next Tokenizer
}

// NewNormalizingTokenizer wraps next.
func NewNormalizingTokenizer(next Tokenizer) *NormalizingTokenizer {
	return &NormalizingTokenizer{next: next}
}

// Tokenize normalizes text and delegates.
func (t *NormalizingTokenizer) Tokenize(text string) []Token {
	return t.next.Tokenize(NormalizeText(text))
}

// NormalizeText is the transform NormalizingTokenizer applies.
func NormalizeText(text string) string {
	return norm.NFC.String(text)
}
