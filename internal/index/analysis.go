package index

// TokenKind separates boolean operators from searchable terms.
type TokenKind int

const (
	KindTerm TokenKind = iota
	KindOperator
)

// Operator names as they appear after lowercasing.
const (
	OpAnd = "and"
	OpOr  = "or"
	OpNot = "not"
)

const (
	minTermChars = 3
	maxTermChars = 40
)

// Token is a single normalized unit. Terms are already stemmed.
type Token struct {
	Term string
	Kind TokenKind
}

// IsOperator reports whether the token controls boolean combination.
func (t Token) IsOperator() bool {
	return t.Kind == KindOperator
}

// Tokenizer exposes the minimal interface required by the indexer and the
// query evaluator. Both sides must share one instance.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// ScriptTokenizer segments mixed Latin/Cyrillic UTF-8 text byte by byte.
// Anything that is not a Latin or Cyrillic letter separates tokens, except
// the combining acute accent (dropped) and hyphens between letters (kept).
type ScriptTokenizer struct {
	stemmer Stemmer
}

// NewScriptTokenizer constructs a tokenizer that stems terms with s. A nil
// stemmer falls back to SuffixStemmer.
func NewScriptTokenizer(s Stemmer) *ScriptTokenizer {
	if s == nil {
		s = SuffixStemmer{}
	}
	return &ScriptTokenizer{stemmer: s}
}

// TokenizerFor resolves a configured stemmer name to a tokenizer. Unknown
// names get the suffix stemmer. With normalize set the tokenizer composes
// its input to NFC first.
func TokenizerFor(stemmer string, normalize bool) Tokenizer {
	var tokenizer Tokenizer = NewScriptTokenizer(StemmerFor(stemmer))
	if normalize {
		tokenizer = NewNormalizingTokenizer(tokenizer)
	}
	return tokenizer
}

// Tokenize returns the operator and term tokens found in text, in order.
func (t *ScriptTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	scanTokens(text, func(word []byte, chars int) {
		if tok, ok := t.classify(word, chars); ok {
			tokens = append(tokens, tok)
		}
	})
	return tokens
}

func (t *ScriptTokenizer) classify(word []byte, chars int) (Token, bool) {
	switch s := string(word); s {
	case OpAnd, OpOr, OpNot:
		return Token{Term: s, Kind: KindOperator}, true
	}
	if chars < minTermChars || chars > maxTermChars {
		return Token{}, false
	}
	return Token{Term: t.stemmer.Stem(string(word)), Kind: KindTerm}, true
}

// scanTokens walks text and calls emit for every accumulated word before it
// is reset, together with its length in characters. emit is also called for
// empty words; it decides what survives.
func scanTokens(text string, emit func(word []byte, chars int)) {
	word := make([]byte, 0, 64)
	chars := 0

	flush := func() {
		if len(word) > 0 {
			emit(word, chars)
		}
		word = word[:0]
		chars = 0
	}

	n := len(text)
	for pos := 0; pos < n; pos++ {
		c := text[pos]

		if c == accentLead && pos+1 < n && text[pos+1] == accentTrail {
			pos++
			continue
		}

		if c == nbspLead && pos+1 < n && text[pos+1] == nbspTrail {
			pos++
			flush()
			continue
		}

		switch {
		case IsLatin(c):
			word = append(word, LowerLatin(c))
			chars++
		case IsCyrillicLead(c):
			// A lead byte without a valid trail is a separator; the trail
			// byte is rescanned on the next iteration.
			if pos+1 < n && IsCyrillic(c, text[pos+1]) {
				c1, c2 := LowerCyrillic(c, text[pos+1])
				word = append(word, c1, c2)
				chars++
				pos++
			} else {
				flush()
			}
		case c == '-' && len(word) > 0:
			if pos+1 < n && startsLetter(text[pos+1]) {
				word = append(word, c)
			} else {
				flush()
			}
		default:
			flush()
		}
	}
	flush()
}

// startsLetter is the hyphen lookahead: it does not validate the trail byte.
func startsLetter(c byte) bool {
	return IsLatin(c) || IsCyrillicLead(c)
}
