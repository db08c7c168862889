package index

import (
	"reflect"
	"strings"
	"testing"
)

func terms(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Term)
	}
	return out
}

func TestTokenizeSegmentsMixedScripts(t *testing.T) {
	tokenizer := NewScriptTokenizer(nil)

	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"latin", "Hello, World", []string{"hello", "world"}},
		{"cyrillic upper", "РЫБА ЁЖИК", []string{"рыб", "ёжик"}},
		{"mixed", "рыбы swim", []string{"рыб", "swim"}},
		{"digits separate", "abc123def", []string{"abc", "def"}},
		{"combining accent dropped", "мо\u0301ре", []string{"мор"}},
		{"no-break space separates", "foo\u00a0bar", []string{"foo", "bar"}},
		{"hyphen joins", "северо-запад well-known", []string{"северо-запад", "well-known"}},
		{"hyphen not counted", "a-b a-b-c", []string{"a-b-c"}},
		{"dangling hyphen", "abc- def -ghi", []string{"abc", "def", "ghi"}},
		{"double hyphen", "foo--bar", []string{"foo", "bar"}},
		{"invalid trail byte", "abc\xd0zdef", []string{"abc", "zdef"}},
		{"truncated lead byte", "abc\xd0", []string{"abc"}},
		{"empty", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := terms(tokenizer.Tokenize(tc.input))
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %q want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTokenizeAccentMatchesPlainSpelling(t *testing.T) {
	tokenizer := NewScriptTokenizer(nil)
	accented := tokenizer.Tokenize("замо\u0301к")
	plain := tokenizer.Tokenize("замок")
	if !reflect.DeepEqual(accented, plain) {
		t.Fatalf("accented %v differs from plain %v", accented, plain)
	}
}

func TestTokenizeOperators(t *testing.T) {
	tokenizer := NewScriptTokenizer(nil)
	tokens := tokenizer.Tokenize("cats AND dogs Or mice not")

	want := []Token{
		{Term: "cats", Kind: KindTerm},
		{Term: "and", Kind: KindOperator},
		{Term: "dogs", Kind: KindTerm},
		{Term: "or", Kind: KindOperator},
		{Term: "mice", Kind: KindTerm},
		{Term: "not", Kind: KindOperator},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}

	// operator words inside longer words are plain terms
	for _, tok := range tokenizer.Tokenize("android nothing and-or") {
		if tok.IsOperator() {
			t.Fatalf("unexpected operator token %q", tok.Term)
		}
	}
}

func TestTokenizeLengthFilterCountsCharacters(t *testing.T) {
	tokenizer := NewScriptTokenizer(nil)

	cases := []struct {
		name  string
		input string
		kept  bool
	}{
		{"two latin", "ab", false},
		{"three latin", "abc", true},
		{"forty latin", strings.Repeat("q", 40), true},
		{"forty one latin", strings.Repeat("q", 41), false},
		{"two cyrillic", "да", false},
		{"three cyrillic", "дом", true},
		{"twenty one cyrillic", strings.Repeat("ж", 21), true},
		{"forty cyrillic", strings.Repeat("ж", 40), true},
		{"forty one cyrillic", strings.Repeat("ж", 41), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := tokenizer.Tokenize(tc.input)
			if got := len(tokens) == 1; got != tc.kept {
				t.Fatalf("Tokenize(%q) kept=%v want %v (%v)", tc.input, got, tc.kept, tokens)
			}
		})
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	tokenizer := NewScriptTokenizer(nil)
	text := "Рыбы плывут по реке, running fast и не-останавливаясь AND or"

	first := tokenizer.Tokenize(text)
	second := tokenizer.Tokenize(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("tokenization not deterministic: %v vs %v", first, second)
	}

	// indexing the whole text and querying each word on its own agree
	var separately []Token
	for _, word := range strings.Fields(text) {
		separately = append(separately, tokenizer.Tokenize(word)...)
	}
	if !reflect.DeepEqual(first, separately) {
		t.Fatalf("word-by-word tokens %v differ from full text %v", separately, first)
	}
}

func TestTokenizerFor(t *testing.T) {
	if _, ok := TokenizerFor("suffix", false).(*ScriptTokenizer).stemmer.(SuffixStemmer); !ok {
		t.Fatalf("expected suffix stemmer")
	}
	if _, ok := TokenizerFor("Snowball", false).(*ScriptTokenizer).stemmer.(SnowballStemmer); !ok {
		t.Fatalf("expected snowball stemmer")
	}
	if _, ok := TokenizerFor("custom", false).(*ScriptTokenizer).stemmer.(SuffixStemmer); !ok {
		t.Fatalf("expected unknown names to fall back to suffix stemmer")
	}
}

func TestTokenizerForWrapsNormalization(t *testing.T) {
	tokenizer, ok := TokenizerFor("suffix", true).(*NormalizingTokenizer)
	if !ok {
		t.Fatalf("expected a normalizing tokenizer")
	}
	if _, ok := tokenizer.next.(*ScriptTokenizer); !ok {
		t.Fatalf("expected the script tokenizer underneath")
	}
}

func TestNormalizingTokenizerComposesCyrillic(t *testing.T) {
	// й written as и followed by a combining breve
	decomposed := "мои\u0306 дом"
	composed := "мо\u0439 дом"

	plain := NewScriptTokenizer(nil)
	if got := terms(plain.Tokenize(decomposed)); reflect.DeepEqual(got, terms(plain.Tokenize(composed))) {
		t.Fatalf("expected raw decomposed text to tokenize differently, got %v", got)
	}

	normalizing := NewNormalizingTokenizer(plain)
	if got, want := terms(normalizing.Tokenize(decomposed)), terms(plain.Tokenize(composed)); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}
