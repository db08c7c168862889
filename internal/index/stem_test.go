package index

import "testing"

func TestSuffixStemmer(t *testing.T) {
	cases := []struct {
		word string
		want string
	}{
		// latin rules, only for words longer than four bytes
		{"walking", "walk"},
		{"running", "runn"},
		{"nation", "nat"},
		{"jumped", "jump"},
		{"player", "play"},
		{"books", "book"},
		{"cats", "cats"},
		{"ring", "ring"},
		{"ions", "ions"},
		{"hello", "hello"},
		// cyrillic endings, compared as bytes
		{"рыбы", "рыб"},
		{"рыба", "рыб"},
		{"коты", "кот"},
		{"кот", "кот"},
		{"дом", "дом"},
		{"моя", "мо"},
		{"красными", "красн"},
		{"красного", "красн"},
		{"плывет", "плыв"},
		{"плывут", "плывут"},
		{"замок", "зам"},
		// a stem of at least two bytes must remain
		{"да", "да"},
		{"яя", "яя"},
	}

	stemmer := SuffixStemmer{}
	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			if got := stemmer.Stem(tc.word); got != tc.want {
				t.Fatalf("Stem(%q) = %q want %q", tc.word, got, tc.want)
			}
		})
	}
}

func TestSuffixStemmerListOrderWins(t *testing.T) {
	// "ями" precedes "и" in the ending list, so the longer ending is stripped.
	if got := (SuffixStemmer{}).Stem("полями"); got != "пол" {
		t.Fatalf("expected list order to strip ями, got %q", got)
	}
	// "ие" precedes "е".
	if got := (SuffixStemmer{}).Stem("знание"); got != "знан" {
		t.Fatalf("expected ие to be stripped, got %q", got)
	}
}

func TestSnowballStemmerFoldsInflections(t *testing.T) {
	stemmer := SnowballStemmer{}

	if got := stemmer.Stem("running"); got != "run" {
		t.Fatalf("expected english snowball to stem running to run, got %q", got)
	}
	if a, b := stemmer.Stem("рыбы"), stemmer.Stem("рыба"); a != b {
		t.Fatalf("expected russian forms to share a stem, got %q and %q", a, b)
	}
}

func TestStemmerFor(t *testing.T) {
	if _, ok := StemmerFor("snowball").(SnowballStemmer); !ok {
		t.Fatalf("expected snowball stemmer")
	}
	if _, ok := StemmerFor("SUFFIX").(SuffixStemmer); !ok {
		t.Fatalf("expected suffix stemmer")
	}
	if _, ok := StemmerFor("").(SuffixStemmer); !ok {
		t.Fatalf("expected empty names to fall back to suffix stemmer")
	}
}
