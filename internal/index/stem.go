package index

import (
	"strings"

	"github.com/kljensen/snowball"
)

// Stemmer names accepted by TokenizerFor and the analysis config.
const (
	StemmerSuffix   = "suffix"
	StemmerSnowball = "snowball"
)

// Stemmer reduces a normalized token to its index form.
type Stemmer interface {
	Stem(word string) string
}

// StemmerFor resolves a configured stemmer name. Unknown names get the
// suffix stemmer.
func StemmerFor(name string) Stemmer {
	if strings.EqualFold(name, StemmerSnowball) {
		return SnowballStemmer{}
	}
	return SuffixStemmer{}
}

// latinSuffixes only apply to words longer than four bytes.
var latinSuffixes = []string{"ing", "ion", "ed", "er", "s"}

// cyrillicEndings are tried in this order; the first match wins, so the
// order matters more than the length.
var cyrillicEndings = []string{
	"ами", "ями", "ого", "его", "ому", "ему",
	"ыми", "ими", "ете", "ие", "ые", "ов", "ев",
	"ий", "ия", "ая", "ой", "ую", "ое", "ым",
	"ью", "ом", "ем", "ых", "ет", "ют", "ть",
	"ый", "ок", "ам", "ах", "их",
	"ей", "им", "ям", "ях",
	"а", "у", "е", "и", "ы", "о", "ю", "я",
}

// SuffixStemmer strips at most one inflectional ending. Lengths are
// measured in bytes, so a Cyrillic ending of one letter counts as two.
type SuffixStemmer struct{}

// Stem applies the Latin rules first, then the Cyrillic endings.
func (SuffixStemmer) Stem(word string) string {
	n := len(word)
	if n > 4 {
		for _, suffix := range latinSuffixes {
			if strings.HasSuffix(word, suffix) {
				return word[:n-len(suffix)]
			}
		}
	}

	for _, ending := range cyrillicEndings {
		if n > len(ending)+2 && strings.HasSuffix(word, ending) {
			return word[:n-len(ending)]
		}
	}
	return word
}

// SnowballStemmer delegates to the Snowball english or russian algorithm,
// picked by whether the word contains Cyrillic letters.
type SnowballStemmer struct{}

// Stem returns word unchanged when Snowball rejects it.
func (SnowballStemmer) Stem(word string) string {
	lang := "english"
	if containsCyrillic(word) {
		lang = "russian"
	}
	stemmed, err := snowball.Stem(word, lang, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

func containsCyrillic(word string) bool {
	for i := 0; i+1 < len(word); i++ {
		if IsCyrillic(word[i], word[i+1]) {
			return true
		}
	}
	return false
}
