package index

import (
	"strings"
	"testing"
)

func TestIsLatin(t *testing.T) {
	for c := 0; c < 256; c++ {
		want := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
		if got := IsLatin(byte(c)); got != want {
			t.Fatalf("IsLatin(%#x) = %v want %v", c, got, want)
		}
	}
}

func TestIsCyrillicCoversAlphabet(t *testing.T) {
	alphabet := "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯабвгдеёжзийклмнопрстуфхцчшщъыьэюя"
	for i := 0; i < len(alphabet); i += 2 {
		if !IsCyrillic(alphabet[i], alphabet[i+1]) {
			t.Fatalf("expected %q to be Cyrillic", alphabet[i:i+2])
		}
	}

	// Ѐ, ѐ, ђ and a non-Cyrillic lead byte sit outside the accepted ranges.
	rejected := [][2]byte{{0xD0, 0x80}, {0xD1, 0x90}, {0xD1, 0x92}, {0xD2, 0x90}, {0xD0, 'a'}}
	for _, pair := range rejected {
		if IsCyrillic(pair[0], pair[1]) {
			t.Fatalf("expected %#x %#x to be rejected", pair[0], pair[1])
		}
	}
}

func TestLowerLatin(t *testing.T) {
	if LowerLatin('Q') != 'q' || LowerLatin('q') != 'q' || LowerLatin('-') != '-' {
		t.Fatalf("unexpected latin lowercasing")
	}
}

func TestLowerCyrillicMatchesUnicode(t *testing.T) {
	upper := "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ"
	want := strings.ToLower(upper)

	var got []byte
	for i := 0; i < len(upper); i += 2 {
		c1, c2 := LowerCyrillic(upper[i], upper[i+1])
		got = append(got, c1, c2)
	}
	if string(got) != want {
		t.Fatalf("lowercased %q want %q", got, want)
	}

	lower := "абвгдеёжзийклмнопрстуфхцчшщъыьэюя"
	for i := 0; i < len(lower); i += 2 {
		c1, c2 := LowerCyrillic(lower[i], lower[i+1])
		if c1 != lower[i] || c2 != lower[i+1] {
			t.Fatalf("lowercase letter %q changed", lower[i:i+2])
		}
	}
}
