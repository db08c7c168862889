package storage

import (
	"os"
	"path/filepath"
	"testing"

	"boolsearch/internal/index"
)

func TestWriteAndReadFrequencies(t *testing.T) {
	freqs := index.NewTermFrequencies()
	for _, term := range []string{"рыб", "рыб", "walk", "рыб", "walk", "fast"} {
		freqs.Add(term)
	}
	rows := freqs.Ranked()

	for _, name := range []string{"term_freq.tsv", "term_freq.tsv.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			opts := OptionsForPath(path)

			if err := WriteFrequencies(path, rows, opts); err != nil {
				t.Fatalf("write frequencies: %v", err)
			}

			loaded, err := ReadFrequencies(path, opts)
			if err != nil {
				t.Fatalf("read frequencies: %v", err)
			}
			if len(loaded) != len(rows) {
				t.Fatalf("expected %d rows got %d", len(rows), len(loaded))
			}
			for i := range rows {
				if loaded[i] != rows[i] {
					t.Fatalf("row %d mismatch: %+v vs %+v", i, loaded[i], rows[i])
				}
			}
		})
	}
}

func TestWriteFrequenciesPlainFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "term_freq.tsv")
	rows := []index.TermFrequency{{Term: "рыб", Count: 3, Rank: 1}, {Term: "walk", Count: 2, Rank: 2}}

	if err := WriteFrequencies(path, rows, WriteOptions{}); err != nil {
		t.Fatalf("write frequencies: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got, want := string(data), "рыб\t3\nwalk\t2\n"; got != want {
		t.Fatalf("unexpected dump %q want %q", got, want)
	}
}

func TestWriteFrequenciesRequiresPath(t *testing.T) {
	if err := WriteFrequencies("", nil, WriteOptions{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
