// Package corpus reads the tab-separated document collection.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrCorpusUnavailable marks failures to open or read the corpus file.
var ErrCorpusUnavailable = errors.New("corpus unavailable")

// maxRecordSize bounds a single line; documents are expected to be short.
const maxRecordSize = 16 << 20

// Record is one document: an opaque id and its raw text.
type Record struct {
	ID   string
	Text string
}

// Reader yields records from a newline-delimited stream of id<TAB>text.
type Reader struct {
	scanner *bufio.Scanner
	onSkip  func(line int)
	line    int
	record  Record
	skipped int
	err     error
}

// NewReader wraps r. Text is passed through byte for byte; any Unicode
// normalization happens in the tokenizer so queries see the same transform.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	return &Reader{scanner: scanner}
}

// Next advances to the next well-formed record. Lines without a tab are
// skipped and counted.
func (r *Reader) Next() bool {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSuffix(r.scanner.Text(), "\r")
		id, text, ok := strings.Cut(line, "\t")
		if !ok {
			r.skipped++
			if r.onSkip != nil {
				r.onSkip(r.line)
			}
			continue
		}
		r.record = Record{ID: id, Text: text}
		return true
	}
	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("%w: scan: %v", ErrCorpusUnavailable, err)
	}
	return false
}

// OnSkip registers fn to be called with the 1-based line number of every
// malformed line.
func (r *Reader) OnSkip(fn func(line int)) {
	r.onSkip = fn
}

// Record returns the current record.
func (r *Reader) Record() Record {
	return r.record
}

// Skipped is the number of malformed lines seen so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Err reports the first read error, if any.
func (r *Reader) Err() error {
	return r.err
}

// Open opens the corpus file at path.
func Open(path string) (*Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	return NewReader(f), f, nil
}

// Each opens path and calls fn for every record. onSkip may be nil. It
// returns the number of skipped lines.
func Each(path string, fn func(Record), onSkip func(line int)) (int, error) {
	reader, closer, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer closer.Close()
	reader.OnSkip(onSkip)

	for reader.Next() {
		fn(reader.Record())
	}
	return reader.Skipped(), reader.Err()
}
