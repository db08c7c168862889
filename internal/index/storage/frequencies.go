package storage

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"boolsearch/internal/index"
)

// Compressor exposes hooks for optional compression/decompression.
type Compressor interface {
	Compress([]byte) ([]byte, error)
	Decompress([]byte) ([]byte, error)
}

// GzipCompressor is used for dump paths ending in .gz.
type GzipCompressor struct{}

// Compress gzips data.
func (GzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress gunzips data.
func (GzipCompressor) Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// WriteOptions controls how the frequency dump is emitted.
type WriteOptions struct {
	Compressor Compressor
}

// OptionsForPath picks gzip for .gz paths.
func OptionsForPath(path string) WriteOptions {
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		return WriteOptions{Compressor: GzipCompressor{}}
	}
	return WriteOptions{}
}

// WriteFrequencies writes one term<TAB>count line per row.
func WriteFrequencies(path string, rows []index.TermFrequency, opts WriteOptions) error {
	if path == "" {
		return fmt.Errorf("frequency dump path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dump dir: %w", err)
		}
	}

	var buf bytes.Buffer
	for _, row := range rows {
		buf.WriteString(row.Term)
		buf.WriteByte('\t')
		buf.WriteString(strconv.Itoa(row.Count))
		buf.WriteByte('\n')
	}

	data := buf.Bytes()
	if opts.Compressor != nil {
		compressed, err := opts.Compressor.Compress(data)
		if err != nil {
			return fmt.Errorf("compress frequencies: %w", err)
		}
		data = compressed
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write frequencies %s: %w", path, err)
	}
	return nil
}

// ReadFrequencies loads a dump written by WriteFrequencies. Lines that do
// not parse are skipped. Ranks follow file order.
func ReadFrequencies(path string, opts WriteOptions) ([]index.TermFrequency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frequencies %s: %w", path, err)
	}
	if opts.Compressor != nil {
		data, err = opts.Compressor.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress: %w", err)
		}
	}

	var rows []index.TermFrequency
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		term, rawCount, ok := strings.Cut(scanner.Text(), "\t")
		if !ok {
			continue
		}
		count, err := strconv.Atoi(rawCount)
		if err != nil {
			continue
		}
		rows = append(rows, index.TermFrequency{Term: term, Count: count, Rank: len(rows) + 1})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan frequencies: %w", err)
	}
	return rows, nil
}
