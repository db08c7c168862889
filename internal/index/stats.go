package index

import (
	"sort"
	"time"
)

// CorpusStats describes one tokenization pass over a corpus.
type CorpusStats struct {
	Documents   int
	Tokens      int
	TotalChars  int
	Bytes       int64
	Elapsed     time.Duration
	Frequencies *TermFrequencies
}

// AverageTokenLength is measured in characters, not bytes.
func (s CorpusStats) AverageTokenLength() float64 {
	if s.Tokens == 0 {
		return 0
	}
	return float64(s.TotalChars) / float64(s.Tokens)
}

// BytesPerSecond is the tokenizer throughput.
func (s CorpusStats) BytesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Bytes) / s.Elapsed.Seconds()
}

// StatsCollector counts tokens that pass the length filter and tallies
// their stemmed forms. Operator words are counted like any other word.
type StatsCollector struct {
	stemmer   Stemmer
	normalize bool
	stats   CorpusStats
	started time.Time
}

// NewStatsCollector starts the clock for a statistics pass. normalize must
// match the setting the index tokenizer was built with.
func NewStatsCollector(stemmer Stemmer, normalize bool) *StatsCollector {
	if stemmer == nil {
		stemmer = SuffixStemmer{}
	}
	return &StatsCollector{
		stemmer:   stemmer,
		normalize: normalize,
		stats:     CorpusStats{Frequencies: NewTermFrequencies()},
		started:   time.Now(),
	}
}

// Observe scans the text of one document.
func (c *StatsCollector) Observe(text string) {
	c.stats.Documents++
	c.stats.Bytes += int64(len(text))
	if c.normalize {
		text = NormalizeText(text)
	}
	scanTokens(text, func(word []byte, chars int) {
		if chars < minTermChars || chars > maxTermChars {
			return
		}
		c.stats.Tokens++
		c.stats.TotalChars += chars
		c.stats.Frequencies.Add(c.stemmer.Stem(string(word)))
	})
}

// Finish stops the clock and returns the collected statistics.
func (c *StatsCollector) Finish() CorpusStats {
	c.stats.Elapsed = time.Since(c.started)
	return c.stats
}

// TermFrequency is one row of the frequency table.
type TermFrequency struct {
	Term  string
	Count int
	Rank  int
}

// TermFrequencies counts occurrences per stemmed term.
type TermFrequencies struct {
	counts map[string]int
}

// NewTermFrequencies creates an empty table.
func NewTermFrequencies() *TermFrequencies {
	return &TermFrequencies{counts: make(map[string]int)}
}

// Add counts one occurrence of term.
func (f *TermFrequencies) Add(term string) {
	f.counts[term]++
}

// Count returns how often term was seen.
func (f *TermFrequencies) Count(term string) int {
	return f.counts[term]
}

// Len is the number of distinct terms.
func (f *TermFrequencies) Len() int {
	return len(f.counts)
}

// Ranked orders terms by descending count, ties broken by term, and
// assigns 1-based ranks.
func (f *TermFrequencies) Ranked() []TermFrequency {
	rows := make([]TermFrequency, 0, len(f.counts))
	for term, count := range f.counts {
		rows = append(rows, TermFrequency{Term: term, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Term < rows[j].Term
		}
		return rows[i].Count > rows[j].Count
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// ZipfDeviation is the mean absolute relative error between the observed
// counts and the ideal C/rank curve, where C is the top count.
func ZipfDeviation(ranked []TermFrequency) float64 {
	if len(ranked) == 0 {
		return 0
	}
	c := float64(ranked[0].Count)
	total := 0.0
	for _, row := range ranked {
		expected := c / float64(row.Rank)
		diff := float64(row.Count) - expected
		if diff < 0 {
			diff = -diff
		}
		total += diff / expected
	}
	return total / float64(len(ranked))
}
