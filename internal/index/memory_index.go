package index

import (
	farmhash "github.com/leemcloughlin/gofarmhash"
)

// DefaultBuckets is sized for corpora with tens of thousands of distinct terms.
const DefaultBuckets = 100003

// postingEntry is one chained bucket entry.
type postingEntry struct {
	term string
	docs []string
}

// IndexStats summarises the shape of a built index.
type IndexStats struct {
	Documents     int `json:"documents"`
	Terms         int `json:"terms"`
	Postings      int `json:"postings"`
	Buckets       int `json:"buckets"`
	LongestChain  int `json:"longestChain"`
	SkippedTokens int `json:"skippedTokens"`
}

// InMemoryIndex accumulates postings during the build phase. Documents must
// be indexed one after another: duplicate suppression only compares a doc
// id with the last id appended for the same term.
type InMemoryIndex struct {
	tokenizer Tokenizer
	buckets   [][]postingEntry
	docs      int
	terms     int
	postings  int
	operators int
}

// NewInMemoryIndex creates an empty index with the given bucket count. A
// non-positive count falls back to DefaultBuckets.
func NewInMemoryIndex(tokenizer Tokenizer, buckets int) *InMemoryIndex {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	if tokenizer == nil {
		tokenizer = NewScriptTokenizer(nil)
	}
	return &InMemoryIndex{
		tokenizer: tokenizer,
		buckets:   make([][]postingEntry, buckets),
	}
}

// Tokenizer returns the tokenizer used at build time, so queries can be
// analysed identically.
func (idx *InMemoryIndex) Tokenizer() Tokenizer {
	return idx.tokenizer
}

// IndexDocument tokenizes text and adds every term under docID. Operator
// tokens are never looked up, so they are not indexed.
func (idx *InMemoryIndex) IndexDocument(docID, text string) {
	idx.docs++
	for _, tok := range idx.tokenizer.Tokenize(text) {
		if tok.IsOperator() {
			idx.operators++
			continue
		}
		idx.Add(tok.Term, docID)
	}
}

// Add appends docID to the posting list for term unless it is already the
// last entry. term must already be normalized and stemmed.
func (idx *InMemoryIndex) Add(term, docID string) {
	b := bucketFor(term, len(idx.buckets))
	chain := idx.buckets[b]
	for i := range chain {
		if chain[i].term != term {
			continue
		}
		docs := chain[i].docs
		if docs[len(docs)-1] != docID {
			chain[i].docs = append(docs, docID)
			idx.postings++
		}
		return
	}
	idx.buckets[b] = append(chain, postingEntry{term: term, docs: []string{docID}})
	idx.terms++
	idx.postings++
}

// Flush hands the built postings over to a read-only Snapshot and resets
// the index.
func (idx *InMemoryIndex) Flush() *Snapshot {
	snap := &Snapshot{
		tokenizer: idx.tokenizer,
		buckets:   idx.buckets,
		stats: IndexStats{
			Documents:     idx.docs,
			Terms:         idx.terms,
			Postings:      idx.postings,
			Buckets:       len(idx.buckets),
			SkippedTokens: idx.operators,
		},
	}
	for _, chain := range idx.buckets {
		if len(chain) > snap.stats.LongestChain {
			snap.stats.LongestChain = len(chain)
		}
	}

	idx.buckets = make([][]postingEntry, len(idx.buckets))
	idx.docs, idx.terms, idx.postings, idx.operators = 0, 0, 0, 0
	return snap
}

// Snapshot is the query-phase view of an index. It has no mutating methods
// and is safe for concurrent readers.
type Snapshot struct {
	tokenizer Tokenizer
	buckets   [][]postingEntry
	stats     IndexStats
}

// Lookup returns a copy of the posting list for an exact stemmed term, or
// an empty slice when the term was never indexed.
func (s *Snapshot) Lookup(term string) []string {
	if len(s.buckets) == 0 {
		return []string{}
	}
	for _, entry := range s.buckets[bucketFor(term, len(s.buckets))] {
		if entry.term == term {
			out := make([]string, len(entry.docs))
			copy(out, entry.docs)
			return out
		}
	}
	return []string{}
}

// Stats reports document, term and posting counts.
func (s *Snapshot) Stats() IndexStats {
	return s.stats
}

// Tokenizer returns the tokenizer the snapshot was built with.
func (s *Snapshot) Tokenizer() Tokenizer {
	return s.tokenizer
}

func bucketFor(term string, buckets int) int {
	return int(farmhash.Hash32([]byte(term)) % uint32(buckets))
}
