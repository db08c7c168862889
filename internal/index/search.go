package index

// SearchRequest captures the parameters for a boolean query.
type SearchRequest struct {
	Query string
	// Limit caps the returned hits. TotalHits is never affected. Zero or
	// negative means no cap.
	Limit int
}

// SearchResponse contains the matching document ids in discovery order.
type SearchResponse struct {
	Query     string   `json:"query"`
	TotalHits int      `json:"totalHits"`
	Hits      []string `json:"hits"`
}

// Searcher evaluates boolean queries against a read-only snapshot.
type Searcher struct {
	snapshot  *Snapshot
	tokenizer Tokenizer
}

// NewSearcher builds a searcher that analyses queries with the same
// tokenizer the snapshot was built with.
func NewSearcher(snapshot *Snapshot) *Searcher {
	tokenizer := snapshot.Tokenizer()
	if tokenizer == nil {
		tokenizer = NewScriptTokenizer(nil)
	}
	return &Searcher{snapshot: snapshot, tokenizer: tokenizer}
}

// ParseQuery runs the raw query through the tokenizer. Operators and terms
// are returned in their original order; no precedence is applied.
func ParseQuery(tokenizer Tokenizer, raw string) []Token {
	return tokenizer.Tokenize(raw)
}

// Search folds the query left to right. The first term seeds the result,
// each later term is combined with the pending operator, which then resets
// to AND. Operators that are never followed by a term have no effect.
func (s *Searcher) Search(req SearchRequest) SearchResponse {
	result := s.Evaluate(req.Query)

	resp := SearchResponse{Query: req.Query, TotalHits: len(result), Hits: result}
	if req.Limit > 0 && len(result) > req.Limit {
		resp.Hits = result[:req.Limit]
	}
	return resp
}

// Evaluate returns the full, untruncated result of a query.
func (s *Searcher) Evaluate(query string) []string {
	result := []string{}
	hasResult := false
	op := OpAnd

	for _, tok := range ParseQuery(s.tokenizer, query) {
		if tok.IsOperator() {
			op = tok.Term
			continue
		}

		docs := s.snapshot.Lookup(tok.Term)
		if !hasResult {
			result = docs
			hasResult = true
			continue
		}

		switch op {
		case OpOr:
			result = Or(result, docs)
		case OpNot:
			result = Not(result, docs)
		default:
			result = And(result, docs)
		}
		op = OpAnd
	}

	return result
}

// And keeps the elements of a that occur in b, in a's order.
func And(a, b []string) []string {
	in := toSet(b)
	out := make([]string, 0, min(len(a), len(b)))
	for _, id := range a {
		if _, ok := in[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Or returns a followed by the elements of b not yet in the result.
func Or(a, b []string) []string {
	out := make([]string, len(a), len(a)+len(b))
	copy(out, a)
	seen := toSet(a)
	for _, id := range b {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Not keeps the elements of a that do not occur in b, in a's order.
func Not(a, b []string) []string {
	in := toSet(b)
	out := make([]string, 0, len(a))
	for _, id := range a {
		if _, ok := in[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
