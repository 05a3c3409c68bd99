package db

// SearchResult is the parsed FT.SEARCH reply. Total is the engine-reported
// match count, which may exceed len(Entries) when the page is capped.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit.
type SearchEntry struct {
	Key    string
	Score  float64 // set only with WITHSCORES
	Fields map[string]string
}

// Suggestion is the spellcheck outcome for one misspelled term.
type Suggestion struct {
	Term       string
	Candidates []Candidate
}

// Candidate is a correction proposed by the engine.
type Candidate struct {
	Value string
	Score float64
}
