package index

import "github.com/kailas-cloud/redisearch/internal/db"

// Store is the subset of db.Store an Index drives.
type Store interface {
	db.IndexManager
	db.DocumentStore
	db.Searcher
	db.SpellChecker
}

// Recorder observes per-document reindex outcomes.
type Recorder interface {
	ReindexDocument(index string, ok bool)
}

// SearchResult is a parsed FT.SEARCH reply.
type SearchResult = db.SearchResult

// SearchEntry is one document hit.
type SearchEntry = db.SearchEntry

// Suggestion is the spellcheck outcome for one term.
type Suggestion = db.Suggestion

// Candidate is one spellcheck correction.
type Candidate = db.Candidate
