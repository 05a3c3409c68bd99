package index

import (
	"errors"

	"github.com/kailas-cloud/redisearch/internal/db"
)

// Errors surfaced by Index operations. They are the store sentinels, so
// errors.Is works against either name.
var (
	ErrConnectivity       = db.ErrConnectivity
	ErrIndexAlreadyExists = db.ErrIndexExists
	ErrIndexNotFound      = db.ErrIndexNotFound
	ErrDocumentConflict   = db.ErrDocumentConflict
	ErrDocumentNotFound   = db.ErrDocumentNotFound
	ErrMalformedSchema    = db.ErrMalformedSchema
)

// ErrRegistryConflict signals a type already registered with a different
// index name or store.
var ErrRegistryConflict = errors.New("type registered for another index")
