package db

import "errors"

// Sentinel errors for engine operations.
var (
	ErrConnectivity     = errors.New("db: connectivity failure")
	ErrIndexNotFound    = errors.New("db: index not found")
	ErrIndexExists      = errors.New("db: index already exists")
	ErrDocumentConflict = errors.New("db: document already exists")
	ErrDocumentNotFound = errors.New("db: document not found")
	ErrMalformedSchema  = errors.New("db: malformed schema")
	ErrKeyNotFound      = errors.New("db: key not found")
)

// Op constants map to RediSearch command names for error context.
const (
	OpPing       = "PING"
	OpCreate     = "FT.CREATE"
	OpDropIndex  = "FT.DROPINDEX"
	OpInfo       = "FT.INFO"
	OpSearch     = "FT.SEARCH"
	OpAdd        = "FT.ADD"
	OpDel        = "FT.DEL"
	OpSpellcheck = "FT.SPELLCHECK"
	OpGet        = "HGETALL"
	OpKeyGet     = "GET"
	OpKeySet     = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ConnectivityError marks a transport failure (including context
// cancellation and deadlines) while keeping the cause inspectable.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return e.Op + ": " + ErrConnectivity.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both ErrConnectivity and the transport cause.
func (e *ConnectivityError) Unwrap() []error { return []error{ErrConnectivity, e.Err} }
