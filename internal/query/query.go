// Package query compiles search, spellcheck and document commands into
// RediSearch argument lists. It performs no I/O.
package query

import (
	"errors"
	"strconv"
)

// Wildcard is the match-everything query.
const Wildcard = "*"

// ErrInvalidQuery signals query parameters rejected before any engine call.
var ErrInvalidQuery = errors.New("invalid query")

// Term returns a pointer to s, for the optional term argument of Search.
func Term(s string) *string { return &s }

func itoa(n int) string { return strconv.Itoa(n) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
