// Package field describes indexed attributes and compiles them to FT.CREATE SCHEMA tokens.
package field

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind is the RediSearch type keyword of a field.
type Kind string

// Field kinds supported by FT.CREATE.
const (
	KindText    Kind = "TEXT"
	KindTag     Kind = "TAG"
	KindNumeric Kind = "NUMERIC"
	KindGeo     Kind = "GEO"
	KindVector  Kind = "VECTOR"
)

// ErrInvalidField signals a field rejected by Validate.
var ErrInvalidField = errors.New("invalid field")

// Field is one indexed attribute. Implementations are immutable values;
// Compile is a pure function of the field's attributes.
type Field interface {
	Name() string
	Kind() Kind
	Compile() []string
}

// flag is a boolean option emitted as a bare token when set.
type flag struct {
	token string
	set   bool
}

// appendFlags appends tokens of set flags, preserving declaration order.
func appendFlags(args []string, flags ...flag) []string {
	for _, f := range flags {
		if f.set {
			args = append(args, f.token)
		}
	}
	return args
}

// appendPair appends KEY VALUE when value is non-empty.
func appendPair(args []string, key, value string) []string {
	if value == "" {
		return args
	}
	return append(args, key, value)
}

// appendIntPair appends KEY VALUE when value is non-zero.
func appendIntPair(args []string, key string, value int) []string {
	if value == 0 {
		return args
	}
	return append(args, key, strconv.Itoa(value))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Validate performs the client-side checks the engine would otherwise report.
// Compile never calls it: callers opt in.
func Validate(f Field) error {
	if f == nil {
		return fmt.Errorf("nil field: %w", ErrInvalidField)
	}
	if f.Name() == "" {
		return fmt.Errorf("field name is required: %w", ErrInvalidField)
	}
	v, ok := f.(Vector)
	if !ok {
		if pv, isPtr := f.(*Vector); isPtr && pv != nil {
			v, ok = *pv, true
		}
	}
	if ok {
		return v.validate()
	}
	return nil
}
