package query

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultScore is the document score sent when AddOptions.Score is zero.
const DefaultScore = 1.0

// AddOptions configures FT.ADD.
type AddOptions struct {
	Replace  bool
	Partial  bool // with Replace, update only the supplied fields
	NoSave   bool // index without storing the document hash
	Score    float64
	Language string
}

// BuildAddArgs returns FT.ADD arguments:
// index key score [NOSAVE] [REPLACE [PARTIAL]] [LANGUAGE l] FIELDS f v ...
func BuildAddArgs(index, key string, opts AddOptions, fieldValues []string) ([]string, error) {
	if index == "" || key == "" {
		return nil, fmt.Errorf("index and document key are required: %w", ErrInvalidQuery)
	}
	if len(fieldValues) == 0 || len(fieldValues)%2 != 0 {
		return nil, fmt.Errorf("document %q: field/value pairs required: %w", key, ErrInvalidQuery)
	}
	if opts.Partial && !opts.Replace {
		return nil, fmt.Errorf("document %q: PARTIAL requires REPLACE: %w", key, ErrInvalidQuery)
	}

	score := opts.Score
	if score == 0 {
		score = DefaultScore
	}

	args := make([]string, 0, 8+len(fieldValues))
	args = append(args, index, key, formatScore(score))
	args = appendFlag(args, "NOSAVE", opts.NoSave)
	if opts.Replace {
		args = append(args, "REPLACE")
		args = appendFlag(args, "PARTIAL", opts.Partial)
	}
	if opts.Language != "" {
		args = append(args, "LANGUAGE", opts.Language)
	}
	args = append(args, "FIELDS")
	return append(args, fieldValues...), nil
}

// BuildDelArgs returns FT.DEL arguments: index key [DD].
func BuildDelArgs(index, key string, deleteDocument bool) ([]string, error) {
	if index == "" || key == "" {
		return nil, fmt.Errorf("index and document key are required: %w", ErrInvalidQuery)
	}
	return appendFlag([]string{index, key}, "DD", deleteDocument), nil
}

// formatScore keeps one decimal for whole numbers ("1.0").
func formatScore(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return formatFloat(f)
}
