package query

import "fmt"

// MaxSpellcheckDistance is the largest Levenshtein distance the engine accepts.
const MaxSpellcheckDistance = 4

// BuildSpellcheckArgs returns FT.SPELLCHECK arguments: index term DISTANCE d.
func BuildSpellcheckArgs(index, term string, distance int) ([]string, error) {
	if index == "" {
		return nil, fmt.Errorf("index name is required: %w", ErrInvalidQuery)
	}
	if term == "" {
		return nil, fmt.Errorf("spellcheck term is required: %w", ErrInvalidQuery)
	}
	if distance < 1 || distance > MaxSpellcheckDistance {
		return nil, fmt.Errorf("distance %d out of range [1, %d]: %w", distance, MaxSpellcheckDistance, ErrInvalidQuery)
	}
	return []string{index, term, "DISTANCE", itoa(distance)}, nil
}
