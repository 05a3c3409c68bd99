package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/query"
)

// Spellcheck runs FT.SPELLCHECK. Suggestions and their candidates keep
// the order the engine returned them in.
func (s *Store) Spellcheck(ctx context.Context, index, term string, distance int) ([]db.Suggestion, error) {
	args, err := query.BuildSpellcheckArgs(index, term, distance)
	if err != nil {
		return nil, err
	}

	res := s.do(ctx, s.ft(db.OpSpellcheck, args))
	if err := res.Error(); err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return nil, db.ErrIndexNotFound
		}
		return nil, classify(db.OpSpellcheck, err)
	}
	raw, err := res.ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSpellcheck, Err: err}
	}
	return parseSpellcheckResult(raw)
}

// parseSpellcheckResult reads [["TERM", term, [[score, candidate], ...]], ...].
func parseSpellcheckResult(raw []rueidis.RedisMessage) ([]db.Suggestion, error) {
	out := make([]db.Suggestion, 0, len(raw))
	for i, item := range raw {
		parts, err := item.ToArray()
		if err != nil || len(parts) < 3 {
			return nil, &db.Error{Op: db.OpSpellcheck, Err: fmt.Errorf("entry %d: unexpected reply shape", i)}
		}
		word, err := parts[1].ToString()
		if err != nil {
			return nil, &db.Error{Op: db.OpSpellcheck, Err: fmt.Errorf("entry %d term: %w", i, err)}
		}

		pairs, err := parts[2].ToArray()
		if err != nil {
			return nil, &db.Error{Op: db.OpSpellcheck, Err: fmt.Errorf("entry %d candidates: %w", i, err)}
		}

		sug := db.Suggestion{Term: word, Candidates: make([]db.Candidate, 0, len(pairs))}
		for _, p := range pairs {
			pair, err := p.ToArray()
			if err != nil || len(pair) < 2 {
				continue
			}
			score, err := pair[0].AsFloat64()
			if err != nil {
				continue
			}
			value, err := pair[1].ToString()
			if err != nil {
				continue
			}
			sug.Candidates = append(sug.Candidates, db.Candidate{Value: value, Score: score})
		}
		out = append(out, sug)
	}
	return out, nil
}
