package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/query"
)

// Search runs FT.SEARCH and parses the reply.
func (s *Store) Search(ctx context.Context, index string, term *string, q *query.Search) (*db.SearchResult, error) {
	args, err := query.BuildSearchArgs(index, term, q)
	if err != nil {
		return nil, err
	}

	raw, err := s.searchRaw(ctx, args)
	if err != nil {
		return nil, err
	}

	var withScores, noContent bool
	if q != nil {
		withScores, noContent = q.WithScores, q.NoContent
	}
	return parseSearchResult(raw, withScores, noContent)
}

// Count returns the number of matches via FT.SEARCH ... LIMIT 0 0.
func (s *Store) Count(ctx context.Context, index string, term *string, q *query.Search) (int, error) {
	args, err := query.BuildCountArgs(index, term, q)
	if err != nil {
		return 0, err
	}

	raw, err := s.searchRaw(ctx, args)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("parse count: %w", err)}
	}
	return int(total), nil
}

func (s *Store) searchRaw(ctx context.Context, args []string) ([]rueidis.RedisMessage, error) {
	res := s.do(ctx, s.ft(db.OpSearch, args))
	if err := res.Error(); err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return nil, db.ErrIndexNotFound
		}
		return nil, classify(db.OpSearch, err)
	}
	raw, err := res.ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return raw, nil
}

// --- Result parsing ---

// parseSearchResult walks the flat FT.SEARCH reply:
//
//	[total, key, [f, v, ...], ...]          default
//	[total, key, score, [f, v, ...], ...]   WITHSCORES
//	[total, key, ...]                       NOCONTENT (score follows key with WITHSCORES)
func parseSearchResult(raw []rueidis.RedisMessage, withScores, noContent bool) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("parse total: %w", err)}
	}

	stride := 1
	if withScores {
		stride++
	}
	if !noContent {
		stride++
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/stride)
	for i := 1; i+stride-1 < len(raw); i += stride {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		entry := db.SearchEntry{Key: key}

		next := i + 1
		if withScores {
			score, err := raw[next].AsFloat64()
			if err != nil {
				continue
			}
			entry.Score = score
			next++
		}

		if !noContent {
			fields, err := raw[next].ToArray()
			if err != nil {
				continue
			}
			entry.Fields = parseFieldPairs(fields)
		}

		entries = append(entries, entry)
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}
