package redis

import (
	"context"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/query"
)

// AddDocument issues FT.ADD. Without REPLACE an existing key is reported
// as db.ErrDocumentConflict.
func (s *Store) AddDocument(ctx context.Context, req *db.AddRequest) error {
	args, err := query.BuildAddArgs(req.Index, req.Key, req.Options, req.Fields)
	if err != nil {
		return err
	}

	if err := s.do(ctx, s.ft(db.OpAdd, args)).Error(); err != nil {
		if isRedisErr(err, "document already exists") || isRedisErr(err, "document already in index") {
			return db.ErrDocumentConflict
		}
		if isRedisErr(err, "unknown index name") {
			return db.ErrIndexNotFound
		}
		return classify(db.OpAdd, err)
	}
	return nil
}

// DeleteDocument issues FT.DEL; deleteDocument also removes the stored hash.
func (s *Store) DeleteDocument(ctx context.Context, index, key string, deleteDocument bool) error {
	args, err := query.BuildDelArgs(index, key, deleteDocument)
	if err != nil {
		return err
	}

	// A zero reply (key not indexed) is not an error.
	if err := s.do(ctx, s.ft(db.OpDel, args)).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return db.ErrIndexNotFound
		}
		return classify(db.OpDel, err)
	}
	return nil
}

// GetDocument returns the stored hash behind a document key.
func (s *Store) GetDocument(ctx context.Context, key string) (map[string]string, error) {
	res := s.do(ctx, s.b().Hgetall().Key(key).Build())
	if err := res.Error(); err != nil {
		return nil, classify(db.OpGet, err)
	}
	m, err := res.AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	if len(m) == 0 {
		return nil, db.ErrDocumentNotFound
	}
	return m, nil
}
