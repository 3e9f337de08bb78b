// Package feedback owns the persisted feedback table.
//
// The whole table lives under one storage key and is always read and
// written wholesale. Every mutation is Load, change one entry, Save. Two
// processes sharing the same storage can therefore lose each other's
// updates: the second SetRecord may not see the first one's write. Nothing
// here guards against that; per-item keys or a versioned write would be
// needed to close it.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"playground/internal/metrics"
	"playground/internal/models"
	"playground/internal/storage"

	"go.uber.org/zap"
)

// DefaultKey is the storage key the table is kept under.
const DefaultKey = "thesisFeedback"

// SaveResult reports what happened to a write. Callers are free to ignore it:
// a failed save is never an error for the UI.
type SaveResult struct {
	Persisted bool
	Err       error
}

// Store is the only way in or out of the feedback table.
type Store struct {
	storage storage.Storage
	key     string
}

func NewStore(s storage.Storage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{storage: s, key: key}
}

// Load returns the persisted table. An absent key, a storage failure or a
// malformed blob all give an empty table.
func (s *Store) Load(ctx context.Context) models.Table {
	raw, err := s.storage.GetItem(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			metrics.StorageFailures.WithLabelValues("read").Inc()
			zap.L().Warn("feedback: storage read failed, using empty table", zap.String("key", s.key), zap.Error(err))
		}
		return models.Table{}
	}
	if raw == "" {
		return models.Table{}
	}

	var table models.Table
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		metrics.StorageFailures.WithLabelValues("decode").Inc()
		zap.L().Warn("feedback: malformed table, using empty table", zap.String("key", s.key), zap.Error(err))
		return models.Table{}
	}
	if table == nil {
		// "null"
		return models.Table{}
	}
	for id, rec := range table {
		rec.Normalize()
		table[id] = rec
	}
	return table
}

// Save writes the whole table. On failure the previously persisted value is
// left as it was and the caller's table is not reconciled with it.
func (s *Store) Save(ctx context.Context, table models.Table) SaveResult {
	if table == nil {
		table = models.Table{}
	}
	blob, err := json.Marshal(table)
	if err != nil {
		return s.dropped("encode", fmt.Errorf("feedback: failed to encode table: %w", err))
	}
	if err := s.storage.SetItem(ctx, s.key, string(blob)); err != nil {
		return s.dropped("write", fmt.Errorf("feedback: failed to write table: %w", err))
	}
	return SaveResult{Persisted: true}
}

func (s *Store) dropped(op string, err error) SaveResult {
	metrics.StorageFailures.WithLabelValues(op).Inc()
	zap.L().Warn("feedback: save dropped", zap.String("key", s.key), zap.Error(err))
	return SaveResult{Err: err}
}

// GetRecord returns the record for id, or an empty record. It never writes.
func (s *Store) GetRecord(ctx context.Context, id string) models.Record {
	rec, ok := s.Load(ctx)[id]
	if !ok {
		return models.EmptyRecord()
	}
	return rec
}

// SetRecord replaces the record for id inside a freshly loaded table and saves it.
func (s *Store) SetRecord(ctx context.Context, id string, rec models.Record) SaveResult {
	table := s.Load(ctx)
	rec.Normalize()
	table[id] = rec
	return s.Save(ctx, table)
}

// Reset removes the table from storage, as if the device storage was cleared.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.storage.RemoveItem(ctx, s.key); err != nil {
		return fmt.Errorf("feedback: failed to reset: %w", err)
	}
	return nil
}
