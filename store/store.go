/*
Package store is the best-effort snapshot cache. State snapshots are JSON
payloads keyed by owner: one entry for the admin side (roster, payroll
periods, pay slips), one per employee session.

The cache is a convenience mirror, never a source of truth. A payload that
fails to parse is discarded and the caller falls back to defaults.
*/
package store

import (
	"context"
	"encoding/json"
)

// Snapshot keys. Session keys are derived per employee.
const (
	AdminKey         = "admin"
	sessionKeyPrefix = "session:"
)

// SessionKey returns the cache key for one employee's session snapshot.
func SessionKey(employeeID string) string {
	return sessionKeyPrefix + employeeID
}

// SnapshotStore persists raw snapshot payloads by key.
type SnapshotStore interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Save marshals v and writes it under key.
func Save(ctx context.Context, s SnapshotStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, data)
}

// Load reads and unmarshals the payload under key into v. A missing entry
// returns found=false. A payload that fails to parse is deleted and reported
// as not found with the parse error, so the caller can fall back to defaults
// and log the discard.
func Load(ctx context.Context, s SnapshotStore, key string, v any) (bool, error) {
	data, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = s.Delete(ctx, key)
		return false, err
	}
	return true, nil
}
