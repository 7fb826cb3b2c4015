// Package store defines the per-channel session record store. The store
// is a plain key-value layer with optimistic concurrency: all session
// semantics live above it, and the revision check is what serializes
// concurrent read-modify-write cycles on one channel.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no record exists for the channel.
var ErrNotFound = errors.New("store: record not found")

// ErrRevisionMismatch is returned by Put when the record changed (or was
// created or deleted) since the revision the caller read. Callers retry
// from a fresh Get.
var ErrRevisionMismatch = errors.New("store: revision mismatch")

// Record is one stored session, serialized by the caller. Revision is
// assigned by the store: 0 means "does not exist yet" on write, and
// every successful Put increments it.
type Record struct {
	ChannelID string
	Data      []byte
	Revision  int64
}

// Store is atomic per-channel persistence for session records.
type Store interface {
	// Get returns the current record for the channel, or ErrNotFound.
	Get(ctx context.Context, channelID string) (Record, error)

	// Put writes rec.Data under rec.ChannelID iff the stored revision
	// still equals rec.Revision (0 to create). Fails with
	// ErrRevisionMismatch otherwise.
	Put(ctx context.Context, rec Record) error

	// Delete removes the record. Deleting an absent record is not an
	// error.
	Delete(ctx context.Context, channelID string) error

	Close() error
}
