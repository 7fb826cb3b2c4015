package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/makeajourney/asnisum/pkg/logger"
	"github.com/makeajourney/asnisum/pkg/order"
	"github.com/makeajourney/asnisum/pkg/store"
)

// maxAddRetries bounds the CAS retry loop in AddOrder. Contention on one
// channel is human-scale (people submitting a form), so a handful of
// retries is far more than enough before reporting the store as hot.
const maxAddRetries = 5

// Manager funnels all session mutation through the store's per-key
// revision check, which is what serializes concurrent read-modify-write
// cycles without a process-level lock.
type Manager struct {
	store store.Store
}

// NewManager creates a Manager over the given store.
func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

// Start creates and persists a new active session for the channel.
// Fails with ErrConflict when one already exists; the existing session
// is left untouched.
func (m *Manager) Start(ctx context.Context, channelID, messageTS, userID string) (*Session, error) {
	sess := &Session{
		ChannelID: channelID,
		MessageTS: messageTS,
		StartedBy: userID,
		Orders:    []order.Order{},
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, &StoreError{Op: "encode", ChannelID: channelID, Err: err}
	}

	err = m.store.Put(ctx, store.Record{ChannelID: channelID, Data: data})
	if errors.Is(err, store.ErrRevisionMismatch) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, &StoreError{Op: "create", ChannelID: channelID, Err: err}
	}

	logger.InfoCF("session", "Session started", map[string]any{
		"channel": channelID,
		"user":    userID,
	})
	return sess, nil
}

// IsActive reports whether the channel has an active session.
func (m *Manager) IsActive(ctx context.Context, channelID string) (bool, error) {
	_, err := m.store.Get(ctx, channelID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &StoreError{Op: "get", ChannelID: channelID, Err: err}
	}
	return true, nil
}

// Get returns the channel's active session, or ErrExpired when there is
// none.
func (m *Manager) Get(ctx context.Context, channelID string) (*Session, error) {
	rec, err := m.store.Get(ctx, channelID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrExpired
	}
	if err != nil {
		return nil, &StoreError{Op: "get", ChannelID: channelID, Err: err}
	}
	return decode(rec)
}

// AddOrder appends one order to the channel's active session. The
// get-append-put cycle is retried on revision mismatch so that
// concurrent submissions never lose an append. If the session disappears
// mid-flight (closed concurrently) the order fails with ErrExpired and
// no session is recreated.
func (m *Manager) AddOrder(ctx context.Context, channelID string, o order.Order) error {
	for attempt := 0; attempt < maxAddRetries; attempt++ {
		rec, err := m.store.Get(ctx, channelID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrExpired
		}
		if err != nil {
			return &StoreError{Op: "get", ChannelID: channelID, Err: err}
		}

		sess, err := decode(rec)
		if err != nil {
			return err
		}
		sess.Orders = append(sess.Orders, o)

		data, err := json.Marshal(sess)
		if err != nil {
			return &StoreError{Op: "encode", ChannelID: channelID, Err: err}
		}

		err = m.store.Put(ctx, store.Record{ChannelID: channelID, Data: data, Revision: rec.Revision})
		if err == nil {
			logger.DebugCF("session", "Order appended", map[string]any{
				"channel": channelID,
				"orders":  len(sess.Orders),
			})
			return nil
		}
		if errors.Is(err, store.ErrRevisionMismatch) {
			continue
		}
		return &StoreError{Op: "put", ChannelID: channelID, Err: err}
	}

	return &StoreError{Op: "put", ChannelID: channelID, Err: store.ErrRevisionMismatch}
}

// Clear removes the channel's session. Clearing an absent session is not
// an error.
func (m *Manager) Clear(ctx context.Context, channelID string) error {
	if err := m.store.Delete(ctx, channelID); err != nil {
		return &StoreError{Op: "delete", ChannelID: channelID, Err: err}
	}
	logger.InfoCF("session", "Session cleared", map[string]any{"channel": channelID})
	return nil
}

func decode(rec store.Record) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(rec.Data, &sess); err != nil {
		return nil, &StoreError{Op: "decode", ChannelID: rec.ChannelID, Err: err}
	}
	return &sess, nil
}
