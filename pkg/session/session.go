// Package session implements the per-channel order session lifecycle:
// at most one active session per channel, an append-only order ledger
// inside the session, and clearing on close. A session that is not in
// the store does not exist; there is no persisted "closed" state.
package session

import (
	"errors"
	"fmt"

	"github.com/makeajourney/asnisum/pkg/order"
)

// ErrConflict is returned by Start when the channel already has an
// active session.
var ErrConflict = errors.New("session: an order session is already active for this channel")

// ErrExpired is returned when an operation expects an active session and
// none exists, including the case where the session was closed between a
// form being opened and being submitted.
var ErrExpired = errors.New("session: no active order session for this channel")

// Session is the live record of one open ordering round.
type Session struct {
	ChannelID string        `json:"channel_id"`
	MessageTS string        `json:"message_ts"`
	StartedBy string        `json:"started_by"`
	Orders    []order.Order `json:"orders"`
}

// StoreError wraps a persistence failure. The triggering request fails;
// the stored record is left untouched.
type StoreError struct {
	Op        string
	ChannelID string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store %s for %s: %v", e.Op, e.ChannelID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
