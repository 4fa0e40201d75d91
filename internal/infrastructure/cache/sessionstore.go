package cache

import (
	"context"
	"errors"
	"time"
)

// ErrEmptySessionID is returned when a call is made without a session id.
var ErrEmptySessionID = errors.New("session id cannot be empty")

// FlashKind classifies a one-shot notification.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a notification shown once on the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// SessionStore keeps per-browser-session console state as named opaque
// fields plus a load sequence number and a flash queue.
//
// Begin starts a new load and returns its sequence number. SetIfCurrent
// writes only when no newer load has begun since seq was taken, so a slow
// result never overwrites the state of a screen the viewer already left.
type SessionStore interface {
	Begin(ctx context.Context, sessionID string) (int64, error)
	Get(ctx context.Context, sessionID, field string) ([]byte, bool, error)
	Set(ctx context.Context, sessionID string, fields map[string][]byte) error
	SetIfCurrent(ctx context.Context, sessionID string, seq int64, fields map[string][]byte) (bool, error)
	PushFlash(ctx context.Context, sessionID string, flash Flash) error
	PopFlashes(ctx context.Context, sessionID string) ([]Flash, error)
}

const (
	sessionKeyPrefix  = "console:session:"
	defaultSessionTTL = 12 * time.Hour
	maxFlashes        = 20
)
