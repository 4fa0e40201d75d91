// Package session stores a viewer's console view state: the active admin
// tab, each table's search/page/menu state, the lists last loaded into
// them and the last statistics. Lists and statistics are kept so paging and
// searching never re-fetch.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinicplace/console/internal/application/console/table"
	"github.com/clinicplace/console/internal/infrastructure/cache"
)

const (
	fieldTab         = "tab"
	fieldTablePrefix = "table:"
	fieldListPrefix  = "list:"
	fieldSnapPrefix  = "snapshot:"
)

// Session is one browser session's view of the store.
type Session struct {
	store cache.SessionStore
	id    string
}

func New(store cache.SessionStore, id string) *Session {
	return &Session{store: store, id: id}
}

func (s *Session) ID() string {
	return s.id
}

// Begin starts a load and returns its sequence number for Commit.
func (s *Session) Begin(ctx context.Context) (int64, error) {
	return s.store.Begin(ctx, s.id)
}

// Tab returns the admin tab shown last, or "" for a fresh session.
func (s *Session) Tab(ctx context.Context) (string, error) {
	raw, ok, err := s.store.Get(ctx, s.id, fieldTab)
	if err != nil || !ok {
		return "", err
	}
	return string(raw), nil
}

// TableState returns the stored state of kind, or a fresh state.
func (s *Session) TableState(ctx context.Context, kind table.Kind) (table.State, error) {
	raw, ok, err := s.store.Get(ctx, s.id, fieldTablePrefix+string(kind))
	if err != nil {
		return table.NewState(), err
	}
	if !ok {
		return table.NewState(), nil
	}
	var state table.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return table.NewState(), fmt.Errorf("decode %s table state: %w", kind, err)
	}
	return state, nil
}

// List returns the list last loaded into kind. ok is false when the list
// was never loaded in this session.
func List[T any](ctx context.Context, s *Session, kind table.Kind) (items []T, ok bool, err error) {
	raw, ok, err := s.store.Get(ctx, s.id, fieldListPrefix+string(kind))
	if err != nil || !ok {
		return nil, false, err
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode %s list: %w", kind, err)
	}
	return items, true, nil
}

// Snapshot returns the value last stored under name by PutSnapshot.
func Snapshot[T any](ctx context.Context, s *Session, name string) (v T, ok bool, err error) {
	raw, ok, err := s.store.Get(ctx, s.id, fieldSnapPrefix+name)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode %s snapshot: %w", name, err)
	}
	return v, true, nil
}

// Writes collects fields that are saved together.
type Writes struct {
	fields map[string][]byte
	err    error
}

func NewWrites() *Writes {
	return &Writes{fields: make(map[string][]byte)}
}

func (w *Writes) Tab(tab string) *Writes {
	w.fields[fieldTab] = []byte(tab)
	return w
}

func (w *Writes) TableState(kind table.Kind, state table.State) *Writes {
	w.put(fieldTablePrefix+string(kind), state)
	return w
}

// PutList records items as the list loaded into kind.
func PutList[T any](w *Writes, kind table.Kind, items []T) *Writes {
	if items == nil {
		items = []T{}
	}
	w.put(fieldListPrefix+string(kind), items)
	return w
}

// PutSnapshot records v under name.
func PutSnapshot[T any](w *Writes, name string, v T) *Writes {
	w.put(fieldSnapPrefix+name, v)
	return w
}

func (w *Writes) put(field string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		if w.err == nil {
			w.err = fmt.Errorf("encode %s: %w", field, err)
		}
		return
	}
	w.fields[field] = raw
}

func (w *Writes) Empty() bool {
	return len(w.fields) == 0
}

// Commit saves w if no load newer than seq has begun. It reports false when
// the writes were discarded as stale.
func (s *Session) Commit(ctx context.Context, seq int64, w *Writes) (bool, error) {
	if w.err != nil {
		return false, w.err
	}
	if w.Empty() {
		return true, nil
	}
	return s.store.SetIfCurrent(ctx, s.id, seq, w.fields)
}

// Save stores w unconditionally.
func (s *Session) Save(ctx context.Context, w *Writes) error {
	if w.err != nil {
		return w.err
	}
	if w.Empty() {
		return nil
	}
	return s.store.Set(ctx, s.id, w.fields)
}

func (s *Session) Flash(ctx context.Context, kind cache.FlashKind, message string) error {
	if message == "" {
		return nil
	}
	return s.store.PushFlash(ctx, s.id, cache.Flash{Kind: kind, Message: message})
}

// Flashes returns and clears the pending notifications.
func (s *Session) Flashes(ctx context.Context) ([]cache.Flash, error) {
	return s.store.PopFlashes(ctx, s.id)
}
