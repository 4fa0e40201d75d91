// Package table is the searchable, paginated resource table with a per-row
// action menu that every console list is built from.
package table

import (
	"context"
	"strings"
	"sync"

	"github.com/clinicplace/console/internal/shared/utils"
)

// Cell is one rendered table cell. Class, when set, styles the cell as a badge.
type Cell struct {
	Text  string
	Class string
}

// Column renders one table column.
type Column[T any] struct {
	Header string
	Cell   func(T) Cell
}

// TextColumn is a column of plain text.
func TextColumn[T any](header string, value func(T) string) Column[T] {
	return Column[T]{
		Header: header,
		Cell:   func(item T) Cell { return Cell{Text: value(item)} },
	}
}

// Action is one entry of the row action menu. An action with a nil Run opens
// a modal or page named after the action; otherwise Run performs it.
type Action[T any] struct {
	Name        string
	Label       string
	Icon        string
	Destructive bool
	Run         func(ctx context.Context, item T) error
	// Success and Failure are the notifications shown after Run.
	Success string
	Failure string
}

// Config describes one resource table.
type Config[T any] struct {
	Kind       Kind
	Fetch      func(ctx context.Context) ([]T, error)
	ID         func(T) string
	Columns    []Column[T]
	Searchable func(T) []string
	Actions    []Action[T]
	// Update and Create back the edit and create modals; nil disables them.
	Update   func(ctx context.Context, item T) error
	Create   func(ctx context.Context, item T) error
	PageSize int
}

// Table holds one table's items and view state.
type Table[T any] struct {
	cfg Config[T]

	mu      sync.Mutex
	state   State
	items   []T
	loaded  bool
	loadErr error
	gen     uint64
}

// New creates a table in state. A zero PageSize means the default of 10.
func New[T any](cfg Config[T], state State) *Table[T] {
	cfg.PageSize = utils.NormalizePageSize(cfg.PageSize)
	return &Table[T]{
		cfg:   cfg,
		state: state.normalized(),
	}
}

func (t *Table[T]) Kind() Kind {
	return t.cfg.Kind
}

// State returns the current view state for persisting between requests.
func (t *Table[T]) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Items returns the full, unfiltered list.
func (t *Table[T]) Items() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.items...)
}

// Restore installs a previously loaded list without fetching.
func (t *Table[T]) Restore(items []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append([]T(nil), items...)
	t.loaded = true
	t.loadErr = nil
	t.clampPageLocked()
}

// Load fetches the list. Only the most recently started Load may install
// its result; an older one returns ErrStaleLoad. A failed first load leaves
// an empty list, a failed reload keeps the previous items. Either way the
// error is returned and reported by View.
func (t *Table[T]) Load(ctx context.Context) error {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.mu.Unlock()

	items, err := t.cfg.Fetch(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		return ErrStaleLoad
	}
	if err != nil {
		if !t.loaded {
			t.items = nil
		}
		t.loadErr = err
		return err
	}

	t.items = items
	t.loaded = true
	t.loadErr = nil
	t.clampPageLocked()
	return nil
}

// Search sets the query and always returns to page 1, so a narrower result
// never leaves the view on a page past its end.
func (t *Table[T]) Search(query string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Query = query
	t.state.Page = 1
}

// GoTo moves to page, clamped to the pages the filtered list has.
func (t *Table[T]) GoTo(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Page = page
	t.clampPageLocked()
}

// Next moves forward one page unless already on the last one.
func (t *Table[T]) Next() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Page*t.cfg.PageSize < len(t.filteredLocked()) {
		t.state.Page++
	}
}

// Prev moves back one page unless already on the first one.
func (t *Table[T]) Prev() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Page > 1 {
		t.state.Page--
	}
}

// ToggleMenu opens the action menu on row id, closing any other open menu.
// Toggling the row whose menu is already open closes it.
func (t *Table[T]) ToggleMenu(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Menu.Is(t.cfg.Kind, id) {
		t.state.Menu = NoMenu()
		return
	}
	t.state.Menu = OpenMenu(t.cfg.Kind, id)
}

// ShowMenu opens the action menu on row id, closing any other open menu.
func (t *Table[T]) ShowMenu(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Menu = OpenMenu(t.cfg.Kind, id)
}

// Click dismisses the open menu unless the click landed inside it. target is
// the menu region that was clicked, or NoMenu for anywhere else.
func (t *Table[T]) Click(target Menu) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Menu.IsOpen() || t.state.Menu == target {
		return
	}
	t.state.Menu = NoMenu()
}

// CloseMenu closes the action menu.
func (t *Table[T]) CloseMenu() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Menu = NoMenu()
}

// Find returns the loaded item with id.
func (t *Table[T]) Find(id string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.findLocked(id)
}

func (t *Table[T]) findLocked(id string) (T, bool) {
	for _, item := range t.items {
		if t.cfg.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (t *Table[T]) action(name string) (Action[T], bool) {
	for _, a := range t.cfg.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action[T]{}, false
}

// Outcome describes what an invoked action did.
type Outcome[T any] struct {
	Action Action[T]
	Item   T
	// Open is set for actions without Run: the caller shows the action's
	// modal or page for Item.
	Open bool
	// Message is the notification to show; it is empty when Open is set.
	Message string
}

// Invoke runs action on row id. The menu is closed first. A destructive
// action is refused with ErrConfirmationRequired until confirmed is true.
// A successful Run bumps the refresh token and re-fetches the list; a failed
// one changes nothing else and returns the action's failure message in the
// outcome together with the error.
func (t *Table[T]) Invoke(ctx context.Context, name, id string, confirmed bool) (Outcome[T], error) {
	t.CloseMenu()

	action, ok := t.action(name)
	if !ok {
		return Outcome[T]{}, ErrUnknownAction
	}
	item, ok := t.Find(id)
	if !ok {
		return Outcome[T]{Action: action, Message: action.Failure}, ErrItemNotFound
	}

	out := Outcome[T]{Action: action, Item: item}
	if action.Run == nil {
		out.Open = true
		return out, nil
	}
	if action.Destructive && !confirmed {
		return out, ErrConfirmationRequired
	}

	if err := action.Run(ctx, item); err != nil {
		out.Message = action.Failure
		return out, err
	}

	out.Message = action.Success
	t.afterMutation(ctx)
	return out, nil
}

// afterMutation bumps the refresh token and re-fetches. A failed re-fetch
// keeps the previous items and is reported through View.
func (t *Table[T]) afterMutation(ctx context.Context) {
	t.mu.Lock()
	t.state.Refresh++
	t.mu.Unlock()
	_ = t.Load(ctx)
}

// Actions lists the configured row actions.
func (t *Table[T]) Actions() []Action[T] {
	return t.cfg.Actions
}

// ActionView is a menu entry as rendered.
type ActionView struct {
	Name        string
	Label       string
	Icon        string
	Destructive bool
}

// Row is one rendered table row.
type Row[T any] struct {
	ID       string
	Item     T
	Cells    []Cell
	MenuOpen bool
}

// View is the derived, render-ready state of a table.
type View[T any] struct {
	Kind      Kind
	Query     string
	Page      int
	PageSize  int
	PageCount int
	// Total is the number of items matching the query.
	Total     int
	HasPrev   bool
	HasNext   bool
	// PrevPage and NextPage are the absolute targets of the pager links.
	PrevPage  int
	NextPage  int
	Headers   []string
	Rows      []Row[T]
	Actions   []ActionView
	Menu      Menu
	Err       error
}

// Empty reports whether no row matches.
func (v View[T]) Empty() bool {
	return v.Total == 0
}

// View filters, paginates and renders the table.
func (t *Table[T]) View() View[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	filtered := t.filteredLocked()
	total := len(filtered)
	size := t.cfg.PageSize
	page := utils.ClampPage(t.state.Page, total, size)
	start, end := utils.PageBounds(total, page, size)

	v := View[T]{
		Kind:      t.cfg.Kind,
		Query:     t.state.Query,
		Page:      page,
		PageSize:  size,
		PageCount: utils.PageCount(total, size),
		Total:     total,
		HasPrev:   page > 1,
		HasNext:   page*size < total,
		PrevPage:  max(page-1, 1),
		NextPage:  page + 1,
		Menu:      t.state.Menu,
		Err:       t.loadErr,
	}

	for _, col := range t.cfg.Columns {
		v.Headers = append(v.Headers, col.Header)
	}
	for _, a := range t.cfg.Actions {
		v.Actions = append(v.Actions, ActionView{Name: a.Name, Label: a.Label, Icon: a.Icon, Destructive: a.Destructive})
	}

	v.Rows = make([]Row[T], 0, end-start)
	for _, item := range filtered[start:end] {
		id := t.cfg.ID(item)
		row := Row[T]{
			ID:       id,
			Item:     item,
			Cells:    make([]Cell, 0, len(t.cfg.Columns)),
			MenuOpen: t.state.Menu.Is(t.cfg.Kind, id),
		}
		for _, col := range t.cfg.Columns {
			row.Cells = append(row.Cells, col.Cell(item))
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// Filtered returns the items matching the current query, in list order.
func (t *Table[T]) Filtered() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.filteredLocked()...)
}

func (t *Table[T]) filteredLocked() []T {
	return Filter(t.items, t.state.Query, t.cfg.Searchable)
}

func (t *Table[T]) clampPageLocked() {
	t.state.Page = utils.ClampPage(t.state.Page, len(t.filteredLocked()), t.cfg.PageSize)
}

// Filter keeps the items where query is a case-insensitive substring of at
// least one searchable field. An empty query keeps everything, in order.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" || fields == nil {
		return items
	}
	needle := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
