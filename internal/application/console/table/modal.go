package table

import (
	"context"
	"html/template"

	"github.com/clinicplace/console/internal/shared/utils"
)

// Mode is how a record modal was opened.
type Mode string

const (
	ModeView   Mode = "view"
	ModeEdit   Mode = "edit"
	ModeCreate Mode = "create"
)

// ParseMode maps a route action to a modal mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeView, ModeEdit, ModeCreate:
		return Mode(s), true
	}
	return "", false
}

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one form input. Immutable fields can only be set when a
// record is created.
type Field struct {
	Name      string
	Label     string
	Type      string
	Value     string
	Options   []Option
	Immutable bool
	Error     string
	// Preview is rendered rich text shown instead of the raw value in view mode.
	Preview template.HTML
}

// Disabled reports whether the field is read-only in mode.
func (f Field) Disabled(mode Mode) bool {
	return mode == ModeView || (f.Immutable && mode != ModeCreate)
}

// Form is a record modal as rendered.
type Form struct {
	Title    string
	Mode     Mode
	Action   string
	Fields   []FormField
	ShowSave bool
}

// FormField is a Field with its disabled flag resolved for the form's mode.
type FormField struct {
	Field
	Disabled bool
}

// NewForm resolves fields for mode. The save button is shown unless mode is view.
func NewForm(title string, mode Mode, action string, fields []Field) Form {
	form := Form{
		Title:    title,
		Mode:     mode,
		Action:   action,
		ShowSave: mode != ModeView,
		Fields:   make([]FormField, 0, len(fields)),
	}
	for _, f := range fields {
		form.Fields = append(form.Fields, FormField{Field: f, Disabled: f.Disabled(mode)})
	}
	return form
}

// WithErrors returns a copy of the form with per-field validation messages.
func (f Form) WithErrors(errs map[string]string) Form {
	out := f
	out.Fields = make([]FormField, len(f.Fields))
	for i, field := range f.Fields {
		field.Error = errs[field.Name]
		out.Fields[i] = field
	}
	return out
}

// Modal is an open record modal over a snapshot of one item.
type Modal[T any] struct {
	Mode Mode
	Item T
}

// OpenModal opens row id in mode. Create modals start from the zero value.
func (t *Table[T]) OpenModal(id string, mode Mode) (Modal[T], error) {
	t.CloseMenu()

	if mode == ModeCreate {
		if t.cfg.Create == nil {
			return Modal[T]{}, ErrNoHandler
		}
		var zero T
		return Modal[T]{Mode: ModeCreate, Item: zero}, nil
	}
	if mode == ModeEdit && t.cfg.Update == nil {
		return Modal[T]{}, ErrNoHandler
	}

	item, ok := t.Find(id)
	if !ok {
		return Modal[T]{}, ErrItemNotFound
	}
	return Modal[T]{Mode: mode, Item: item}, nil
}

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Save submits item from a modal in mode. View modals cannot be saved.
// A valid submission calls Update or Create; success bumps the refresh token
// and re-fetches the list. On any error nothing local changes.
func (t *Table[T]) Save(ctx context.Context, mode Mode, item T) error {
	var submit func(context.Context, T) error
	switch mode {
	case ModeEdit:
		submit = t.cfg.Update
	case ModeCreate:
		submit = t.cfg.Create
	default:
		return ErrReadOnly
	}
	if submit == nil {
		return ErrNoHandler
	}

	if fields := utils.FieldErrors(item); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if err := submit(ctx, item); err != nil {
		return err
	}

	t.afterMutation(ctx)
	return nil
}
