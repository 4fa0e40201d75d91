package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userFields(u user) []Field {
	return []Field{
		{Name: "name", Label: "Name", Type: "text", Value: u.Name},
		{Name: "email", Label: "Email", Type: "email", Value: u.Email, Immutable: true},
	}
}

func TestForm_DisabledRules(t *testing.T) {
	tests := []struct {
		mode          Mode
		nameDisabled  bool
		emailDisabled bool
		showSave      bool
	}{
		{ModeView, true, true, false},
		{ModeEdit, false, true, true},
		{ModeCreate, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			form := NewForm("User", tt.mode, "/admin/users/1", userFields(user{Name: "Ann", Email: "a@x.com"}))
			assert.Equal(t, tt.nameDisabled, form.Fields[0].Disabled)
			assert.Equal(t, tt.emailDisabled, form.Fields[1].Disabled)
			assert.Equal(t, tt.showSave, form.ShowSave)
		})
	}
}

func TestForm_WithErrors(t *testing.T) {
	form := NewForm("User", ModeEdit, "", userFields(user{}))
	withErrs := form.WithErrors(map[string]string{"name": "name is required"})

	assert.Equal(t, "name is required", withErrs.Fields[0].Error)
	assert.Empty(t, withErrs.Fields[1].Error)
	assert.Empty(t, form.Fields[0].Error, "the original form is unchanged")
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("edit")
	assert.True(t, ok)
	assert.Equal(t, ModeEdit, m)

	_, ok = ParseMode("delete")
	assert.False(t, ok)
}

func TestSave_EditRoundTrip(t *testing.T) {
	tbl, _ := loadedTable(t, annAndBob())
	ctx := context.Background()

	modal, err := tbl.OpenModal("1", ModeEdit)
	require.NoError(t, err)
	assert.Equal(t, "Ann", modal.Item.Name)

	edited := modal.Item
	edited.Name = "Ann B"
	require.NoError(t, tbl.Save(ctx, modal.Mode, edited))

	assert.Equal(t, int64(1), tbl.State().Refresh)
	got, ok := tbl.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Ann B", got.Name, "the list reflects the update after the re-fetch")
}

func TestSave_Create(t *testing.T) {
	tbl, backend := loadedTable(t, annAndBob())

	modal, err := tbl.OpenModal("", ModeCreate)
	require.NoError(t, err)
	assert.Zero(t, modal.Item)

	require.NoError(t, tbl.Save(context.Background(), ModeCreate, user{Name: "Cy", UserType: "admin"}))
	assert.Len(t, tbl.Items(), 3)
	assert.Equal(t, 2, backend.fetches)
}

func TestSave_Rejections(t *testing.T) {
	tbl, backend := loadedTable(t, annAndBob())
	ctx := context.Background()

	assert.ErrorIs(t, tbl.Save(ctx, ModeView, annAndBob()[0]), ErrReadOnly)

	err := tbl.Save(ctx, ModeEdit, user{ID: 1, Name: "", UserType: "owner"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "user_type")

	assert.Equal(t, int64(0), tbl.State().Refresh)
	assert.Equal(t, 1, backend.fetches)
}

func TestOpenModal_Errors(t *testing.T) {
	tbl, _ := loadedTable(t, annAndBob())

	_, err := tbl.OpenModal("42", ModeView)
	assert.ErrorIs(t, err, ErrItemNotFound)

	cfg := userConfig(&fakeUsers{})
	cfg.Update = nil
	cfg.Create = nil
	readOnly := New(cfg, NewState())

	_, err = readOnly.OpenModal("1", ModeEdit)
	assert.ErrorIs(t, err, ErrNoHandler)
	_, err = readOnly.OpenModal("", ModeCreate)
	assert.ErrorIs(t, err, ErrNoHandler)
}
