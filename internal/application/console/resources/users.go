package resources

import (
	"context"
	"net/url"

	"github.com/clinicplace/console/internal/application/console/table"
	"github.com/clinicplace/console/internal/domain/marketplace"
)

// Users configures the users table. Assign and subscriptions open their own
// dialogs.
func (s *Set) Users() table.Config[marketplace.User] {
	return table.Config[marketplace.User]{
		Kind:  KindUsers,
		Fetch: s.api.ListUsers,
		ID:    func(u marketplace.User) string { return idString(u.ID) },
		Columns: []table.Column[marketplace.User]{
			table.TextColumn("ID", func(u marketplace.User) string { return idString(u.ID) }),
			table.TextColumn("Name", func(u marketplace.User) string { return u.Name }),
			table.TextColumn("Email", func(u marketplace.User) string { return u.Email }),
			table.TextColumn("Type", func(u marketplace.User) string { return u.UserType.String() }),
			table.TextColumn("Created", func(u marketplace.User) string { return marketplace.DatePart(u.CreatedAt) }),
		},
		Searchable: func(u marketplace.User) []string {
			return []string{u.Name, u.Email, u.UserType.String()}
		},
		Actions: []table.Action[marketplace.User]{
			viewAction[marketplace.User](),
			editAction[marketplace.User](),
			deleteAction("User", func(ctx context.Context, u marketplace.User) error {
				return s.api.DeleteUser(ctx, u.ID)
			}),
			{Name: ActionAssign, Label: "Assign Plan", Icon: "badge"},
			{Name: ActionSubscriptions, Label: "View Subscriptions", Icon: "list"},
		},
		Update: func(ctx context.Context, u marketplace.User) error {
			return s.api.UpdateUser(ctx, u.ID, marketplace.UserUpdate{Name: u.Name, UserType: u.UserType})
		},
		PageSize: s.pageSize,
	}
}

// UserFields lays out the user modal. Email and creation date never change.
func UserFields(u marketplace.User) []table.Field {
	options := make([]table.Option, 0, len(marketplace.UserTypes))
	for _, t := range []marketplace.UserType{marketplace.UserTypeTrainee, marketplace.UserTypeClinic, marketplace.UserTypeAdmin} {
		options = append(options, table.Option{Value: t.String(), Label: t.Label()})
	}
	return []table.Field{
		{Name: "name", Label: "Name", Type: "text", Value: u.Name},
		{Name: "email", Label: "Email", Type: "email", Value: u.Email, Immutable: true},
		{Name: "user_type", Label: "Type", Type: "select", Value: u.UserType.String(), Options: options},
		{Name: "created_at", Label: "Created", Type: "text", Value: u.CreatedAt, Immutable: true},
	}
}

// ParseUser applies a submitted user form to base. Only name and type are read.
func ParseUser(base marketplace.User, form url.Values) (marketplace.User, FormErrors) {
	u := base
	u.Name = formString(form, "name")
	u.UserType = marketplace.UserType(formString(form, "user_type"))
	return u, FormErrors{}
}
