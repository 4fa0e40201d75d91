package resources

import (
	"context"

	"github.com/clinicplace/console/internal/application/console/table"
	"github.com/clinicplace/console/internal/domain/marketplace"
)

// Applications are read-only apart from deletion.
func (s *Set) Applications() table.Config[marketplace.Application] {
	return table.Config[marketplace.Application]{
		Kind:  KindApplications,
		Fetch: s.api.ListApplications,
		ID:    func(a marketplace.Application) string { return idString(a.ID) },
		Columns: []table.Column[marketplace.Application]{
			table.TextColumn("ID", func(a marketplace.Application) string { return idString(a.ID) }),
			table.TextColumn("Trainee", func(a marketplace.Application) string { return a.TraineeName }),
			table.TextColumn("Opportunity", func(a marketplace.Application) string { return a.Title }),
			{
				Header: "Status",
				Cell: func(a marketplace.Application) table.Cell {
					return table.Cell{Text: a.Status.String(), Class: a.Status.Badge().Classes()}
				},
			},
			table.TextColumn("Applied", func(a marketplace.Application) string { return marketplace.DatePart(a.AppliedAt) }),
		},
		Searchable: func(a marketplace.Application) []string {
			return []string{a.CoverLetter, a.Status.String()}
		},
		Actions: []table.Action[marketplace.Application]{
			viewAction[marketplace.Application](),
			deleteAction("Application", func(ctx context.Context, a marketplace.Application) error {
				return s.api.DeleteApplication(ctx, a.ID)
			}),
		},
		PageSize: s.pageSize,
	}
}

func (s *Set) ApplicationFields(a marketplace.Application) []table.Field {
	letter := s.preview(a.CoverLetter)
	letter.Name, letter.Label, letter.Type, letter.Value = "cover_letter", "Cover Letter", "textarea", a.CoverLetter

	return []table.Field{
		{Name: "trainee_name", Label: "Trainee", Type: "text", Value: a.TraineeName, Immutable: true},
		{Name: "title", Label: "Opportunity", Type: "text", Value: a.Title, Immutable: true},
		{Name: "status", Label: "Status", Type: "text", Value: a.Status.Label(), Immutable: true},
		{Name: "applied_at", Label: "Applied", Type: "text", Value: a.AppliedAt, Immutable: true},
		letter,
	}
}
