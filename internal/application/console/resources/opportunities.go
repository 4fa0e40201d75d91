package resources

import (
	"context"
	"net/url"

	"github.com/clinicplace/console/internal/application/console/table"
	"github.com/clinicplace/console/internal/domain/marketplace"
)

func (s *Set) Opportunities() table.Config[marketplace.Opportunity] {
	return table.Config[marketplace.Opportunity]{
		Kind:  KindOpportunities,
		Fetch: s.api.ListOpportunities,
		ID:    func(o marketplace.Opportunity) string { return idString(o.ID) },
		Columns: []table.Column[marketplace.Opportunity]{
			table.TextColumn("ID", func(o marketplace.Opportunity) string { return idString(o.ID) }),
			table.TextColumn("Title", func(o marketplace.Opportunity) string { return o.Title }),
			table.TextColumn("Clinic ID", func(o marketplace.Opportunity) string { return idString(o.ClinicID) }),
			table.TextColumn("Status", func(o marketplace.Opportunity) string { return o.Status }),
			table.TextColumn("Created", func(o marketplace.Opportunity) string { return marketplace.DatePart(o.CreatedAt) }),
		},
		Searchable: func(o marketplace.Opportunity) []string {
			return []string{o.Title, o.Description, o.Status}
		},
		Actions: []table.Action[marketplace.Opportunity]{
			viewAction[marketplace.Opportunity](),
			editAction[marketplace.Opportunity](),
			deleteAction("Opportunity", func(ctx context.Context, o marketplace.Opportunity) error {
				return s.api.DeleteOpportunity(ctx, o.ID)
			}),
		},
		Update:   s.api.UpdateOpportunity,
		PageSize: s.pageSize,
	}
}

// OpportunityFields lays out the opportunity modal.
func (s *Set) OpportunityFields(o marketplace.Opportunity) []table.Field {
	description := s.preview(o.Description)
	description.Name, description.Label, description.Type, description.Value = "description", "Description", "textarea", o.Description

	return []table.Field{
		{Name: "title", Label: "Title", Type: "text", Value: o.Title},
		description,
		{Name: "clinic_id", Label: "Clinic ID", Type: "text", Value: idString(o.ClinicID)},
		{Name: "status", Label: "Status", Type: "text", Value: o.Status},
		{Name: "created_at", Label: "Created", Type: "text", Value: o.CreatedAt, Immutable: true},
	}
}

// ParseOpportunity applies a submitted opportunity form to base. The full
// record is sent on update, so unlisted fields keep their fetched values.
func ParseOpportunity(base marketplace.Opportunity, form url.Values) (marketplace.Opportunity, FormErrors) {
	errs := FormErrors{}
	o := base
	o.Title = formString(form, "title")
	o.Description = formString(form, "description")
	o.ClinicID = formInt64(form, "clinic_id", errs)
	o.Status = formString(form, "status")
	return o, errs
}
