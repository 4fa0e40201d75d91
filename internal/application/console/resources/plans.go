package resources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/clinicplace/console/internal/application/console/table"
	"github.com/clinicplace/console/internal/domain/marketplace"
)

func (s *Set) Plans() table.Config[marketplace.SubscriptionPlan] {
	return table.Config[marketplace.SubscriptionPlan]{
		Kind:  KindPlans,
		Fetch: s.api.ListPlans,
		ID:    func(p marketplace.SubscriptionPlan) string { return idString(p.ID) },
		Columns: []table.Column[marketplace.SubscriptionPlan]{
			table.TextColumn("ID", func(p marketplace.SubscriptionPlan) string { return idString(p.ID) }),
			table.TextColumn("Name", func(p marketplace.SubscriptionPlan) string { return p.Name }),
			table.TextColumn("Price", func(p marketplace.SubscriptionPlan) string { return p.Price.String() }),
			table.TextColumn("Applications Limit (Trainee)", func(p marketplace.SubscriptionPlan) string { return LimitText(p.ApplicationsLimit) }),
			table.TextColumn("Opportunities Limit (Clinic)", func(p marketplace.SubscriptionPlan) string { return LimitText(p.OpportunitiesLimit) }),
			table.TextColumn("Duration", func(p marketplace.SubscriptionPlan) string { return strconv.Itoa(p.DurationDays) + " Days" }),
			table.TextColumn("Description", func(p marketplace.SubscriptionPlan) string { return s.excerpt(p.Description) }),
		},
		Searchable: func(p marketplace.SubscriptionPlan) []string {
			return []string{p.Name, p.Description}
		},
		Actions: []table.Action[marketplace.SubscriptionPlan]{
			viewAction[marketplace.SubscriptionPlan](),
			editAction[marketplace.SubscriptionPlan](),
			deleteAction("Plan", func(ctx context.Context, p marketplace.SubscriptionPlan) error {
				return s.api.DeletePlan(ctx, p.ID)
			}),
		},
		Update:   s.api.UpdatePlan,
		Create:   s.api.CreatePlan,
		PageSize: s.pageSize,
	}
}

func (s *Set) PlanFields(p marketplace.SubscriptionPlan) []table.Field {
	description := s.preview(p.Description)
	description.Name, description.Label, description.Type, description.Value = "description", "Description", "textarea", p.Description

	price := ""
	if p.ID != 0 || p.Price != 0 {
		price = p.Price.String()
	}
	duration := ""
	if p.DurationDays != 0 {
		duration = strconv.Itoa(p.DurationDays)
	}

	return []table.Field{
		{Name: "name", Label: "Name", Type: "text", Value: p.Name},
		{Name: "price", Label: "Price", Type: "number", Value: price},
		{Name: "applications_limit", Label: "Applications Limit (Trainee)", Type: "number", Value: optionalInt(p.ApplicationsLimit)},
		{Name: "opportunities_limit", Label: "Opportunities Limit (Clinic)", Type: "number", Value: optionalInt(p.OpportunitiesLimit)},
		{Name: "duration_days", Label: "Duration (days)", Type: "number", Value: duration},
		description,
	}
}

// ParsePlan applies a submitted plan form to base (the zero plan on create).
func ParsePlan(base marketplace.SubscriptionPlan, form url.Values) (marketplace.SubscriptionPlan, FormErrors) {
	errs := FormErrors{}
	p := base
	p.Name = formString(form, "name")
	p.Price = formAmount(form, "price", errs)
	p.ApplicationsLimit = formOptionalInt(form, "applications_limit", errs)
	p.OpportunitiesLimit = formOptionalInt(form, "opportunities_limit", errs)
	p.DurationDays = formInt(form, "duration_days", errs)
	p.Description = formString(form, "description")
	return p, errs
}
