// Package resources configures the console's resource tables: which columns
// they show, which fields they search, which row actions they offer and which
// marketplace API calls back them.
package resources

import (
	"context"

	"github.com/clinicplace/console/internal/application/console/table"
	"github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/shared/services/markdown"
)

// API is the part of the marketplace API the resource tables call.
type API interface {
	ListUsers(ctx context.Context) ([]marketplace.User, error)
	UpdateUser(ctx context.Context, id int64, update marketplace.UserUpdate) error
	DeleteUser(ctx context.Context, id int64) error

	ListOpportunities(ctx context.Context) ([]marketplace.Opportunity, error)
	UpdateOpportunity(ctx context.Context, opp marketplace.Opportunity) error
	DeleteOpportunity(ctx context.Context, id int64) error

	ListApplications(ctx context.Context) ([]marketplace.Application, error)
	DeleteApplication(ctx context.Context, id int64) error

	ListClinicReviews(ctx context.Context, clinicID int64) ([]marketplace.Review, error)
	DeleteReview(ctx context.Context, clinicID, reviewID int64) error

	ListPlans(ctx context.Context) ([]marketplace.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, plan marketplace.SubscriptionPlan) error
	UpdatePlan(ctx context.Context, plan marketplace.SubscriptionPlan) error
	DeletePlan(ctx context.Context, id int64) error
}

const (
	KindUsers         table.Kind = "users"
	KindOpportunities table.Kind = "opportunities"
	KindApplications  table.Kind = "applications"
	KindReviews       table.Kind = "reviews"
	KindPlans         table.Kind = "plans"
)

// Kinds lists every resource table.
var Kinds = []table.Kind{KindUsers, KindOpportunities, KindApplications, KindReviews, KindPlans}

// Action names shared by the tables.
const (
	ActionView          = "view"
	ActionEdit          = "edit"
	ActionDelete        = "delete"
	ActionAssign        = "assign"
	ActionSubscriptions = "subscriptions"
)

// Set builds the table configurations for one request.
type Set struct {
	api      API
	renderer markdown.Renderer
	pageSize int
}

func NewSet(api API, renderer markdown.Renderer, pageSize int) *Set {
	return &Set{
		api:      api,
		renderer: renderer,
		pageSize: pageSize,
	}
}

func (s *Set) excerpt(text string) string {
	return s.renderer.Excerpt(text, 80)
}

func (s *Set) preview(text string) table.Field {
	html, err := s.renderer.Render(text)
	if err != nil {
		return table.Field{}
	}
	return table.Field{Preview: html}
}

func viewAction[T any]() table.Action[T] {
	return table.Action[T]{Name: ActionView, Label: "View", Icon: "eye"}
}

func editAction[T any]() table.Action[T] {
	return table.Action[T]{Name: ActionEdit, Label: "Edit", Icon: "pencil"}
}

func deleteAction[T any](noun string, run func(context.Context, T) error) table.Action[T] {
	return table.Action[T]{
		Name:        ActionDelete,
		Label:       "Delete",
		Icon:        "trash",
		Destructive: true,
		Run:         run,
		Success:     noun + " deleted",
		Failure:     "Failed to delete " + lower(noun),
	}
}
