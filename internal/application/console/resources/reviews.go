package resources

import (
	"context"
	"strconv"

	"github.com/clinicplace/console/internal/application/console/table"
	"github.com/clinicplace/console/internal/domain/marketplace"
)

// Reviews configures the reviews table over fetch, which gathers reviews
// from several clinics. Deleting addresses the review under its clinic.
func (s *Set) Reviews(fetch func(ctx context.Context) ([]marketplace.Review, error)) table.Config[marketplace.Review] {
	return table.Config[marketplace.Review]{
		Kind:  KindReviews,
		Fetch: fetch,
		ID:    ReviewID,
		Columns: []table.Column[marketplace.Review]{
			table.TextColumn("ID", func(r marketplace.Review) string { return idString(r.ID) }),
			table.TextColumn("Clinic", func(r marketplace.Review) string { return r.ClinicName }),
			table.TextColumn("Trainee", func(r marketplace.Review) string { return r.TraineeName }),
			table.TextColumn("Rating", func(r marketplace.Review) string { return strconv.Itoa(r.Rating) }),
			table.TextColumn("Feedback", func(r marketplace.Review) string { return s.excerpt(r.Feedback) }),
			table.TextColumn("Created", func(r marketplace.Review) string { return marketplace.DatePart(r.CreatedAt) }),
		},
		Searchable: func(r marketplace.Review) []string {
			return []string{r.ClinicName, r.TraineeName, r.Feedback}
		},
		Actions: []table.Action[marketplace.Review]{
			viewAction[marketplace.Review](),
			deleteAction("Review", func(ctx context.Context, r marketplace.Review) error {
				return s.api.DeleteReview(ctx, r.ClinicID, r.ID)
			}),
		},
		PageSize: s.pageSize,
	}
}

// ReviewID keys a review row by clinic and review id, since review ids are
// only unique within a clinic.
func ReviewID(r marketplace.Review) string {
	return idString(r.ClinicID) + "-" + idString(r.ID)
}

func (s *Set) ReviewFields(r marketplace.Review) []table.Field {
	feedback := s.preview(r.Feedback)
	feedback.Name, feedback.Label, feedback.Type, feedback.Value = "feedback", "Feedback", "textarea", r.Feedback

	return []table.Field{
		{Name: "clinic_name", Label: "Clinic", Type: "text", Value: r.ClinicName, Immutable: true},
		{Name: "trainee_name", Label: "Trainee", Type: "text", Value: r.TraineeName, Immutable: true},
		{Name: "rating", Label: "Rating", Type: "number", Value: strconv.Itoa(r.Rating), Immutable: true},
		{Name: "created_at", Label: "Created", Type: "text", Value: r.CreatedAt, Immutable: true},
		feedback,
	}
}
