package resources

import (
	"strconv"

	"github.com/clinicplace/console/internal/domain/marketplace"
)

// SubscriptionRow is one subscription as listed in a table.
type SubscriptionRow struct {
	ID        int64
	Plan      string
	AppsLimit string
	OppsLimit string
	Expires   string
}

func SubscriptionRows(subs []marketplace.UserSubscription) []SubscriptionRow {
	rows := make([]SubscriptionRow, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, SubscriptionRow{
			ID:        s.ID,
			Plan:      s.PlanType,
			AppsLimit: LimitText(s.ApplicationsLimit),
			OppsLimit: LimitText(s.OpportunitiesLimit),
			Expires:   marketplace.DatePart(s.ExpiresAt),
		})
	}
	return rows
}

// PlanOptions lists plans as choices of a plan picker, e.g. "Pro ($9.99)".
func PlanOptions(plans []marketplace.SubscriptionPlan) []PlanOption {
	opts := make([]PlanOption, 0, len(plans))
	for _, p := range plans {
		opts = append(opts, PlanOption{
			ID:    p.ID,
			Value: strconv.FormatInt(p.ID, 10),
			Label: p.Name + " ($" + p.Price.String() + ")",
		})
	}
	return opts
}

type PlanOption struct {
	ID    int64
	Value string
	Label string
}
