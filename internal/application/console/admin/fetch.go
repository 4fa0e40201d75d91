package admin

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/clinicplace/console/internal/application/console/session"
	domain "github.com/clinicplace/console/internal/domain/marketplace"
)

// StatsErrorMessage is shown in place of the analytics panels until a
// retry succeeds.
const StatsErrorMessage = "Failed to load analytics. Please check your server."

// statsSnapshot names the statistics kept in the session between loads.
const statsSnapshot = "stats"

// Stats are the two pre-aggregated statistics of the marketplace.
type Stats struct {
	Subscriptions *domain.SubscriptionStats `json:"subscriptions,omitempty"`
	Payments      *domain.PaymentStats      `json:"payments,omitempty"`
	Err           string                    `json:"error,omitempty"`

	cause error
}

func (s Stats) TotalRevenue() domain.Amount {
	if s.Payments == nil {
		return 0
	}
	return s.Payments.TotalRevenue
}

// fetchStats requests both statistics concurrently. Either failing fails
// the pair.
func (sc *Screen) fetchStats(ctx context.Context) Stats {
	var (
		subs *domain.SubscriptionStats
		pays *domain.PaymentStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = sc.api.SubscriptionStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pays, err = sc.api.PaymentStats(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		sc.log.Warnw("failed to load statistics", "error", err)
		return Stats{Err: StatsErrorMessage, cause: err}
	}
	return Stats{Subscriptions: subs, Payments: pays}
}

func (sc *Screen) storedStats(ctx context.Context) (Stats, bool) {
	stats, ok, err := session.Snapshot[Stats](ctx, sc.sess, statsSnapshot)
	if err != nil {
		sc.log.Warnw("failed to read stored statistics", "error", err)
	}
	return stats, ok
}

// fetchReviews collects the reviews of the first clinics in user order,
// one request per clinic, all in flight at once. The result keeps clinic
// order and stamps every review with its clinic's id and name.
func (sc *Screen) fetchReviews(ctx context.Context) ([]domain.Review, error) {
	users, err := sc.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}

	clinics := make([]domain.User, 0, sc.svc.cfg.ReviewClinicCap)
	for _, u := range users {
		if len(clinics) == sc.svc.cfg.ReviewClinicCap {
			break
		}
		if u.UserType == domain.UserTypeClinic {
			clinics = append(clinics, u)
		}
	}

	perClinic := make([][]domain.Review, len(clinics))
	g, gctx := errgroup.WithContext(ctx)
	for i, clinic := range clinics {
		i, clinic := i, clinic
		g.Go(func() error {
			reviews, err := sc.api.ListClinicReviews(gctx, clinic.ID)
			if err != nil {
				return fmt.Errorf("list reviews of clinic %d: %w", clinic.ID, err)
			}
			for j := range reviews {
				reviews[j].ClinicID = clinic.ID
				reviews[j].ClinicName = clinic.Name
			}
			perClinic[i] = reviews
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]domain.Review, 0)
	for _, reviews := range perClinic {
		all = append(all, reviews...)
	}
	return all, nil
}
