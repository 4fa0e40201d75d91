package admin

import (
	"context"
	"errors"
	"sync"

	domain "github.com/clinicplace/console/internal/domain/marketplace"
)

var errUnreachable = errors.New("connection refused")

// fakeAPI is an in-memory marketplace.
type fakeAPI struct {
	mu sync.Mutex

	users         []domain.User
	opportunities []domain.Opportunity
	applications  []domain.Application
	reviews       map[int64][]domain.Review
	plans         []domain.SubscriptionPlan
	subs          map[int64][]domain.UserSubscription

	subStats *domain.SubscriptionStats
	payStats *domain.PaymentStats

	statsErr   error
	listErr    error
	reviewErr  map[int64]error
	mutateErr  error
	assigned   []domain.AssignSubscription
	calls      map[string]int
	reviewSeen []int64

	// usersGate, when set, holds ListUsers until it is closed.
	usersGate    chan struct{}
	usersStarted chan struct{}
	// reviewGate holds ListClinicReviews for a clinic until closed.
	reviewGate map[int64]chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		reviews:   map[int64][]domain.Review{},
		subs:      map[int64][]domain.UserSubscription{},
		reviewErr: map[int64]error{},
		calls:     map[string]int{},
		subStats: &domain.SubscriptionStats{ByPlanUsers: []domain.PlanUsers{
			{PlanType: "basic", UserCount: 3},
		}},
		payStats: &domain.PaymentStats{TotalRevenue: 250, ByMonth: []domain.MonthTotal{
			{Month: "2024-01", Total: 250},
		}},
	}
}

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.count("ListUsers")
	if f.usersStarted != nil {
		f.usersStarted <- struct{}{}
	}
	if f.usersGate != nil {
		select {
		case <-f.usersGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id int64, update domain.UserUpdate) error {
	f.count("UpdateUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Name = update.Name
			f.users[i].UserType = update.UserType
		}
	}
	return nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) error {
	f.count("DeleteUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

func (f *fakeAPI) ListOpportunities(context.Context) ([]domain.Opportunity, error) {
	f.count("ListOpportunities")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Opportunity(nil), f.opportunities...), nil
}

func (f *fakeAPI) UpdateOpportunity(context.Context, domain.Opportunity) error {
	f.count("UpdateOpportunity")
	return f.mutateErr
}

func (f *fakeAPI) DeleteOpportunity(context.Context, int64) error {
	f.count("DeleteOpportunity")
	return f.mutateErr
}

func (f *fakeAPI) ListApplications(context.Context) ([]domain.Application, error) {
	f.count("ListApplications")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Application(nil), f.applications...), nil
}

func (f *fakeAPI) DeleteApplication(context.Context, int64) error {
	f.count("DeleteApplication")
	return f.mutateErr
}

func (f *fakeAPI) ListClinicReviews(ctx context.Context, clinicID int64) ([]domain.Review, error) {
	f.count("ListClinicReviews")
	f.mu.Lock()
	gate := f.reviewGate[clinicID]
	f.reviewSeen = append(f.reviewSeen, clinicID)
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.reviewErr[clinicID]; err != nil {
		return nil, err
	}
	return append([]domain.Review(nil), f.reviews[clinicID]...), nil
}

func (f *fakeAPI) DeleteReview(context.Context, int64, int64) error {
	f.count("DeleteReview")
	return f.mutateErr
}

func (f *fakeAPI) ListPlans(context.Context) ([]domain.SubscriptionPlan, error) {
	f.count("ListPlans")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.SubscriptionPlan(nil), f.plans...), nil
}

func (f *fakeAPI) CreatePlan(_ context.Context, plan domain.SubscriptionPlan) error {
	f.count("CreatePlan")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	plan.ID = int64(len(f.plans) + 1)
	f.plans = append(f.plans, plan)
	return nil
}

func (f *fakeAPI) UpdatePlan(context.Context, domain.SubscriptionPlan) error {
	f.count("UpdatePlan")
	return f.mutateErr
}

func (f *fakeAPI) DeletePlan(context.Context, int64) error {
	f.count("DeletePlan")
	return f.mutateErr
}

func (f *fakeAPI) AssignPlan(_ context.Context, req domain.AssignSubscription) error {
	f.count("AssignPlan")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.assigned = append(f.assigned, req)
	return nil
}

func (f *fakeAPI) ListUserSubscriptions(_ context.Context, userID int64) ([]domain.UserSubscription, error) {
	f.count("ListUserSubscriptions")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[userID], f.listErr
}

func (f *fakeAPI) SubscriptionStats(context.Context) (*domain.SubscriptionStats, error) {
	f.count("SubscriptionStats")
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.subStats, nil
}

func (f *fakeAPI) PaymentStats(context.Context) (*domain.PaymentStats, error) {
	f.count("PaymentStats")
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.payStats, nil
}
