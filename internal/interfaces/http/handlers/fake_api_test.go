package handlers_test

import (
	"context"
	"sync"

	domain "github.com/clinicplace/console/internal/domain/marketplace"
)

// fakeAPI serves both the admin console and the member dashboard.
type fakeAPI struct {
	mu sync.Mutex

	users         []domain.User
	opportunities []domain.Opportunity
	applications  []domain.Application
	plans         []domain.SubscriptionPlan
	own           []domain.UserSubscription
	listErr       error

	calls map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
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

func (f *fakeAPI) ListUsers(context.Context) ([]domain.User, error) {
	f.count("ListUsers")
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
	return append([]domain.Opportunity(nil), f.opportunities...), nil
}

func (f *fakeAPI) ListRecentOpportunities(_ context.Context, limit int) ([]domain.Opportunity, error) {
	f.count("ListRecentOpportunities")
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit < len(f.opportunities) {
		return append([]domain.Opportunity(nil), f.opportunities[:limit]...), nil
	}
	return append([]domain.Opportunity(nil), f.opportunities...), nil
}

func (f *fakeAPI) UpdateOpportunity(context.Context, domain.Opportunity) error {
	f.count("UpdateOpportunity")
	return nil
}

func (f *fakeAPI) DeleteOpportunity(context.Context, int64) error {
	f.count("DeleteOpportunity")
	return nil
}

func (f *fakeAPI) ListApplications(context.Context) ([]domain.Application, error) {
	f.count("ListApplications")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Application(nil), f.applications...), nil
}

func (f *fakeAPI) DeleteApplication(context.Context, int64) error {
	f.count("DeleteApplication")
	return nil
}

func (f *fakeAPI) ListClinicReviews(context.Context, int64) ([]domain.Review, error) {
	f.count("ListClinicReviews")
	return nil, nil
}

func (f *fakeAPI) DeleteReview(context.Context, int64, int64) error {
	f.count("DeleteReview")
	return nil
}

func (f *fakeAPI) ListPlans(context.Context) ([]domain.SubscriptionPlan, error) {
	f.count("ListPlans")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.SubscriptionPlan(nil), f.plans...), nil
}

func (f *fakeAPI) ListPublicPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	f.count("ListPublicPlans")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.SubscriptionPlan(nil), f.plans...), nil
}

func (f *fakeAPI) CreatePlan(_ context.Context, plan domain.SubscriptionPlan) error {
	f.count("CreatePlan")
	f.mu.Lock()
	defer f.mu.Unlock()
	plan.ID = int64(len(f.plans) + 1)
	f.plans = append(f.plans, plan)
	return nil
}

func (f *fakeAPI) UpdatePlan(context.Context, domain.SubscriptionPlan) error {
	f.count("UpdatePlan")
	return nil
}

func (f *fakeAPI) DeletePlan(context.Context, int64) error {
	f.count("DeletePlan")
	return nil
}

func (f *fakeAPI) AssignPlan(context.Context, domain.AssignSubscription) error {
	f.count("AssignPlan")
	return nil
}

func (f *fakeAPI) ListUserSubscriptions(context.Context, int64) ([]domain.UserSubscription, error) {
	f.count("ListUserSubscriptions")
	return nil, nil
}

func (f *fakeAPI) ListOwnSubscriptions(context.Context) ([]domain.UserSubscription, error) {
	f.count("ListOwnSubscriptions")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.UserSubscription(nil), f.own...), nil
}

func (f *fakeAPI) SubscriptionStats(context.Context) (*domain.SubscriptionStats, error) {
	f.count("SubscriptionStats")
	return &domain.SubscriptionStats{}, nil
}

func (f *fakeAPI) PaymentStats(context.Context) (*domain.PaymentStats, error) {
	f.count("PaymentStats")
	return &domain.PaymentStats{}, nil
}
