package resources

import (
	"context"
	"sync"

	"github.com/clinicplace/console/internal/domain/marketplace"
)

// fakeAPI records mutations and serves fixed lists.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	users         []marketplace.User
	opportunities []marketplace.Opportunity
	applications  []marketplace.Application
	reviews       map[int64][]marketplace.Review
	plans         []marketplace.SubscriptionPlan

	lastUserUpdate marketplace.UserUpdate
	lastPlan       marketplace.SubscriptionPlan
	err            error
}

func (f *fakeAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeAPI) ListUsers(context.Context) ([]marketplace.User, error) {
	return f.users, f.record("ListUsers")
}

func (f *fakeAPI) UpdateUser(_ context.Context, id int64, update marketplace.UserUpdate) error {
	f.lastUserUpdate = update
	return f.record("UpdateUser " + idString(id))
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) error {
	return f.record("DeleteUser " + idString(id))
}

func (f *fakeAPI) ListOpportunities(context.Context) ([]marketplace.Opportunity, error) {
	return f.opportunities, f.record("ListOpportunities")
}

func (f *fakeAPI) UpdateOpportunity(_ context.Context, opp marketplace.Opportunity) error {
	return f.record("UpdateOpportunity " + idString(opp.ID))
}

func (f *fakeAPI) DeleteOpportunity(_ context.Context, id int64) error {
	return f.record("DeleteOpportunity " + idString(id))
}

func (f *fakeAPI) ListApplications(context.Context) ([]marketplace.Application, error) {
	return f.applications, f.record("ListApplications")
}

func (f *fakeAPI) DeleteApplication(_ context.Context, id int64) error {
	return f.record("DeleteApplication " + idString(id))
}

func (f *fakeAPI) ListClinicReviews(_ context.Context, clinicID int64) ([]marketplace.Review, error) {
	return f.reviews[clinicID], f.record("ListClinicReviews " + idString(clinicID))
}

func (f *fakeAPI) DeleteReview(_ context.Context, clinicID, reviewID int64) error {
	return f.record("DeleteReview " + idString(clinicID) + "/" + idString(reviewID))
}

func (f *fakeAPI) ListPlans(context.Context) ([]marketplace.SubscriptionPlan, error) {
	return f.plans, f.record("ListPlans")
}

func (f *fakeAPI) CreatePlan(_ context.Context, plan marketplace.SubscriptionPlan) error {
	f.lastPlan = plan
	return f.record("CreatePlan")
}

func (f *fakeAPI) UpdatePlan(_ context.Context, plan marketplace.SubscriptionPlan) error {
	f.lastPlan = plan
	return f.record("UpdatePlan " + idString(plan.ID))
}

func (f *fakeAPI) DeletePlan(_ context.Context, id int64) error {
	return f.record("DeletePlan " + idString(id))
}
