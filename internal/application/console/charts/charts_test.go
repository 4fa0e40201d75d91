package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicplace/console/internal/domain/marketplace"
)

func dataOf(t *testing.T, c Chart) []float64 {
	t.Helper()
	require.Len(t, c.Spec.Data.Datasets, 1)
	return c.Spec.Data.Datasets[0].Data
}

func TestUserTypes(t *testing.T) {
	users := []marketplace.User{
		{ID: 1, UserType: marketplace.UserTypeTrainee},
		{ID: 2, UserType: marketplace.UserTypeClinic},
		{ID: 3, UserType: marketplace.UserTypeTrainee},
		{ID: 4, UserType: "robot"},
	}

	c := UserTypes("user-types", "User Types", users)

	assert.Equal(t, Pie, c.Spec.Type)
	assert.Equal(t, []string{"Clinics", "Trainees", "Admins"}, c.Spec.Data.Labels)
	assert.Equal(t, []float64{1, 2, 0}, dataOf(t, c))
	assert.Len(t, c.Spec.Data.Datasets[0].BackgroundColor, 3)
}

func TestCountByDate(t *testing.T) {
	tests := []struct {
		name       string
		dates      []string
		wantLabels []string
		wantData   []float64
	}{
		{
			name:       "empty",
			wantLabels: []string{},
			wantData:   []float64{},
		},
		{
			name:       "sorted unique days",
			dates:      []string{"2024-03-02T10:00:00Z", "2024-03-01T09:00:00Z", "2024-03-02T23:59:00Z"},
			wantLabels: []string{"2024-03-01", "2024-03-02"},
			wantData:   []float64{1, 2},
		},
		{
			name:       "missing timestamp counted under blank day",
			dates:      []string{"", "2024-01-01"},
			wantLabels: []string{"", "2024-01-01"},
			wantData:   []float64{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, data := countByDate(tt.dates)
			assert.Equal(t, tt.wantLabels, labels)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestOpportunitiesByClinic_FirstAppearanceOrder(t *testing.T) {
	opps := []marketplace.Opportunity{
		{ID: 1, ClinicID: 7},
		{ID: 2, ClinicID: 3},
		{ID: 3, ClinicID: 7},
	}

	c := OpportunitiesByClinic(opps)

	assert.Equal(t, []string{"Clinic 7", "Clinic 3"}, c.Spec.Data.Labels)
	assert.Equal(t, []float64{2, 1}, dataOf(t, c))
}

func TestOverTime_IsCumulative(t *testing.T) {
	apps := []marketplace.Application{
		{AppliedAt: "2024-02-01T00:00:00Z"},
		{AppliedAt: "2024-02-01T05:00:00Z"},
		{AppliedAt: "2024-02-03T00:00:00Z"},
	}

	c := ApplicationsOverTime(apps)

	assert.Equal(t, Line, c.Spec.Type)
	assert.Equal(t, []string{"2024-02-01", "2024-02-01", "2024-02-03"}, c.Spec.Data.Labels)
	assert.Equal(t, []float64{1, 2, 3}, dataOf(t, c))
}

func TestRatingDistribution(t *testing.T) {
	reviews := []marketplace.Review{
		{Rating: 5}, {Rating: 5}, {Rating: 1}, {Rating: 3}, {Rating: 0}, {Rating: 9},
	}

	c := RatingDistribution(reviews)

	assert.Equal(t, []string{"5 Stars", "4 Stars", "3 Stars", "2 Stars", "1 Star"}, c.Spec.Data.Labels)
	assert.Equal(t, []float64{2, 0, 1, 0, 1}, dataOf(t, c))
}

func TestStatsCharts_NilStats(t *testing.T) {
	pop := PlanPopularity(nil)
	rev := Revenue(nil)

	assert.True(t, pop.Empty())
	assert.True(t, rev.Empty())
	assert.Equal(t, []string{}, pop.Spec.Data.Labels)
	assert.Equal(t, []float64{}, dataOf(t, rev))
}

func TestStatsCharts_AsIs(t *testing.T) {
	subs := &marketplace.SubscriptionStats{ByPlanUsers: []marketplace.PlanUsers{
		{PlanType: "basic", UserCount: 4},
		{PlanType: "pro", UserCount: 1},
	}}
	pays := &marketplace.PaymentStats{
		TotalRevenue: 150,
		ByMonth: []marketplace.MonthTotal{
			{Month: "2024-01", Total: 100},
			{Month: "2024-02", Total: 50},
		},
	}

	pop := PlanPopularity(subs)
	rev := Revenue(pays)

	assert.Equal(t, []string{"basic", "pro"}, pop.Spec.Data.Labels)
	assert.Equal(t, []float64{4, 1}, dataOf(t, pop))
	assert.Equal(t, []string{"2024-01", "2024-02"}, rev.Spec.Data.Labels)
	assert.Equal(t, []float64{100, 50}, dataOf(t, rev))
	assert.False(t, rev.Empty())
}

func TestPlanCharts(t *testing.T) {
	plans := []marketplace.SubscriptionPlan{
		{Name: "Basic", Price: 0, DurationDays: 30},
		{Name: "Pro", Price: 9.99, DurationDays: 90},
	}

	prices := PlanPrices(plans)
	durations := PlanDurations(plans)

	assert.Equal(t, []string{"Basic", "Pro"}, prices.Spec.Data.Labels)
	assert.Equal(t, []float64{0, 9.99}, dataOf(t, prices))
	assert.Equal(t, []float64{30, 90}, dataOf(t, durations))
	assert.Equal(t, "Duration (days)", durations.Spec.Data.Datasets[0].Label)
}
