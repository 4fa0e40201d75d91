package marketplace

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/metrics"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{routes: map[string]func(w http.ResponseWriter){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		api.mu.Lock()
		api.requests = append(api.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		handler, ok := api.routes[r.Method+" "+r.URL.Path]
		api.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handler(w)
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) on(route string, status int, payload any) {
	a.routes[route] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func (a *fakeAPI) last() recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[len(a.requests)-1]
}

func TestClient_ListUsers_ForwardsBearerToken(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.on("GET /api/admin/users", http.StatusOK, []map[string]any{
		{"id": 1, "name": "Ann", "email": "a@x.com", "user_type": "trainee"},
		{"id": 2, "name": "Bob", "email": "b@x.com", "user_type": "clinic"},
	})

	client := NewClient(srv.URL).WithToken("viewer-token")
	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, domain.UserTypeClinic, users[1].UserType)
	assert.Equal(t, "Bearer viewer-token", api.last().Auth)
}

func TestClient_WithoutToken_SendsNoAuthorization(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.on("GET /api/subscription-plans", http.StatusOK, []map[string]any{{"id": 1, "name": "Basic", "price": "0", "duration_days": 30}})

	plans, err := NewClient(srv.URL).ListPublicPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Empty(t, api.last().Auth)
}

func TestClient_UpdateUser_SendsOnlyNameAndType(t *testing.T) {
	api, srv := newFakeAPI(t)

	err := NewClient(srv.URL).UpdateUser(context.Background(), 7, domain.UserUpdate{Name: "Ann B", UserType: domain.UserTypeTrainee})
	require.NoError(t, err)

	req := api.last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/admin/users/7", req.Path)
	assert.JSONEq(t, `{"name":"Ann B","user_type":"trainee"}`, req.Body)
}

func TestClient_Paths(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
		query  string
	}{
		{"delete user", func(c *Client) error { return c.DeleteUser(ctx, 3) }, http.MethodDelete, "/api/admin/users/3", ""},
		{"delete opportunity", func(c *Client) error { return c.DeleteOpportunity(ctx, 4) }, http.MethodDelete, "/api/admin/opportunities/4", ""},
		{"update opportunity", func(c *Client) error { return c.UpdateOpportunity(ctx, domain.Opportunity{ID: 4, Title: "t"}) }, http.MethodPut, "/api/opportunities/4", ""},
		{"delete application", func(c *Client) error { return c.DeleteApplication(ctx, 5) }, http.MethodDelete, "/api/applications/5", ""},
		{"delete review", func(c *Client) error { return c.DeleteReview(ctx, 9, 12) }, http.MethodDelete, "/api/clinic/9/review/12", ""},
		{"create plan", func(c *Client) error { return c.CreatePlan(ctx, domain.SubscriptionPlan{ID: 99, Name: "Pro"}) }, http.MethodPost, "/api/admin/subscription-plans", ""},
		{"update plan", func(c *Client) error { return c.UpdatePlan(ctx, domain.SubscriptionPlan{ID: 2, Name: "Pro"}) }, http.MethodPut, "/api/admin/subscription-plans/2", ""},
		{"delete plan", func(c *Client) error { return c.DeletePlan(ctx, 2) }, http.MethodDelete, "/api/admin/subscription-plans/2", ""},
		{"assign plan", func(c *Client) error { return c.AssignPlan(ctx, domain.AssignSubscription{UserID: 1, PlanID: 2}) }, http.MethodPost, "/api/admin/assign-subscription", ""},
		{"recent opportunities", func(c *Client) error { _, err := c.ListRecentOpportunities(ctx, 5); return err }, http.MethodGet, "/api/opportunities", "limit=5"},
		{"clinic reviews", func(c *Client) error { _, err := c.ListClinicReviews(ctx, 8); return err }, http.MethodGet, "/api/clinic/8/reviews", ""},
		{"user subscriptions", func(c *Client) error { _, err := c.ListUserSubscriptions(ctx, 8); return err }, http.MethodGet, "/api/admin/user/8/subscriptions", ""},
		{"own subscriptions", func(c *Client) error { _, err := c.ListOwnSubscriptions(ctx); return err }, http.MethodGet, "/api/user/subscriptions", ""},
		{"subscription stats", func(c *Client) error { _, err := c.SubscriptionStats(ctx); return err }, http.MethodGet, "/api/admin/stats/subscriptions", ""},
		{"payment stats", func(c *Client) error { _, err := c.PaymentStats(ctx); return err }, http.MethodGet, "/api/admin/stats/payments", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, srv := newFakeAPI(t)
			require.NoError(t, tt.call(NewClient(srv.URL+"/")))

			req := api.last()
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.query, req.Query)
		})
	}
}

func TestClient_CreatePlan_DropsID(t *testing.T) {
	api, srv := newFakeAPI(t)

	require.NoError(t, NewClient(srv.URL).CreatePlan(context.Background(), domain.SubscriptionPlan{ID: 99, Name: "Pro", DurationDays: 30}))

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(api.last().Body), &sent))
	assert.NotContains(t, sent, "id")
	assert.Equal(t, "Pro", sent["name"])
}

func TestClient_UpstreamError(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.on("GET /api/admin/stats/subscriptions", http.StatusNotFound, map[string]string{"error": "missing"})

	m := metrics.New()
	_, err := NewClient(srv.URL, WithMetrics(m)).SubscriptionStats(context.Background())
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusNotFound, upErr.Status)
	assert.Equal(t, "subscription stats", upErr.Operation)
	assert.NotErrorIs(t, err, domain.ErrAccessDenied)
}

func TestClient_RejectedCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			api, srv := newFakeAPI(t)
			api.on("GET /api/admin/users", status, map[string]string{"error": "denied"})

			_, err := NewClient(srv.URL).ListUsers(context.Background())
			assert.ErrorIs(t, err, domain.ErrAccessDenied)
		})
	}
}

func TestClient_OversizedResponse(t *testing.T) {
	api, srv := newFakeAPI(t)
	users := make([]map[string]any, 10)
	for i := range users {
		users[i] = map[string]any{"id": i + 1, "name": "Ann", "email": "a@x.com", "user_type": "trainee"}
	}
	api.on("GET /api/admin/users", http.StatusOK, users)

	client := NewClient(srv.URL)
	client.maxBody = 64

	_, err := client.ListUsers(context.Background())
	assert.ErrorContains(t, err, "list users: response exceeds 64 bytes")

	client.maxBody = maxResponseSize
	got, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestClient_TransportError(t *testing.T) {
	_, srv := newFakeAPI(t)
	srv.Close()

	_, err := NewClient(srv.URL).ListApplications(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list applications: send request")
}

func TestClient_DecodesStats(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.on("GET /api/admin/stats/subscriptions", http.StatusOK, map[string]any{
		"byPlanUsers": []map[string]any{{"plan_type": "Pro", "user_count": 4}},
	})

	stats, err := NewClient(srv.URL).SubscriptionStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.ByPlanUsers, 1)
	assert.Equal(t, 4, stats.ByPlanUsers[0].UserCount)
}
