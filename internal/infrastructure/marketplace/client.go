// Package marketplace is the HTTP client of the marketplace JSON API. Every
// record shown by the console originates from, and every mutation goes to,
// this API.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/metrics"
	"github.com/clinicplace/console/internal/shared/logger"
)

// maxResponseSize caps how much of a response body is read (8MB).
const maxResponseSize = 8 << 20

// Client is the marketplace API client. A Client without a token sends
// anonymous requests; use WithToken to act on behalf of a viewer.
type Client struct {
	baseURL    string
	timeout    time.Duration
	base       http.RoundTripper
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     logger.Interface
	maxBody    int64
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithTransport sets the base round tripper (tests pass httptest transports).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.base = rt
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the HTTP client default
// of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l logger.Interface) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. "https://api.example.com"). Paths are appended verbatim.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    http.DefaultTransport,
		logger:  logger.NewNop(),
		maxBody: maxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = &http.Client{Transport: c.base, Timeout: c.timeout}
	return c
}

// WithToken returns a copy of the client that sends token as a bearer
// credential on every request.
func (c *Client) WithToken(token string) *Client {
	if token == "" {
		return c
	}
	clone := *c
	clone.httpClient = &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.base,
		},
		Timeout: c.timeout,
	}
	return &clone
}

// ListUsers retrieves every user (admin view).
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.doRequest(ctx, "list users", http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser changes a user's name and type. No other field is sent.
func (c *Client) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) error {
	return c.doRequest(ctx, "update user", http.MethodPut, "/api/admin/users/"+idPath(id), update, nil)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doRequest(ctx, "delete user", http.MethodDelete, "/api/admin/users/"+idPath(id), nil, nil)
}

// ListOpportunities retrieves every opportunity (admin view).
func (c *Client) ListOpportunities(ctx context.Context) ([]domain.Opportunity, error) {
	var opps []domain.Opportunity
	if err := c.doRequest(ctx, "list opportunities", http.MethodGet, "/api/admin/opportunities", nil, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

// ListRecentOpportunities retrieves at most limit opportunities from the
// member endpoint.
func (c *Client) ListRecentOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var opps []domain.Opportunity
	if err := c.doRequest(ctx, "list recent opportunities", http.MethodGet, "/api/opportunities?"+q.Encode(), nil, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

// UpdateOpportunity sends the full record.
func (c *Client) UpdateOpportunity(ctx context.Context, opp domain.Opportunity) error {
	return c.doRequest(ctx, "update opportunity", http.MethodPut, "/api/opportunities/"+idPath(opp.ID), opp, nil)
}

// DeleteOpportunity removes an opportunity.
func (c *Client) DeleteOpportunity(ctx context.Context, id int64) error {
	return c.doRequest(ctx, "delete opportunity", http.MethodDelete, "/api/admin/opportunities/"+idPath(id), nil, nil)
}

// ListApplications retrieves the applications visible to the caller.
func (c *Client) ListApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.doRequest(ctx, "list applications", http.MethodGet, "/api/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// DeleteApplication removes an application.
func (c *Client) DeleteApplication(ctx context.Context, id int64) error {
	return c.doRequest(ctx, "delete application", http.MethodDelete, "/api/applications/"+idPath(id), nil, nil)
}

// ListClinicReviews retrieves the reviews left for one clinic.
func (c *Client) ListClinicReviews(ctx context.Context, clinicID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.doRequest(ctx, "list clinic reviews", http.MethodGet, "/api/clinic/"+idPath(clinicID)+"/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// DeleteReview removes a review. The API addresses reviews under their clinic.
func (c *Client) DeleteReview(ctx context.Context, clinicID, reviewID int64) error {
	path := "/api/clinic/" + idPath(clinicID) + "/review/" + idPath(reviewID)
	return c.doRequest(ctx, "delete review", http.MethodDelete, path, nil, nil)
}

// ListPlans retrieves the plan catalog from the admin endpoint.
func (c *Client) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	var plans []domain.SubscriptionPlan
	if err := c.doRequest(ctx, "list plans", http.MethodGet, "/api/admin/subscription-plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ListPublicPlans retrieves the plan catalog from the member endpoint.
func (c *Client) ListPublicPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	var plans []domain.SubscriptionPlan
	if err := c.doRequest(ctx, "list public plans", http.MethodGet, "/api/subscription-plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreatePlan adds a plan. The plan's ID is ignored.
func (c *Client) CreatePlan(ctx context.Context, plan domain.SubscriptionPlan) error {
	plan.ID = 0
	return c.doRequest(ctx, "create plan", http.MethodPost, "/api/admin/subscription-plans", plan, nil)
}

// UpdatePlan sends the full plan.
func (c *Client) UpdatePlan(ctx context.Context, plan domain.SubscriptionPlan) error {
	return c.doRequest(ctx, "update plan", http.MethodPut, "/api/admin/subscription-plans/"+idPath(plan.ID), plan, nil)
}

// DeletePlan removes a plan.
func (c *Client) DeletePlan(ctx context.Context, id int64) error {
	return c.doRequest(ctx, "delete plan", http.MethodDelete, "/api/admin/subscription-plans/"+idPath(id), nil, nil)
}

// AssignPlan grants a plan to a user.
func (c *Client) AssignPlan(ctx context.Context, req domain.AssignSubscription) error {
	return c.doRequest(ctx, "assign subscription", http.MethodPost, "/api/admin/assign-subscription", req, nil)
}

// ListUserSubscriptions retrieves one user's subscription history (admin view).
func (c *Client) ListUserSubscriptions(ctx context.Context, userID int64) ([]domain.UserSubscription, error) {
	var subs []domain.UserSubscription
	if err := c.doRequest(ctx, "list user subscriptions", http.MethodGet, "/api/admin/user/"+idPath(userID)+"/subscriptions", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListOwnSubscriptions retrieves the caller's own subscriptions.
func (c *Client) ListOwnSubscriptions(ctx context.Context) ([]domain.UserSubscription, error) {
	var subs []domain.UserSubscription
	if err := c.doRequest(ctx, "list own subscriptions", http.MethodGet, "/api/user/subscriptions", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// SubscriptionStats retrieves users per plan.
func (c *Client) SubscriptionStats(ctx context.Context) (*domain.SubscriptionStats, error) {
	var stats domain.SubscriptionStats
	if err := c.doRequest(ctx, "subscription stats", http.MethodGet, "/api/admin/stats/subscriptions", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// PaymentStats retrieves total revenue and revenue by month.
func (c *Client) PaymentStats(ctx context.Context) (*domain.PaymentStats, error) {
	var stats domain.PaymentStats
	if err := c.doRequest(ctx, "payment stats", http.MethodGet, "/api/admin/stats/payments", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}

// doRequest performs an HTTP request and decodes the JSON response into result.
// The API answers with bare JSON values, not an envelope.
func (c *Client) doRequest(ctx context.Context, operation, method, path string, body any, result any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveUpstream(strings.ReplaceAll(operation, " ", "_"), time.Since(start), err)
		if err != nil {
			c.logger.Warnw("marketplace api call failed",
				"operation", operation,
				"method", method,
				"path", path,
				"error", err,
			)
		}
	}()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", operation, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: send request: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", operation, err)
	}
	if int64(len(respBody)) > c.maxBody {
		return fmt.Errorf("%s: response exceeds %d bytes", operation, c.maxBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Operation: operation, Status: resp.StatusCode, Body: string(respBody)}
	}

	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("%s: unmarshal response: %w", operation, err)
	}
	return nil
}
