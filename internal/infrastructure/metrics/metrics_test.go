package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                               "/",
		"/metrics":                       "/metrics",
		"/admin/users/12/view":           "/admin/users/:id/view",
		"/admin/reviews/3/7/delete":      "/admin/reviews/:id/:id/delete",
		"/admin/plans":                   "/admin/plans",
		"/admin/users/42":                "/admin/users/:id",
		"/dashboard/upgrade":             "/dashboard/upgrade",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, CanonicalPath(input), input)
	}
}

func TestObserveUpstream(t *testing.T) {
	m := New()

	m.ObserveUpstream("list_users", 10*time.Millisecond, nil)
	m.ObserveUpstream("list_users", 20*time.Millisecond, errors.New("boom"))
	m.ObserveUpstream("list_users", 5*time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamRequestsTotal.WithLabelValues("list_users", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequestsTotal.WithLabelValues("list_users", "error")))
}

func TestRequestStarted(t *testing.T) {
	m := New()

	done := m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	done(http.MethodGet, "/admin", http.StatusOK)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/admin", "200")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveUpstream("x", time.Second, nil)
	m.StaleDiscarded("admin")
	m.Mutation("users", "delete", nil)
	m.RequestStarted()("GET", "/", 200)
}

func TestHandler(t *testing.T) {
	m := New()
	m.Mutation("plans", "create", nil)
	m.StaleDiscarded("admin")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `console_mutations_total{action="create",outcome="ok",resource="plans"} 1`)
	assert.Contains(t, rec.Body.String(), `console_stale_results_discarded_total{screen="admin"} 1`)
}
