package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRelayCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRelay(reg)

	m.OnIngested("automation")
	m.OnIngested("automation")
	m.OnNotify(true)
	m.OnNotify(false)
	m.OnStoreError()
	m.OnOddsFetch("cached")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Received.WithLabelValues("automation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OddsFetches.WithLabelValues("cached")))
}

func TestHandler_MetricsAndHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRelay(reg).OnIngested("manual")

	h := Handler(reg, func(ctx context.Context) error { return nil })

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `relay_webhooks_received_total{origin="manual"} 1`))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestHandler_Unhealthy(t *testing.T) {
	h := Handler(prometheus.NewRegistry(), func(ctx context.Context) error { return errors.New("disk gone") })

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "disk gone")
}
