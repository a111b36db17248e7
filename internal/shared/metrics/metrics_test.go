package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Recorders(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/api/v1/projects", 200, 10*time.Millisecond)
	m.RecordTransition("accept")
	m.RecordTransition("accept")
	m.RecordApplication("duplicate")
	m.RecordDeparture("left")
	m.RecordNotification("info", "delivered")
	m.SetBreakerState("notification-sink", 2)
	m.RecordCacheHit("membership")
	m.RecordCacheMiss("membership")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/projects", "2xx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("accept")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ApplicationsTotal.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeparturesTotal.WithLabelValues("left")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("info", "delivered")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("notification-sink")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("membership")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("membership")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTransition("accept")
		m.RecordCacheHit("membership")
		m.RecordHTTPRequest("GET", "/", 500, time.Second)
	})
}

func TestStatusCodeToString(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{304, "3xx"},
		{409, "4xx"},
		{503, "5xx"},
		{0, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusCodeToString(tt.code))
	}
}
