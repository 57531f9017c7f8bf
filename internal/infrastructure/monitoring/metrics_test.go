package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewMetricsIsolated(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordOperation("install", "ok", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.CommandsTotal.WithLabelValues("install", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CommandsTotal.WithLabelValues("install", "ok")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/status", "200", time.Millisecond)
		m.RecordOperation("list", "ok", time.Millisecond)
		m.RecordConfirmation("console", "approved")
		m.RecordChannelSetup("ok")
		m.SetBreakerState("channel", 2)
		NewTimer(m, "update").Stop("ok")
	})
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(Middleware(m))
	r.GET("/status", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/status", "/nope", "/also-nope"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/status", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestConfirmationsAndChannel(t *testing.T) {
	m := NewMetrics()

	m.RecordConfirmation("kdialog", "approved")
	m.RecordConfirmation("kdialog", "rejected")
	m.RecordConfirmation("kdialog", "rejected")
	m.RecordChannelSetup("skipped")
	m.SetBreakerState("channel", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Confirmations.WithLabelValues("kdialog", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChannelSetups.WithLabelValues("skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("channel")))
}

func TestHandlerExposition(t *testing.T) {
	m := NewMetrics()
	NewTimer(m, "list").Stop("ok")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `flatbridge_operations_total{operation="list",outcome="ok"} 1`))
	assert.Contains(t, body, "flatbridge_uptime_seconds")
	assert.Contains(t, body, "go_goroutines")
}
