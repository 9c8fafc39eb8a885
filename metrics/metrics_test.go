package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(Generations.WithLabelValues("Hashtags", "success"))
	IncGeneration("Hashtags", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(Generations.WithLabelValues("Hashtags", "success")))

	before = testutil.ToFloat64(Exports.WithLabelValues("csv"))
	IncExport("csv")
	assert.Equal(t, before+1, testutil.ToFloat64(Exports.WithLabelValues("csv")))

	before = testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/v1/health", "200"))
	ObserveHTTP("GET", "/api/v1/health", "200", 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/v1/health", "200")))
}

func TestHandlerExposesStudioMetrics(t *testing.T) {
	IncError("llm", "complete")
	ObserveCompletion("mock", time.Second)
	ObserveCalendarRows(30)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `studio_errors_total{component="llm",type="complete"}`)
	assert.Contains(t, body, `studio_completion_duration_seconds_count{provider="mock"}`)
	assert.Contains(t, body, "studio_calendar_rows_bucket")
}
