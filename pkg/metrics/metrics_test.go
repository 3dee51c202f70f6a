package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestCollector_RegistersAndRecords(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(registry)

	collector.RecordProvisioningOutcome("identity", false)
	collector.RecordProvisioningOutcome("succeeded", true)
	collector.RecordCompensation(true)
	collector.RecordNotificationFailure()
	collector.RecordOrphanedIdentities(3)
	collector.RecordHTTPRequest(http.MethodPost, "/api/v1/employees", http.StatusCreated, 42*time.Millisecond)

	families, err := registry.Gather()
	assert.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	assert.True(t, names["secureplace_provisioning_total"])
	assert.True(t, names["secureplace_compensation_total"])
	assert.True(t, names["secureplace_notification_failed_total"])
	assert.True(t, names["secureplace_orphaned_identities"])
	assert.True(t, names["secureplace_http_requests_total"])
	assert.True(t, names["secureplace_http_request_duration_seconds"])
}

func TestHandler_ServesScrapes(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(registry)
	collector.RecordOrphanedIdentities(2)

	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "secureplace_orphaned_identities 2")
}
