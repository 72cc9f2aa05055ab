package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestCheckNowRecordsStatuses(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer healthy.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	monitor := NewMonitor([]Target{
		{Name: "yargitay", URL: healthy.URL},
		{Name: "danistay", URL: failing.URL},
	}, WithLogger(arbor.NewLogger()), WithTimeout(5*time.Second))

	monitor.CheckNow(context.Background())

	snapshot := monitor.Snapshot()
	require.Len(t, snapshot, 2)

	// sorted by name
	assert.Equal(t, "danistay", snapshot[0].Name)
	assert.Equal(t, "yargitay", snapshot[1].Name)

	assert.False(t, snapshot[0].Healthy)
	assert.Equal(t, http.StatusServiceUnavailable, snapshot[0].StatusCode)
	assert.NotEmpty(t, snapshot[0].Error)

	assert.True(t, snapshot[1].Healthy)
	assert.Zero(t, snapshot[1].StatusCode)
	assert.Empty(t, snapshot[1].Error)
	assert.False(t, snapshot[1].CheckedAt.IsZero())
}

func TestRejectionStillCountsAsReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	monitor := NewMonitor([]Target{{Name: "kik", URL: srv.URL}})
	monitor.CheckNow(context.Background())

	snapshot := monitor.Snapshot()
	require.Len(t, snapshot, 1)
	assert.True(t, snapshot[0].Healthy)
	assert.Equal(t, http.StatusForbidden, snapshot[0].StatusCode)
}

func TestUnreachableHostMarkedUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()

	monitor := NewMonitor([]Target{{Name: "emsal", URL: deadURL}}, WithTimeout(2*time.Second))
	monitor.CheckNow(context.Background())

	snapshot := monitor.Snapshot()
	require.Len(t, snapshot, 1)
	assert.False(t, snapshot[0].Healthy)
	assert.Zero(t, snapshot[0].StatusCode)
	assert.NotEmpty(t, snapshot[0].Error)
}

func TestInsecureTargetSkipsVerification(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	monitor := NewMonitor([]Target{
		{Name: "verified", URL: srv.URL},
		{Name: "trusted", URL: srv.URL, Insecure: true},
	}, WithTimeout(5*time.Second))
	monitor.CheckNow(context.Background())

	snapshot := monitor.Snapshot()
	require.Len(t, snapshot, 2)

	byName := map[string]Status{}
	for _, status := range snapshot {
		byName[status.Name] = status
	}
	assert.False(t, byName["verified"].Healthy, "self-signed certificate should fail the strict probe")
	assert.True(t, byName["trusted"].Healthy)
}

func TestStartValidatesScheduleAndGuardsReentry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	monitor := NewMonitor([]Target{{Name: "rekabet", URL: srv.URL}}, WithLogger(arbor.NewLogger()))

	require.Error(t, monitor.Start("definitely not cron"))

	require.NoError(t, monitor.Start("@every 1h"))
	defer monitor.Stop()

	assert.Error(t, monitor.Start("@every 1h"))
}
