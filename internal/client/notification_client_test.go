package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trip-roster-api/internal/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) NotificationClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	return NewNotificationClient(server.URL, "internal-key", time.Second, zap.NewNop(), m)
}

func TestNotificationClient_SendNotification(t *testing.T) {
	var got NotificationEvent
	var apiKey, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		apiKey = r.Header.Get("X-Internal-API-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	event := NotificationEvent{
		Type:         NotificationDependencyConfirmed,
		ActorID:      uuid.New(),
		TargetUserID: uuid.New(),
		TripID:       uuid.New(),
		ResourceType: "trip",
	}
	require.NoError(t, c.SendNotification(context.Background(), event))

	assert.Equal(t, "/api/internal/notifications", path)
	assert.Equal(t, "internal-key", apiKey)
	assert.Equal(t, event.TargetUserID, got.TargetUserID)
	assert.Equal(t, NotificationDependencyConfirmed, got.Type)
	assert.NotEmpty(t, got.OccurredAt, "occurredAt is filled in")
}

func TestNotificationClient_SendBulkNotifications(t *testing.T) {
	var got BulkNotificationRequest
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/internal/notifications/bulk", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.SendBulkNotifications(context.Background(), nil))
	assert.Equal(t, 0, calls, "empty batch is not sent")

	events := []NotificationEvent{
		{Type: NotificationConditionsMet, TargetUserID: uuid.New()},
		{Type: NotificationConditionsMet, TargetUserID: uuid.New()},
	}
	require.NoError(t, c.SendBulkNotifications(context.Background(), events))
	assert.Equal(t, 1, calls)
	require.Len(t, got.Notifications, 2)
	for _, e := range got.Notifications {
		assert.NotEmpty(t, e.OccurredAt)
	}
}

func TestNotificationClient_ReportsFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := c.SendNotification(context.Background(), NotificationEvent{Type: NotificationConditionsMet})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)

	unreachable := NewNotificationClient("http://127.0.0.1:1", "", 100*time.Millisecond, zap.NewNop(), nil)
	err = unreachable.SendBulkNotifications(context.Background(), []NotificationEvent{{Type: NotificationConditionsMet}})
	assert.Error(t, err)
	assert.False(t, errors.As(err, &statusErr))
}

func TestNotificationClient_RecordsCallMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	c := NewNotificationClient(server.URL, "", time.Second, zap.NewNop(), m)
	require.Error(t, c.SendNotification(context.Background(), NotificationEvent{Type: NotificationConditionsMet}))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExternalAPIRequestsTotal.WithLabelValues("/api/internal/notifications", "POST", "429")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExternalAPIErrors.WithLabelValues("/api/internal/notifications", "too_many_requests")))
}
