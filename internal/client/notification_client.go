package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trip-roster-api/internal/metrics"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	// NotificationConditionsMet tells a conditional participant their conditions now hold
	NotificationConditionsMet NotificationType = "CONDITIONS_MET"
	// NotificationDependencyConfirmed tells a conditional participant that someone they wait on confirmed
	NotificationDependencyConfirmed NotificationType = "DEPENDENCY_CONFIRMED"
	// NotificationParticipantAdded tells a user they were added to a trip
	NotificationParticipantAdded NotificationType = "PARTICIPANT_ADDED"
)

// NotificationEvent represents a notification to be sent
type NotificationEvent struct {
	Type         NotificationType       `json:"type"`
	ActorID      uuid.UUID              `json:"actorId"`
	TargetUserID uuid.UUID              `json:"targetUserId"`
	TripID       uuid.UUID              `json:"tripId"`
	ResourceType string                 `json:"resourceType"`
	ResourceID   uuid.UUID              `json:"resourceId"`
	ResourceName string                 `json:"resourceName,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt   string                 `json:"occurredAt,omitempty"`
}

// BulkNotificationRequest represents a bulk notification request
type BulkNotificationRequest struct {
	Notifications []NotificationEvent `json:"notifications"`
}

// NotificationClient defines the interface for notification service communication
type NotificationClient interface {
	SendNotification(ctx context.Context, event NotificationEvent) error
	SendBulkNotifications(ctx context.Context, events []NotificationEvent) error
}

// notificationClient implements NotificationClient over the internal HTTP API
type notificationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a new Notification API client
func NewNotificationClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	return &notificationClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    m,
	}
}

// SendNotification sends a single notification. A failed delivery returns an
// error; callers treat notifications as best effort and only log it.
func (c *notificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	return c.post(ctx, "/api/internal/notifications", event,
		zap.String("type", string(event.Type)),
		zap.String("target_user_id", event.TargetUserID.String()),
	)
}

// SendBulkNotifications sends multiple notifications at once
func (c *notificationClient) SendBulkNotifications(ctx context.Context, events []NotificationEvent) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range events {
		if events[i].OccurredAt == "" {
			events[i].OccurredAt = now
		}
	}

	return c.post(ctx, "/api/internal/notifications/bulk", BulkNotificationRequest{Notifications: events},
		zap.Int("count", len(events)),
	)
}

func (c *notificationClient) post(ctx context.Context, path string, body interface{}, fields ...zap.Field) error {
	url := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(started)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
		defer resp.Body.Close()
	}
	c.metrics.RecordExternalAPICall(path, http.MethodPost, statusCode, duration, err)

	fields = append(fields, zap.Duration("duration", duration))
	if err != nil {
		return fmt.Errorf("notification service unreachable: %w", err)
	}
	if statusCode < 200 || statusCode >= 300 {
		return &StatusError{StatusCode: statusCode}
	}

	c.logger.Debug("Notification sent", fields...)
	return nil
}

// StatusError is returned when the notification service answers with a
// non-2xx status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notification service returned status %d", e.StatusCode)
}

// NoOpNotificationClient is a no-op implementation for when notifications are disabled
type NoOpNotificationClient struct{}

func NewNoOpNotificationClient() NotificationClient {
	return &NoOpNotificationClient{}
}

func (c *NoOpNotificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	return nil
}

func (c *NoOpNotificationClient) SendBulkNotifications(ctx context.Context, events []NotificationEvent) error {
	return nil
}
