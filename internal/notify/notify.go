// Package notify delivers push notifications for group activity.
//
// Dispatch is fire-and-forget: a buffered worker sends in the background,
// failures are logged and never surface to the operation that produced the
// notification.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notification is one push message addressed to a group topic.
type Notification struct {
	Title     string
	Body      string
	GroupID   string
	GroupName string
}

// Topic returns the FCM topic the notification targets.
func (n Notification) Topic() string {
	return "group_" + n.GroupID
}

// Notifier sends a single notification.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// FCMClient sends notifications through the FCM HTTP endpoint. It is
// constructed once at startup and passed to whoever needs it.
type FCMClient struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// NewFCMClient creates an FCM notifier for the given endpoint and server
// key.
func NewFCMClient(endpoint, serverKey string) *FCMClient {
	return &FCMClient{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send posts the notification to the FCM topic for the group.
func (c *FCMClient) Send(ctx context.Context, n Notification) error {
	msg := fcmMessage{
		To:           "/topics/" + n.Topic(),
		Notification: fcmNotification{Title: n.Title, Body: n.Body},
		Data: map[string]string{
			"groupId":   n.GroupID,
			"groupName": n.GroupName,
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("fcm returned status %d", resp.StatusCode)
	}
	return nil
}

// Disabled is a Notifier that drops everything. Used when no FCM server
// key is configured.
type Disabled struct{}

func (Disabled) Send(context.Context, Notification) error { return nil }
