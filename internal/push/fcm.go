package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Message — push-сообщение для зарегистрированного устройства.
type Message struct {
	Token        string
	Title        string
	Body         string
	Data         map[string]string
	HighPriority bool
}

// Sender доставляет сообщение внешнему push-сервису. Доставка best-effort,
// вызывающий сам решает, что делать с ошибкой (как правило — логировать).
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

const defaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// FCMSender — клиент FCM (HTTP API с серверным ключом).
type FCMSender struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// NewFCMSender создаёт клиента FCM. Пустой endpoint заменяется боевым.
func NewFCMSender(endpoint, serverKey string) *FCMSender {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &FCMSender{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmRequest struct {
	To           string            `json:"to"`
	Priority     string            `json:"priority,omitempty"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

func (s *FCMSender) Send(ctx context.Context, msg *Message) error {
	payload := fcmRequest{
		To:           msg.Token,
		Notification: fcmNotification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
	}
	if msg.HighPriority {
		payload.Priority = "high"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
