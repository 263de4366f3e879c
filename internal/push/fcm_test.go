package push_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y84-dev/API-FRIZZLY/internal/push"
)

func TestFCMSender_Send(t *testing.T) {
	var got struct {
		To           string            `json:"to"`
		Priority     string            `json:"priority"`
		Notification map[string]string `json:"notification"`
		Data         map[string]string `json:"data"`
	}
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := push.NewFCMSender(srv.URL, "server-key-1")
	err := sender.Send(context.Background(), &push.Message{
		Token:        "device-token",
		Title:        "Order Update",
		Body:         "Your order has been confirmed!",
		HighPriority: true,
		Data:         map[string]string{"orderId": "ORD1", "type": "order"},
	})
	require.NoError(t, err)

	assert.Equal(t, "key=server-key-1", gotAuth)
	assert.Equal(t, "device-token", got.To)
	assert.Equal(t, "high", got.Priority)
	assert.Equal(t, "Order Update", got.Notification["title"])
	assert.Equal(t, "ORD1", got.Data["orderId"])
}

func TestFCMSender_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := push.NewFCMSender(srv.URL, "bad-key")
	err := sender.Send(context.Background(), &push.Message{Token: "device-token"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
