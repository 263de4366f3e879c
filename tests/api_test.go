package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	security "github.com/y84-dev/API-FRIZZLY/internal/jwt-new"
)

// Сценарные тесты поверх запущенного сервера (go run ./cmd/server).
// Пользовательский JWT подписываем локально тем же секретом, что и сервер: в
// проде токены выдаёт внешний сервис идентификации, отдельного логина нет.

const baseURL = "http://localhost:8080"

// SubmitResponse структура ответа на оформление заказа
type SubmitResponse struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"orderId"`
	OrderNumber int64  `json:"orderNumber"`
}

func userToken(t *testing.T, userID string) string {
	require.NotEmpty(t, os.Getenv("JWT_SECRET"), "JWT_SECRET must be set to run API tests")

	token, err := security.NewToken(context.Background(), userID, userID+"@example.com", time.Hour)
	require.NoError(t, err, "signing test token should succeed")
	return token
}

func doJSON(t *testing.T, method, path, token string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "request should not error")
	return resp
}

// сервис отвечает на проверку живости
func TestHealth(t *testing.T) {
	resp, err := http.Get(baseURL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// заказы без токена недоступны
func TestOrdersUnauthorized(t *testing.T) {
	resp, err := http.Get(baseURL + "/api/orders")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// сценарий оформления заказа: сквозной номер растёт, заказ читается обратно
func TestSubmitOrder(t *testing.T) {
	token := userToken(t, "it-user-1")

	order := map[string]any{
		"order": map[string]any{
			"items": []map[string]any{
				{"productId": "p-1", "name": "Pizza", "quantity": 1, "price": 9.5},
			},
			"totalAmount":      9.5,
			"deliveryLocation": "Main St 1",
		},
	}
	resp := doJSON(t, http.MethodPost, "/api/order/submit", token, order)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submitResp SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&submitResp))
	assert.True(t, submitResp.Success)
	assert.Greater(t, submitResp.OrderNumber, int64(0))
	assert.Equal(t, "ORD", submitResp.OrderID[:3])

	// заказ виден владельцу
	getResp := doJSON(t, http.MethodGet, "/api/orders/"+submitResp.OrderID, token, nil)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	// и не виден чужому пользователю
	otherResp := doJSON(t, http.MethodGet, "/api/orders/"+submitResp.OrderID, userToken(t, "it-user-2"), nil)
	defer otherResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, otherResp.StatusCode)
}

// заказ без позиций отклоняется
func TestSubmitOrderInvalid(t *testing.T) {
	token := userToken(t, "it-user-1")

	resp := doJSON(t, http.MethodPost, "/api/order/submit", token, map[string]any{
		"order": map[string]any{"items": []any{}, "totalAmount": 0},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// каталог публичен, список приходит в обёртке
func TestProductsPublic(t *testing.T) {
	resp, err := http.Get(baseURL + "/api/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Products []map[string]any `json:"products"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
}

// удалённый заказ пропадает из выдачи. Событий удаления лента не шлёт:
// триггер orders_feed_notify срабатывает только на INSERT/UPDATE, поэтому
// дашборды избавляются от удалённых заказов при следующем опросе
// /api/admin/orders/recent, а не по событию.
func TestDeletedOrderDroppedFromListing(t *testing.T) {
	token := userToken(t, "it-user-3")

	order := map[string]any{
		"order": map[string]any{
			"items": []map[string]any{
				{"productId": "p-1", "name": "Pizza", "quantity": 1, "price": 9.5},
			},
			"totalAmount":      9.5,
			"deliveryLocation": "Main St 1",
		},
	}
	resp := doJSON(t, http.MethodPost, "/api/order/submit", token, order)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submitResp SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&submitResp))

	delResp := doJSON(t, http.MethodDelete, "/api/orders/"+submitResp.OrderID, token, nil)
	defer delResp.Body.Close()
	require.Equal(t, http.StatusOK, delResp.StatusCode)

	getResp := doJSON(t, http.MethodGet, "/api/orders/"+submitResp.OrderID, token, nil)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

// админский вход с неверными кредами
func TestAdminLoginInvalid(t *testing.T) {
	resp := doJSON(t, http.MethodPost, "/api/admin/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "wrong",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// админские эндпоинты закрыты от пользовательских токенов
func TestAdminOrdersForbiddenForUsers(t *testing.T) {
	resp := doJSON(t, http.MethodGet, "/api/admin/orders", userToken(t, "it-user-1"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
