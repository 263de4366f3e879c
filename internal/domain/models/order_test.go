package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
)

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, models.StatusPending.IsValid())
	assert.True(t, models.StatusOutForDelivery.IsValid())
	assert.False(t, models.Status("SHIPPED").IsValid())
	assert.False(t, models.Status("").IsValid())
	// значения чувствительны к регистру
	assert.False(t, models.Status("pending").IsValid())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    models.Status
		to      models.Status
		allowed bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusConfirmed, models.StatusPreparing, true},
		{models.StatusPreparing, models.StatusReadyForPickup, true},
		{models.StatusPreparing, models.StatusOnWay, true},
		{models.StatusPreparing, models.StatusOutForDelivery, true},
		{models.StatusOnWay, models.StatusDelivered, true},
		{models.StatusOutForDelivery, models.StatusDelivered, true},
		// отмена и возврат доступны из любого нетерминального статуса
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusOnWay, models.StatusReturned, true},
		// перескок через шаг запрещён
		{models.StatusPending, models.StatusPreparing, false},
		{models.StatusConfirmed, models.StatusDelivered, false},
		// движение назад запрещено
		{models.StatusPreparing, models.StatusPending, false},
		// терминальные статусы не меняются
		{models.StatusDelivered, models.StatusReturned, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusReturned, models.StatusCancelled, false},
		// переход в невалидный статус запрещён
		{models.StatusPending, models.Status("SHIPPED"), false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}

func TestStatus_Message(t *testing.T) {
	assert.Equal(t, "✨ Your order has been delivered!", models.StatusDelivered.Message())
	assert.Equal(t, "Your order has been confirmed!", models.StatusConfirmed.Message())
	// ON_WAY и OUT_FOR_DELIVERY — один и тот же текст
	assert.Equal(t, models.StatusOnWay.Message(), models.StatusOutForDelivery.Message())
	// для неизвестного значения — общий текст
	assert.Equal(t, "Order status: SHIPPED", models.Status("SHIPPED").Message())
}
