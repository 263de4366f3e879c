package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// OrderStats — сводная статистика по заказам.
type OrderStats struct {
	TotalOrders  int            `json:"totalOrders"`
	TotalRevenue float64        `json:"totalRevenue"`
	StatusCounts map[string]int `json:"statusCounts"`
}

// AnalyticsService считает статистику заказов.
type AnalyticsService interface {
	// OrderStats возвращает статистику по заказам пользователя;
	// пустой userID (только админ) — по всем заказам.
	OrderStats(ctx context.Context, userID string) (*OrderStats, error)
}

type analyticsService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewAnalyticsService(log *slog.Logger, orderRepo storage.OrderStorage) AnalyticsService {
	return &analyticsService{log: log, orderRepo: orderRepo}
}

func (s *analyticsService) OrderStats(ctx context.Context, userID string) (*OrderStats, error) {
	const op = "service.AnalyticsService.OrderStats"

	orders, err := s.orderRepo.ListOrders(ctx, userID)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &OrderStats{StatusCounts: make(map[string]int)}
	for _, order := range orders {
		stats.TotalOrders++
		stats.TotalRevenue += order.TotalAmount
		stats.StatusCounts[string(order.Status)]++
	}
	return stats, nil
}
