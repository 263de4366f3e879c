package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
)

// Канал NOTIFY, в который триггер БД публикует изменения заказов
const ordersFeedChannel = "orders_feed"

// Subscription — подписка на изменения заказов. Close обязан вызываться
// при отключении клиента, иначе слушатель БД утечёт.
type Subscription interface {
	Events() <-chan models.OrderEvent
	Close()
}

// OrderFeed выдаёт подписки на изменения коллекции заказов.
// Каждая подписка держит собственного слушателя и собственную очередь.
type OrderFeed interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

type pqOrderFeed struct {
	dsn       string
	log       *slog.Logger
	queueSize int
}

// NewOrderFeed создаёт ленту изменений поверх LISTEN/NOTIFY.
func NewOrderFeed(dsn string, log *slog.Logger, queueSize int) OrderFeed {
	if queueSize <= 0 {
		queueSize = 32
	}
	return &pqOrderFeed{dsn: dsn, log: log, queueSize: queueSize}
}

func (f *pqOrderFeed) Subscribe(ctx context.Context) (Subscription, error) {
	const op = "storage.OrderFeed.Subscribe"
	logger := f.log.With(slog.String("op", op))

	listener := pq.NewListener(f.dsn, 2*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("listener event", slog.Int("event", int(ev)), slog.Any("error", err))
		}
	})
	if err := listener.Listen(ordersFeedChannel); err != nil {
		_ = listener.Close()
		return nil, err
	}

	sub := &pqSubscription{
		events:   make(chan models.OrderEvent, f.queueSize),
		listener: listener,
		done:     make(chan struct{}),
	}

	// Переводим уведомления БД в типизированные события. Горутина завершается
	// при Close (закрытие listener закрывает его Notify-канал) или отмене ctx.
	go func() {
		defer close(sub.events)
		for {
			select {
			case <-ctx.Done():
				sub.Close()
				return
			case <-sub.done:
				return
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				if n == nil {
					// lib/pq шлёт nil после переподключения
					continue
				}
				var event models.OrderEvent
				if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
					logger.Warn("malformed feed payload", slog.Any("error", err))
					continue
				}
				select {
				case sub.events <- event:
				default:
					// Клиент не успевает читать — событие отбрасываем,
					// дашборд получит актуальное состояние следующим событием
					logger.Warn("feed queue full, dropping event", slog.String("orderId", event.OrderID))
				}
			}
		}
	}()

	return sub, nil
}

type pqSubscription struct {
	events   chan models.OrderEvent
	listener *pq.Listener
	done     chan struct{}
	once     sync.Once
}

func (s *pqSubscription) Events() <-chan models.OrderEvent {
	return s.events
}

func (s *pqSubscription) Close() {
	s.once.Do(func() {
		close(s.done)
		_ = s.listener.Close()
	})
}
