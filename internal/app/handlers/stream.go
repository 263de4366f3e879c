package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// OrderStreamHandler обрабатывает GET /api/admin/stream/orders —
// живая лента изменений заказов в формате text/event-stream.
//
// На подключение заводится одна подписка на изменения хранилища и одна
// очередь; цикл записи и колбэк хранилища работают независимо. Если за
// heartbeat нет событий — шлём комментарий-пустышку, чтобы промежуточные
// прокси не закрыли простаивающее соединение. При отключении клиента
// подписка снимается — иначе на каждое брошенное соединение утёк бы
// живой слушатель.
func OrderStreamHandler(log *slog.Logger, feed storage.OrderFeed, heartbeat time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrderStreamHandler"
		logger := log.With(slog.String("op", op))

		flusher, ok := w.(http.Flusher)
		if !ok {
			respondErrorMsg(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		sub, err := feed.Subscribe(r.Context())
		if err != nil {
			logger.Error("failed to subscribe to order feed", slog.Any("error", err))
			respondErrorMsg(w, http.StatusInternalServerError, "failed to open stream")
			return
		}
		defer sub.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
		flusher.Flush()

		timer := time.NewTimer(heartbeat)
		defer timer.Stop()

		for {
			select {
			case <-r.Context().Done():
				logger.Info("stream client disconnected")
				return

			case event, ok := <-sub.Events():
				if !ok {
					// Подписка закрыта со стороны хранилища
					logger.Warn("order feed subscription closed")
					return
				}
				data, err := json.Marshal(event)
				if err != nil {
					logger.Error("failed to marshal feed event", slog.Any("error", err))
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, data)
				flusher.Flush()

				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(heartbeat)

			case <-timer.C:
				// Нет событий — поддерживаем соединение живым
				fmt.Fprint(w, ": heartbeat\n\n")
				flusher.Flush()
				timer.Reset(heartbeat)
			}
		}
	}
}
