package storage_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

const orderColumnsPattern = "SELECT id, user_id, items, total_amount, delivery_location, status, created_at, updated_at FROM orders"

func TestGetOrderByID_Success(t *testing.T) {
	// Создаем sqlmock для эмуляции базы данных.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "items", "total_amount", "delivery_location", "status", "created_at", "updated_at"}).
		AddRow("ORD1", "user-1", []byte(`[{"productId":"p-1","name":"Pizza","quantity":2,"price":8.5}]`),
			17.0, "Main St 1", "PENDING", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(orderColumnsPattern) + " WHERE id = \\$1").
		WithArgs("ORD1").WillReturnRows(rows)

	order, err := repo.GetOrderByID(ctx, "ORD1")
	assert.NoError(t, err)
	assert.Equal(t, "ORD1", order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, models.StatusPending, order.Status)
	// позиции распаковываются из JSONB
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Pizza", order.Items[0].Name)
	assert.Equal(t, 2.0, order.Items[0].Quantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "items", "total_amount", "delivery_location", "status", "created_at", "updated_at"})
	mock.ExpectQuery(regexp.QuoteMeta(orderColumnsPattern) + " WHERE id = \\$1").
		WithArgs("missing").WillReturnRows(rows)

	_, err = repo.GetOrderByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_GeneratesIDWhenEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	// пустой id подменяется в БД на gen_random_uuid()
	mock.ExpectQuery("INSERT INTO orders .+ RETURNING id, created_at, updated_at").
		WithArgs("", "user-1", sqlmock.AnyArg(), 17.0, "Main St 1", models.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("db-generated-id", now, now))

	order := &models.Order{
		UserID:           "user-1",
		Items:            []models.OrderItem{{ProductID: "p-1", Name: "Pizza", Quantity: 2, Price: 8.5}},
		TotalAmount:      17.0,
		DeliveryLocation: "Main St 1",
		Status:           models.StatusPending,
	}
	created, err := repo.CreateOrder(context.Background(), order)
	assert.NoError(t, err)
	assert.Equal(t, "db-generated-id", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	mock.ExpectExec("UPDATE orders").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateOrder(context.Background(), &models.Order{ID: "missing", Status: models.StatusConfirmed})
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	mock.ExpectExec("DELETE FROM orders WHERE id = \\$1").
		WithArgs("ORD1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.DeleteOrder(context.Background(), "ORD1"))

	mock.ExpectExec("DELETE FROM orders WHERE id = \\$1").
		WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteOrder(context.Background(), "missing"), storage.ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_FilterByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "items", "total_amount", "delivery_location", "status", "created_at", "updated_at"}).
		AddRow("ORD2", "user-1", []byte(`[]`), 10.0, "Main St 1", "CONFIRMED", now, now).
		AddRow("ORD1", "user-1", []byte(`[]`), 5.0, "Main St 1", "DELIVERED", now.Add(-time.Hour), now)

	mock.ExpectQuery(regexp.QuoteMeta(orderColumnsPattern)+" WHERE user_id = \\$1 ORDER BY created_at DESC").
		WithArgs("user-1").WillReturnRows(rows)

	orders, err := repo.ListOrders(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextOrderNumberTx_Increments(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCounterRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	// чтение с блокировкой, затем запись нового значения — в одной транзакции
	mock.ExpectQuery("SELECT last_number FROM order_counter WHERE id = 1 FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(41))
	mock.ExpectExec("UPDATE order_counter SET last_number = \\$1 WHERE id = 1").
		WithArgs(int64(42)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	number, err := repo.NextOrderNumberTx(ctx, tx)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), number)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextOrderNumberTx_SeedsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCounterRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT last_number FROM order_counter WHERE id = 1 FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"last_number"}))
	mock.ExpectExec("INSERT INTO order_counter").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE order_counter SET last_number = \\$1 WHERE id = 1").
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	number, err := repo.NextOrderNumberTx(ctx, tx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), number, "missing counter row is treated as zero")

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCategoryRepository(db)

	// 23505 unique_violation переводится в ErrCategoryExists
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Pizza").WillReturnError(&pq.Error{Code: "23505"})

	_, err = repo.CreateCategory(context.Background(), &models.Category{Name: "Pizza"})
	assert.ErrorIs(t, err, storage.ErrCategoryExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotificationsByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewNotificationRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "body", "type", "order_id", "status", "is_read", "created_at"}).
		AddRow(int64(2), "user-1", "Order Update", "Your order has been confirmed!", "order", "ORD1", "CONFIRMED", false, now).
		AddRow(int64(1), "user-1", "Order Update", "Your order is pending confirmation", "order", "ORD1", "PENDING", true, now.Add(-time.Minute))

	mock.ExpectQuery("SELECT id, user_id, title, body, type, order_id, status, is_read, created_at FROM notifications").
		WithArgs("user-1").WillReturnRows(rows)

	notifications, err := repo.GetNotificationsByUserID(context.Background(), "user-1")
	assert.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, models.StatusConfirmed, notifications[0].Status)
	assert.False(t, notifications[0].IsRead)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFCMToken_EmptyWhenNoRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(fcm_token, '') FROM users WHERE id = $1")).
		WithArgs("nobody").WillReturnRows(sqlmock.NewRows([]string{"fcm_token"}))

	token, err := repo.GetFCMToken(context.Background(), "nobody")
	assert.NoError(t, err, "missing profile is not an error for push lookup")
	assert.Empty(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}
