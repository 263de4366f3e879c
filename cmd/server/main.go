package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/y84-dev/API-FRIZZLY/internal/adminauth"
	"github.com/y84-dev/API-FRIZZLY/internal/app"
	"github.com/y84-dev/API-FRIZZLY/internal/app/handlers"
	"github.com/y84-dev/API-FRIZZLY/internal/config"
	"github.com/y84-dev/API-FRIZZLY/internal/jwt-new/jwtmiddleware"
	"github.com/y84-dev/API-FRIZZLY/internal/lib/logger"
	"github.com/y84-dev/API-FRIZZLY/internal/lib/logger/handlers/urllog"
	"github.com/y84-dev/API-FRIZZLY/internal/push"
	"github.com/y84-dev/API-FRIZZLY/internal/service"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

func main() {
	// .env опционален: в проде переменные приходят из окружения
	_ = godotenv.Load()

	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// реализация слоев по работе с БД по каждому направлению
	orderRepo := storage.NewOrderRepository(application.DB)
	counterRepo := storage.NewCounterRepository(application.DB)
	notifRepo := storage.NewNotificationRepository(application.DB)
	userRepo := storage.NewUserRepository(application.DB)
	adminRepo := storage.NewAdminRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	categoryRepo := storage.NewCategoryRepository(application.DB)
	orderFeed := storage.NewOrderFeed(application.DSN, log, cfg.Stream.QueueSize)

	sender := push.NewFCMSender(cfg.Push.Endpoint, cfg.Push.ServerKey)

	notifyService := service.NewNotificationService(application.Logger, notifRepo, userRepo, adminRepo, sender)
	orderService := service.NewOrderService(application.Logger, orderRepo, notifyService)
	submitService := service.NewSubmitService(application.Logger, application.DB, orderRepo, counterRepo, notifyService)
	productService := service.NewProductService(application.Logger, productRepo)
	categoryService := service.NewCategoryService(application.Logger, categoryRepo, cfg.Cache.CategoryTTL)
	adminAuthService := service.NewAdminAuthService(application.Logger, adminRepo)
	userService := service.NewUserService(application.Logger, userRepo)
	analyticsService := service.NewAnalyticsService(application.Logger, orderRepo)

	// публичные эндпоинты
	router.Get("/", handlers.BannerHandler())
	router.Get("/api/health", handlers.HealthHandler())
	router.Get("/api/products", handlers.ListProductsHandler(application.Logger, productService))
	router.Get("/api/categories", handlers.ListCategoriesHandler(application.Logger, categoryService))
	router.Post("/api/users", handlers.CreateUserHandler(application.Logger, userService))
	router.Post("/api/admin/login", handlers.AdminLoginHandler(application.Logger, adminAuthService))

	// эндпоинты пользователя, доступ по JWT
	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)

		r.Get("/api/orders", handlers.ListOrdersHandler(application.Logger, orderService))
		r.Post("/api/orders", handlers.CreateOrderHandler(application.Logger, orderService))
		r.Get("/api/orders/{id}", handlers.GetOrderHandler(application.Logger, orderService))
		r.Put("/api/orders/{id}", handlers.UpdateOrderHandler(application.Logger, orderService))
		r.Delete("/api/orders/{id}", handlers.DeleteOrderHandler(application.Logger, orderService))
		// оформление заказа с выдачей сквозного номера
		r.Post("/api/order/submit", handlers.SubmitOrderHandler(application.Logger, submitService))

		r.Post("/api/products", handlers.CreateProductHandler(application.Logger, productService))
		r.Put("/api/products/{id}", handlers.UpdateProductHandler(application.Logger, productService))
		r.Delete("/api/products/{id}", handlers.DeleteProductHandler(application.Logger, productService))

		r.Get("/api/users/{id}", handlers.GetUserHandler(application.Logger, userService))
		r.Post("/api/fcm-token", handlers.UserFCMTokenHandler(application.Logger, userService))
		r.Get("/api/analytics/orders", handlers.OrderStatsHandler(application.Logger, analyticsService))

		r.Get("/api/notifications", handlers.ListNotificationsHandler(application.Logger, notifyService))
		r.Put("/api/notifications/{id}/read", handlers.MarkNotificationReadHandler(application.Logger, notifyService))
	})

	// админские эндпоинты, доступ по админскому токену
	router.Group(func(r chi.Router) {
		r.Use(adminauth.NewMiddleware(log, adminRepo))

		r.Get("/api/admin/orders", handlers.AdminListOrdersHandler(application.Logger, orderService))
		r.Get("/api/admin/orders/recent", handlers.AdminRecentOrdersHandler(application.Logger, orderService))
		r.Get("/api/admin/orders/{id}", handlers.AdminGetOrderHandler(application.Logger, orderService))
		r.Put("/api/admin/orders/{id}", handlers.AdminUpdateOrderHandler(application.Logger, orderService))
		r.Delete("/api/admin/orders/{id}", handlers.AdminDeleteOrderHandler(application.Logger, orderService))
		// живая лента заказов (SSE)
		r.Get("/api/admin/stream/orders", handlers.OrderStreamHandler(application.Logger, orderFeed, cfg.Stream.Heartbeat))

		r.Post("/api/admin/categories", handlers.CreateCategoryHandler(application.Logger, categoryService))
		r.Put("/api/admin/categories/{id}", handlers.UpdateCategoryHandler(application.Logger, categoryService))
		r.Delete("/api/admin/categories/{id}", handlers.DeleteCategoryHandler(application.Logger, categoryService))

		r.Get("/api/admin/users", handlers.AdminListUsersHandler(application.Logger, userService))
		r.Get("/api/admin/analytics", handlers.AdminOrderStatsHandler(application.Logger, analyticsService))
		r.Post("/api/admin/fcm-token", handlers.AdminFCMTokenHandler(application.Logger, adminAuthService))
	})

	srv := &http.Server{
		Addr:        cfg.HTTPServer.Address,
		Handler:     router,
		ReadTimeout: cfg.HTTPServer.Timeout,
		// WriteTimeout не задаём: SSE-лента держит соединение открытым
		IdleTimeout: cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
