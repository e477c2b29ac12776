package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikhilarora068/pharmacare-backend/internal/api/handlers"
	"github.com/nikhilarora068/pharmacare-backend/internal/api/middleware"
	"github.com/nikhilarora068/pharmacare-backend/internal/cache"
	"github.com/nikhilarora068/pharmacare-backend/internal/config"
	"github.com/nikhilarora068/pharmacare-backend/internal/health"
	"github.com/nikhilarora068/pharmacare-backend/internal/metrics"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	redisRepo "github.com/nikhilarora068/pharmacare-backend/internal/repositories/redis"
	service "github.com/nikhilarora068/pharmacare-backend/internal/services"
	"github.com/nikhilarora068/pharmacare-backend/internal/telemetry"
	"github.com/nikhilarora068/pharmacare-backend/pkg/sendgrid"
	"github.com/nikhilarora068/pharmacare-backend/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup; disabled when no collector endpoint is configured
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	// Storage setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup, optional
	var (
		rateLimiter  *redisRepo.RedisRepo
		productCache cache.Cache
	)

	if cfg.RedisConnect.Addr != "" {
		rateLimiter, err = redisRepo.NewRedisRepo(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", "error", err.Error())
			os.Exit(1)
		}

		productCache = cache.NewRedisCache(rateLimiter.Client(), &cfg.CacheConfig)
	}

	// Payment processor; simulated unless a Stripe key is configured
	var processor service.PaymentProcessor = service.NewSimulatedProcessor(cfg.Checkout.ProcessingDelay)
	if cfg.Stripe.APIKey != "" {
		processor = service.NewStripeProcessor(stripe.NewStripeClient(cfg.Stripe.APIKey), cfg.Stripe.Currency)
	}

	// Email fanout for the notification feed, optional
	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	notificationService := service.NewNotificationService(repos.Notification, emailService, cfg.SendGrid.FromEmail)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	userService := service.NewUserService(repos.User, rateLimiter, jwtKey, cfg.Security.TokenExpiry)
	userHandler := handlers.NewUserHandler(userService)
	reminderService := service.NewReminderService(repos.Reminder, notificationService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	productService := service.NewProductService(repos.Product, productCache)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product, cfg.Pricing)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, cartService, notificationService, processor, cfg.Checkout)
	orderHandler := handlers.NewOrderHandler(orderService)
	contactService := service.NewContactService(notificationService)
	contactHandler := handlers.NewContactHandler(contactService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", cfg.StorageDriver))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/reminders", authMiddleware.Authenticate(reminderHandler.CreateReminder()))
	routerMux.HandleFunc("GET /api/v1/reminders", authMiddleware.Authenticate(reminderHandler.ListReminders()))
	routerMux.HandleFunc("PUT /api/v1/reminders/{id}", authMiddleware.Authenticate(reminderHandler.UpdateReminder()))
	routerMux.HandleFunc("DELETE /api/v1/reminders/{id}", authMiddleware.Authenticate(reminderHandler.DeleteReminder()))
	routerMux.HandleFunc("POST /api/v1/reminders/{id}/acknowledge", authMiddleware.Authenticate(reminderHandler.AcknowledgeReminder()))
	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/orders/checkout", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}/status", authMiddleware.Authenticate(orderHandler.GetOrderStatus()))
	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))
	routerMux.HandleFunc("DELETE /api/v1/notifications/{id}", authMiddleware.Authenticate(notificationHandler.Dismiss()))
	routerMux.HandleFunc("POST /api/v1/notifications/read-all", authMiddleware.Authenticate(notificationHandler.MarkAllRead()))
	routerMux.HandleFunc("POST /api/v1/contact", contactHandler.Submit())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "pharmacare-backend")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	// Let in-flight checkouts settle before the process exits.
	orderService.Wait()

	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
		}
	}

}
