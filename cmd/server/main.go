package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"meditation-mondays/internal/config"
	"meditation-mondays/internal/database"
	"meditation-mondays/internal/handlers"
	"meditation-mondays/internal/middleware"
	"meditation-mondays/internal/repositories"
	"meditation-mondays/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store for anonymous checkout state
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600, // checkout state only needs to outlive one attempt
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Payment provider: Stripe when configured, mock otherwise so the site
	// still runs locally without credentials.
	var paymentService services.PaymentServiceInterface
	if cfg.Stripe.SecretKey != "" {
		paymentService = services.NewStripeService(services.StripeConfig{
			SecretKey:      cfg.Stripe.SecretKey,
			PublishableKey: cfg.Stripe.PublishableKey,
			WebhookSecret:  cfg.Stripe.WebhookSecret,
			PriceID:        cfg.Stripe.PriceID,
			BaseURL:        cfg.Server.BaseURL,
		})
		log.Println("Payment service: Using Stripe API")
	} else {
		paymentService = services.NewMockPaymentService()
	}

	// Webhook ledger: Postgres when a database is configured, otherwise
	// in-memory with the same bounded retention.
	ledger := buildWebhookLedger(cfg)

	publicHandler := handlers.NewPublicHandler(paymentService, sessionStore)
	paymentHandler := handlers.NewPaymentHandler(
		paymentService,
		ledger,
		sessionStore,
		cfg.Server.BaseURL,
		cfg.Server.AllowedOrigins,
	)

	rateLimiter := middleware.NewRateLimiter(30, time.Minute)

	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.Server.AllowedOrigins)))

	// Pages
	r.Get("/", publicHandler.HomePage)
	r.Get("/classes", publicHandler.ClassesPage)
	r.Get("/movement", publicHandler.MovementPage)
	r.Get("/tickets", publicHandler.TicketsPage)
	r.Get("/success", publicHandler.SuccessPage)
	r.Get("/cancel", publicHandler.CancelPage)

	// Static assets
	fileServer := http.FileServer(http.Dir("web/static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Checkout API, rate limited per client IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.PaymentRateLimit(rateLimiter))
		r.Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
		r.Post("/checkout", paymentHandler.Checkout)
		r.Post("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	})

	// The provider retries webhooks on failure; never rate limit this route.
	r.Post("/stripe-webhook", paymentHandler.StripeWebhook)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// buildWebhookLedger prefers the durable Postgres ledger and falls back to
// the in-memory one when no database is reachable.
func buildWebhookLedger(cfg *config.Config) services.WebhookLedgerInterface {
	if !cfg.Database.Configured() {
		log.Println("Webhook ledger: no database configured, using in-memory ledger")
		return services.NewMemoryWebhookLedger(services.DefaultWebhookRetention)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Printf("Warning: Failed to connect to database: %v", err)
		log.Println("Continuing with in-memory webhook ledger...")
		return services.NewMemoryWebhookLedger(services.DefaultWebhookRetention)
	}

	repo := repositories.NewWebhookEventRepository(db.DB, services.DefaultWebhookRetention)
	if err := repo.EnsureSchema(); err != nil {
		log.Printf("Warning: Failed to prepare webhook ledger table: %v", err)
		log.Println("Continuing with in-memory webhook ledger...")
		return services.NewMemoryWebhookLedger(services.DefaultWebhookRetention)
	}

	log.Println("Webhook ledger: using database-backed ledger")
	return repo
}
