package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/partnerhub/backend/docs"
	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/database"
	"github.com/partnerhub/backend/internal/handlers"
	"github.com/partnerhub/backend/internal/logging"
	"github.com/partnerhub/backend/internal/metrics"
	mW "github.com/partnerhub/backend/internal/middleware"
	"github.com/partnerhub/backend/internal/scheduler"
	"github.com/partnerhub/backend/internal/services"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Partner Points & Ad Auction API
// @version 1.0
// @description Partner points ledger and weekly ad-slot auction
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type app struct {
	bids          *handlers.BidHandler
	accounts      *handlers.AccountHandler
	subscriptions *handlers.SubscriptionHandler
	admin         *handlers.AdminHandler
	limiter       *mW.RateLimiter
}

func main() {
	if err := config.Init(".env"); err != nil {
		logrus.WithError(err).Warn("config file not found, using environment and defaults")
	}
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	if err := logging.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		logrus.WithError(err).Fatal("invalid log configuration")
	}
	log := logging.Component("server")

	ctx := context.Background()

	db, err := database.Open(ctx, database.GetConfig())
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	redisClient := database.InitRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	notifier := services.NewNotificationService(redisClient)
	ledgerService := services.NewLedgerService(db, cfg.Ledger, notifier)
	bidService := services.NewBidService(db, ledgerService, cfg.Auction)
	settlementService := services.NewSettlementService(db, ledgerService, notifier, redisClient, cfg.Auction)
	subscriptionService := services.NewSubscriptionService(db, ledgerService, cfg.Subscription, cfg.Charge)
	quoteService := services.NewQuoteService(ledgerService, cfg.Charge)

	weekly := scheduler.NewSettlementScheduler(settlementService, cfg.Scheduler, cfg.Auction.Location)
	if err := weekly.Start(); err != nil {
		log.WithError(err).Fatal("failed to start settlement scheduler")
	}
	defer weekly.Stop()

	a := &app{
		bids:          handlers.NewBidHandler(bidService),
		accounts:      handlers.NewAccountHandler(ledgerService, subscriptionService, quoteService),
		subscriptions: handlers.NewSubscriptionHandler(subscriptionService),
		admin:         handlers.NewAdminHandler(ledgerService, settlementService),
		limiter:       mW.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst),
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.HTTP.Port

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      a.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.limiter.Cleanup(10 * time.Minute)
			case <-stopCleanup:
				return
			}
		}
	}()

	go func() {
		log.WithField("port", cfg.HTTP.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	close(stopCleanup)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	log.Info("server stopped")
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mW.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mW.AuthMiddleware)
		r.Use(a.limiter.Handler)

		r.Get("/placements", a.bids.ListPlacements)

		r.Route("/partners/{partnerId}", func(r chi.Router) {
			r.Post("/bids", a.bids.SubmitBid)
			r.Get("/bids", a.bids.ListBids)

			r.Get("/balance", a.accounts.GetBalance)
			r.Get("/ledger", a.accounts.ListEntries)
			r.Post("/charges/cash", a.accounts.ChargeCash)
			r.Post("/charges/tickets", a.accounts.ChargeTickets)
			r.Post("/quotes/{requestId}/fee", a.accounts.ChargeQuoteFee)

			r.Get("/subscription", a.subscriptions.Get)
			r.Post("/subscription", a.subscriptions.Start)
			r.Delete("/subscription", a.subscriptions.Cancel)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(mW.RequireRole(mW.RoleAdmin))

			r.Post("/partners", a.admin.OpenAccount)
			r.Get("/partners/{partnerId}/reconciliation", a.admin.Reconcile)
			r.Post("/settlements/{weekKey}", a.admin.SettleWeek)
			r.Get("/settlements", a.admin.ListRuns)
		})
	})

	return r
}
