package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"internhr/internal/domain/attendance"
	"internhr/internal/domain/holidays"
	"internhr/internal/domain/leave"
	"internhr/internal/domain/notifications"
	"internhr/internal/domain/people"
	"internhr/internal/domain/separation"
	"internhr/internal/platform/config"
	"internhr/internal/platform/db"
	"internhr/internal/platform/email"
	"internhr/internal/platform/jobs"
	"internhr/internal/platform/metrics"
	"internhr/internal/transport/http/api"
	attendancehandler "internhr/internal/transport/http/handlers/attendance"
	holidayshandler "internhr/internal/transport/http/handlers/holidays"
	leavehandler "internhr/internal/transport/http/handlers/leave"
	notificationshandler "internhr/internal/transport/http/handlers/notifications"
	peoplehandler "internhr/internal/transport/http/handlers/people"
	separationhandler "internhr/internal/transport/http/handlers/separation"
	"internhr/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	leaveStore := leave.NewStore(pool)
	leaveService := leave.NewService(leaveStore, leaveStore)
	peopleStore := people.NewStore(pool)
	peopleService := people.NewService(peopleStore, leaveService)
	notifStore := notifications.NewStore(pool)
	notifService := notifications.New(notifStore, email.New(cfg), cfg.EmailEnabled, cfg.EmailFrom)
	separationService := separation.NewService(separation.NewStore(pool), peopleStore, notifService)
	attendanceService := attendance.NewService(attendance.NewStore(pool))
	holidayService := holidays.NewService(holidays.NewStore(pool))

	jobsService, err := jobs.New(pool, cfg, leaveStore)
	if err != nil {
		log.Fatalf("jobs init failed: %v", err)
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	jobsService.Start(jobCtx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Metrics(collector))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		peoplehandler.NewHandler(peopleService).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService, notifService, jobsService, collector).RegisterRoutes(r)
		separationhandler.NewHandler(separationService).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceService).RegisterRoutes(r)
		holidayshandler.NewHandler(holidayService).RegisterRoutes(r)
		notificationshandler.NewHandler(notifService).RegisterRoutes(r)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("intern HR server listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
