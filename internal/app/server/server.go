package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ascend/internal/domain/auth"
	"ascend/internal/domain/bulkimport"
	"ascend/internal/domain/core"
	"ascend/internal/domain/evaluation"
	"ascend/internal/domain/medicalleave"
	"ascend/internal/domain/reports"
	"ascend/internal/domain/training"
	"ascend/internal/platform/config"
	"ascend/internal/platform/db"
	"ascend/internal/platform/metrics"
	"ascend/internal/platform/storage"
	"ascend/internal/transport/http/api"
	authhandler "ascend/internal/transport/http/handlers/auth"
	bulkimporthandler "ascend/internal/transport/http/handlers/bulkimport"
	corehandler "ascend/internal/transport/http/handlers/core"
	evaluationhandler "ascend/internal/transport/http/handlers/evaluation"
	medicalleavehandler "ascend/internal/transport/http/handlers/medicalleave"
	reportshandler "ascend/internal/transport/http/handlers/reports"
	traininghandler "ascend/internal/transport/http/handlers/training"
	"ascend/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Metrics *metrics.Collector
	Router  http.Handler
}

// New assembles stores, services and the HTTP router on an existing pool.
// Journey tests use it directly against a scratch database.
func New(cfg config.Config, pool *pgxpool.Pool, files storage.Store) *App {
	collector := metrics.New()
	weights := evaluation.Weights{Self: cfg.SelfWeight, Manager: cfg.ManagerWeight}

	coreStore := core.NewStore(pool)
	coreService := core.NewService(coreStore)

	leaveStore := medicalleave.NewStore(pool)
	leaveService := medicalleave.NewService(leaveStore, files)

	trainingStore := training.NewStore(pool)
	trainingService := training.NewService(trainingStore, files)

	evaluationStore := evaluation.NewStore(pool)
	evaluationService := evaluation.NewService(evaluationStore, weights)

	importStore := bulkimport.NewStore(pool, coreStore, leaveStore, trainingStore)
	reconciler := bulkimport.NewReconciler(importStore, cfg.ImportWorkers)

	reportsService := reports.NewService(reports.NewStore(pool), weights)
	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Auth(cfg.JWTSecret))

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

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		authhandler.NewHandler(authService).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			corehandler.NewHandler(coreService).RegisterRoutes(r)
			evaluationhandler.NewHandler(evaluationService).RegisterRoutes(r)
			medicalleavehandler.NewHandler(leaveService, cfg.MaxUploadBytes).RegisterRoutes(r)
			traininghandler.NewHandler(trainingService, cfg.MaxUploadBytes).RegisterRoutes(r)
			bulkimporthandler.NewHandler(reconciler, collector).RegisterRoutes(r)
			reportshandler.NewHandler(reportsService).RegisterRoutes(r)

			r.Get("/admin/metrics", func(w http.ResponseWriter, r *http.Request) {
				user, _ := middleware.GetUser(r.Context())
				if user.Role != auth.RoleAdmin {
					api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", middleware.GetRequestID(r.Context()))
					return
				}
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
		})
	})

	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	return &App{Config: cfg, Pool: pool, Metrics: collector, Router: router}
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	files, err := storage.NewLocalStore(cfg.UploadsDir, "/uploads")
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	app := New(cfg, pool, files)

	log.Printf("ascend server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
