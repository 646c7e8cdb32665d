package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/rocketiq/careers/api/internal/admin/application"
	"github.com/rocketiq/careers/api/internal/config"
	"github.com/rocketiq/careers/api/internal/infrastructure/messenger"
	mongodoc "github.com/rocketiq/careers/api/internal/infrastructure/mongo"
	"github.com/rocketiq/careers/api/internal/infrastructure/postgres"
	"github.com/rocketiq/careers/api/internal/infrastructure/supabase"
	"github.com/rocketiq/careers/api/internal/infrastructure/turnstile"
	adminhttp "github.com/rocketiq/careers/api/internal/interfaces/http/admin"
	"github.com/rocketiq/careers/api/internal/interfaces/http/common"
	publichttp "github.com/rocketiq/careers/api/internal/interfaces/http/public"
	publicapp "github.com/rocketiq/careers/api/internal/public/application"
)

// Server owns the HTTP lifecycle and wires services into the public and admin handlers.
type Server struct {
	logger            *log.Logger
	mongoClient       *mongo.Client
	pgPool            *pgxpool.Pool
	healthCheck       func(context.Context) error
	submissions       publicapp.SubmissionService
	postings          publicapp.PostingCatalog
	adminApplications adminapp.ApplicationService
	location          *time.Location
	jwtConfigs        []config.JWTConfig
	jwtAudience       string
	addr              string
	allowedOrigins    []string
}

// Run starts the HTTP server and blocks until it stops or a signal arrives.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// Handler builds the full route tree.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:      s.logger,
		Submissions: s.submissions,
		Postings:    s.postings,
	})
	router.Route("/api", func(r chi.Router) {
		publicHandler.Register(r)

		if s.adminApplications == nil || len(s.jwtConfigs) == 0 {
			return
		}
		adminHandler := adminhttp.NewHandler(adminhttp.Config{
			Logger:       s.logger,
			Applications: s.adminApplications,
			Location:     s.location,
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			adminHandler.Register(r)
		})
	})

	return router
}

// healthHandler pings the active record store.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if s.healthCheck != nil {
			if err := s.healthCheck(ctx); err != nil {
				common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}

		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// shutdown closes database connections with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if s.mongoClient != nil {
		if err := s.mongoClient.Disconnect(shutdownCtx); err != nil {
			s.logger.Printf("MongoDB disconnect failed: %v", err)
		}
	}
	if s.pgPool != nil {
		s.pgPool.Close()
	}
}

// waitForShutdown waits for ListenAndServe to exit or SIGINT/SIGTERM, then shuts down gracefully.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("HTTP shutdown failed: %v", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}

// New wires repositories, storage and services for the configured backends.
// client must be non-nil when cfg.UsesMongo, pool when cfg.UsesPostgres.
func New(cfg config.Config, client *mongo.Client, pool *pgxpool.Pool) *Server {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
		cfg.ServerLog.Printf("failed to load timezone %s: %v, falling back to IST", cfg.Timezone, err)
	}

	srv := &Server{
		logger:         cfg.ServerLog,
		mongoClient:    client,
		pgPool:         pool,
		location:       loc,
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
	if cfg.Postings != nil {
		srv.postings = cfg.Postings
	}

	var (
		records publicapp.ApplicationRepository
		reads   adminapp.ApplicationRepository
		orphans publicapp.OrphanLedger
	)
	switch cfg.RecordBackend {
	case config.BackendPostgres:
		repo := postgres.NewApplicationRepository(pool)
		records, reads = repo, repo
		orphans = postgres.NewOrphanRepository(pool)
		srv.healthCheck = pool.Ping
	default:
		db := client.Database(cfg.MongoDatabase)
		repo := mongodoc.NewApplicationRepository(db, cfg.ApplicationCollection)
		records, reads = repo, repo
		orphans = mongodoc.NewOrphanRepository(db, cfg.OrphanCollection)
		srv.healthCheck = func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}
	}

	var storage publicapp.ObjectStorage
	switch cfg.StorageBackend {
	case config.BackendGridFS:
		storage = mongodoc.NewGridFSStorage(client.Database(cfg.MongoDatabase), cfg.StorageBucket)
	default:
		supabaseStorage := supabase.NewStorage(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.StorageBucket, &http.Client{Timeout: cfg.StorageTimeout})
		if supabaseStorage.Configured() {
			storage = supabaseStorage
		}
	}

	var (
		notifier      publicapp.ApplicationNotifier
		notifyTimeout time.Duration
	)
	if n := messenger.NewNotifier(messenger.Config{
		Endpoint:           cfg.MessengerEndpoint,
		DiscordDestination: cfg.DiscordDestination,
		SlackDestination:   cfg.SlackDestination,
		AdminBaseURL:       cfg.AdminBaseURL,
		HTTPClient:         &http.Client{Timeout: cfg.MessengerTimeout},
	}); n != nil {
		notifier = n
		notifyTimeout = n.Budget()
	}

	verifier := turnstile.NewClient(cfg.TurnstileVerifyURL, &http.Client{Timeout: cfg.VerifyTimeout}, cfg.ServerLog)

	srv.submissions = publicapp.NewSubmissionService(publicapp.SubmissionConfig{
		Postings:        srv.postings,
		Verifier:        verifier,
		TurnstileSecret: cfg.TurnstileSecret,
		Storage:         storage,
		Applications:    records,
		Orphans:         orphans,
		Notifier:        notifier,
		Logger:          cfg.ServerLog,
		VerifyTimeout:   cfg.VerifyTimeout,
		StorageTimeout:  cfg.StorageTimeout,
		DatabaseTimeout: cfg.DatabaseTimeout,
		NotifyTimeout:   notifyTimeout,
	})
	if cfg.AdminEnabled() {
		srv.adminApplications = adminapp.NewApplicationService(reads)
	}

	return srv
}
