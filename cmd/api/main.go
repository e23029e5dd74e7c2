package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/habitnotes/habitnotes/internal/adapters/cache"
	"github.com/habitnotes/habitnotes/internal/adapters/docstore"
	adapterHTTP "github.com/habitnotes/habitnotes/internal/adapters/handler/http"
	"github.com/habitnotes/habitnotes/internal/config"
	"github.com/habitnotes/habitnotes/internal/core/domain"
	"github.com/habitnotes/habitnotes/internal/core/services"
	"github.com/habitnotes/habitnotes/internal/core/workers"
)

func newDocumentStore(cfg *config.Config) (domain.DocumentStore, func(), error) {
	switch cfg.DocstoreDriver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

		log.Println("Connecting to database...")
		db, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		log.Println("Database connected successfully.")
		return docstore.NewPostgresStore(db), func() { db.Close() }, nil

	default:
		store, err := docstore.NewFilesystemStore(cfg.NotesDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: Failed to load configuration: %v", err)
	}

	store, closeStore, err := newDocumentStore(cfg)
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
	defer closeStore()

	var rdb *redis.Client
	if cfg.RedisHost != "" {
		rdb, err = cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, 0)
		if err != nil {
			log.Printf("Redis unavailable, rate limiter disabled: %v", err)
			rdb = nil
		}
	}

	recordService := services.NewRecordService(store, cfg.Tracker)
	discoveryService := services.NewDiscoveryService(store, cfg.Tracker)
	timelineService := services.NewTimelineService(recordService, discoveryService, cfg.Tracker)
	notesService := services.NewNotesService(store, discoveryService, cfg.Tracker)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authService, err := services.NewAuthService(cfg.APIPassword, tokenService)
	if err != nil {
		log.Fatalf("Critical: Failed to initialise auth: %v", err)
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	ensureWorker := workers.NewEnsureWorker(timelineService, cfg.EnsureInterval)
	ensureWorker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:  adapterHTTP.NewAuthHandler(authService),
		HabitHandler: adapterHTTP.NewHabitHandler(timelineService, recordService, discoveryService, notesService, cfg.Tracker),
		NotesHandler: adapterHTTP.NewNotesHandler(notesService),
		TokenService: tokenService,
		Store:        store,
		Redis:        rdb,
		StartTime:    startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Habit Notes Engine running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
