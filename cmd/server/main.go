package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/kopikita/blogshop/internal/api"
	"github.com/kopikita/blogshop/internal/config"
	"github.com/kopikita/blogshop/internal/repository"
	memoryrepo "github.com/kopikita/blogshop/internal/repository/memory"
	psqlrepo "github.com/kopikita/blogshop/internal/repository/psql"
	"github.com/kopikita/blogshop/internal/service"
	"github.com/kopikita/blogshop/internal/storage"
	fsstorage "github.com/kopikita/blogshop/internal/storage/fs"
	memorystorage "github.com/kopikita/blogshop/internal/storage/memory"
	s3storage "github.com/kopikita/blogshop/internal/storage/s3"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	postRepo, shopRepo, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	blobs, err := buildStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}

	postService := service.NewPostService(postRepo, blobs)
	shopService := service.NewCoffeeShopService(shopRepo, blobs)

	postHandler := api.NewPostHandler(postService, cfg.BaseURL)
	shopHandler := api.NewCoffeeShopHandler(shopService, cfg.BaseURL)

	// Set up router. All routes are registered here, once, at bootstrap.
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/posts", postHandler.Routes())
		r.Mount("/coffee-shops", shopHandler.Routes())
	})

	// Serve uploaded images when blobs live on the local file system
	if cfg.StorageBackend == "fs" {
		fileServer := http.FileServer(http.Dir(cfg.FSBaseDir))
		r.Handle("/storage/*", http.StripPrefix("/storage/", fileServer))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("Server exiting")
}

func buildRepositories(cfg *config.Config) (repository.PostRepository, repository.CoffeeShopRepository, error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, using in-memory repositories")
		return memoryrepo.NewPostRepository(), memoryrepo.NewCoffeeShopRepository(), nil
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	return psqlrepo.NewPSQLPostRepository(pool), psqlrepo.NewPSQLCoffeeShopRepository(pool), nil
}

func buildStorage(cfg *config.Config) (storage.Backend, error) {
	switch cfg.StorageBackend {
	case "memory":
		return memorystorage.NewMemoryBackend(), nil
	case "s3":
		return s3storage.NewS3Backend(s3storage.Config{
			Region:                 cfg.S3Region,
			Bucket:                 cfg.S3Bucket,
			AccessKeyID:            cfg.S3AccessKeyID,
			SecretAccessKey:        cfg.S3SecretAccessKey,
			Endpoint:               cfg.S3Endpoint,
			UsePathStyle:           cfg.S3UsePathStyle,
			CreateBucketIfNotExist: cfg.S3CreateBucketMissing,
		})
	default:
		return fsstorage.NewFSBackend(fsstorage.Config{BaseDir: cfg.FSBaseDir})
	}
}
