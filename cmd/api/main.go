package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":50052")
	databaseDSN := os.Getenv("BOOKS_DB_URL")

	// The relational layer is optional: the catalog itself is served from
	// the in-memory store, and a restart resets it to the seed records.
	var bookPG *store.BookPG
	if databaseDSN != "" {
		dbPool := mustOpenDB(databaseDSN)
		defer dbPool.Close()
		bookPG = store.NewBookPG(dbPool)
	}

	recordStore := catalog.NewStore()
	catalog.SeedStore(recordStore)

	service := catalog.NewService(recordStore)
	handler := catalog.NewHTTPHandler(service)

	router := http.NewServeMux()
	handler.Register(router)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if bookPG != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := bookPG.HealthCheck(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	rateLimit := httpx.NewRateLimitMiddleware(50, 100)

	var h http.Handler = router
	h = httpx.RequestSizeLimitMiddleware(1 << 20)(h)
	h = httpx.RecoveryMiddleware(h)
	h = rateLimit.Middleware(h)
	h = httpx.SecurityHeadersMiddleware(h)
	h = httpx.AccessLogMiddleware(h)
	h = httpx.RequestIDMiddleware(h)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting book catalog server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("cannot parse db config: %v", err)
	}
	cfg.MaxConns = 20

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
