package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/smkwon/lifeone/internal/auth"
	"github.com/smkwon/lifeone/internal/config"
	"github.com/smkwon/lifeone/internal/extract"
	"github.com/smkwon/lifeone/internal/httpapi"
	"github.com/smkwon/lifeone/internal/middleware"
	"github.com/smkwon/lifeone/internal/service"
	"github.com/smkwon/lifeone/internal/storage/sqlite"
	"github.com/smkwon/lifeone/pkg/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hash failed:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// .env is optional; real deployments set the environment directly.
	godotenv.Load()
	logging.Setup()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	ctx := context.Background()

	extractor, err := extract.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		slog.Error("failed to initialize extraction service", "error", err)
		os.Exit(1)
	}

	assistant := service.New(store, extractor, slog.Default())
	if err := assistant.Start(ctx); err != nil {
		slog.Error("failed to restore state", "error", err)
		os.Exit(1)
	}

	// Re-run the calendar scan periodically so a long-lived process still
	// alerts the morning after; the engine itself keeps it once per day.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			assistant.DailyCheck(ctx)
		}
	}()

	gate := auth.NewGate(cfg.Auth.PasswordHash)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	api := httpapi.New(assistant, gate, jwtManager)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.Routes())
	mux.Handle("/metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.CORS(middleware.Metrics(mux)))

	// h2c lets clients speak HTTP/2 without TLS when a proxy terminates it.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
