package main

import (
	"net/http"
	"os"
	"time"

	"pet-shelter-platform/internal/platform/logger"
	"pet-shelter-platform/internal/router"
)

func main() {
	lg := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r, err := router.NewRouter(router.Options{AuthVerifier: nil}) // sin verifier para modo dev
	if err != nil {
		lg.Error("bootstrap failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lg.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
