package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/roamdrive/rental-reservation-system/internal/handlers"
	"github.com/roamdrive/rental-reservation-system/internal/remote"
	"github.com/roamdrive/rental-reservation-system/internal/reservation"
	"github.com/roamdrive/rental-reservation-system/internal/router"
	"github.com/roamdrive/rental-reservation-system/internal/service"
)

const (
	DefaultPort        = "8080"
	DefaultRentalAPI   = "http://localhost:9090/api"
	DefaultDocumentDir = "documents"
)

func main() {
	// Optional .env file; real environment wins
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	port := getenv("API_PORT", DefaultPort)
	rentalAPI := getenv("RENTAL_API_URL", DefaultRentalAPI)
	documentDir := getenv("DOCUMENT_DIR", DefaultDocumentDir)
	authToken := os.Getenv("RENTAL_API_TOKEN")

	// Initialize services
	client := remote.NewClient(rentalAPI, authToken)
	wizardService := service.NewWizardService(client, reservation.DiskSaver{Dir: documentDir}, logger)

	// Initialize handlers
	h := handlers.NewHandler(wizardService)

	// Create router
	r := router.SetupRouter(h)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().Str("port", port).Str("rentalApi", rentalAPI).Msg("API server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
