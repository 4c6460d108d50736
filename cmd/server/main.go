package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/pdf-to-json/internal/config"
	"github.com/BerylCAtieno/pdf-to-json/internal/extractor"
	"github.com/BerylCAtieno/pdf-to-json/internal/router"
	"github.com/BerylCAtieno/pdf-to-json/internal/services"
	"github.com/BerylCAtieno/pdf-to-json/internal/structurer"
	"github.com/BerylCAtieno/pdf-to-json/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// One chat completions client for the whole process
	llm := structurer.NewOpenAIStructurer(structurer.Options{
		APIKey:       cfg.OpenAIAPIKey,
		Model:        cfg.OpenAIModel,
		BaseURL:      cfg.OpenAIBaseURL,
		Timeout:      cfg.LLMTimeout,
		MaxIdleConns: cfg.LLMMaxIdleConns,
		Strict:       cfg.StrictJSON,
	}, logger)

	convService := services.NewConversionService(extractor.NewPDFExtractor(cfg.ExtractTimeout), llm, logger)

	// Setup HTTP router
	handler := router.NewRouter(convService, logger, cfg.MaxRequestSize)

	// Write timeout must outlast extraction plus the model call.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ExtractTimeout + cfg.LLMTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "model", cfg.OpenAIModel, "strict_json", cfg.StrictJSON)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
