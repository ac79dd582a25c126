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

	"github.com/devishh/chloe-api/internal/adapter/auth"
	"github.com/devishh/chloe-api/internal/adapter/llm"
	"github.com/devishh/chloe-api/internal/config"
	"github.com/devishh/chloe-api/internal/policy"
	store "github.com/devishh/chloe-api/internal/repository"
	"github.com/devishh/chloe-api/internal/service"
	transport "github.com/devishh/chloe-api/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting chloe-api...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Model: %s", cfg.Completion.Model)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize identity verifier
	var verifier auth.Verifier
	if cfg.AuthURL != "" {
		verifier = auth.NewClient(cfg.AuthURL, cfg.AuthTimeout)
	} else {
		log.Printf("WARN: AUTH_URL not set, using static dev verifier")
		verifier = auth.NewStaticVerifier(map[string]string{
			getEnv("DEV_BEARER_TOKEN", "dev-token"): getEnv("DEV_USER_ID", "dev-user"),
		})
	}

	// Initialize completion client
	llmClient := llm.NewCompletionClient(cfg)

	// Initialize access policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, llmClient, policyEngine, cfg)

	// Create HTTP server
	server := transport.NewServer(svc, verifier)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chloe-api...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("chloe-api stopped")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
