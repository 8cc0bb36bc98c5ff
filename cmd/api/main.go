package main

import (
	"net/http"
	"os"
	"time"

	"pet-ai-context/internal/adapters/ai/openai"
	"pet-ai-context/internal/adapters/auth/accounts"
	"pet-ai-context/internal/platform/logger"
	"pet-ai-context/internal/ports/auth"
	"pet-ai-context/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Verifier real solo si accounts está configurado; si no, modo dev.
	var verifier auth.AuthVerifier
	if base := os.Getenv("ACCOUNTS_BASE_URL"); base != "" {
		client, err := accounts.NewClient(accounts.Config{
			BaseURL: base,
			APIKey:  os.Getenv("ACCOUNTS_API_KEY"),
			Timeout: 5 * time.Second,
		})
		if err != nil {
			log.Error("accounts client init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = accounts.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Log:          log,
		Chat:         openai.NewClientFromEnv(),
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // el turno de chat puede tardar
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
