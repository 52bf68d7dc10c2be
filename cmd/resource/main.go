package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authgate/internal/api"
	"authgate/internal/api/handler"
	"authgate/internal/common/security"
	"authgate/internal/platform/config"
)

func main() {
	cfg := config.Load()

	verifier := security.NewVerifierFromConfig(cfg)
	if cfg.UseRemoteVerification {
		log.Printf("Token verification: remote via %s", cfg.AuthServiceURL)
	} else {
		log.Println("Token verification: local with shared secret")
	}

	tokenHandler := handler.NewTokenHandler(verifier)
	productHandler := handler.NewProductHandler()

	router := api.NewResourceRouter(verifier, cfg.ProtectedPaths, tokenHandler, productHandler)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Resource service starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down resource service...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Resource service stopped gracefully.")
}
