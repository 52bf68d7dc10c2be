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
	"authgate/internal/app/service"
	"authgate/internal/common/security"
	"authgate/internal/domain/repository"
	"authgate/internal/platform/config"
	"authgate/internal/platform/database"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	userRepo := repository.NewPgUserRepository(db)
	userService := service.NewUserService(userRepo)

	issuer := security.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	// The identity service always verifies its own tokens in-process.
	verifier := security.NewLocalVerifier(cfg.JWTSecret)

	authHandler := handler.NewAuthHandler(userService, issuer, verifier)
	userHandler := handler.NewUserHandler(userService, verifier)
	healthHandler := handler.NewHealthHandler(db)

	router := api.NewIdentityRouter(authHandler, userHandler, healthHandler)

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
		log.Printf("Identity service starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down identity service...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Identity service stopped gracefully.")
}
