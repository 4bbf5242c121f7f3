package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/config"
	"github.com/voguesoftware/projectdash/internal/prefs"
	"github.com/voguesoftware/projectdash/internal/server"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := prefs.Open(cfg.PrefsDB)
	if err != nil {
		log.Fatalf("open preference store: %v", err)
	}

	client := api.New(cfg.BackendURL,
		api.WithHTTPClient(&http.Client{}),
		api.WithTokenSource(func() string {
			tok, terr := store.Token()
			if terr != nil {
				log.Printf("read token: %v", terr)
				return ""
			}
			return tok
		}),
	)

	log.Printf("Starting dashboard env=%s port=%s backend=%s", cfg.Env, cfg.Port, cfg.BackendURL)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(client, store, cfg)}

	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
