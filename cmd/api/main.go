package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	log.Printf("store=%s env=%s", cfg.StoreDriver, cfg.Env)
	if err := server.Run(ctx, server.Addr(cfg.Port), app.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
