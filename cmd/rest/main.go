package main

import (
	"context"
	"log"

	"nagrik-mitra-be/internal/bootstrap"
	"nagrik-mitra-be/internal/config"
	"nagrik-mitra-be/internal/server"
	"nagrik-mitra-be/internal/tracer"
	"nagrik-mitra-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Embedding jobs run in-process off the watermill channel.
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
