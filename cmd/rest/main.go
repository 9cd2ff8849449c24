package main

import (
	"context"
	"log"

	"doc-manager-be/internal/bootstrap"
	"doc-manager-be/internal/config"
	"doc-manager-be/internal/server"
	"doc-manager-be/internal/tracer"
	"doc-manager-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer func() {
		if container.EventPublisher != nil {
			container.EventPublisher.Close()
		}
		_ = container.SysLogger.Sync()
	}()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting document indexer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background indexer error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
