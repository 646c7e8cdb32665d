package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rocketiq/careers/api/internal/config"
	"github.com/rocketiq/careers/api/internal/infrastructure/postgres"
	"github.com/rocketiq/careers/api/internal/server"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var client *mongo.Client
	if cfg.UsesMongo() {
		clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
		var err error
		client, err = mongo.Connect(ctx, clientOptions)
		if err != nil {
			cfg.ServerLog.Fatalf("MongoDB connect failed: %v", err)
		}
	}

	var pool *pgxpool.Pool
	if cfg.UsesPostgres() {
		var err error
		pool, err = postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cfg.ServerLog.Fatalf("Postgres connect failed: %v", err)
		}
	}

	app := server.New(cfg, client, pool)
	if err := app.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
