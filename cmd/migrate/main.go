package main

import (
	"context"
	"time"
	mongoMigration "travelbook/internal/migrations/mongo"
	"travelbook/pkg/config"
	mongodb "travelbook/pkg/db/mongo"
)

const JobName = "mongo-migration"

const jobTimeout = 120 * time.Second

func main() {
	cfg := config.Load(JobName, config.DefaultAPIPort)
	cfg.StoreBackend = config.BackendMongo
	if err := cfg.ValidateStore(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Log.Info("Starting Mongo migration job", "database", cfg.MongoDatabaseName)
	if err := migrateMongo(cfg); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrateMongo(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	return mongoMigration.RunMigration(ctx, client.Database(cfg.MongoDatabaseName), cfg.Log)
}
