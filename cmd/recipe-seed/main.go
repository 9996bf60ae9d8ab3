package main

import (
	"context"
	"os"
	"path/filepath"

	"recipe-app-go/internal/config"
	"recipe-app-go/internal/db"
	catalogpg "recipe-app-go/internal/repository/postgres/catalog"
	"recipe-app-go/internal/seed"
	"recipe-app-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()
	log.Info("seed: starting")

	cfg := config.Load(log)

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		log.Critical("seed: database init failed", "err", err)
		os.Exit(1)
	}
	if err := db.Migrate(dbConn, log); err != nil {
		log.Critical("seed: migrate failed", "err", err)
		os.Exit(1)
	}

	loader := seed.NewLoader(catalogpg.NewPostgres(dbConn), log)
	ctx := context.Background()

	if err := loader.LoadIngredients(ctx, filepath.Join(cfg.SeedDataDir, "ingredients.csv")); err != nil {
		log.Critical("seed: ingredients import failed", "err", err)
		os.Exit(1)
	}
	if err := loader.LoadTags(ctx, filepath.Join(cfg.SeedDataDir, "tags.csv")); err != nil {
		log.Critical("seed: tags import failed", "err", err)
		os.Exit(1)
	}

	log.Info("seed: done")
}
