package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordbook/internal/config"
	"github.com/at-ishikawa/wordbook/internal/database"
	"github.com/at-ishikawa/wordbook/schemas"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// openDatabase connects to MySQL and applies the embedded migrations.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Ping(ctx, db, database.DefaultPingAttempts); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	slog.DebugContext(ctx, "Database ready", "host", cfg.Host, "database", cfg.Database)
	return db, nil
}
