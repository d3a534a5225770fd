package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/assets"
	"github.com/at-ishikawa/wordbook/internal/bootstrap"
	"github.com/at-ishikawa/wordbook/internal/config"
	"github.com/at-ishikawa/wordbook/internal/server"
	"github.com/at-ishikawa/wordbook/internal/store"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dictionary editor",
		Long: `Start the dictionary editor.

The spreadsheet is converted to the JSON file on startup, every edit is written
to the JSON file, and the spreadsheet is regenerated when the server stops.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := slog.Default()
	app := bootstrap.New(time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second)

	repo, err := newRepository(ctx, cfg, app, logger)
	if err != nil {
		return err
	}
	if err := repo.Load(ctx); err != nil {
		if cfg.Storage.Backend == config.StorageBackendMySQL {
			return fmt.Errorf("load dictionary: %w", err)
		}
		// The file store keeps serving an empty dictionary.
		logger.DebugContext(ctx, "Continuing after load failure", "err", err)
	}

	pages, err := assets.ParsePages(cfg.Templates.IndexTemplate, cfg.Templates.DocsTemplate)
	if err != nil {
		return fmt.Errorf("assets.ParsePages() > %w", err)
	}

	handler := server.NewHandler(repo, pages, logger)
	srv := server.NewHTTPServer(cfg.Server, handler, logger)

	// Hooks run in reverse: stop accepting requests, then export the spreadsheet.
	app.AddShutdownHook(repo.ExportSnapshot)
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		logger.InfoContext(ctx, "Starting server", "addr", srv.Addr, "backend", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

// newRepository builds the configured store. Resources it opens are released by app hooks.
func newRepository(ctx context.Context, cfg *config.Config, app *bootstrap.App, logger *slog.Logger) (store.Repository, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMySQL:
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		app.AddShutdownHook(func(context.Context) error {
			return db.Close()
		})
		return store.NewDBStore(db, cfg.Dictionary.SpreadsheetFile, cfg.Dictionary.SheetName, logger), nil
	default:
		return store.NewFileStore(store.FileConfig{
			JSONPath:        cfg.Dictionary.JSONFile,
			SpreadsheetPath: cfg.Dictionary.SpreadsheetFile,
			SheetName:       cfg.Dictionary.SheetName,
		}, logger), nil
	}
}
