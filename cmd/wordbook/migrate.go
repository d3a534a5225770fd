package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/converter"
	"github.com/at-ishikawa/wordbook/internal/datasync"
	"github.com/at-ishikawa/wordbook/internal/store"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(newMigrateImportDBCommand())

	return migrateCmd
}

func newMigrateImportDBCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import-db",
		Short: "Import the JSON dictionary into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			d, err := converter.ReadJSON(cfg.Dictionary.JSONFile)
			if err != nil {
				return fmt.Errorf("read dictionary: %w", err)
			}

			db, err := openDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			dbStore := store.NewDBStore(db, cfg.Dictionary.SpreadsheetFile, cfg.Dictionary.SheetName, nil)

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(dbStore, out)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.ImportDictionary(ctx, d, opts)
			if err != nil {
				return fmt.Errorf("import dictionary: %w", err)
			}

			fmt.Fprintln(out, "\nImport Summary:")
			if opts.DryRun {
				_, _ = color.New(color.FgYellow).Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Entries:  %d new, %d skipped, %d updated\n", result.New, result.Skipped, result.Updated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}
