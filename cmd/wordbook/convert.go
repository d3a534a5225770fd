package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/wordbook/internal/converter"
	"github.com/at-ishikawa/wordbook/internal/datasync"
)

type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatYAML ExportFormat = "yaml"
)

// Set implements pflag.Value.
func (f *ExportFormat) Set(v string) error {
	switch v {
	case string(ExportFormatXLSX), string(ExportFormatYAML):
		*f = ExportFormat(v)
	default:
		return fmt.Errorf("unsupported format %q, valid values are %q or %q", v, ExportFormatXLSX, ExportFormatYAML)
	}
	return nil
}

// String implements pflag.Value.
func (f *ExportFormat) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *ExportFormat) Type() string {
	return "ExportFormat"
}

var (
	_ pflag.Value = (*ExportFormat)(nil)
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Convert the spreadsheet into the JSON dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			d, err := converter.SpreadsheetToJSON(cfg.Dictionary.SpreadsheetFile, cfg.Dictionary.SheetName, cfg.Dictionary.JSONFile)
			if err != nil {
				return fmt.Errorf("import spreadsheet: %w", err)
			}
			_, err = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s into %s\n",
				d.Len(), cfg.Dictionary.SpreadsheetFile, cfg.Dictionary.JSONFile)
			return err
		},
	}
}

func newExportCommand() *cobra.Command {
	format := ExportFormatXLSX
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the JSON dictionary to a spreadsheet or a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var count int
			switch format {
			case ExportFormatXLSX:
				if output == "" {
					output = cfg.Dictionary.SpreadsheetFile
				}
				d, err := converter.JSONToSpreadsheet(cfg.Dictionary.JSONFile, output, cfg.Dictionary.SheetName)
				if err != nil {
					return fmt.Errorf("export spreadsheet: %w", err)
				}
				count = d.Len()
			case ExportFormatYAML:
				if output == "" {
					output = filepath.Join(filepath.Dir(cfg.Dictionary.JSONFile), "dictionary.yml")
				}
				d, err := converter.ReadJSON(cfg.Dictionary.JSONFile)
				if err != nil {
					return fmt.Errorf("read dictionary: %w", err)
				}
				if err := datasync.NewYAMLDictionarySink(output).WriteAll(d); err != nil {
					return fmt.Errorf("export yaml: %w", err)
				}
				count = d.Len()
			}

			_, err = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", count, output)
			return err
		},
	}

	cmd.Flags().Var(&format, "format", "Output format: xlsx or yaml")
	cmd.Flags().StringVar(&output, "output", "", "Output path (defaults to the configured spreadsheet, or dictionary.yml next to the JSON file)")
	return cmd
}
