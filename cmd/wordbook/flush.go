package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/apiclient"
)

func newFlushCommand() *cobra.Command {
	var baseURL string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Ask a running server to write its dictionary to the spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiclient.New(baseURL, timeout).SaveOnExit(cmd.Context())
			if err != nil {
				return fmt.Errorf("flush %s: %w", baseURL, err)
			}
			_, err = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), result.Message)
			return err
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", apiclient.DefaultBaseURL, "Base URL of the running server")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	return cmd
}
