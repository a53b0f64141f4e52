package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/discography-sync/internal/discography"
)

func newLocateCommand(ctx *commandContext) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Print the CSV export URL the sheet is fetched from",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			src.apply(settings)

			if !settings.HasSource() {
				return fmt.Errorf("%w: set SPREADSHEET_ID or pass --spreadsheet", discography.ErrNotConfigured)
			}
			fmt.Fprintln(cmd.OutOrStdout(), settings.SourceURL())
			return nil
		},
	}

	src.bind(cmd)
	return cmd
}
