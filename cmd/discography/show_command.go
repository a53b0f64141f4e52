package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/discography-sync/internal/discography"
	"github.com/handiism/discography-sync/internal/model"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var src sourceFlags
	var inputPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the discography grouped by year, newest first",
		Long: "Display the discography grouped by year, newest first.\n\n" +
			"With --input the JSON written by `discography sync` is read; otherwise the sheet\n" +
			"is fetched without downloading any cover art.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data model.DiscographyData
			if inputPath != "" {
				loaded, err := readDiscography(inputPath)
				if err != nil {
					return err
				}
				data = loaded
			} else {
				settings, err := ctx.ensureSettings()
				if err != nil {
					return err
				}
				src.apply(settings)

				logger, err := ctx.logger(settings)
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()

				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				data, err = discography.Sync(runCtx, settings,
					discography.WithLogger(logger),
					discography.WithFileStore(nil),
				)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, data)
			}
			if data.Count() == 0 {
				fmt.Fprintln(out, "No releases found")
				return nil
			}

			fmt.Fprintln(out, renderDiscography(data))
			fmt.Fprintf(out, "%d releases in %d years\n", data.Count(), len(data))
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read a discography JSON file instead of fetching the sheet")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of a table")

	return cmd
}

// renderDiscography lays out one table row per release. The year is only
// printed on the first release of each year.
func renderDiscography(data model.DiscographyData) string {
	headers := []string{"Year", "Title", "Type", "Description", "Cover"}
	var rows [][]string
	for _, year := range data.Years() {
		for i, item := range data[year] {
			yearCell := ""
			if i == 0 {
				yearCell = year
			}
			cover := "-"
			if item.HasImage() {
				cover = *item.ImageURL
			}
			rows = append(rows, []string{yearCell, item.Title, item.Type, item.Description, cover})
		}
	}
	return renderTable(headers, rows, []columnAlignment{alignRight})
}
