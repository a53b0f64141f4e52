package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/discography-sync/internal/discography"
	"github.com/handiism/discography-sync/internal/resolve"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var src sourceFlags
	var outputPath string
	var cacheDir string
	var publicPath string
	var lockFile string
	var credentialsFile string
	var concurrency int
	var maxSize int
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the sheet, cache cover art and print the discography as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			src.apply(settings)
			flags := cmd.Flags()
			if flags.Changed("cache-dir") {
				settings.CacheDir = cacheDir
			}
			if flags.Changed("public-path") {
				settings.PublicPath = publicPath
			}
			if flags.Changed("lock-file") {
				settings.LockFile = lockFile
			}
			if flags.Changed("credentials-file") {
				settings.CredentialsFile = credentialsFile
			}
			if flags.Changed("concurrency") {
				settings.MaxConcurrentImages = concurrency
			}
			if flags.Changed("max-size") {
				settings.ImageMaxSize = maxSize
			}

			logger, err := ctx.logger(settings)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := []discography.Option{discography.WithLogger(logger)}
			if !quiet {
				opts = append(opts, discography.WithProgress(progressPrinter(cmd.ErrOrStderr(), verbose)))
			}

			data, err := discography.Sync(runCtx, settings, opts...)
			if err != nil {
				if runCtx.Err() != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "Sync cancelled.")
				}
				return err
			}

			if outputPath == "" || outputPath == "-" {
				return writeJSON(cmd.OutOrStdout(), data)
			}
			if err := writeJSONFile(outputPath, data); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d items to %s\n", data.Count(), outputPath)
			}
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the discography JSON to this file (default stdout)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory cover art is cached in")
	cmd.Flags().StringVar(&publicPath, "public-path", "", "URL path the cache directory is served under")
	cmd.Flags().StringVar(&lockFile, "lock-file", "", "Lock file guarding the cache directory")
	cmd.Flags().StringVar(&credentialsFile, "credentials-file", "", "Google service account key file")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum concurrent image downloads (0 = unlimited)")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "Shrink cover art to fit this many pixels (0 = keep original)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show per-image progress")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	return cmd
}

// progressPrinter returns a progress callback writing one line per event.
// It is safe for concurrent use.
func progressPrinter(w io.Writer, verbose bool) func(resolve.ProgressEvent) {
	var mu sync.Mutex
	return func(event resolve.ProgressEvent) {
		if event.Level == resolve.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case resolve.LevelError:
			prefix = "❌ "
		case resolve.LevelWarning:
			prefix = "⚠️  "
		case resolve.LevelSuccess:
			prefix = "✅ "
		case resolve.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, prefix+event.Message)
	}
}
