package main

import (
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/discography-sync/internal/config"
	"github.com/handiism/discography-sync/internal/logging"
)

const defaultConfigPath = "discography.yaml"

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	settings   *config.Settings
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

// ensureSettings loads the configuration file once and overlays the
// environment on top of it.
func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.configOnce.Do(func() {
		path := defaultConfigPath
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		settings, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		settings.ApplyEnv(os.LookupEnv)

		if c.logLevelFlag != nil && *c.logLevelFlag != "" {
			settings.LogLevel = *c.logLevelFlag
		}
		if c.logFormatFlag != nil && *c.logFormatFlag != "" {
			settings.LogFormat = *c.logFormatFlag
		}
		c.settings = settings
	})
	return c.settings, c.configErr
}

func (c *commandContext) logger(settings *config.Settings) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// sourceFlags are the spreadsheet selection flags shared by every command
// that reads the sheet.
type sourceFlags struct {
	spreadsheet string
	csvURL      string
	gid         string
}

func (f *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.spreadsheet, "spreadsheet", "s", "", "Spreadsheet id, published id (2PACX-...) or URL")
	cmd.Flags().StringVar(&f.csvURL, "csv-url", "", "Explicit CSV export URL (overrides --spreadsheet)")
	cmd.Flags().StringVar(&f.gid, "gid", "", "Sheet tab id")
}

func (f *sourceFlags) apply(settings *config.Settings) {
	if f.spreadsheet != "" {
		settings.SpreadsheetID = f.spreadsheet
	}
	if f.csvURL != "" {
		settings.CSVURL = f.csvURL
	}
	if f.gid != "" {
		settings.GID = f.gid
	}
}
