package discography

import (
	"context"
	"fmt"

	"github.com/handiism/discography-sync/internal/config"
	"github.com/handiism/discography-sync/internal/http"
	"github.com/handiism/discography-sync/internal/model"
	"github.com/handiism/discography-sync/internal/sheets"
	"go.uber.org/zap"
)

// Fetcher downloads the discography sheet and parses it into rows.
type Fetcher struct {
	settings *config.Settings
	client   *http.Client
	logger   *zap.Logger
}

// NewFetcher creates a Fetcher. A nil logger discards log output.
func NewFetcher(settings *config.Settings, client *http.Client, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{settings: settings, client: client, logger: logger}
}

// Fetch downloads the CSV at url and parses it.
//
// Returns ErrNotConfigured if the settings name no spreadsheet at all,
// whatever url is. A failed download (transport error or non-2xx status)
// is logged and yields no rows and no error: callers must not read an
// empty result as an empty sheet. A malformed CSV returns an error
// wrapping ErrParse. Cancellation of ctx is returned as is.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]model.Row, error) {
	if !f.settings.HasSource() {
		return nil, ErrNotConfigured
	}

	text, err := f.client.GetString(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Error("Error fetching CSV",
			zap.String("url", url),
			zap.Error(err))
		return nil, nil
	}

	rows, err := sheets.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse CSV from %s: %w", url, err)
	}

	f.logger.Debug("Fetched discography sheet",
		zap.String("url", url),
		zap.Int("rows", len(rows)))
	return rows, nil
}
