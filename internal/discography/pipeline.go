package discography

import (
	"context"
	"fmt"
	nethttp "net/http"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/handiism/discography-sync/internal/config"
	"github.com/handiism/discography-sync/internal/drive"
	"github.com/handiism/discography-sync/internal/http"
	ioutils "github.com/handiism/discography-sync/internal/io"
	"github.com/handiism/discography-sync/internal/model"
	"github.com/handiism/discography-sync/internal/resolve"
	"go.uber.org/zap"
)

const lockRetryDelay = 200 * time.Millisecond

// Option customizes a Pipeline.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	httpClient *nethttp.Client
	store      drive.FileStore
	storeSet   bool
	onProgress func(resolve.ProgressEvent)
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHTTPClient sets the client used to download the sheet.
func WithHTTPClient(client *nethttp.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithFileStore replaces the Drive client built from the settings'
// credentials. Passing nil disables image downloads.
func WithFileStore(store drive.FileStore) Option {
	return func(o *options) {
		o.store = store
		o.storeSet = true
	}
}

// WithProgress registers a callback for progress events. It may be called
// from several goroutines at once.
func WithProgress(fn func(resolve.ProgressEvent)) Option {
	return func(o *options) { o.onProgress = fn }
}

// Pipeline turns the configured spreadsheet into DiscographyData.
//
// Example usage:
//
//	settings := config.DefaultSettings()
//	settings.ApplyEnv(os.LookupEnv)
//
//	p, err := discography.New(ctx, settings, discography.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := p.Run(ctx)
type Pipeline struct {
	settings   *config.Settings
	fetcher    *Fetcher
	resolver   *resolve.Resolver
	logger     *zap.Logger
	onProgress func(resolve.ProgressEvent)
}

// New builds a Pipeline from settings.
//
// Unless WithFileStore is given, a Drive client is created from the
// configured service account credentials. Missing or unusable credentials
// are logged and the pipeline runs without image downloads.
func New(ctx context.Context, settings *config.Settings, opts ...Option) (*Pipeline, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.httpClient == nil {
		o.httpClient = &nethttp.Client{Timeout: settings.Timeout()}
	}

	store := o.store
	if !o.storeSet {
		store = newDriveStore(ctx, settings, o.logger)
	}

	client := http.NewClientWith(o.httpClient, settings.UserAgent)

	return &Pipeline{
		settings:   settings,
		fetcher:    NewFetcher(settings, client, o.logger),
		resolver:   resolve.NewResolver(store, settings.ToResolveOptions(), o.logger, o.onProgress),
		logger:     o.logger,
		onProgress: o.onProgress,
	}, nil
}

// Sync builds a Pipeline and runs it once.
func Sync(ctx context.Context, settings *config.Settings, opts ...Option) (model.DiscographyData, error) {
	p, err := New(ctx, settings, opts...)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx)
}

// Run fetches the sheet, resolves images and groups the result by year.
//
// Only ErrNotConfigured, ErrParse, ErrCacheLocked and context cancellation
// abort a run. Every other failure degrades the result: an unreachable
// sheet gives empty data, a failed image keeps its remote URL.
func (p *Pipeline) Run(ctx context.Context) (model.DiscographyData, error) {
	unlock, err := p.lockCache(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	url := p.settings.SourceURL()
	p.logger.Info("Fetching discography", zap.String("url", url))

	rows, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	p.progress(resolve.ProgressEvent{Message: fmt.Sprintf("Fetched %d rows", len(rows)), Level: resolve.LevelInfo})

	rows = p.resolver.Resolve(ctx, rows)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := Aggregate(rows)

	resolved, failed, total, bytes := p.resolver.Progress()
	p.logger.Info("Discography synced",
		zap.Int("rows", len(rows)),
		zap.Int("items", data.Count()),
		zap.Int("years", len(data)),
		zap.Int32("images_cached", resolved),
		zap.Int32("images_failed", failed),
		zap.Int32("images_total", total),
		zap.Int64("image_bytes", bytes))
	p.progress(resolve.ProgressEvent{
		Message: fmt.Sprintf("Synced %d items in %d years (%d/%d images cached)", data.Count(), len(data), resolved, total),
		Level:   resolve.LevelSuccess,
	})

	return data, nil
}

// Resolver exposes the image resolver, e.g. for polling progress.
func (p *Pipeline) Resolver() *resolve.Resolver {
	return p.resolver
}

// lockCache takes the inter-process lock guarding the image cache. It waits
// for another sync to finish until ctx ends.
func (p *Pipeline) lockCache(ctx context.Context) (func(), error) {
	path := p.settings.LockFile
	if path == "" {
		return func() {}, nil
	}
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock := flock.New(path)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheLocked, err)
	}
	if !locked {
		return nil, ErrCacheLocked
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("Could not release cache lock", zap.String("path", path), zap.Error(err))
		}
	}, nil
}

func (p *Pipeline) progress(event resolve.ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}

// newDriveStore returns a Drive client, or nil when downloads are not
// possible.
func newDriveStore(ctx context.Context, settings *config.Settings, logger *zap.Logger) drive.FileStore {
	creds, err := settings.Credentials()
	if err != nil {
		logger.Warn("Could not read Google credentials. Skipping Google Drive image downloads.", zap.Error(err))
		return nil
	}
	if creds == nil {
		logger.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON is not set. Skipping Google Drive image downloads.")
		return nil
	}

	client, err := drive.NewClient(ctx, creds)
	if err != nil {
		logger.Warn("Could not initialize Google Drive API. Skipping image downloads.", zap.Error(err))
		return nil
	}
	return client
}
