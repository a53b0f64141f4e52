package resolve

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/handiism/discography-sync/internal/drive"
	"github.com/handiism/discography-sync/internal/http"
	ioutils "github.com/handiism/discography-sync/internal/io"
	"github.com/handiism/discography-sync/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultURLPrefix selects which image references are downloaded.
const DefaultURLPrefix = "https://drive.google.com/"

// ErrNoFileID is returned when an image URL carries no id= parameter.
var ErrNoFileID = errors.New("could not parse file ID from URL")

var fileIDPattern = regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an image resolution progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Options configures where and how images are cached.
type Options struct {
	// CacheDir is the directory images are written to.
	CacheDir string

	// PublicPath is the URL path under which CacheDir is served,
	// e.g. "/img/googledrive".
	PublicPath string

	// URLPrefix selects the image references to download.
	// Defaults to DefaultURLPrefix.
	URLPrefix string

	// MaxConcurrent caps in-flight resolutions. Zero or less means no cap.
	MaxConcurrent int

	// ImageMaxSize, when positive, shrinks images to fit a square of that
	// many pixels and stores them as JPEG.
	ImageMaxSize int
}

// Resolver downloads Drive-hosted cover art into the local cache and rewrites
// rows to point at the cached copy.
//
// Every row is handled independently: a failure is logged, reported as a
// warning event and leaves that row's ImageURL untouched.
type Resolver struct {
	store      drive.FileStore
	opts       Options
	images     *ioutils.ImageService
	logger     *zap.Logger
	onProgress func(ProgressEvent)

	total    int32
	resolved int32
	failed   int32
	bytes    int64
}

// NewResolver creates a Resolver.
//
// A nil store disables downloads: Resolve then returns the rows unchanged.
// A nil logger discards log output. onProgress may be nil; it is called
// from the resolution goroutines and must be safe for concurrent use.
func NewResolver(store drive.FileStore, opts Options, logger *zap.Logger, onProgress func(ProgressEvent)) *Resolver {
	if opts.URLPrefix == "" {
		opts.URLPrefix = DefaultURLPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		store:      store,
		opts:       opts,
		images:     ioutils.NewImageService(),
		logger:     logger,
		onProgress: onProgress,
	}
}

// Resolve resolves the images of all rows concurrently and waits for every
// resolution to settle.
//
// The returned slice has the same length and order as rows; rows is not
// modified.
func (r *Resolver) Resolve(ctx context.Context, rows []model.Row) []model.Row {
	out := make([]model.Row, len(rows))
	copy(out, rows)

	atomic.StoreInt32(&r.total, 0)
	atomic.StoreInt32(&r.resolved, 0)
	atomic.StoreInt32(&r.failed, 0)
	atomic.StoreInt64(&r.bytes, 0)

	if r.store == nil {
		return out
	}

	if err := ioutils.EnsureDir(r.opts.CacheDir); err != nil {
		r.logger.Warn("Could not create image cache directory",
			zap.String("dir", r.opts.CacheDir), zap.Error(err))
	}

	limit := r.opts.MaxConcurrent
	if limit <= 0 {
		limit = -1
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i := range out {
		if !r.shouldResolve(out[i]) {
			continue
		}
		atomic.AddInt32(&r.total, 1)

		g.Go(func() error {
			original := out[i]
			resolved, err := r.resolveRow(ctx, original)
			if err != nil {
				atomic.AddInt32(&r.failed, 1)
				r.logger.Error("Failed to download image",
					zap.String("title", original.Title),
					zap.String("url", original.ImageURL),
					zap.Error(err))
				r.progress(ProgressEvent{Message: fmt.Sprintf("Image for %q not cached: %v", original.Title, err), Level: LevelWarning})
				return nil // Continue with other rows
			}

			out[i] = resolved
			atomic.AddInt32(&r.resolved, 1)
			r.progress(ProgressEvent{Message: fmt.Sprintf("Cached image for %s", resolved.Title), Level: LevelVerbose})
			return nil
		})
	}

	_ = g.Wait()
	return out
}

// Progress returns the counters of the current or last Resolve call.
func (r *Resolver) Progress() (resolved, failed, total int32, bytes int64) {
	return atomic.LoadInt32(&r.resolved), atomic.LoadInt32(&r.failed),
		atomic.LoadInt32(&r.total), atomic.LoadInt64(&r.bytes)
}

func (r *Resolver) shouldResolve(row model.Row) bool {
	return r.store != nil && strings.HasPrefix(row.ImageURL, r.opts.URLPrefix)
}

// resolveRow runs one row through id extraction, metadata lookup, download,
// optional resize and the cache write. The returned row carries the local
// image path.
func (r *Resolver) resolveRow(ctx context.Context, row model.Row) (model.Row, error) {
	fileID, err := FileID(row.ImageURL)
	if err != nil {
		return row, err
	}

	mimeType, err := r.store.MimeType(ctx, fileID)
	if err != nil {
		return row, err
	}
	ext := drive.Extension(mimeType)

	data, err := r.download(ctx, fileID)
	if err != nil {
		return row, err
	}

	if r.opts.ImageMaxSize > 0 {
		resized, err := r.images.ResizeImage(ctx, data, r.opts.ImageMaxSize, r.opts.ImageMaxSize)
		if err != nil {
			r.logger.Warn("Could not resize image, caching original",
				zap.String("title", row.Title), zap.String("file_id", fileID), zap.Error(err))
		} else {
			data = resized
			ext = ".jpg"
		}
	}

	filename := ioutils.CacheFileName(row.Year, row.Title, fileID, ext)
	if err := ioutils.WriteFile(ctx, filepath.Join(r.opts.CacheDir, filename), data); err != nil {
		return row, fmt.Errorf("write cached image: %w", err)
	}

	row.ImageURL = path.Join(r.opts.PublicPath, filename)
	return row, nil
}

func (r *Resolver) download(ctx context.Context, fileID string) ([]byte, error) {
	body, err := r.store.Open(ctx, fileID)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var last int64
	data, err := http.DrainStream(ctx, body, func(written, _ int64) {
		atomic.AddInt64(&r.bytes, written-last)
		last = written
	})
	if err != nil {
		return nil, fmt.Errorf("read content of %s: %w", fileID, err)
	}
	return data, nil
}

func (r *Resolver) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}

// FileID extracts the Drive file id from a share link.
//
// Both link styles Drive hands out with an id parameter are understood:
//
//	FileID("https://drive.google.com/open?id=1AbC_d-E") // "1AbC_d-E"
//	FileID("https://drive.google.com/uc?export=view&id=1AbC") // "1AbC"
//
// Returns ErrNoFileID if the URL has no id= parameter.
func FileID(url string) (string, error) {
	match := fileIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", fmt.Errorf("%w: %s", ErrNoFileID, url)
	}
	return match[1], nil
}
