package discography

import (
	"errors"

	"github.com/handiism/discography-sync/internal/sheets"
)

var (
	// ErrNotConfigured is returned when neither a spreadsheet id nor a CSV
	// URL is configured. It always aborts the run.
	ErrNotConfigured = errors.New("no spreadsheet configured: set SPREADSHEET_ID or CSV_URL")

	// ErrParse is returned when the fetched CSV is malformed. It aborts the run.
	ErrParse = sheets.ErrParse

	// ErrCacheLocked is returned when the image cache lock could not be taken
	// before the context ended.
	ErrCacheLocked = errors.New("image cache is locked by another sync")
)
