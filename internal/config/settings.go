package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/discography-sync/internal/resolve"
	"github.com/handiism/discography-sync/internal/sheets"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv. Each key is listed with the
// fallback names it also accepts, in priority order.
var envKeys = map[string][]string{
	"spreadsheet_id":   {"SPREADSHEET_ID", "NEXT_PUBLIC_SPREADSHEET_ID"},
	"csv_url":          {"CSV_URL", "NEXT_PUBLIC_CSV_URL"},
	"gid":              {"DISCOGRAPHY_GID", "NEXT_PUBLIC_DISCOGRAPHY_GID"},
	"credentials_json": {"GOOGLE_APPLICATION_CREDENTIALS_JSON"},
	"credentials_file": {"GOOGLE_APPLICATION_CREDENTIALS_FILE"},
}

// Settings holds all configuration options.
type Settings struct {
	// Source settings
	SpreadsheetID string `yaml:"spreadsheet_id"`
	CSVURL        string `yaml:"csv_url"`
	GID           string `yaml:"gid"`

	// Google service account key, inline or as a file path
	CredentialsJSON string `yaml:"credentials_json"`
	CredentialsFile string `yaml:"credentials_file"`

	// Image cache settings
	CacheDir            string `yaml:"cache_dir"`
	PublicPath          string `yaml:"public_path"`
	ImageURLPrefix      string `yaml:"image_url_prefix"`
	MaxConcurrentImages int    `yaml:"max_concurrent_images"` // 0 = no limit
	ImageMaxSize        int    `yaml:"image_max_size"`        // 0 = keep original
	LockFile            string `yaml:"lock_file"`

	// HTTP settings
	HTTPTimeout float64 `yaml:"http_timeout"` // seconds
	UserAgent   string  `yaml:"user_agent"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // auto, console, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		GID: sheets.DefaultGID,

		CacheDir:            filepath.Join("public", "img", "googledrive"),
		PublicPath:          "/img/googledrive",
		ImageURLPrefix:      resolve.DefaultURLPrefix,
		MaxConcurrentImages: 0,
		ImageMaxSize:        0,
		LockFile:            filepath.Join(os.TempDir(), "discography-sync.lock"),

		HTTPTimeout: 60,
		UserAgent:   "DiscographySync",

		LogLevel:  "info",
		LogFormat: "auto",
	}
}

// Load reads settings from a YAML file.
//
// A missing file is not an error: the defaults are returned instead.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overlays values from the environment onto s.
//
// lookup is usually os.LookupEnv. Only variables that are set and
// non-empty override the current value.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) {
	targets := map[string]*string{
		"spreadsheet_id":   &s.SpreadsheetID,
		"csv_url":          &s.CSVURL,
		"gid":              &s.GID,
		"credentials_json": &s.CredentialsJSON,
		"credentials_file": &s.CredentialsFile,
	}

	for field, keys := range envKeys {
		for _, key := range keys {
			if value, ok := lookup(key); ok && value != "" {
				*targets[field] = value
				break
			}
		}
	}
}

// Validate reports settings that cannot work.
//
// A missing spreadsheet source is not reported here; the pipeline fails
// with its own configuration error when it needs one.
func (s *Settings) Validate() error {
	var errs []error
	if s.CacheDir == "" {
		errs = append(errs, errors.New("cache_dir must not be empty"))
	}
	if s.MaxConcurrentImages < 0 {
		errs = append(errs, fmt.Errorf("max_concurrent_images must be >= 0, got %d", s.MaxConcurrentImages))
	}
	if s.ImageMaxSize < 0 {
		errs = append(errs, fmt.Errorf("image_max_size must be >= 0, got %d", s.ImageMaxSize))
	}
	if s.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("http_timeout must be >= 0, got %g", s.HTTPTimeout))
	}
	switch s.LogFormat {
	case "", "auto", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format: unsupported value %q", s.LogFormat))
	}
	return errors.Join(errs...)
}

// HasSource reports whether a spreadsheet id or an explicit CSV URL is set.
func (s *Settings) HasSource() bool {
	return s.SpreadsheetID != "" || s.CSVURL != ""
}

// SourceURL returns the CSV address to fetch.
//
// An explicit CSVURL wins; otherwise the address is derived from
// SpreadsheetID and GID.
func (s *Settings) SourceURL() string {
	if s.CSVURL != "" {
		return s.CSVURL
	}
	return sheets.CSVURL(s.SpreadsheetID, s.GID)
}

// Credentials returns the service account key, preferring the inline JSON
// over the file. It returns nil, nil when neither is configured.
func (s *Settings) Credentials() ([]byte, error) {
	if s.CredentialsJSON != "" {
		return []byte(s.CredentialsJSON), nil
	}
	if s.CredentialsFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return data, nil
}

// Timeout returns HTTPTimeout as a duration. Zero means no timeout.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.HTTPTimeout * float64(time.Second))
}

// ToResolveOptions converts settings to resolve.Options.
func (s *Settings) ToResolveOptions() resolve.Options {
	return resolve.Options{
		CacheDir:      s.CacheDir,
		PublicPath:    s.PublicPath,
		URLPrefix:     s.ImageURLPrefix,
		MaxConcurrent: s.MaxConcurrentImages,
		ImageMaxSize:  s.ImageMaxSize,
	}
}
