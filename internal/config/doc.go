// Package config provides configuration management for discography-sync.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - Overlaying values from the environment
//   - Conversion to resolve.Options for the image resolver
//
// Settings are built once by the caller and passed to the pipeline; nothing
// below this package reads the environment.
//
// # Loading
//
//	settings, err := config.Load("discography.yaml") // defaults if missing
//	settings.ApplyEnv(os.LookupEnv)
//	if err := settings.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment
//
//	SPREADSHEET_ID                       (or NEXT_PUBLIC_SPREADSHEET_ID)
//	CSV_URL                              (or NEXT_PUBLIC_CSV_URL)
//	DISCOGRAPHY_GID                      (or NEXT_PUBLIC_DISCOGRAPHY_GID)
//	GOOGLE_APPLICATION_CREDENTIALS_JSON
//	GOOGLE_APPLICATION_CREDENTIALS_FILE
//
// # Configuration Options
//
// Settings includes options for:
//   - The spreadsheet source (id, published id or URL, and tab gid)
//   - Service account credentials for Drive downloads
//   - Image cache location, public path and optional resizing
//   - Concurrency limit for image downloads
//   - HTTP timeout and User-Agent
//   - Log level and format
package config
