// Command discography syncs a discography spreadsheet into a year-grouped
// JSON document and a local cover art cache.
//
// Usage:
//
//	discography sync --spreadsheet 2PACX-... --output discography.json
//	discography show --input discography.json
//	discography locate
//	discography config init
//
// Settings come from a YAML file (--config, default discography.yaml), then
// the environment (SPREADSHEET_ID, CSV_URL, DISCOGRAPHY_GID,
// GOOGLE_APPLICATION_CREDENTIALS_JSON, GOOGLE_APPLICATION_CREDENTIALS_FILE
// and their NEXT_PUBLIC_ variants), then command line flags.
package main
