// Package discography provides the sync pipeline: fetch the discography
// sheet, cache its cover art and group the releases by year.
//
// # Pipeline
//
// The pipeline runs these steps, in order:
//
//  1. Locate the CSV export URL from the settings
//  2. Fetch and parse the sheet into rows
//  3. Resolve Drive-hosted images of all rows concurrently
//  4. Aggregate rows into DiscographyData once every image has settled
//
// # Basic Usage
//
//	data, err := discography.Sync(ctx, settings,
//	    discography.WithLogger(logger),
//	    discography.WithProgress(func(e resolve.ProgressEvent) {
//	        fmt.Println(e.Message)
//	    }),
//	)
//	if errors.Is(err, discography.ErrNotConfigured) {
//	    log.Fatal("set SPREADSHEET_ID")
//	}
//
// # Degraded Runs
//
// An unreachable sheet yields empty data rather than an error, and a failed
// image download keeps the remote URL. Only a missing source, a malformed
// CSV or a cancelled context stop a run.
package discography
