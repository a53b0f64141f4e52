// Package http provides the HTTP client used to fetch the published
// spreadsheet, and the stream helpers shared with the Drive download.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Typed errors (*StatusError) for non-2xx responses
//
// # Basic Usage
//
//	client := http.NewClient()
//	csvText, err := client.GetString(ctx, csvURL)
//
// # Draining Streams
//
// DrainStream turns a byte stream into one in-memory buffer, failing if the
// stream fails or the context is cancelled:
//
//	data, err := http.DrainStream(ctx, body, func(written, total int64) {
//	    fmt.Printf("%d bytes\n", written)
//	})
package http
