// Package resolve caches Drive-hosted cover art locally and rewrites rows
// to reference the cached copy.
//
// # Resolver
//
// For every row whose image URL starts with the Drive prefix, the Resolver:
//
//  1. Extracts the file id from the id= parameter
//  2. Looks up the file's MIME type to pick an extension
//  3. Streams the file content into memory
//  4. Optionally shrinks it (ImageMaxSize)
//  5. Writes {year}-{title}-{id}{ext} to the cache directory
//  6. Points the row's ImageURL at PublicPath/{file}
//
// # Basic Usage
//
//	r := resolve.NewResolver(store, resolve.Options{
//	    CacheDir:   "public/img/googledrive",
//	    PublicPath: "/img/googledrive",
//	}, logger, nil)
//	rows = r.Resolve(ctx, rows)
//
// # Concurrency
//
// All rows are resolved in parallel and Resolve returns only after every
// row has settled. MaxConcurrent caps the number of rows in flight; the
// default is no cap. Output order always matches input order.
//
// # Failures
//
// A failing row is logged with its title and original URL and keeps the
// original ImageURL. It never affects other rows.
package resolve
