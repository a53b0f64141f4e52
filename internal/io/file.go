// Package ioutils provides file system utilities for discography-sync.
//
// This package contains functions for:
//   - Cache file writing
//   - Title sanitization and cache file naming
//   - Directory creation
//
// All functions that accept a context.Context check for cancellation before
// touching the file system, though file operations themselves may not be
// interruptible.
package ioutils

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"regexp"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[\\/:*?"<>|()#]`)
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing, so writing the same bytes twice leaves
// an identical file behind.
//
// Parameters:
//   - ctx: Context checked for cancellation before writing
//   - path: File path to write to
//   - data: Bytes to write
//
// Example:
//
//	err := WriteFile(ctx, "public/img/googledrive/2020-Title-abc.jpg", imageData)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SanitizeTitle turns a release title into a fragment that is safe to use
// in a file name.
//
// The following transformations are applied, in order:
//   - Runs of whitespace → a single underscore
//   - The characters \ / : * ? " < > | ( ) # → removed
//
// Example:
//
//	SanitizeTitle("Live (Remix) #1") // Returns "Live_Remix_1"
//	SanitizeTitle("A/B  Side")       // Returns "AB_Side"
func SanitizeTitle(title string) string {
	title = whitespaceRun.ReplaceAllString(title, "_")
	return unsafeChars.ReplaceAllString(title, "")
}

// CacheFileName composes the deterministic name of a cached image:
// {year}-{sanitizedTitle}-{fileID}{ext}.
//
// ext must include the leading dot.
//
// Example:
//
//	CacheFileName("2021", "Live (Remix) #1", "f1", ".jpg") // "2021-Live_Remix_1-f1.jpg"
func CacheFileName(year, title, fileID, ext string) string {
	return year + "-" + SanitizeTitle(title) + "-" + fileID + ext
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned. An error is returned
// if the path exists but is not a directory.
//
// Example:
//
//	err := EnsureDir("public/img/googledrive")
func EnsureDir(path string) error {
	err := os.MkdirAll(path, 0755)
	if err == nil || !errors.Is(err, fs.ErrExist) {
		return err
	}

	info, statErr := os.Stat(path)
	if statErr == nil && info.IsDir() {
		return nil
	}
	return err
}
