// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Writing cached images
//   - Deriving deterministic cache file names from release titles
//   - Directory creation
//   - Optional image resizing
//
// # Cache File Names
//
//	name := ioutils.CacheFileName("2021", "Live (Remix) #1", "f1", ".jpg")
//	// "2021-Live_Remix_1-f1.jpg"
//
// # File Operations
//
//	err := ioutils.EnsureDir("public/img/googledrive")
//	err = ioutils.WriteFile(ctx, filepath.Join(dir, name), data)
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	resized, _ := svc.ResizeImage(ctx, imageData, 800, 800)
package ioutils
