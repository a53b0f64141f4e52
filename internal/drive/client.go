package drive

import (
	"context"
	"errors"
	"fmt"
	"io"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// ErrNoCredentials is returned by NewClient when no credentials are given.
var ErrNoCredentials = errors.New("no Google service account credentials configured")

// FileStore is the part of a cloud file store the image resolver needs.
type FileStore interface {
	// MimeType returns the MIME type recorded for the file. An empty string
	// means the store has no type on record.
	MimeType(ctx context.Context, fileID string) (string, error)

	// Open streams the binary content of the file. The caller closes it.
	Open(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// Client is a read-only Google Drive v3 FileStore.
//
// Example usage:
//
//	client, err := drive.NewClient(ctx, credentialsJSON)
//	if errors.Is(err, drive.ErrNoCredentials) {
//	    // run without image downloads
//	}
//	mime, err := client.MimeType(ctx, fileID)
//	body, err := client.Open(ctx, fileID)
//	defer body.Close()
type Client struct {
	files *drivev3.FilesService
}

var _ FileStore = (*Client)(nil)

// NewClient authenticates with a service account key (the JSON blob
// downloaded from the Cloud console) using the drive.readonly scope.
//
// Returns ErrNoCredentials if credentialsJSON is empty.
func NewClient(ctx context.Context, credentialsJSON []byte, opts ...option.ClientOption) (*Client, error) {
	if len(credentialsJSON) == 0 {
		return nil, ErrNoCredentials
	}

	opts = append([]option.ClientOption{
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drivev3.DriveReadonlyScope),
	}, opts...)

	return NewClientWithOptions(ctx, opts...)
}

// NewClientWithOptions builds a Client from raw client options. It is used
// by NewClient and lets tests point the client at a fake endpoint with
// option.WithEndpoint and option.WithHTTPClient.
func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := drivev3.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{files: svc.Files}, nil
}

// MimeType fetches the mimeType field of the file's metadata.
func (c *Client) MimeType(ctx context.Context, fileID string) (string, error) {
	file, err := c.files.Get(fileID).
		Fields("mimeType").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("get metadata for %s: %w", fileID, err)
	}
	return file.MimeType, nil
}

// Open starts downloading the file content (alt=media) and returns the body.
func (c *Client) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := c.files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	return resp.Body, nil
}

// Extension maps an image MIME type to the file extension used in the
// cache, including the dot.
//
// Returns:
//   - ".jpg" for image/jpeg
//   - ".png" for image/png
//   - ".gif" for image/gif
//   - ".jpg" for anything else, including an empty type
func Extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
