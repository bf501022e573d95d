package storageclient

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
)

// Client wraps the Cloud Storage client used for avatar uploads.
type Client struct {
	client *storage.Client
	bucket string
}

// NewClient creates a new Cloud Storage client for the avatar bucket, using
// application default credentials.
func NewClient(ctx context.Context, bucket string) (*Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Client{
		client: client,
		bucket: bucket,
	}, nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.client.Close()
}

// UploadAvatar writes the image to avatars/<volunteerID><ext> in the bucket,
// overwriting any previous avatar, and returns the public object URL. The
// extension is derived from the content type.
func (c *Client) UploadAvatar(ctx context.Context, volunteerID string, r io.Reader, contentType string) (string, error) {
	object := path.Join("avatars", volunteerID+extensionFor(contentType))

	w := c.client.Bucket(c.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "no-cache"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize avatar upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucket, object), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
