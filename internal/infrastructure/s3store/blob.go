package s3store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"storefront-service/internal/domain/errs"
)

// BlobStore stores product images addressed by file name.
type BlobStore struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

func NewBlobStore(ctx context.Context, client *s3.Client, bucket, endpoint string) (*BlobStore, error) {
	if err := ensureBucket(ctx, client, bucket); err != nil {
		slog.Error("Failed to ensure blob bucket", "error", err, "bucket", bucket)
		return nil, errs.Storage("Failed to ensure blob bucket", err)
	}
	return &BlobStore{
		client:   client,
		bucket:   bucket,
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}, nil
}

func (b *BlobStore) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentTypeFor(fileName)),
	})
	if err != nil {
		slog.Error("Failed to upload blob", "error", err, "fileName", fileName)
		return "", errs.Storage("Failed to upload blob", err)
	}

	blobURL := fmt.Sprintf("%s/%s/%s", b.endpoint, b.bucket, fileName)
	slog.Info("Blob uploaded", "fileName", fileName, "blobUrl", blobURL, "size", len(data))
	return blobURL, nil
}

func (b *BlobStore) Delete(ctx context.Context, blobURL string) error {
	key, err := b.keyFromURL(blobURL)
	if err != nil {
		return err
	}

	_, err = b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.Error("Failed to delete blob", "error", err, "key", key)
		return errs.Storage("Failed to delete blob", err)
	}

	slog.Info("Blob deleted", "key", key)
	return nil
}

// keyFromURL accepts either a full blob URL or a bare file name.
func (b *BlobStore) keyFromURL(blobURL string) (string, error) {
	if !strings.Contains(blobURL, "/") {
		return blobURL, nil
	}
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", errs.Validation("Invalid blob URI")
	}
	key := strings.TrimPrefix(u.Path, "/"+b.bucket+"/")
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", errs.Validation("Invalid blob URI")
	}
	return key, nil
}

// ContentTypeFor infers the upload content type from the file extension.
func ContentTypeFor(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
