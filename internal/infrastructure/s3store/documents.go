package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"storefront-service/internal/domain/errs"
	"storefront-service/internal/domain/models"
)

// DocumentStore stores order documents under directory/fileName keys.
type DocumentStore struct {
	client *s3.Client
	bucket string
}

func NewDocumentStore(ctx context.Context, client *s3.Client, bucket string) (*DocumentStore, error) {
	if err := ensureBucket(ctx, client, bucket); err != nil {
		slog.Error("Failed to ensure document bucket", "error", err, "bucket", bucket)
		return nil, errs.Storage("Failed to ensure document bucket", err)
	}
	return &DocumentStore{
		client: client,
		bucket: bucket,
	}, nil
}

func documentKey(directory, fileName string) string {
	return strings.Trim(directory, "/") + "/" + fileName
}

func (d *DocumentStore) Upload(ctx context.Context, directory, fileName string, data []byte) error {
	key := documentKey(directory, fileName)
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		slog.Error("Failed to upload file", "error", err, "key", key)
		return errs.Storage("Failed to upload file", err)
	}

	slog.Info("File uploaded", "directory", directory, "fileName", fileName, "size", len(data))
	return nil
}

func (d *DocumentStore) Download(ctx context.Context, directory, fileName string) ([]byte, error) {
	key := documentKey(directory, fileName)
	out, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, errs.NotFound("File not found")
		}
		slog.Error("Failed to download file", "error", err, "key", key)
		return nil, errs.Storage("Failed to download file", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errs.Storage("Failed to read file contents", err)
	}

	slog.Info("File downloaded", "directory", directory, "fileName", fileName, "size", len(data))
	return data, nil
}

// List walks the directory through the store's native pagination instead of
// materializing the whole listing in one call.
func (d *DocumentStore) List(ctx context.Context, directory string) ([]models.FileInfo, error) {
	prefix := strings.Trim(directory, "/") + "/"

	files := []models.FileInfo{}
	paginator := s3.NewListObjectsV2Paginator(d.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(d.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			slog.Error("Failed to list files", "error", err, "directory", directory)
			return nil, errs.Storage("Failed to list files", err)
		}

		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" || strings.Contains(name, "/") {
				// Nested paths are directories, not files of this listing.
				continue
			}
			files = append(files, models.FileInfo{
				Name:         name,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	slog.Info("Files listed", "directory", directory, "count", len(files))
	return files, nil
}

func (d *DocumentStore) Delete(ctx context.Context, directory, fileName string) error {
	key := documentKey(directory, fileName)
	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.Error("Failed to delete file", "error", err, "key", key)
		return errs.Storage("Failed to delete file", err)
	}

	slog.Info("File deleted", "directory", directory, "fileName", fileName)
	return nil
}
