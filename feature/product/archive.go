package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"product-catalog/core/storage"
	"product-catalog/feature/product/models"

	"github.com/minio/minio-go/v7"
)

const snapshotLayout = "20060102T150405.000000000Z"

// Archive writes snapshots of the staging batch to object storage.
type Archive struct {
	client storage.Client
	bucket string
	region string
	prefix string
	now    func() time.Time
}

// NewArchive creates an archive under prefix in bucket.
func NewArchive(client storage.Client, bucket, region, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// objectName returns the snapshot key for t. Keys sort chronologically.
func (a *Archive) objectName(t time.Time) string {
	return a.prefix + "/" + t.UTC().Format(snapshotLayout) + ".json"
}

// Snapshot stores items and returns the object name. The bucket is created if missing.
func (a *Archive) Snapshot(ctx context.Context, items []models.SapProduct) (string, error) {
	if err := storage.EnsureBucket(ctx, a.client, a.bucket, a.region); err != nil {
		return "", err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := a.objectName(a.now())
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}
	return name, nil
}

// Latest loads the newest snapshot. It returns an empty name when none exists.
func (a *Archive) Latest(ctx context.Context) ([]models.SapProduct, string, error) {
	var latest string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: a.prefix + "/", Recursive: true}) {
		if obj.Err != nil {
			return nil, "", fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") && obj.Key > latest {
			latest = obj.Key
		}
	}
	if latest == "" {
		return nil, "", nil
	}

	reader, err := a.client.GetObject(ctx, a.bucket, latest, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to download snapshot %s: %w", latest, err)
	}
	defer reader.Close()

	var items []models.SapProduct
	if err := json.NewDecoder(reader).Decode(&items); err != nil {
		return nil, "", fmt.Errorf("failed to decode snapshot %s: %w", latest, err)
	}
	return items, latest, nil
}
