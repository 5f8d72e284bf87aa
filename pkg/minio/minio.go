package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

func (m *implMinIO) EnsureBucket(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return NewInvalidInputError("bucket name is required")
	}

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return handleMinIOError(err, "check_bucket_exists")
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.cfg.Region}); err != nil {
		return handleMinIOError(err, "create_bucket")
	}
	return nil
}

func (m *implMinIO) HealthCheck(ctx context.Context) error {
	if _, err := m.client.ListBuckets(ctx); err != nil {
		return handleMinIOError(err, "health_check")
	}
	return nil
}

func (m *implMinIO) PutObject(ctx context.Context, req *PutRequest) (*ObjectInfo, error) {
	if req.BucketName == "" || req.ObjectName == "" {
		return nil, NewInvalidInputError("bucket and object name are required")
	}
	if req.Reader == nil {
		return nil, NewInvalidInputError("reader is required")
	}

	info, err := m.client.PutObject(ctx, req.BucketName, req.ObjectName, req.Reader, req.Size, minio.PutObjectOptions{
		ContentType:  req.ContentType,
		UserMetadata: req.Metadata,
	})
	if err != nil {
		return nil, handleMinIOError(err, "put_object")
	}

	return &ObjectInfo{
		BucketName:   req.BucketName,
		ObjectName:   req.ObjectName,
		Size:         info.Size,
		ContentType:  req.ContentType,
		ETag:         info.ETag,
		LastModified: time.Now(),
	}, nil
}

func (m *implMinIO) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, handleMinIOError(err, "get_object")
	}
	// GetObject is lazy, Stat surfaces a missing key.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, handleMinIOError(err, "get_object")
	}
	return obj, nil
}

func (m *implMinIO) ListObjects(ctx context.Context, req *ListRequest) ([]*ObjectInfo, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    req.Prefix,
		Recursive: req.Recursive,
		MaxKeys:   req.MaxKeys,
	}

	var objects []*ObjectInfo
	for object := range m.client.ListObjects(ctx, req.BucketName, opts) {
		if object.Err != nil {
			return nil, handleMinIOError(object.Err, "list_objects")
		}
		objects = append(objects, &ObjectInfo{
			BucketName:   req.BucketName,
			ObjectName:   object.Key,
			Size:         object.Size,
			ETag:         object.ETag,
			LastModified: object.LastModified,
			ContentType:  object.ContentType,
		})
		if req.MaxKeys > 0 && len(objects) >= req.MaxKeys {
			break
		}
	}
	return objects, nil
}

// handleMinIOError converts client errors to StorageError.
func handleMinIOError(err error, operation string) *StorageError {
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return NewConnectionError(err)
	}

	switch resp.Code {
	case "NoSuchBucket":
		return NewBucketNotFoundError(resp.BucketName)
	case "NoSuchKey":
		return NewObjectNotFoundError(resp.Key)
	case "AccessDenied":
		return &StorageError{Code: ErrCodePermission, Message: "Access denied", Operation: operation, Cause: err}
	default:
		return &StorageError{
			Code:      ErrCodeConnection,
			Message:   fmt.Sprintf("MinIO operation failed: %s", resp.Code),
			Operation: operation,
			Cause:     err,
		}
	}
}
