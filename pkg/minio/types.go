package minio

import (
	"io"
	"time"
)

// Config holds the client settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	BucketName   string    `json:"bucket_name"`
	ObjectName   string    `json:"object_name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	ETag         string    `json:"etag"`
	LastModified time.Time `json:"last_modified"`
}

// PutRequest contains the parameters for storing an object.
type PutRequest struct {
	BucketName  string
	ObjectName  string
	Reader      io.Reader
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ListRequest contains the parameters for listing objects under a prefix.
type ListRequest struct {
	BucketName string
	Prefix     string
	Recursive  bool
	MaxKeys    int
}
