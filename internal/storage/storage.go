// Package storage is the object storage boundary for uploaded lease files.
// Implementations stream content and perform no validation of their own.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions describe an upload.
// Size must be the exact number of bytes.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	// FileName is the client's original name, used for the download disposition.
	FileName string
	Metadata map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage stores lease files and hands out URLs for them.
type Storage interface {
	// Put uploads an object under key from r.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// ObjectURL returns the URL handed to clients and to text extraction for a stored object.
	ObjectURL(ctx context.Context, key string) (string, error)
}
