package storage

import (
	"errors"
	"io"
)

// ErrFileNotFound is returned when no file exists for the given key.
var ErrFileNotFound = errors.New("file not found")

// FileStorage abstracts where uploads live (local disk or S3).
type FileStorage interface {
	// SaveByKey stores src under key.
	SaveByKey(src io.Reader, key, name, contentType string) error
	// OpenFileByKey opens the file stored under key.
	OpenFileByKey(key string) (io.ReadCloser, error)
	// DeleteByKey removes the file stored under key.
	DeleteByKey(key string) error
}
