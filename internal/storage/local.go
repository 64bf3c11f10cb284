package storage

import (
	"io"
	"os"
	"path/filepath"
)

// LocalFileStorage keeps uploads on the local filesystem.
type LocalFileStorage struct {
	dirName string
}

// NewLocalFileStorage creates the directory if it does not exist yet.
func NewLocalFileStorage(dir string) (*LocalFileStorage, error) {
	if dir == "" {
		dir = "./uploads"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{dirName: dir}, nil
}

func (fs *LocalFileStorage) SaveByKey(src io.Reader, key, name, contentType string) error {
	file, err := os.Create(fs.getFilePath(key))
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := io.Copy(file, src); err != nil {
		return err
	}
	return nil
}

func (fs *LocalFileStorage) OpenFileByKey(key string) (io.ReadCloser, error) {
	reader, err := os.Open(fs.getFilePath(key))
	if err != nil {
		return nil, ErrFileNotFound
	}
	return reader, nil
}

func (fs *LocalFileStorage) DeleteByKey(key string) error {
	fileName := fs.getFilePath(key)
	if _, err := os.Stat(fileName); err != nil {
		return ErrFileNotFound
	}
	return os.Remove(fileName)
}

// GetDir returns the upload directory, used for static file serving.
func (fs *LocalFileStorage) GetDir() string {
	return fs.dirName
}

func (fs *LocalFileStorage) getFilePath(key string) string {
	return filepath.Join(fs.dirName, key)
}
