// Package filesystem abstracts the read-side filesystem operations the
// static resolver depends on, so handlers can be tested against a plain
// directory tree.
package filesystem

import (
	"fmt"
	"os"
)

var (
	ErrFileNotFound      = fmt.Errorf("filesystem: file not found")
	ErrDirectoryNotFound = fmt.Errorf("filesystem: directory not found")
	ErrInvalidPath       = fmt.Errorf("filesystem: invalid path")
)

type Filesystem interface {
	Exists(path string) bool
	IsDirectory(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
	ListDirectory(path string) ([]os.FileInfo, error)
}

type localFilesystem struct {
}

func NewLocalFilesystem() Filesystem {
	return &localFilesystem{}
}

func (filesystem *localFilesystem) Exists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)
	return err == nil
}

func (filesystem *localFilesystem) IsDirectory(path string) (bool, error) {
	if path == "" {
		return false, ErrInvalidPath
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return info.IsDir(), nil
}

func (filesystem *localFilesystem) ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}

	if !filesystem.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	return os.ReadFile(path)
}

func (filesystem *localFilesystem) ListDirectory(path string) ([]os.FileInfo, error) {
	isDirectory, err := filesystem.IsDirectory(path)
	if err != nil {
		return nil, err
	}
	if !isDirectory {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return infos, nil
}
