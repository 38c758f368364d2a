package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// stagingDir holds in-flight writes. It is a directory, so List never reports
// it and no document key can collide with a temp file.
const stagingDir = ".staging"

// localStorage keeps every object as a regular file directly under dir.
type localStorage struct {
	dir string
}

// NewLocal returns a Storage backed by the directory dir, creating it if needed.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, stagingDir), dirPerm); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &localStorage{dir: dir}, nil
}

func (l *localStorage) path(key string) string {
	return filepath.Join(l.dir, key)
}

// List reads the directory afresh on every call. Every regular file is a
// document; sub-directories, including the staging area, are skipped.
func (l *localStorage) List(_ context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir %q: %w", l.dir, err)
	}

	objects := make([]ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read file info %q: %w", e.Name(), err)
		}
		objects = append(objects, ObjectInfo{
			Key:          e.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}
	return objects, nil
}

// Put writes to a temp file in the staging directory, then renames it over
// the target so the file is never seen half written. The staging directory
// sits inside dir, so the rename stays on one filesystem.
func (l *localStorage) Put(_ context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	path := l.path(key)

	tmp, err := os.CreateTemp(filepath.Join(l.dir, stagingDir), "put-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file for %q: %w", key, err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(filePerm); err != nil {
		return ObjectInfo{}, fmt.Errorf("chmod temp file for %q: %w", key, err)
	}
	n, err := io.Copy(tmp, r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("write %q: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		return ObjectInfo{}, fmt.Errorf("sync %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return ObjectInfo{}, fmt.Errorf("rename into %q: %w", key, err)
	}
	success = true

	info, err := os.Stat(path)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat %q: %w", key, err)
	}
	return ObjectInfo{
		Key:          key,
		Size:         n,
		ContentType:  opt.ContentType,
		LastModified: info.ModTime(),
	}, nil
}

func (l *localStorage) Get(_ context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	f, err := os.Open(l.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, fmt.Errorf("open %q: %w", key, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("stat %q: %w", key, err)
	}
	return f, ObjectInfo{Key: key, Size: st.Size(), LastModified: st.ModTime()}, nil
}

// Touch opens with O_CREATE and without O_TRUNC, so existing content survives.
func (l *localStorage) Touch(_ context.Context, key string) error {
	f, err := os.OpenFile(l.path(key), os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("touch %q: %w", key, err)
	}
	return f.Close()
}

func (l *localStorage) Delete(_ context.Context, key string) error {
	if err := os.Remove(l.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
