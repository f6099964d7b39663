package api

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ColeHoward/WebWorker/internal/types"
	"golang.org/x/sys/unix"
)

// Resource is a regular file opened for exactly one request. The same handle
// backs both the status decision and the body, so a file removed between the
// two cannot change the outcome. A nil *Resource means "not found".
type Resource struct {
	file *os.File
	size int64
}

// OpenResource locates req's path under root. It returns nil, nil when the
// request is unresolved or the path is missing or not a regular file. Other
// failures (permission denied, disk errors) are returned as errors.
func OpenResource(root string, req types.Request) (*Resource, error) {
	if !req.Resolved() {
		return nil, nil
	}

	name := filepath.Join(root, filepath.FromSlash(req.Path))
	f, err := os.Open(name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening resource %q: %w", req.Path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat resource %q: %w", req.Path, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil
	}

	return &Resource{file: f, size: info.Size()}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, unix.ENOTDIR) ||
		errors.Is(err, unix.ENAMETOOLONG)
}

func (r *Resource) Exists() bool {
	return r != nil
}

// size in bytes at open time
func (r *Resource) Size() int64 {
	if r == nil {
		return 0
	}
	return r.size
}

func (r *Resource) Reader() io.Reader {
	return r.file
}

func (r *Resource) Close() error {
	if r == nil {
		return nil
	}
	return r.file.Close()
}
