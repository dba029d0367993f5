// Package adapter contains the filesystem adapter backing the extfix pipeline.
package adapter

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	m "extfix.dev/pkg/extfix/internal/model"
	"extfix.dev/pkg/extfix/internal/signature"
)

// WalkOptions constrains a tree traversal.
type WalkOptions struct {
	// MaxDepth limits descent into subdirectories. Files directly in the
	// root are level 0; a subdirectory's contents are one level deeper.
	// Directories whose contents would exceed MaxDepth are not entered.
	// Negative means unlimited.
	MaxDepth int
	// SkipHidden prunes dot-prefixed files and directories entirely.
	SkipHidden bool
}

// WalkFunc receives each candidate file path, or a per-entry traversal
// error with the path it occurred at. Returning an error stops the walk.
type WalkFunc func(path m.Path, err error) error

// TreeFS abstracts the filesystem operations the domain layer needs, so the
// decision logic can be exercised against fakes in tests.
type TreeFS interface {
	// WalkTree traverses root. A regular-file root yields exactly one
	// candidate regardless of options; a directory root is walked
	// depth-first. Per-entry errors are forwarded to fn and the walk
	// continues; only an unusable root fails the call itself.
	WalkTree(root m.Path, opts WalkOptions, fn WalkFunc) error

	// ReadPrefix reads up to signature.MaxPrefixLen leading bytes.
	ReadPrefix(path m.Path) ([]byte, error)

	// Rename moves a file. It refuses to overwrite: an existing target is
	// an error.
	Rename(oldPath, newPath m.Path) error

	// Exists reports whether a path is occupied.
	Exists(path m.Path) (bool, error)
}

// LocalTreeFS implements TreeFS against the local disk.
type LocalTreeFS struct{}

// NewLocalTreeFS constructs the local filesystem adapter.
func NewLocalTreeFS() *LocalTreeFS {
	return &LocalTreeFS{}
}

// ErrTargetExists is returned by Rename when the destination is occupied.
var ErrTargetExists = errors.New("rename target already exists")

// WalkTree implements TreeFS.
func (a *LocalTreeFS) WalkTree(root m.Path, opts WalkOptions, fn WalkFunc) error {
	rootStr := string(root)

	// The root itself is stat'ed through symlinks: naming it explicitly is
	// an instruction to inspect it.
	info, err := os.Stat(rootStr)
	if err != nil {
		return err
	}

	// A single-file root bypasses depth and hidden filtering.
	if !info.IsDir() {
		return fn(root, nil)
	}

	return filepath.WalkDir(rootStr, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootStr {
				return err
			}

			return fn(m.Path(path), err)
		}

		if path == rootStr {
			return nil
		}

		name := d.Name()
		if opts.SkipHidden && isHidden(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			if opts.MaxDepth >= 0 && entryLevel(rootStr, path)+1 > opts.MaxDepth {
				return filepath.SkipDir
			}

			return nil
		}

		// WalkDir never follows symlinks; skip the link entries themselves
		// along with sockets, devices and other irregular files.
		if !d.Type().IsRegular() {
			return nil
		}

		return fn(m.Path(path), nil)
	})
}

// entryLevel returns how many directory levels below root an entry sits.
// Entries directly in root are level 0.
func entryLevel(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}

	return strings.Count(rel, string(filepath.Separator))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ReadPrefix implements TreeFS. Short files yield short buffers; a zero-byte
// file yields an empty one.
func (a *LocalTreeFS) ReadPrefix(path m.Path) ([]byte, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() { _ = f.Close() }()

	buf := make([]byte, signature.MaxPrefixLen)

	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	return buf[:n], nil
}

// Rename implements TreeFS.
func (a *LocalTreeFS) Rename(oldPath, newPath m.Path) error {
	if _, err := os.Lstat(string(newPath)); err == nil {
		return ErrTargetExists
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.Rename(string(oldPath), string(newPath))
}

// Exists implements TreeFS.
func (a *LocalTreeFS) Exists(path m.Path) (bool, error) {
	_, err := os.Lstat(string(path))
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}
