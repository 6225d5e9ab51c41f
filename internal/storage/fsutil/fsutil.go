// Package fsutil holds the file primitives shared by the file backed stores.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteAtomic replaces path with whatever write produces. The content goes to
// a temporary file in the same directory which is then renamed over path.
func WriteAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s: %w", f.Name(), err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.Name(), err)
	}

	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}

// SeqPath is the sidecar holding the id high-water mark of a data file.
func SeqPath(path string) string {
	return path + ".seq"
}

// ReadSeq returns the id stored in the sidecar of path, or 0 when there is none.
func ReadSeq(path string) (int64, error) {
	b, err := os.ReadFile(SeqPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("reading sequence: %w", err)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid sequence %q in %s", strings.TrimSpace(string(b)), SeqPath(path))
	}

	return n, nil
}

func WriteSeq(path string, next int64) error {
	return WriteAtomic(SeqPath(path), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%d\n", next)
		return err
	})
}
