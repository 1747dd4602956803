// Package listing reads and writes checked-in source listings: plain text
// files holding one path per line.
//
// Writes are atomic (temp file in the target directory, fsync, rename) so
// readers never observe a partially-written listing and Read takes no lock.
// Concurrent writers of the same listing serialize on an advisory lock kept
// in the system temp directory, never beside the listing itself.
package listing

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// lockPath returns the writer lock for the listing at path. It is keyed by
// the absolute path so the checked-out tree stays untouched.
func lockPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "find-sources-"+hex.EncodeToString(sum[:])[:16]+".lock"), nil
}

// Write stores lines at path, one per line, each terminated by "\n".
func Write(path string, lines []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("listing: create dir %q: %w", dir, err)
	}

	lp, err := lockPath(path)
	if err != nil {
		return fmt.Errorf("listing: resolve %q: %w", path, err)
	}
	lock := flock.New(lp)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("listing: lock %q: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	if err := atomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("listing: write %q: %w", path, err)
	}
	return nil
}

// Read loads the listing at path. A missing file reads as an empty listing.
// Blank lines and a trailing "\r" (CRLF checkouts) are dropped.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing: open %q: %w", path, err)
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for s.Scan() {
		l := strings.TrimSuffix(s.Text(), "\r")
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("listing: read %q: %w", path, err)
	}
	return lines, nil
}

// atomicWriteFile writes data into a temporary sibling of path and renames
// it into place.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Chmod(name, perm); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
