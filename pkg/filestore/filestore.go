// Package filestore keeps uploaded blobs on local disk, one file per
// storage name, under a single root directory. It only deals in bytes and
// names; the rows describing blobs live in the repository layer.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrTooLarge is returned by Save when content exceeds the given limit.
var ErrTooLarge = errors.New("content exceeds size limit")

type Store struct {
	root    string
	allowed map[string]struct{}
}

// New creates the root directory if needed and returns a store that accepts
// only the given extensions (compared case-insensitively, without the dot).
func New(root string, allowedExts []string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	allowed := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &Store{root: root, allowed: allowed}, nil
}

// ExtensionAllowed reports whether filename has an allow-listed extension.
// Filenames without any dot are rejected outright.
func (s *Store) ExtensionAllowed(filename string) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return false
	}
	_, ok := s.allowed[strings.ToLower(filename[i+1:])]
	return ok
}

// SanitizeFilename reduces a user-supplied filename to a safe base name:
// path separators are stripped and anything outside [A-Za-z0-9._-] becomes
// an underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "file"
	}
	return out
}

// StorageName composes the on-disk name for an upload:
// "{customerID}_{yyyymmdd_hhmmss}_{sanitized original}". The timestamp is
// only second-precise, so when the composed name is already taken a numeric
// suffix is probed in before the extension. Callers may treat the result as
// unique.
func (s *Store) StorageName(customerID int64, originalFilename string, now time.Time) string {
	base := fmt.Sprintf("%d_%s_%s", customerID, now.Format("20060102_150405"), SanitizeFilename(originalFilename))
	if !s.Exists(base) {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if !s.Exists(name) {
			return name
		}
	}
}

// Save writes content under name and returns the byte count written. When
// limit > 0 and content is larger, nothing is written and ErrTooLarge is
// returned. A partially written file from a failed write is removed so no
// unreadable blob is left behind.
func (s *Store) Save(name string, content []byte, limit int64) (int64, error) {
	if limit > 0 && int64(len(content)) > limit {
		return 0, ErrTooLarge
	}
	path := s.path(name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("write blob %s: %w", name, err)
	}
	return int64(len(content)), nil
}

// Open reads the blob stored under name. os.ErrNotExist surfaces unwrapped
// inside the returned error chain so callers can distinguish a missing blob
// from other I/O failures.
func (s *Store) Open(name string) ([]byte, error) {
	content, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", name, err)
	}
	return content, nil
}

// Remove deletes the blob under name. An already absent blob counts as
// success.
func (s *Store) Remove(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", name, err)
	}
	return nil
}

func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

func (s *Store) path(name string) string {
	// names are generated by StorageName, but never trust them as paths
	return filepath.Join(s.root, filepath.Base(name))
}
