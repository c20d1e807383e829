package storage

import (
	"io"            // Reader for blob contents
	"os"            // Filesystem operations
	"path/filepath" // Path joining and directory handling
)

// Store is the blob store for uploaded images, addressed by relative path
type Store interface {
	Save(path string, r io.Reader) error // Write a blob under the given path
	Exists(path string) bool             // Report whether a blob exists
	Delete(path string) error            // Remove a blob, nil if already gone
}

// DiskStore stores blobs on the local filesystem under a root directory.
// The same root is served read-only under the /storage static base.
type DiskStore struct {
	root string // Storage root directory
}

// NewDiskStore creates a disk-backed store rooted at the given directory
func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Save writes the blob to disk, creating parent directories as needed.
// A partially written file is removed before the error is returned.
func (s *DiskStore) Save(path string, r io.Reader) error {
	full := filepath.Join(s.root, filepath.FromSlash(path)) // Absolute path of the blob
	// Ensure the parent directory exists
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full) // Create the destination file
	if err != nil {
		return err
	}
	// Copy the blob contents
	if _, err := io.Copy(f, r); err != nil {
		f.Close()       // Close before cleanup
		os.Remove(full) // Drop the partial file
		return err
	}
	// Close and surface any flush error
	if err := f.Close(); err != nil {
		os.Remove(full) // Drop the partial file
		return err
	}
	return nil
}

// Exists reports whether a blob is present on disk
func (s *DiskStore) Exists(path string) bool {
	info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(path)))
	return err == nil && !info.IsDir() // Only regular files count
}

// Delete removes a blob, treating a missing file as already deleted
func (s *DiskStore) Delete(path string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return err // Real failure, not a missing file
	}
	return nil
}
