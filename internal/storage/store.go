package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Store owns the two ephemeral directories: uploads for incoming documents,
// outputs for converted PDFs. Nothing in here survives the TTL.
type Store struct {
	uploadDir string
	outputDir string
	ttl       time.Duration
}

func NewStore(baseDir string, ttl time.Duration) (*Store, error) {
	uploadDir := filepath.Join(baseDir, "uploads")
	outputDir := filepath.Join(baseDir, "outputs")

	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Store{
		uploadDir: uploadDir,
		outputDir: outputDir,
		ttl:       ttl,
	}, nil
}

func (s *Store) OutputDir() string {
	return s.outputDir
}

// SaveUpload writes the document under a uuid-prefixed name so concurrent
// uploads with the same filename never collide. The prefix also ties the
// input to its converted output.
func (s *Store) SaveUpload(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(s.uploadDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}

	log.Printf("[storage] saved %s (%s)", name, humanize.Bytes(uint64(n)))
	return path, nil
}

// Remove deletes temp artifacts, best effort.
func (s *Store) Remove(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("[storage] cleanup %s: %v", p, err)
		}
	}
}

// Sweep deletes files older than the TTL in both directories. Covers
// uploads orphaned by a crash between save and cleanup.
func (s *Store) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)
	removed := 0

	for _, dir := range []string{s.uploadDir, s.outputDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			info, err := e.Info()
			if err != nil || info.IsDir() {
				continue
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
					removed++
				}
			}
		}
	}

	return removed
}
