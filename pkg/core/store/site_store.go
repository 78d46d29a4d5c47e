// Package store writes built sites to disk and reads them back.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ManifestFile lists every file written by the last Save.
const ManifestFile = "manifest.json"

// SiteStore is a directory holding one built site.
type SiteStore struct {
	dir string
}

// NewSiteStore creates the output directory if needed. An empty dir means
// "dist".
func NewSiteStore(dir string) (*SiteStore, error) {
	if dir == "" {
		dir = "dist"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create site dir %s: %w", dir, err)
	}
	return &SiteStore{dir: dir}, nil
}

// Dir returns the output directory.
func (s *SiteStore) Dir() string {
	return s.dir
}

// ManifestEntry describes one stored file.
type ManifestEntry struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

// Manifest is written next to the site after every Save.
type Manifest struct {
	BuiltAt time.Time       `json:"built_at"`
	Files   []ManifestEntry `json:"files"`
}

// Save writes every file (relative slash-separated paths) and the manifest.
// Paths escaping the store directory are rejected before anything is written.
func (s *SiteStore) Save(ctx context.Context, files map[string][]byte) (*Manifest, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		if _, err := s.path(name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	m := &Manifest{BuiltAt: time.Now().UTC()}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, _ := s.path(name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create dir for %s: %w", name, err)
		}
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		m.Files = append(m.Files, ManifestEntry{Path: name, Size: len(files[name])})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, ManifestFile), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	return m, nil
}

// Read returns one stored file. A missing file returns (nil, nil), like a
// cache miss.
func (s *SiteStore) Read(name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// LoadManifest reads the manifest of the last Save.
func (s *SiteStore) LoadManifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

func (s *SiteStore) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid site path %q", name)
	}
	return filepath.Join(s.dir, clean), nil
}
