// Package catalog derives the movie catalog from the media root directory.
package catalog

import (
	"errors"
	"fmt"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"

	"hometheater/internal/mediaresolve"
	"hometheater/models"
	"hometheater/utils/titleclean"
)

var (
	// ErrRootRequired indicates the media root has not been configured.
	ErrRootRequired = errors.New("media root not configured")
	// ErrNotFound indicates no complete movie folder exists for an id.
	ErrNotFound = errors.New("movie not found")
)

// Service scans the media root on demand. It keeps no state between calls:
// every Build re-walks the filesystem, so the catalog always reflects the
// directory as it is right now and concurrent requests never observe a
// half-updated view.
type Service struct {
	fs     afero.Fs
	root   string
	prefix string
}

// NewService creates a catalog service over the given filesystem. root is
// the media directory to scan; mediaPrefix is the public URL prefix the
// folder contents are served under.
func NewService(fsys afero.Fs, root, mediaPrefix string) *Service {
	return &Service{
		fs:     fsys,
		root:   root,
		prefix: strings.TrimRight(mediaPrefix, "/"),
	}
}

// Build enumerates the immediate subdirectories of the media root and
// assembles one catalog entry per complete folder, in directory order. A
// missing or unreadable root is an error; a folder that is incomplete or
// broken is skipped so one bad import cannot take the whole listing down.
func (s *Service) Build() ([]models.CatalogEntry, error) {
	if strings.TrimSpace(s.root) == "" {
		return nil, ErrRootRequired
	}

	dirEntries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("read media root: %w", err)
	}

	folders := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}

	// Folders resolve independently, so fan out while keeping order.
	resolved := iter.Map(folders, func(folder *string) *models.CatalogEntry {
		entry, err := s.buildEntry(*folder)
		if err != nil {
			log.Printf("[catalog] skipping folder %q: %v", *folder, err)
			return nil
		}
		return entry
	})

	entries := make([]models.CatalogEntry, 0, len(resolved))
	for _, entry := range resolved {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

// Entry resolves a single movie folder by id. ErrNotFound covers a missing
// or incomplete folder as well as an id that is not a plain folder name;
// any other error means the folder exists but cannot be served.
func (s *Service) Entry(id string) (models.CatalogEntry, error) {
	if strings.TrimSpace(s.root) == "" {
		return models.CatalogEntry{}, ErrRootRequired
	}
	if !validID(id) {
		return models.CatalogEntry{}, ErrNotFound
	}

	info, err := s.fs.Stat(filepath.Join(s.root, id))
	if err != nil || !info.IsDir() {
		return models.CatalogEntry{}, ErrNotFound
	}

	entry, err := s.buildEntry(id)
	if err != nil {
		return models.CatalogEntry{}, err
	}
	if entry == nil {
		return models.CatalogEntry{}, ErrNotFound
	}
	return *entry, nil
}

// buildEntry resolves one folder into a catalog entry. It returns
// (nil, nil) when the folder lacks a video or poster, which is the normal
// state for an in-progress import and not worth logging.
func (s *Service) buildEntry(folder string) (*models.CatalogEntry, error) {
	assets, err := mediaresolve.Resolve(s.fs, filepath.Join(s.root, folder))
	if err != nil {
		return nil, err
	}
	if assets.Video == "" || assets.Poster == "" {
		return nil, nil
	}

	title := titleclean.Clean(folder)
	if title == "" {
		title = folder
	}

	return &models.CatalogEntry{
		ID:       folder,
		Title:    title,
		Poster:   path.Join(s.prefix, folder, assets.Poster),
		Video:    path.Join(s.prefix, folder, assets.Video),
		Metadata: assets.Metadata,
	}, nil
}

// validID rejects ids that are not plain folder names, so a crafted id can
// never address anything outside the media root.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
