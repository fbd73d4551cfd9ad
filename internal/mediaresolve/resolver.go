// Package mediaresolve locates the asset triad of a single movie folder:
// the playable video file, the poster image, and the optional metadata
// document.
package mediaresolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"hometheater/models"
)

// Extension preference order. Every file in the folder is tried for the
// first extension before falling back to the next; among multiple matches
// for the same extension the directory order decides.
var (
	VideoExtensions  = []string{".mp4", ".mkv"}
	PosterExtensions = []string{".jpg", ".png"}
)

// MetadataFileName is the conventional per-folder metadata document.
const MetadataFileName = "metadata.json"

// Assets is the resolved triad for one folder. Video and Poster are plain
// file names relative to the folder; an empty string means no matching file
// exists. Metadata is the zero value when metadata.json is absent.
type Assets struct {
	Video    string
	Poster   string
	Metadata models.Metadata
}

// Resolve scans the immediate contents of folderPath and picks the video,
// poster, and metadata for it. An unreadable folder or a malformed
// metadata.json is an error; a missing video, poster, or metadata file is
// not, since callers decide whether an incomplete folder is acceptable.
func Resolve(fsys afero.Fs, folderPath string) (Assets, error) {
	entries, err := afero.ReadDir(fsys, folderPath)
	if err != nil {
		return Assets{}, fmt.Errorf("read folder: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	assets := Assets{
		Video:  firstByExtension(names, VideoExtensions),
		Poster: firstByExtension(names, PosterExtensions),
	}

	data, err := afero.ReadFile(fsys, filepath.Join(folderPath, MetadataFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return assets, nil
		}
		return Assets{}, fmt.Errorf("read %s: %w", MetadataFileName, err)
	}
	if err := json.Unmarshal(data, &assets.Metadata); err != nil {
		// A malformed metadata file is operator error. Surfacing it beats
		// silently serving the movie with an empty record.
		return Assets{}, fmt.Errorf("parse %s: %w", MetadataFileName, err)
	}
	return assets, nil
}

func firstByExtension(names []string, extensions []string) string {
	for _, ext := range extensions {
		for _, name := range names {
			if strings.EqualFold(filepath.Ext(name), ext) {
				return name
			}
		}
	}
	return ""
}
