package mediaresolve

import (
	"testing"

	"github.com/spf13/afero"
)

func writeFiles(t *testing.T, fs afero.Fs, dir string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		if err := afero.WriteFile(fs, dir+"/"+name, []byte(contents), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestResolvePrefersMP4AndJPG(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/movies/Heat", map[string]string{
		"a.mkv":      "video",
		"movie.mp4":  "video",
		"poster.png": "image",
		"cover.jpg":  "image",
	})

	assets, err := Resolve(fs, "/movies/Heat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assets.Video != "movie.mp4" {
		t.Errorf("expected movie.mp4, got %q", assets.Video)
	}
	if assets.Poster != "cover.jpg" {
		t.Errorf("expected cover.jpg, got %q", assets.Poster)
	}
}

func TestResolveFallsBackToSecondaryExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/movies/Dune", map[string]string{
		"movie.mkv":  "video",
		"poster.png": "image",
	})

	assets, err := Resolve(fs, "/movies/Dune")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assets.Video != "movie.mkv" {
		t.Errorf("expected movie.mkv, got %q", assets.Video)
	}
	if assets.Poster != "poster.png" {
		t.Errorf("expected poster.png, got %q", assets.Poster)
	}
}

func TestResolveMissingAssetsLeaveEmptyNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/movies/Notes", map[string]string{
		"readme.txt": "not a movie",
	})

	assets, err := Resolve(fs, "/movies/Notes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assets.Video != "" || assets.Poster != "" {
		t.Errorf("expected empty names, got video=%q poster=%q", assets.Video, assets.Poster)
	}
}

func TestResolveReadsMetadata(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/movies/Inception", map[string]string{
		"movie.mp4":     "video",
		"poster.jpg":    "image",
		"metadata.json": `{"title":"Inception","year":2010,"genre":["Sci-Fi","Thriller"],"rating":8.8,"director":"Christopher Nolan"}`,
	})

	assets, err := Resolve(fs, "/movies/Inception")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assets.Metadata.Title != "Inception" {
		t.Errorf("expected title Inception, got %q", assets.Metadata.Title)
	}
	if assets.Metadata.Year != 2010 {
		t.Errorf("expected year 2010, got %d", assets.Metadata.Year)
	}
	if len(assets.Metadata.Genre) != 2 || assets.Metadata.Genre[0] != "Sci-Fi" {
		t.Errorf("unexpected genres: %v", assets.Metadata.Genre)
	}
	if assets.Metadata.Rating != 8.8 {
		t.Errorf("expected rating 8.8, got %v", assets.Metadata.Rating)
	}
}

func TestResolveAbsentMetadataYieldsZeroValue(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/movies/Heat", map[string]string{
		"movie.mp4":  "video",
		"poster.jpg": "image",
	})

	assets, err := Resolve(fs, "/movies/Heat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assets.Metadata.Title != "" || assets.Metadata.Year != 0 || assets.Metadata.Genre != nil {
		t.Errorf("expected zero metadata, got %+v", assets.Metadata)
	}
}

func TestResolveMalformedMetadataIsAnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/movies/Broken", map[string]string{
		"movie.mp4":     "video",
		"poster.jpg":    "image",
		"metadata.json": `{"title": "Broken"`,
	})

	if _, err := Resolve(fs, "/movies/Broken"); err == nil {
		t.Fatal("expected error for malformed metadata.json")
	}
}

func TestResolveUnreadableFolderIsAnError(t *testing.T) {
	fs := afero.NewMemMapFs()

	if _, err := Resolve(fs, "/movies/Missing"); err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestResolveIgnoresSubdirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/movies/Nested", map[string]string{
		"movie.mp4":        "video",
		"poster.jpg":       "image",
		"extras/bonus.mp4": "video",
	})

	assets, err := Resolve(fs, "/movies/Nested")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assets.Video != "movie.mp4" {
		t.Errorf("expected movie.mp4, got %q", assets.Video)
	}
}
