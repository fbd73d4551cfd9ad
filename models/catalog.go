package models

// CatalogEntry is one movie derived from a folder under the media root. ID
// is the folder name itself; Poster and Video are server-relative URL paths
// under the public media prefix.
type CatalogEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Poster   string   `json:"poster"`
	Video    string   `json:"video"`
	Metadata Metadata `json:"metadata"`
}

// Metadata mirrors the optional metadata.json shipped alongside a movie.
// Every field may be absent; a folder without the file carries the zero
// value, which marshals as an empty object rather than null.
type Metadata struct {
	Title       string   `json:"title,omitempty"`
	Year        int      `json:"year,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Director    string   `json:"director,omitempty"`
	Description string   `json:"description,omitempty"`
}

// HasGenre reports whether the entry's metadata lists the given genre.
// Entries without metadata never match.
func (e CatalogEntry) HasGenre(genre string) bool {
	for _, g := range e.Metadata.Genre {
		if g == genre {
			return true
		}
	}
	return false
}
