package titleclean

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"typical release name", "Inception.2010.1080p.BluRay.x264-GalaxyRG", "Inception 2010"},
		{"multiple token classes", "The.Matrix.1999.720p.HDTV.x265-YTS", "The Matrix 1999"},
		{"web release", "Interstellar.2014.WEB-DL.DD5.1.H.264-RARBG", "Interstellar 2014"},
		{"size and codec tokens", "Dune.2021.2160p.UHD.HDR.10bit.DTS.5000MB", "Dune 2021 2160p"},
		{"underscores as separators", "Blade_Runner_2049", "Blade Runner 2049"},
		{"plain title untouched", "Up", "Up"},
		{"already clean with year", "Inception 2010", "Inception 2010"},
		{"accented characters transliterated", "Amélie (2001)", "Amelie 2001"},
		{"brackets and hyphens", "[YTS] Whiplash (2014) [1080p]", "Whiplash 2014"},
		{"token casing is ignored", "Heat.1995.bluray.X264-rarbg", "Heat 1995"},
		{"only noise", "1080p.x264-YTS", ""},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Clean(tc.input)
			if got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"Inception.2010.1080p.BluRay.x264-GalaxyRG",
		"The.Matrix.1999.720p.HDTV.x265-YTS",
		"Blade_Runner_2049",
		"Amélie (2001)",
		"Up",
		"",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
