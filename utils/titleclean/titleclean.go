// Package titleclean normalizes release-style folder names into display
// titles by stripping quality markers, release-group tags, and codec noise.
package titleclean

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	qualityTokens = regexp.MustCompile(`(?i)\b(?:1080p|720p|4K|HDR|WEB-DL|BluRay|DVDRip|BRRip|HDTV|WEBRip|UHD)\b`)
	groupTokens   = regexp.MustCompile(`(?i)\b(?:YTS|RARBG|GalaxyRG|anoXmous|PSA|EVO|AMZN|NTb|Tigole)\b`)
	codecTokens   = regexp.MustCompile(`(?i)\b(?:x264|x265|H\.264|10bit|6CH|DTS|AAC|AC3|FLAC|DD5\.1|\d+MB|\d+GB|\d+kbs|\d+fps)\b`)
	punctuation   = regexp.MustCompile(`[^\w\s]|_`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Clean strips release tokens from a folder name and returns the remaining
// words separated by single spaces. Token removal runs before punctuation
// stripping because the dots and brackets are what delimit the tokens;
// collapsing them first would merge tokens into unmatchable runs.
//
// Clean can return an empty string when the name consists entirely of
// release noise. Callers fall back to the raw folder name in that case.
func Clean(name string) string {
	title := unidecode.Unidecode(name)
	title = qualityTokens.ReplaceAllString(title, "")
	title = groupTokens.ReplaceAllString(title, "")
	title = codecTokens.ReplaceAllString(title, "")
	title = punctuation.ReplaceAllString(title, " ")
	title = whitespace.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}
