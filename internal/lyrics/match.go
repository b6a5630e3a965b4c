package lyrics

import "strings"

// MatchMode determines how artist names are compared when filtering by artist.
type MatchMode string

const (
	MatchSubstring MatchMode = "substring" // default: case-insensitive substring
	MatchExact     MatchMode = "exact"     // case-insensitive equality
	MatchFuzzy     MatchMode = "fuzzy"     // Levenshtein similarity >= 0.8
)

const fuzzySimilarityThreshold = 0.8

// matchArtist reports whether songArtist matches the requested name under mode.
func matchArtist(mode MatchMode, songArtist, name string) bool {
	a := strings.ToLower(songArtist)
	n := strings.ToLower(name)
	switch mode {
	case MatchExact:
		return a == n
	case MatchFuzzy:
		return strings.Contains(a, n) || similarity(a, n) >= fuzzySimilarityThreshold
	default:
		return strings.Contains(a, n)
	}
}

// FilterByArtist keeps the songs whose artist matches name, preserving order.
func FilterByArtist(songs []Song, name string, mode MatchMode) []Song {
	out := make([]Song, 0, len(songs))
	for _, s := range songs {
		if matchArtist(mode, s.Artist.Name, name) {
			out = append(out, s)
		}
	}
	return out
}

// similarity returns a normalized score in [0.0, 1.0] from the rune-level edit distance.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := max(len(ra), len(rb))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
