// Package parser splits free-form lyrics queries such as
// "Queen - Bohemian Rhapsody" into an artist and a title.
package parser

import (
	"regexp"
	"strings"
)

// bracketNoise matches bracketed tags that never belong to a song title.
var bracketNoise = regexp.MustCompile(`(?i)\s*[\(\[](lyrics?|official\s*(music\s*|lyric\s*)?video|official\s*audio|audio|live|remaster(ed)?(\s*\d{4})?|\d{4}\s*remaster(ed)?|explicit|clean)[\)\]]`)

// trailingLyrics matches a trailing "lyrics" word typed into a search box.
var trailingLyrics = regexp.MustCompile(`(?i)\s+lyrics?\s*$`)

// featPattern matches a featured-artist suffix; lyrics lookups want the bare title.
var featPattern = regexp.MustCompile(`(?i)\s*[\(\[]?\s*\b(feat\.?|ft\.?|featuring)\s+[^\)\]]*[\)\]]?\s*$`)

var delimiters = []string{" - ", " – ", " — ", " | ", ": "}

var quotedPattern = regexp.MustCompile("^(.+?)\\s+[\"“](.+?)[\"”]$")

var byPattern = regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+)$`)

var extraWhitespace = regexp.MustCompile(`\s{2,}`)

// Parse returns (artist, title). When no artist can be found, artist is empty
// and title is the cleaned query.
func Parse(query string) (artist, title string) {
	cleaned := clean(query)

	for _, delim := range delimiters {
		if idx := strings.Index(cleaned, delim); idx > 0 {
			a := strings.TrimSpace(cleaned[:idx])
			t := stripFeat(cleaned[idx+len(delim):])
			if a != "" && t != "" {
				return a, t
			}
		}
	}

	if m := quotedPattern.FindStringSubmatch(cleaned); m != nil {
		return strings.TrimSpace(m[1]), stripFeat(m[2])
	}

	if m := byPattern.FindStringSubmatch(cleaned); m != nil {
		return strings.TrimSpace(m[2]), stripFeat(m[1])
	}

	return "", stripFeat(cleaned)
}

func clean(s string) string {
	s = bracketNoise.ReplaceAllString(s, "")
	s = trailingLyrics.ReplaceAllString(s, "")
	s = extraWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func stripFeat(s string) string {
	return strings.TrimSpace(featPattern.ReplaceAllString(strings.TrimSpace(s), ""))
}
