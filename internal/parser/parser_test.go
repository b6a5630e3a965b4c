package parser

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantArtist string
		wantTitle  string
	}{
		{
			name:       "basic hyphen",
			query:      "Queen - Bohemian Rhapsody",
			wantArtist: "Queen",
			wantTitle:  "Bohemian Rhapsody",
		},
		{
			name:       "en-dash delimiter",
			query:      "Radiohead – Creep",
			wantArtist: "Radiohead",
			wantTitle:  "Creep",
		},
		{
			name:       "colon delimiter",
			query:      "Coldplay: Yellow",
			wantArtist: "Coldplay",
			wantTitle:  "Yellow",
		},
		{
			name:       "pipe delimiter",
			query:      "Daft Punk | Get Lucky",
			wantArtist: "Daft Punk",
			wantTitle:  "Get Lucky",
		},
		{
			name:       "lyrics tag",
			query:      "Imagine Dragons - Believer (Lyrics)",
			wantArtist: "Imagine Dragons",
			wantTitle:  "Believer",
		},
		{
			name:       "trailing lyrics word",
			query:      "NF - Let You Down lyrics",
			wantArtist: "NF",
			wantTitle:  "Let You Down",
		},
		{
			name:       "remaster tag",
			query:      "The Beatles - Let It Be [Remastered 2009]",
			wantArtist: "The Beatles",
			wantTitle:  "Let It Be",
		},
		{
			name:       "featured artist in parens",
			query:      "Calvin Harris - This Is What You Came For (feat. Rihanna)",
			wantArtist: "Calvin Harris",
			wantTitle:  "This Is What You Came For",
		},
		{
			name:       "featured artist bare",
			query:      "Post Malone - Sunflower ft. Swae Lee",
			wantArtist: "Post Malone",
			wantTitle:  "Sunflower",
		},
		{
			name:       "title by artist",
			query:      "Circles by Post Malone",
			wantArtist: "Post Malone",
			wantTitle:  "Circles",
		},
		{
			name:       "quoted title",
			query:      `Eminem "Lose Yourself"`,
			wantArtist: "Eminem",
			wantTitle:  "Lose Yourself",
		},
		{
			name:       "hyphenated title kept whole",
			query:      "Taylor Swift - Anti-Hero",
			wantArtist: "Taylor Swift",
			wantTitle:  "Anti-Hero",
		},
		{
			name:       "extra whitespace",
			query:      "  Oasis   -   Wonderwall  ",
			wantArtist: "Oasis",
			wantTitle:  "Wonderwall",
		},
		{
			name:       "no artist",
			query:      "Wonderwall",
			wantArtist: "",
			wantTitle:  "Wonderwall",
		},
		{
			name:       "no artist with noise",
			query:      "Stairway to Heaven (Live)",
			wantArtist: "",
			wantTitle:  "Stairway to Heaven",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotArtist, gotTitle := Parse(tt.query)
			if gotArtist != tt.wantArtist {
				t.Errorf("Parse(%q) artist = %q, want %q", tt.query, gotArtist, tt.wantArtist)
			}
			if gotTitle != tt.wantTitle {
				t.Errorf("Parse(%q) title = %q, want %q", tt.query, gotTitle, tt.wantTitle)
			}
		})
	}
}
