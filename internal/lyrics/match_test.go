package lyrics

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
		{"Beyoncé", "Beyonce", 1}, // one rune, not two bytes
		{"NF", "nf", 2},           // case-sensitive
	}
	for _, tt := range tests {
		got := levenshtein([]rune(tt.a), []rune(tt.b))
		if got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b             string
		wantMin, wantMax float64
	}{
		{"queen", "queen", 1.0, 1.0},
		{"", "", 1.0, 1.0},
		{"abc", "xyz", 0.0, 0.01},
		{"radiohead", "radioheed", 0.8, 0.9},
	}
	for _, tt := range tests {
		got := similarity(tt.a, tt.b)
		if got < tt.wantMin || got > tt.wantMax {
			t.Errorf("similarity(%q, %q) = %.3f, want [%.2f, %.2f]", tt.a, tt.b, got, tt.wantMin, tt.wantMax)
		}
	}
}

func TestMatchArtist(t *testing.T) {
	tests := []struct {
		mode       MatchMode
		songArtist string
		name       string
		want       bool
	}{
		{MatchSubstring, "Queen", "queen", true},
		{MatchSubstring, "Queens of the Stone Age", "Queen", true},
		{MatchSubstring, "Dua Lipa", "Queen", false},
		{MatchExact, "Queen", "QUEEN", true},
		{MatchExact, "Queens of the Stone Age", "Queen", false},
		{MatchFuzzy, "Radiohead", "radioheed", true},
		{MatchFuzzy, "Post Malone", "post malone", true},
		{MatchFuzzy, "Dua Lipa", "Queen", false},
		{MatchMode("bogus"), "Queen", "que", true}, // unknown modes behave as substring
	}
	for _, tt := range tests {
		if got := matchArtist(tt.mode, tt.songArtist, tt.name); got != tt.want {
			t.Errorf("matchArtist(%s, %q, %q) = %v, want %v", tt.mode, tt.songArtist, tt.name, got, tt.want)
		}
	}
}

func TestFilterByArtist_NeverNil(t *testing.T) {
	got := FilterByArtist(nil, "Queen", MatchSubstring)
	if got == nil || len(got) != 0 {
		t.Errorf("FilterByArtist(nil) = %#v, want empty slice", got)
	}
}
