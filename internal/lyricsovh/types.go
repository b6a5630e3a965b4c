package lyricsovh

// Artist is the artist summary embedded in a suggestion.
type Artist struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Link          string `json:"link,omitempty"`
	Picture       string `json:"picture,omitempty"`
	PictureSmall  string `json:"picture_small,omitempty"`
	PictureMedium string `json:"picture_medium,omitempty"`
}

// Album is the album summary embedded in a suggestion.
type Album struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Cover       string `json:"cover,omitempty"`
	CoverSmall  string `json:"cover_small,omitempty"`
	CoverMedium string `json:"cover_medium,omitempty"`
}

// Song is a track returned by the suggest endpoint. Duration is in seconds.
type Song struct {
	ID                    int64  `json:"id"`
	Readable              bool   `json:"readable"`
	Title                 string `json:"title"`
	TitleShort            string `json:"title_short,omitempty"`
	Link                  string `json:"link,omitempty"`
	Duration              int    `json:"duration"`
	Rank                  int    `json:"rank"`
	ExplicitLyrics        bool   `json:"explicit_lyrics"`
	ExplicitContentLyrics int    `json:"explicit_content_lyrics"`
	ExplicitContentCover  int    `json:"explicit_content_cover"`
	Preview               string `json:"preview,omitempty"`
	Artist                Artist `json:"artist"`
	Album                 Album  `json:"album"`
}

// SuggestResponse is the body of GET /suggest/{query}. Next is the upstream
// continuation URL; it is decoded but never followed.
type SuggestResponse struct {
	Data  []Song `json:"data"`
	Total int    `json:"total"`
	Next  string `json:"next,omitempty"`
}

// LyricsResponse is the body of GET /v1/{artist}/{title}.
type LyricsResponse struct {
	Lyrics string `json:"lyrics"`
	Error  string `json:"error,omitempty"`
}
