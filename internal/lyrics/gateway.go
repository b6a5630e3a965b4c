package lyrics

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/gndm/lyricsearch/internal/lyricsovh"
)

// LyricsNotFound is returned in place of an empty lyrics body.
const LyricsNotFound = "Lyrics not found"

// HealthTimeout bounds HealthCheck.
const HealthTimeout = 5 * time.Second

const (
	popularLimit = 5
	component    = "lyrics"
)

var popularQueries = [...]string{"Beatles", "Queen", "Michael Jackson", "Post Malone", "NF"}

// Picker returns an index in [0, n).
type Picker func(n int) int

// Gateway is the single point of contact with the upstream service. It
// serves searches from its Cache and fetches only on a miss.
type Gateway struct {
	client    lyricsovh.Client
	cache     *Cache
	inflight  singleflight.Group
	pick      Picker
	matchMode MatchMode
}

// NewGateway creates a Gateway. A nil cache gets a fresh one.
func NewGateway(client lyricsovh.Client, cache *Cache) *Gateway {
	if cache == nil {
		cache = NewCache()
	}
	return &Gateway{
		client:    client,
		cache:     cache,
		pick:      rand.IntN,
		matchMode: MatchSubstring,
	}
}

// SetPicker replaces the randomness source used by GetPopularSongs.
func (g *Gateway) SetPicker(p Picker) {
	if p != nil {
		g.pick = p
	}
}

// SetMatchMode sets how SearchByArtist compares artist names.
func (g *Gateway) SetMatchMode(mode MatchMode) {
	switch mode {
	case MatchExact, MatchFuzzy, MatchSubstring:
		g.matchMode = mode
	default:
		g.matchMode = MatchSubstring
	}
}

// SearchSongs returns one page of the results for query. The full result set
// is fetched once per normalized query and paged locally afterwards.
func (g *Gateway) SearchSongs(ctx context.Context, query string, page int) (*Page, error) {
	if p, ok := g.cache.Search(query, page); ok {
		log.Debug().Str("component", component).Str("query", query).Int("page", page).Msg("cache hit")
		return p, nil
	}

	songs, err := g.fetch(ctx, query)
	if err != nil {
		return nil, Normalize(err, "Failed to search songs")
	}
	p := Paginate(songs, page, query)
	return &p, nil
}

// GetMoreSongs returns the given page for query.
func (g *Gateway) GetMoreSongs(ctx context.Context, query string, page int) (*Page, error) {
	p, err := g.SearchSongs(ctx, query, page)
	if err != nil {
		return nil, Normalize(err, "Failed to load more songs")
	}
	return p, nil
}

// GetLyrics fetches the lyrics for one song. Lyrics are never cached.
func (g *Gateway) GetLyrics(ctx context.Context, artist, title string) (string, error) {
	resp, err := g.client.Lyrics(ctx, artist, title)
	if err != nil {
		return "", Normalize(err, "Failed to fetch lyrics")
	}
	if resp.Error != "" {
		return "", Normalize(errors.New(resp.Error), "Failed to fetch lyrics")
	}
	if resp.Lyrics == "" {
		return LyricsNotFound, nil
	}
	return resp.Lyrics, nil
}

// SearchByArtist returns every result for artistName whose artist matches it.
// The result is not paginated.
func (g *Gateway) SearchByArtist(ctx context.Context, artistName string) ([]Song, error) {
	songs, err := g.fetch(ctx, artistName)
	if err != nil {
		return nil, Normalize(err, "Failed to search by artist")
	}
	return FilterByArtist(songs, artistName, g.matchMode), nil
}

// GetPopularSongs searches one of a fixed set of popular artists and returns
// up to five songs. Failures yield an empty list.
func (g *Gateway) GetPopularSongs(ctx context.Context) []Song {
	query := popularQueries[g.pick(len(popularQueries))]
	p, err := g.SearchSongs(ctx, query, 1)
	if err != nil {
		log.Warn().Str("component", component).Str("query", query).Err(err).Msg("failed to fetch popular songs")
		return []Song{}
	}
	n := min(len(p.Data), popularLimit)
	out := make([]Song, n)
	copy(out, p.Data[:n])
	return out
}

// HealthCheck reports whether the upstream answers within HealthTimeout.
func (g *Gateway) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()
	if err := g.client.Ping(ctx); err != nil {
		log.Warn().Str("component", component).Err(err).Msg("health check failed")
		return false
	}
	return true
}

// ClearCache drops every cached result set.
func (g *Gateway) ClearCache() {
	g.cache.Clear()
	log.Info().Str("component", component).Msg("cache cleared")
}

// fetch returns the full result set for query, hitting the network only on a
// cache miss. Concurrent misses for the same key share one request, which is
// detached from any single caller's cancellation; a caller whose ctx ends
// stops waiting without aborting the others.
func (g *Gateway) fetch(ctx context.Context, query string) ([]Song, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if songs, ok := g.cache.Lookup(query); ok {
		return songs, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := g.inflight.DoChan(NormalizeKey(query), func() (any, error) {
		if songs, ok := g.cache.Lookup(query); ok {
			return songs, nil
		}
		songs, err := g.client.Suggest(shared, query)
		if err != nil {
			return nil, err
		}
		g.cache.Store(query, songs)
		log.Info().Str("component", component).Str("query", query).Int("results", len(songs)).Msg("cached search results")
		return songs, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			log.Debug().Str("component", component).Str("query", query).Msg("joined in-flight search")
		}
		return res.Val.([]Song), nil
	case <-ctx.Done():
		code := lyricsovh.CodeCanceled
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			code = lyricsovh.CodeTimeout
		}
		return nil, &lyricsovh.TransportError{Op: "suggest", Code: code, Err: ctx.Err()}
	}
}
