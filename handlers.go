package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/gndm/lyricsearch/internal/history"
	"github.com/gndm/lyricsearch/internal/lyrics"
	"github.com/gndm/lyricsearch/internal/parser"
)

var startTime = time.Now()

// featuredArtist is one tile on the home screen.
type featuredArtist struct {
	Name  string `json:"name"`
	Query string `json:"query"`
	Image string `json:"image"`
}

var featuredArtists = []featuredArtist{
	{Name: "Post Malone", Query: "post malone", Image: "🎤"},
	{Name: "NF", Query: "nf", Image: "🎵"},
	{Name: "Prinz", Query: "prinz", Image: "👑"},
	{Name: "Dean Lewis", Query: "dean lewis", Image: "🎸"},
	{Name: "Dax", Query: "dax", Image: "⚡"},
	{Name: "Juice Wrld", Query: "juice wrld", Image: "🌟"},
}

type api struct {
	gateway *lyrics.Gateway
	store   *history.Store
}

func newRouter(gw *lyrics.Gateway, store *history.Store, static http.Handler) http.Handler {
	a := &api{gateway: gw, store: store}

	r := chi.NewRouter()
	r.Use(requestLogging)
	r.Use(recovery)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", a.handleSearch)
		r.Get("/lyrics", a.handleLyrics)
		r.Get("/artist", a.handleArtist)
		r.Get("/popular", a.handlePopular)
		r.Get("/popular-artists", handlePopularArtists)
		r.Get("/health", a.handleHealth)
		r.Delete("/cache", a.handleClearCache)

		r.Get("/recent", a.handleRecent)
		r.Delete("/recent", a.handleClearRecent)
		r.Get("/favorites", a.handleFavorites)
		r.Post("/favorites", a.handleAddFavorite)
		r.Delete("/favorites/{id}", a.handleRemoveFavorite)
		r.Get("/settings", a.handleSettings)
		r.Put("/settings", a.handleSaveSettings)
		r.Get("/storage", a.handleStorageInfo)
		r.Delete("/storage", a.handleClearStorage)

		r.Get("/stats", handleStats)
	})

	if static != nil {
		r.Handle("/*", static)
	}
	return r
}

type errorResponse struct {
	Error  string `json:"error"`
	Status *int   `json:"status,omitempty"`
	Code   string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Str("component", "http").Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeGatewayError reports a failed gateway call. Upstream statuses are
// passed through; failures without one become 502, and a blank query is the
// caller's fault.
func writeGatewayError(w http.ResponseWriter, err error) {
	normalized := lyrics.Normalize(err, "An unexpected error occurred")
	status := http.StatusBadGateway
	switch {
	case normalized.Status != nil:
		status = *normalized.Status
	case errors.Is(err, lyrics.ErrEmptyQuery):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{
		Error:  lyrics.UserMessage(normalized),
		Status: normalized.Status,
		Code:   normalized.Code,
	})
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (a *api) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	page := pageParam(r)

	var (
		p   *lyrics.Page
		err error
	)
	if page > 1 {
		p, err = a.gateway.GetMoreSongs(r.Context(), q, page)
	} else {
		p, err = a.gateway.SearchSongs(r.Context(), q, page)
	}
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	if page == 1 {
		if err := a.store.AddRecentSearch(q); err != nil {
			log.Warn().Str("component", "http").Err(err).Msg("failed to record recent search")
		}
	}
	writeJSON(w, http.StatusOK, p)
}

type lyricsResponse struct {
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	Lyrics   string `json:"lyrics"`
	Favorite bool   `json:"favorite"`
}

func (a *api) handleLyrics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	artist := strings.TrimSpace(query.Get("artist"))
	title := strings.TrimSpace(query.Get("title"))
	if artist == "" && title == "" {
		artist, title = parser.Parse(query.Get("q"))
	}
	if artist == "" || title == "" {
		writeError(w, http.StatusBadRequest, "artist and title are required")
		return
	}

	text, err := a.gateway.GetLyrics(r.Context(), artist, title)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lyricsResponse{
		Artist:   artist,
		Title:    title,
		Lyrics:   text,
		Favorite: a.store.IsFavorite(artist, title),
	})
}

func (a *api) handleArtist(w http.ResponseWriter, r *http.Request) {
	songs, err := a.gateway.SearchByArtist(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (a *api) handlePopular(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.gateway.GetPopularSongs(r.Context()))
}

func handlePopularArtists(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, featuredArtists)
}

type healthResponse struct {
	Healthy bool `json:"healthy"`
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Healthy: a.gateway.HealthCheck(r.Context())})
}

func (a *api) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	a.gateway.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleRecent(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.store.RecentSearches())
}

func (a *api) handleClearRecent(w http.ResponseWriter, _ *http.Request) {
	if err := a.store.ClearRecentSearches(); err != nil {
		log.Error().Str("component", "http").Err(err).Msg("failed to clear recent searches")
		writeError(w, http.StatusInternalServerError, "failed to clear recent searches")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleFavorites(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Favorites())
}

type favoriteRequest struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Lyrics string `json:"lyrics"`
}

func (a *api) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Artist = strings.TrimSpace(req.Artist)
	req.Title = strings.TrimSpace(req.Title)
	if req.Artist == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "artist and title are required")
		return
	}

	fav, added, err := a.store.AddFavorite(req.Artist, req.Title, req.Lyrics)
	if err != nil {
		log.Error().Str("component", "http").Err(err).Msg("failed to save favorite")
		writeError(w, http.StatusInternalServerError, "failed to save favorite")
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, fav)
}

func (a *api) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	err := a.store.RemoveFavorite(chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, history.ErrFavoriteNotFound):
		writeError(w, http.StatusNotFound, "favorite not found")
	case err != nil:
		log.Error().Str("component", "http").Err(err).Msg("failed to remove favorite")
		writeError(w, http.StatusInternalServerError, "failed to remove favorite")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *api) handleSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Settings())
}

func (a *api) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var patch history.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := a.store.SaveSettings(patch)
	switch {
	case errors.Is(err, history.ErrInvalidSettings):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		log.Error().Str("component", "http").Err(err).Msg("failed to save settings")
		writeError(w, http.StatusInternalServerError, "failed to save settings")
	default:
		writeJSON(w, http.StatusOK, settings)
	}
}

func (a *api) handleStorageInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Info())
}

func (a *api) handleClearStorage(w http.ResponseWriter, _ *http.Request) {
	if err := a.store.ClearAll(); err != nil {
		log.Error().Str("component", "http").Err(err).Msg("failed to clear storage")
		writeError(w, http.StatusInternalServerError, "failed to clear storage")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statsResponse struct {
	MemoryMB   float64 `json:"memory_mb"`
	Goroutines int     `json:"goroutines"`
	UptimeSec  float64 `json:"uptime_sec"`
}

func handleStats(w http.ResponseWriter, _ *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	writeJSON(w, http.StatusOK, statsResponse{
		MemoryMB:   float64(m.Alloc) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
		UptimeSec:  time.Since(startTime).Seconds(),
	})
}
