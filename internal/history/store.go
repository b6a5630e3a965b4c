package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxRecentSearches is the number of recent search terms kept.
const MaxRecentSearches = 10

const component = "history"

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrInvalidSettings  = errors.New("invalid settings")
)

// Favorite is a saved song together with its lyrics.
type Favorite struct {
	ID      string `json:"id"`
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Lyrics  string `json:"lyrics"`
	AddedAt string `json:"addedAt"`
}

// Settings are the user's display preferences.
type Settings struct {
	Theme    string `json:"theme"`
	Autoplay bool   `json:"autoplay"`
	FontSize string `json:"fontSize"`
}

// SettingsPatch carries the settings fields to change; nil fields are kept.
type SettingsPatch struct {
	Theme    *string `json:"theme,omitempty"`
	Autoplay *bool   `json:"autoplay,omitempty"`
	FontSize *string `json:"fontSize,omitempty"`
}

// Info summarizes what is stored.
type Info struct {
	RecentSearchesCount int  `json:"recentSearchesCount"`
	FavoritesCount      int  `json:"favoritesCount"`
	HasSettings         bool `json:"hasSettings"`
}

// DefaultSettings returns the settings used until the user saves their own.
func DefaultSettings() Settings {
	return Settings{Theme: "light", Autoplay: false, FontSize: "medium"}
}

type document struct {
	RecentSearches []string   `json:"recentSearches,omitempty"`
	Favorites      []Favorite `json:"favorites,omitempty"`
	Settings       *Settings  `json:"settings,omitempty"`
}

// Store keeps recent searches, favorites and settings in a single JSON file.
// An empty path keeps everything in memory.
type Store struct {
	mu    sync.Mutex
	path  string
	doc   document
	now   func() time.Time
	newID func() string
}

// Open loads the store at path. A missing file starts empty; an unreadable
// document is logged and replaced on the next write.
func Open(path string) (*Store, error) {
	s := &Store{
		path:  path,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		log.Warn().Str("component", component).Str("path", path).Err(err).Msg("ignoring unreadable history file")
		s.doc = document{}
	}
	return s, nil
}

// AddRecentSearch records term as the most recent search. Blank terms are
// ignored and an existing entry differing only in case is replaced.
func (s *Store) AddRecentSearch(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]string, 0, len(s.doc.RecentSearches)+1)
	recent = append(recent, term)
	for _, t := range s.doc.RecentSearches {
		if !strings.EqualFold(t, term) {
			recent = append(recent, t)
		}
	}
	if len(recent) > MaxRecentSearches {
		recent = recent[:MaxRecentSearches]
	}
	prev := s.doc
	s.doc.RecentSearches = recent
	return s.commit(prev)
}

// RecentSearches returns the recent search terms, newest first.
func (s *Store) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.doc.RecentSearches))
	copy(out, s.doc.RecentSearches)
	return out
}

// ClearRecentSearches forgets every recent search.
func (s *Store) ClearRecentSearches() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.doc
	s.doc.RecentSearches = nil
	return s.commit(prev)
}

// AddFavorite saves a song. If a favorite with the same artist and title
// already exists it is returned unchanged and added is false.
func (s *Store) AddFavorite(artist, title, lyrics string) (fav Favorite, added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.findFavorite(artist, title); ok {
		return existing, false, nil
	}

	fav = Favorite{
		ID:      s.newID(),
		Artist:  artist,
		Title:   title,
		Lyrics:  lyrics,
		AddedAt: s.now().UTC().Format(time.RFC3339),
	}
	prev := s.doc
	s.doc.Favorites = append([]Favorite{fav}, s.doc.Favorites...)
	if err := s.commit(prev); err != nil {
		return Favorite{}, false, err
	}
	return fav, true, nil
}

// Favorites returns the saved songs, newest first.
func (s *Store) Favorites() []Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Favorite, len(s.doc.Favorites))
	copy(out, s.doc.Favorites)
	return out
}

// RemoveFavorite deletes the favorite with the given id.
func (s *Store) RemoveFavorite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.doc.Favorites {
		if f.ID == id {
			prev := s.doc
			s.doc.Favorites = append(s.doc.Favorites[:i:i], s.doc.Favorites[i+1:]...)
			return s.commit(prev)
		}
	}
	return ErrFavoriteNotFound
}

// IsFavorite reports whether artist and title are saved, ignoring case.
func (s *Store) IsFavorite(artist, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.findFavorite(artist, title)
	return ok
}

func (s *Store) findFavorite(artist, title string) (Favorite, bool) {
	for _, f := range s.doc.Favorites {
		if strings.EqualFold(f.Artist, artist) && strings.EqualFold(f.Title, title) {
			return f, true
		}
	}
	return Favorite{}, false
}

// SaveSettings merges patch into the current settings and returns the result.
func (s *Store) SaveSettings(patch SettingsPatch) (Settings, error) {
	if patch.Theme != nil && *patch.Theme != "light" && *patch.Theme != "dark" {
		return Settings{}, fmt.Errorf("%w: theme %q", ErrInvalidSettings, *patch.Theme)
	}
	if patch.FontSize != nil {
		switch *patch.FontSize {
		case "small", "medium", "large":
		default:
			return Settings{}, fmt.Errorf("%w: font size %q", ErrInvalidSettings, *patch.FontSize)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := DefaultSettings()
	if s.doc.Settings != nil {
		settings = *s.doc.Settings
	}
	if patch.Theme != nil {
		settings.Theme = *patch.Theme
	}
	if patch.Autoplay != nil {
		settings.Autoplay = *patch.Autoplay
	}
	if patch.FontSize != nil {
		settings.FontSize = *patch.FontSize
	}
	prev := s.doc
	s.doc.Settings = &settings
	if err := s.commit(prev); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Settings returns the saved settings, or the defaults.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Settings == nil {
		return DefaultSettings()
	}
	return *s.doc.Settings
}

// ClearAll removes recent searches, favorites and settings.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.doc
	s.doc = document{}
	return s.commit(prev)
}

// Info reports how much is stored.
func (s *Store) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		RecentSearchesCount: len(s.doc.RecentSearches),
		FavoritesCount:      len(s.doc.Favorites),
		HasSettings:         s.doc.Settings != nil,
	}
}

// commit persists the current document. On failure the in-memory document is
// restored to prev, so memory never holds a change the file lacks. Mutators
// always build fresh slices, which keeps prev intact. Callers hold s.mu.
func (s *Store) commit(prev document) error {
	if err := s.save(); err != nil {
		s.doc = prev
		return err
	}
	return nil
}

// save writes the document atomically. Callers hold s.mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.json")
	if err != nil {
		log.Warn().Str("component", component).Err(err).Msg("failed to save history")
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		log.Warn().Str("component", component).Err(err).Msg("failed to save history")
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
