package lyrics

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gndm/lyricsearch/internal/lyricsovh"
)

// PageSize is the number of songs in one page.
const PageSize = 25

// Song is a track as returned by the upstream suggest endpoint.
type Song = lyricsovh.Song

// Page is a view over one cached result set.
type Page struct {
	Data  []Song `json:"data"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Next != "" }

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Prev != "" }

// NormalizeKey returns the cache key for a query.
func NormalizeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Cache holds full result sets keyed by normalized query. Entries never expire;
// Clear is the only way to drop them.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]Song
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]Song)}
}

// Lookup returns the full result set for query, if cached.
func (c *Cache) Lookup(query string) ([]Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	songs, ok := c.entries[NormalizeKey(query)]
	return songs, ok
}

// Search returns the requested page when query is cached. The second return
// value is false on a miss.
func (c *Cache) Search(query string, page int) (*Page, bool) {
	songs, ok := c.Lookup(query)
	if !ok {
		return nil, false
	}
	p := Paginate(songs, page, query)
	return &p, true
}

// Store replaces the result set for query.
func (c *Cache) Store(query string, songs []Song) {
	if songs == nil {
		songs = []Song{}
	}
	c.mu.Lock()
	c.entries[NormalizeKey(query)] = songs
	c.mu.Unlock()
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string][]Song)
	c.mu.Unlock()
}

// Paginate slices all into the 1-based page. Pages below 1 are treated as 1;
// pages past the end yield an empty slice. Next and Prev are client-local
// descriptors of the form "page=N&q=<query>".
func Paginate(all []Song, page int, query string) Page {
	if page < 1 {
		page = 1
	}
	total := len(all)
	pages := (total + PageSize - 1) / PageSize

	// page is compared against pages before multiplying so huge page
	// numbers cannot overflow.
	start, end := total, total
	if page <= pages {
		start = (page - 1) * PageSize
		end = min(start+PageSize, total)
	}

	p := Page{
		Data:  all[start:end:end],
		Total: total,
		Page:  page,
	}
	if p.Data == nil {
		p.Data = []Song{}
	}
	if page < pages {
		p.Next = descriptor(page+1, query)
	}
	if page > 1 {
		p.Prev = descriptor(page-1, query)
	}
	return p
}

func descriptor(page int, query string) string {
	return "page=" + strconv.Itoa(page) + "&q=" + url.QueryEscape(query)
}
