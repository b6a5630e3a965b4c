package main

import (
	"bytes"
	"compress/gzip"
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

//go:embed static/*
var staticFS embed.FS

// asset holds a minified and gzipped version of a static file.
type asset struct {
	content     []byte // minified content
	gzipped     []byte // gzipped minified content
	contentType string
}

// assetCache stores processed assets, keyed by path.
var assetCache = struct {
	sync.RWMutex
	m map[string]*asset
}{m: make(map[string]*asset)}

func staticLog() *zerolog.Logger {
	l := log.With().Str("component", "static").Logger()
	return &l
}

// initAssets processes all embedded static files at startup.
func initAssets() {
	logger := staticLog()

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	err := fs.WalkDir(staticFS, "static", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		data, err := staticFS.ReadFile(filePath)
		if err != nil {
			return err
		}

		contentType := mime.TypeByExtension(filepath.Ext(filePath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		servePath := strings.TrimPrefix(filePath, "static/")

		minified := data
		mediaType := strings.Split(contentType, ";")[0]
		if _, _, fn := m.Match(mediaType); fn != nil && len(data) > 0 {
			var buf bytes.Buffer
			if err := m.Minify(mediaType, &buf, bytes.NewReader(data)); err != nil {
				logger.Warn().Err(err).Str("file", servePath).Msg("failed to minify, using original")
			} else {
				minified = buf.Bytes()
				logger.Debug().
					Str("file", servePath).
					Int("before", len(data)).
					Int("after", len(minified)).
					Msg("minified asset")
			}
		}

		var gzBuf bytes.Buffer
		gz, _ := gzip.NewWriterLevel(&gzBuf, gzip.BestCompression)
		gz.Write(minified)
		gz.Close()

		assetCache.Lock()
		assetCache.m[servePath] = &asset{
			content:     minified,
			gzipped:     gzBuf.Bytes(),
			contentType: contentType,
		}
		assetCache.Unlock()
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to process embedded assets")
	}

	assetCache.RLock()
	total := len(assetCache.m)
	assetCache.RUnlock()
	logger.Info().Int("assets", total).Msg("initialized embedded assets")
}

// staticHandler serves the web UI. In dev mode files are read from disk on
// every request; otherwise the embedded, minified and gzipped assets are used.
func staticHandler(dev bool) http.Handler {
	if dev {
		staticLog().Info().Msg("development mode: serving from disk")
		return http.FileServer(http.Dir("static"))
	}

	initAssets()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := path.Clean(r.URL.Path)
		if urlPath == "/" || urlPath == "." {
			urlPath = "index.html"
		} else {
			urlPath = strings.TrimPrefix(urlPath, "/")
		}

		assetCache.RLock()
		a, ok := assetCache.m[urlPath]
		if !ok {
			// Unknown paths fall back to the app shell.
			a, ok = assetCache.m["index.html"]
		}
		assetCache.RUnlock()
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", a.contentType)
		w.Header().Set("Vary", "Accept-Encoding")
		if urlPath == "index.html" {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=86400")
		}

		if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") && len(a.gzipped) > 0 {
			w.Header().Set("Content-Encoding", "gzip")
			w.Write(a.gzipped)
			return
		}
		w.Write(a.content)
	})
}
