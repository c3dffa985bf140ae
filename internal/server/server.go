// Package server exposes numerology reports and their calendars over HTTP.
package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
	gocache "github.com/patrickmn/go-cache"
)

// cacheItem stores a rendered body and its metadata for HTTP caching.
type cacheItem struct {
	data        []byte
	etag        string
	contentType string
	lang        string
}

func newCacheItem(data []byte, contentType, lang string) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:        data,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		contentType: contentType,
		lang:        lang,
	}
}

// ReportServer answers report and calendar queries. Rendered bodies are
// memoised per normalised query for the cache TTL.
type ReportServer struct {
	Port  string
	Clock engine.Clock

	cache *gocache.Cache
}

// NewReportServer creates a new instance of the server.
// A non-positive ttl falls back to config.DefaultCacheTTL.
func NewReportServer(port string, ttl time.Duration) *ReportServer {
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	return &ReportServer{
		Port:  port,
		Clock: engine.RealClock{},
		cache: gocache.New(ttl, config.DefaultCacheCleanup),
	}
}

// Handler returns the routing table of the API.
func (s *ReportServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteReport, s.handleReport)
	mux.HandleFunc(config.RouteCalendar, s.handleCalendar)
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *ReportServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// memo returns the cached item for key or builds and stores it.
func (s *ReportServer) memo(key string, build func() (*cacheItem, error)) (*cacheItem, error) {
	if v, found := s.cache.Get(key); found {
		slog.Debug(config.MsgCacheHit,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyKey, key,
		)
		return v.(*cacheItem), nil
	}

	item, err := build()
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, item)
	slog.Debug(config.MsgCacheStored,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyKey, key,
		config.LogKeyETag, item.etag,
		config.LogKeySizeBytes, len(item.data),
	)
	return item, nil
}

// serve writes item with HTTP caching support.
func serve(w http.ResponseWriter, r *http.Request, item *cacheItem) {
	w.Header().Set(config.HeaderContentType, item.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	if item.lang != "" {
		w.Header().Set(config.HeaderContentLang, item.lang)
	}

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := w.Write(item.data); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// allowRead rejects anything but GET and HEAD.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	slog.Debug(config.HTTPMsgMethodNotAll,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyMethod, r.Method,
		config.LogKeyRoute, r.URL.Path,
	)
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}
