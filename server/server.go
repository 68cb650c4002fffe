package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pevans/patternsfeed/bridge"
	"github.com/pevans/patternsfeed/logging"
	"github.com/pevans/patternsfeed/newsfeed"
)

// FeedSource produces the feed for a language.
type FeedSource interface {
	Feed(ctx context.Context, lang bridge.Language) (*newsfeed.Feed, error)
}

// Server serves the blog as a feed over HTTP.
type Server struct {
	source FeedSource
	log    zerolog.Logger
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type feedFormat struct {
	contentType string
	write       func(io.Writer, *newsfeed.Feed) error
}

var formats = map[string]feedFormat{
	"rss":  {"application/rss+xml; charset=utf-8", newsfeed.WriteRSS},
	"atom": {"application/atom+xml; charset=utf-8", newsfeed.WriteAtom},
	"json": {"application/json", newsfeed.WriteJSON},
}

// New creates a server backed by source.
func New(source FeedSource) *Server {
	return &Server{
		source: source,
		log:    logging.NewLogger("server"),
	}
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", s.HandleFeed)
	mux.HandleFunc("/healthz", s.HandleHealth)
	return s.CORSMiddleware(mux)
}

// Start starts the HTTP server on the given address and blocks until ctx is
// cancelled or the listener fails.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("Starting feed server")
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Shutting down feed server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// HandleFeed handles GET /feed?lang=fr|en&format=rss|atom|json.
func (s *Server) HandleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	query := r.URL.Query()
	lang := bridge.ParseLanguage(query.Get("lang"))

	formatName := query.Get("format")
	if formatName == "" {
		formatName = "rss"
	}
	format, ok := formats[formatName]
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid_format", "format must be rss, atom, or json")
		return
	}

	feed, err := s.source.Feed(r.Context(), lang)
	if err != nil {
		s.log.Error().Err(err).Str("lang", string(lang)).Msg("Failed to collect feed")
		code := "internal_error"
		if errors.Is(err, bridge.ErrListingUnavailable) {
			code = "listing_unavailable"
		}
		s.writeError(w, http.StatusInternalServerError, code, err.Error())
		return
	}

	// Render first so a rendering failure can still produce a clean error
	var buf bytes.Buffer
	if err := format.write(&buf, feed); err != nil {
		s.log.Error().Err(err).Msg("Failed to render feed")
		s.writeError(w, http.StatusInternalServerError, "internal_error", "Failed to render feed")
		return
	}

	w.Header().Set("Content-Type", format.contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// HandleHealth handles GET /healthz.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok\n")
}

// writeError writes a standardized error response.
func (s *Server) writeError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// CORSMiddleware adds CORS headers to responses.
func (s *Server) CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
