package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"numlist/internal/dataset"
	"numlist/internal/model"
	"numlist/internal/mutate"
	"numlist/internal/query"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// maxBodyBytes bounds mutation bodies; a full order of a million ids fits easily.
const maxBodyBytes = 64 << 20

type ServerConfig struct {
	Store  *dataset.Store
	Logger zerolog.Logger

	// CORSOrigins is the allow-list of browser origins; empty allows any origin.
	CORSOrigins []string
	// StaticDir serves a built web client, falling back to index.html.
	StaticDir string
	Gzip      bool

	// SearchRate caps searching item queries per second (0 = unlimited).
	SearchRate  float64
	SearchBurst int
}

type Server struct {
	cfg ServerConfig
	log zerolog.Logger

	queries   *query.Service
	mutations *mutate.Service
	hub       *changeHub
	searches  *rate.Limiter
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("web: store is nil")
	}
	cfg.StaticDir = strings.TrimSpace(cfg.StaticDir)
	if cfg.StaticDir != "" {
		st, err := os.Stat(cfg.StaticDir)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			return nil, errors.New("web: static dir is not a directory")
		}
	}
	if cfg.SearchRate < 0 {
		return nil, errors.New("web: search rate must not be negative")
	}

	hub := newChangeHub()
	srv := &Server{
		cfg:       cfg,
		log:       cfg.Logger,
		queries:   query.NewService(cfg.Store),
		mutations: mutate.NewService(cfg.Store, hub, cfg.Logger),
		hub:       hub,
	}
	if cfg.SearchRate > 0 {
		burst := cfg.SearchBurst
		if burst < 1 {
			burst = 1
		}
		srv.searches = rate.NewLimiter(rate.Limit(cfg.SearchRate), burst)
	}
	return srv, nil
}

// Close ends open change streams so a graceful shutdown does not wait on them.
func (s *Server) Close() {
	s.hub.closeAll()
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /api/items", s.compress(http.HandlerFunc(s.handleItems)))
	mux.Handle("POST /api/order", s.compress(http.HandlerFunc(s.handleOrder)))
	mux.Handle("POST /api/select", s.compress(http.HandlerFunc(s.handleSelect)))
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.Handle("GET /docs", s.compress(http.HandlerFunc(s.handleDocsIndex)))
	mux.Handle("GET /docs/{topic}", s.compress(http.HandlerFunc(s.handleDocsTopic)))
	if s.cfg.StaticDir != "" {
		mux.Handle("GET /", spaHandler(s.cfg.StaticDir))
	}
	return s.withMiddleware(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	p := query.ParseParams(r.URL.Query())
	if p.Search != "" && s.searches != nil && !s.searches.Allow() {
		http.Error(w, "too many searches", http.StatusTooManyRequests)
		return
	}
	page, err := s.queries.Items(r.Context(), p)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away mid-scan.
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, page)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := s.mutations.SetOrder(r.Context(), req.Order)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, res.Ack)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req model.SelectRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := s.mutations.SetSelection(r.Context(), req.Selected)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, res.Ack)
}

// decodeBody reads a JSON body into v. Only malformed JSON is an error: an empty
// body, or a body of the wrong shape, leaves the lists in v empty.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(v)
	var typeErr *json.UnmarshalTypeError
	if err == nil || errors.Is(err, io.EOF) || errors.As(err, &typeErr) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
