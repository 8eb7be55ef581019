// Package server exposes the flexline solver and profile store over HTTP.
//
// The API is a small JSON service:
//
//	POST   /v1/solve                  solve an inline profile
//	PUT    /v1/profiles/{name}        store (upsert) a profile
//	GET    /v1/profiles/{name}        fetch a stored profile
//	DELETE /v1/profiles/{name}        delete a stored profile
//	GET    /v1/profiles               list stored profiles
//	POST   /v1/profiles/{name}/solve  solve a stored profile (?total= override)
//	GET    /healthz                   liveness probe
//
// Error responses carry machine-readable codes from pkg/errors:
//
//	{"error": {"code": "INFEASIBLE", "message": "..."}}
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/pipeline"
	"github.com/matzehuels/flexline/pkg/profile"
	"github.com/matzehuels/flexline/pkg/store"
)

// Server wires the solve pipeline and profile store into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil store falls back to an in-memory store and a
// nil logger discards output.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		opts := pipeline.Options{}
		opts.ValidateAndSetDefaults()
		logger = opts.Logger
	}

	s := &Server{runner: runner, store: st, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/profiles", s.handleListProfiles)
		r.Route("/profiles/{name}", func(r chi.Router) {
			r.Put("/", s.handlePutProfile)
			r.Get("/", s.handleGetProfile)
			r.Delete("/", s.handleDeleteProfile)
			r.Post("/solve", s.handleSolveStored)
		})
	})
	s.router = r

	return s
}

// Handler returns the HTTP handler for the service.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// solveRequest is an inline profile plus per-request solve options.
type solveRequest struct {
	profile.Profile
	Round   bool `json:"round,omitempty"`
	NoCache bool `json:"no_cache,omitempty"`
}

type solveResponse struct {
	Name        string             `json:"name,omitempty"`
	Total       float64            `json:"total"`
	Allocations map[string]float64 `json:"allocations"`
	CacheHit    bool               `json:"cache_hit"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request body"))
		return
	}

	res, err := s.runner.Solve(r.Context(), req.Profile, pipeline.Options{
		Round:   req.Round,
		NoCache: req.NoCache,
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{
		Name:        req.Name,
		Total:       res.Total,
		Allocations: res.Allocations,
		CacheHit:    res.CacheHit,
	})
}

func (s *Server) handleSolveStored(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := rec.Profile()
	if err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{Logger: s.logger}
	if raw := r.URL.Query().Get("total"); raw != "" {
		total, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidTotal, err, "parsing total %q", raw))
			return
		}
		opts.Total = total
	}
	if raw := r.URL.Query().Get("round"); raw != "" {
		opts.Round, _ = strconv.ParseBool(raw)
	}

	res, err := s.runner.Solve(r.Context(), p, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{
		Name:        p.Name,
		Total:       res.Total,
		Allocations: res.Allocations,
		CacheHit:    res.CacheHit,
	})
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	p, err := decodeProfile(r)
	if err != nil {
		writeError(w, err)
		return
	}
	// The path segment wins over whatever the body says.
	p.Name = name

	rec, err := s.store.Put(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := rec.Profile()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type profileSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]profileSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, profileSummary{
			ID:        rec.ID,
			Name:      rec.Name,
			UpdatedAt: rec.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeProfile parses a profile from the request body, honoring the
// Content-Type so TOML uploads work too.
func decodeProfile(r *http.Request) (profile.Profile, error) {
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return profile.Profile{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "reading request body")
	}

	var p profile.Profile
	switch r.Header.Get("Content-Type") {
	case "application/toml", "text/x-toml":
		p, err = profile.UnmarshalProfileTOML(data)
	default:
		p, err = profile.UnmarshalProfile(data)
	}
	if err != nil && errors.GetCode(err) == "" {
		err = errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding profile")
	}
	return p, err
}
