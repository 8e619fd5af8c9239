package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rcliao/git-release-name/internal/model"
	"github.com/rcliao/git-release-name/internal/phrase"
	"github.com/rcliao/git-release-name/internal/sha"
)

// handleBulk resolves a comma-separated list of shas. Shas that cannot be
// resolved map to null rather than failing the request.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	c, ok := s.formatParam(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("shas")
	if raw == "" {
		http.Error(w, "missing shas parameter", http.StatusBadRequest)
		return
	}

	shas := strings.Split(raw, ",")
	names := make(map[string]*string, len(shas))
	for _, res := range s.resolver.Batch(r.Context(), shas, c) {
		s.metrics.observeLookup(res.Err)
		if res.Err != nil {
			names[res.Input] = nil
			continue
		}
		name := res.Name
		names[res.Input] = &name
	}

	writeJSON(w, http.StatusOK, model.Response[model.BulkNames]{Data: model.BulkNames{Names: names}})
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	c, ok := s.formatParam(w, r)
	if !ok {
		return
	}
	key := sha.Random()
	p, err := s.resolver.ResolveKey(key)
	s.metrics.observeLookup(err)
	if err != nil {
		s.logger.Error("Random lookup failed", zap.Error(err))
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, model.Response[model.Name]{
		Data: model.Name{Name: p.WithCase(c).Render(), SHA: key.String()},
	})
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	c, ok := s.formatParam(w, r)
	if !ok {
		return
	}
	p, err := s.resolver.Resolve(mux.Vars(r)["sha"])
	s.metrics.observeLookup(err)
	switch {
	case errors.Is(err, sha.ErrInvalidHex):
		http.Error(w, "no name found", http.StatusNotFound)
		return
	case err != nil:
		s.logger.Error("Lookup failed", zap.Error(err))
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, p.WithCase(c).Render())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "ok")
}

// formatParam reads the optional format query parameter. An absent format
// means Lower; a present but unknown one is a 400.
func (s *Server) formatParam(w http.ResponseWriter, r *http.Request) (phrase.Case, bool) {
	q := r.URL.Query()
	if !q.Has("format") {
		return phrase.Lower, true
	}
	c, err := phrase.ParseCase(q.Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return c, false
	}
	return c, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
