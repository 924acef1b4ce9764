package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_finder/internal/app"
	"hotel_finder/internal/domain"
)

const fetchFailed = "An error occurred while fetching data"

type Handlers struct{ Q *app.QueryService }

type errorBody struct {
	Error string `json:"error"`
}

// MountHandlers registers GET /{collection} and GET /{collection}/{id} for
// every collection.
func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	for _, c := range domain.Collections() {
		s.mux.Get("/"+c.String(), h.search(c))
		s.mux.Get("/"+c.String()+"/{id}", h.lookup(c))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: msg}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body, err := calcETagAndBody(v)
	if err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to marshal response")
		writeError(w, http.StatusInternalServerError, fetchFailed)
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) search(c domain.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("search")
		docs, err := h.Q.Search(r.Context(), c, q)
		if err != nil {
			log.Error().Err(err).Str("collection", c.String()).Str("search", q).
				Msg("error occurred while querying collection")
			writeError(w, http.StatusInternalServerError, fetchFailed)
			return
		}
		writeJSON(w, r, docs)
	}
}

// lookup answers 200 with null when the id is malformed or unknown.
func (h *Handlers) lookup(c domain.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, err := h.Q.Lookup(r.Context(), c, id)
		if err != nil {
			log.Error().Err(err).Str("collection", c.String()).Str("id", id).
				Msg("error occurred while fetching document")
			writeError(w, http.StatusInternalServerError, fetchFailed)
			return
		}
		writeJSON(w, r, doc)
	}
}
