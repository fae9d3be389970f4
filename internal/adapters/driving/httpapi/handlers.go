package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

var validate = validator.New()

// suggestQuery holds the query parameters of GET /api/tags/suggest.
type suggestQuery struct {
	Q     string `validate:"max=200"`
	Limit int    `validate:"min=0,max=100"`
}

// suggestResponse is the body of GET /api/tags/suggest.
type suggestResponse struct {
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := suggestQuery{Q: r.URL.Query().Get("q")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: limit must be a number", domain.ErrInvalidInput))
			return
		}
		q.Limit = n
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}

	tags := s.ports.Suggest.Suggest(r.Context(), q.Q, q.Limit)
	if tags == nil {
		tags = []string{}
	}
	writeJSON(w, http.StatusOK, suggestResponse{Tags: tags, Count: len(tags)})
}

// handleEnrich runs the pipeline for one media item on behalf of the caller.
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	res := s.ports.Enrichment.Enrich(r.Context(), domain.EnrichRequest{
		MediaID:   id,
		Requester: identityFrom(r.Context()),
	})
	if !res.Success {
		status := statusFor(res.Err)
		if status >= http.StatusInternalServerError {
			logger.Error("enrich %s: %s", id, res.Error)
		}
		writeJSON(w, status, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetMedia(w http.ResponseWriter, r *http.Request) {
	item, err := s.ports.Media.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Items are visible to the same callers that may enrich them.
	if !identityFrom(r.Context()).CanEnrich(item) {
		writeError(w, r, domain.ErrAuthInvalid)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
