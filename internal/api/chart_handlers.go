package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/groovecharts/groovecharts-server/internal/http/response"
	"github.com/groovecharts/groovecharts-server/internal/service"
)

// handleRecordChart publishes one chart's rows into a group's history.
func (s *Server) handleRecordChart(w http.ResponseWriter, r *http.Request) {
	var req service.RecordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	req.GroupID = chi.URLParam(r, "id")

	entries, err := s.chartService.RecordEntries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, entries, s.logger)
}

// handleGetCatalog returns the group's deduplicated catalog. Supports a "q"
// query parameter for substring filtering and "since" (RFC 3339) to bound
// how far back the chart history reaches.
func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	searchTerm := r.URL.Query().Get("q")

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(w, "since must be an RFC 3339 timestamp", s.logger)
			return
		}
		since = parsed
	}

	buckets, err := s.chartService.Catalog(r.Context(), groupID, searchTerm, since)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, buckets, s.logger)
}

// handleSearchCatalog is the search view of the catalog: a blank "q" yields
// empty buckets immediately.
func (s *Server) handleSearchCatalog(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	searchTerm := r.URL.Query().Get("q")

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(w, "since must be an RFC 3339 timestamp", s.logger)
			return
		}
		since = parsed
	}

	buckets, err := s.chartService.SearchCatalog(r.Context(), groupID, searchTerm, since)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, buckets, s.logger)
}
