package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/groovecharts/groovecharts-server/internal/http/response"
	"github.com/groovecharts/groovecharts-server/internal/search"
)

// handleSearch runs a full-text query over the charted catalog.
// Query parameters: q (text), type (comma-separated artist,track,album),
// group (group ID filter), limit, offset, sort (relevance|name|recent).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := search.DefaultParams()
	params.Query = q.Get("q")
	params.GroupID = q.Get("group")

	if types := q.Get("type"); types != "" {
		for _, t := range strings.Split(types, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				params.Types = append(params.Types, t)
			}
		}
	}

	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			params.Offset = offset
		}
	}
	if sortBy := q.Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}

	result, err := s.searchService.Search(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleReindex rebuilds the search index from the store.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := s.searchService.ReindexAll(r.Context()); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"status": "reindexed"}, s.logger)
}
