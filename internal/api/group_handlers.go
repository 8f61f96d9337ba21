package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/groovecharts/groovecharts-server/internal/http/response"
	"github.com/groovecharts/groovecharts-server/internal/service"
)

// handleCreateGroup registers a new charting community owned by the caller.
func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	req.OwnerID = getUserID(r.Context())

	group, err := s.groupService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, group, s.logger)
}

// handleGetGroup fetches a group by ID, or by slug when the path segment
// carries no ID prefix.
func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")

	lookup := s.groupService.GetBySlug
	if strings.HasPrefix(ref, "group-") {
		lookup = s.groupService.Get
	}

	group, err := lookup(r.Context(), ref)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, group, s.logger)
}

// handleListGroups returns all groups.
func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groupService.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, groups, s.logger)
}
