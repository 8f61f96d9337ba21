package api

import (
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/groovecharts/groovecharts-server/internal/http/response"
	"github.com/groovecharts/groovecharts-server/internal/media/images"
	"github.com/groovecharts/groovecharts-server/internal/service"
)

// handleUploadImage accepts a multipart upload with an "image" file and an
// "artist_name" field.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, images.MaxUploadBytes)

	if err := r.ParseMultipartForm(images.MaxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form or payload too large", s.logger)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "missing image file", s.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "failed to read image file", s.logger)
		return
	}

	img, err := s.imageService.Upload(r.Context(), service.UploadRequest{
		ArtistName: r.FormValue("artist_name"),
		Data:       data,
		UploaderID: getUserID(r.Context()),
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, img, s.logger)
}

// handleGetImageFile streams the stored image bytes.
func (s *Server) handleGetImageFile(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "id")

	data, err := s.imageService.GetImageData(r.Context(), imageID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("Failed to write image response", "image_id", imageID, "error", err)
	}
}

// handleGetGallery returns the full ranked image pool for an artist,
// personalized with the viewer's own votes when authenticated.
func (s *Server) handleGetGallery(w http.ResponseWriter, r *http.Request) {
	artist, err := url.PathUnescape(chi.URLParam(r, "artist"))
	if err != nil {
		response.BadRequest(w, "invalid artist name", s.logger)
		return
	}

	gallery, err := s.imageService.Gallery(r.Context(), artist, getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, gallery, s.logger)
}

// handleGetSelectedImage returns only the community-selected image. The
// data field is null when no image has a non-negative score.
func (s *Server) handleGetSelectedImage(w http.ResponseWriter, r *http.Request) {
	artist, err := url.PathUnescape(chi.URLParam(r, "artist"))
	if err != nil {
		response.BadRequest(w, "invalid artist name", s.logger)
		return
	}

	selected, err := s.imageService.Selected(r.Context(), artist)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, selected, s.logger)
}

// handleVote casts or changes the caller's vote on an image.
func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req service.VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	req.ImageID = chi.URLParam(r, "id")
	req.VoterID = getUserID(r.Context())

	result, err := s.imageService.Vote(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleReportImage flags an image for moderation.
func (s *Server) handleReportImage(w http.ResponseWriter, r *http.Request) {
	// The body is optional; an empty body is a report without a reason.
	var req service.ReportRequest
	_ = decodeJSON(r, &req)
	req.ImageID = chi.URLParam(r, "id")
	req.ReporterID = getUserID(r.Context())

	report, err := s.imageService.Report(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, report, s.logger)
}

// handleDeleteImage removes an image along with its votes and reports.
func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	user, err := s.requestUser(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.imageService.Delete(r.Context(), chi.URLParam(r, "id"), user); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleListReports returns moderation reports, filtered by the "status"
// query parameter (default pending).
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = "pending"
	}

	reports, err := s.imageService.ListReports(r.Context(), status)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, reports, s.logger)
}

// resolveReportRequest controls how a pending report is closed.
type resolveReportRequest struct {
	// Remove deletes the reported image; false dismisses the report.
	Remove bool `json:"remove"`
}

// handleResolveReport closes a pending report, optionally removing the image.
func (s *Server) handleResolveReport(w http.ResponseWriter, r *http.Request) {
	var req resolveReportRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.requestUser(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.imageService.ResolveReport(r.Context(), chi.URLParam(r, "id"), req.Remove, user); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
