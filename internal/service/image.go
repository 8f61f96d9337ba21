package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/groovecharts/groovecharts-server/internal/domain"
	domainerrors "github.com/groovecharts/groovecharts-server/internal/errors"
	"github.com/groovecharts/groovecharts-server/internal/id"
	"github.com/groovecharts/groovecharts-server/internal/media/images"
	"github.com/groovecharts/groovecharts-server/internal/normalize"
	"github.com/groovecharts/groovecharts-server/internal/ranking"
	"github.com/groovecharts/groovecharts-server/internal/store"
	"github.com/groovecharts/groovecharts-server/internal/validation"
)

// ImageService manages artist image pools: uploads, votes, ranking, reports
// and deletion. Rankings are recomputed from raw votes on every read, never
// cached.
type ImageService struct {
	store     store.Store
	storage   *images.Storage
	validator *validation.Validator
	logger    *slog.Logger
}

// NewImageService creates a new image service.
func NewImageService(
	store store.Store,
	storage *images.Storage,
	validator *validation.Validator,
	logger *slog.Logger,
) *ImageService {
	return &ImageService{
		store:     store,
		storage:   storage,
		validator: validator,
		logger:    logger,
	}
}

// UploadRequest contains a new artist image submission.
type UploadRequest struct {
	ArtistName string `json:"artist_name" validate:"required,min=1,max=300"`
	Data       []byte `json:"-"` // Raw image bytes from the multipart form
	UploaderID string `json:"-"`
}

// VoteRequest casts or changes a vote on an image.
type VoteRequest struct {
	ImageID   string `json:"-"`
	VoterID   string `json:"-"`
	Direction string `json:"direction" validate:"required,votedirection"`
}

// ReportRequest flags an image for moderation.
type ReportRequest struct {
	ImageID    string `json:"-"`
	ReporterID string `json:"-"`
	Reason     string `json:"reason" validate:"max=1000"`
}

// VoteResult is the post-write state of a vote mutation: the tally
// recomputed over the image's current votes, never the pre-write one, plus
// the direction the voter ended up with.
type VoteResult struct {
	ImageID   string               `json:"image_id"`
	Direction domain.VoteDirection `json:"direction"`
	ranking.Tally
}

// Gallery is the full ranked image pool for one artist.
type Gallery struct {
	ArtistKey string                `json:"artist_key"`
	Images    []ranking.RankedImage `json:"images"`
	// Selected is the community-chosen image, nil when the pool is empty
	// or the leader's score is negative.
	Selected *ranking.RankedImage `json:"selected"`
}

// Upload validates, stores and registers a new artist image.
// The artist name is normalized so all spellings share one pool.
func (s *ImageService) Upload(ctx context.Context, req UploadRequest) (*domain.ArtistImage, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := images.Validate(req.Data); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	artistKey := normalize.ArtistKey(req.ArtistName)
	if artistKey == "" {
		return nil, domainerrors.Validation("artist name cannot be empty")
	}

	imageID, err := id.Generate("img")
	if err != nil {
		return nil, fmt.Errorf("generate image ID: %w", err)
	}

	if err := s.storage.Save(imageID, req.Data); err != nil {
		return nil, fmt.Errorf("save image blob: %w", err)
	}

	blurHash, err := images.ComputeBlurHash(req.Data)
	if err != nil {
		// A missing placeholder hash is cosmetic; keep the upload.
		s.logger.Warn("Failed to compute blurhash", "image_id", imageID, "error", err)
		blurHash = ""
	}

	img := &domain.ArtistImage{
		ID:         imageID,
		ArtistKey:  artistKey,
		ArtistName: req.ArtistName,
		UploaderID: req.UploaderID,
		URL:        "/api/v1/images/" + imageID + "/file",
		BlurHash:   blurHash,
		UploadedAt: time.Now(),
	}

	if err := s.store.CreateImage(ctx, img); err != nil {
		// Roll back the orphaned blob so storage and records stay aligned.
		if delErr := s.storage.Delete(imageID); delErr != nil {
			s.logger.Warn("Failed to remove orphaned image blob", "image_id", imageID, "error", delErr)
		}
		return nil, fmt.Errorf("create image record: %w", err)
	}

	s.logger.Info("Image uploaded",
		"image_id", imageID,
		"artist_key", artistKey,
		"uploader_id", req.UploaderID,
	)

	return img, nil
}

// GetImageData returns the stored bytes for an image.
func (s *ImageService) GetImageData(ctx context.Context, imageID string) ([]byte, error) {
	if _, err := s.store.GetImage(ctx, imageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("image not found")
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	data, err := s.storage.Get(imageID)
	if err != nil {
		return nil, fmt.Errorf("read image blob: %w", err)
	}
	return data, nil
}

// Gallery returns the ranked image pool for an artist, including the
// viewer's own vote direction on each image. The raw artist name is
// normalized before lookup.
func (s *ImageService) Gallery(ctx context.Context, artistName, viewerID string) (*Gallery, error) {
	artistKey := normalize.ArtistKey(artistName)
	if artistKey == "" {
		return nil, domainerrors.Validation("artist name cannot be empty")
	}

	imgs, err := s.store.ListImagesForArtist(ctx, artistKey)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	votesByImage, err := s.store.ListVotesForArtist(ctx, artistKey)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	ranked := ranking.Rank(imgs, votesByImage, viewerID)

	return &Gallery{
		ArtistKey: artistKey,
		Images:    ranked,
		Selected:  ranking.Selected(ranked),
	}, nil
}

// Selected returns only the community-selected image for an artist, or nil
// when no image qualifies.
func (s *ImageService) Selected(ctx context.Context, artistName string) (*ranking.RankedImage, error) {
	gallery, err := s.Gallery(ctx, artistName, "")
	if err != nil {
		return nil, err
	}
	return gallery.Selected, nil
}

// Vote casts or changes the voter's vote on an image. Voting twice in the
// same direction is idempotent; voting the opposite direction overwrites
// the previous vote in place. The returned tally is read back after the
// write, so it reflects the vote just cast.
func (s *ImageService) Vote(ctx context.Context, req VoteRequest) (*VoteResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetImage(ctx, req.ImageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("image not found")
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	vote := &domain.ImageVote{
		ImageID:   req.ImageID,
		VoterID:   req.VoterID,
		Direction: domain.VoteDirection(req.Direction),
		CastAt:    time.Now(),
	}

	if err := s.store.UpsertVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("upsert vote: %w", err)
	}

	votes, err := s.store.ListVotesForImage(ctx, req.ImageID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	return &VoteResult{
		ImageID:   req.ImageID,
		Direction: vote.Direction,
		Tally:     ranking.Count(votes),
	}, nil
}

// Report flags an image for moderation. A reporter may report a given image
// only once; duplicates are rejected with a conflict.
func (s *ImageService) Report(ctx context.Context, req ReportRequest) (*domain.ImageReport, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetImage(ctx, req.ImageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("image not found")
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	reportID, err := id.Generate("report")
	if err != nil {
		return nil, fmt.Errorf("generate report ID: %w", err)
	}

	report := &domain.ImageReport{
		ID:         reportID,
		ImageID:    req.ImageID,
		ReporterID: req.ReporterID,
		Reason:     req.Reason,
		Status:     domain.ReportStatusPending,
		CreatedAt:  time.Now(),
	}

	if err := s.store.CreateReport(ctx, report); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("you have already reported this image")
		}
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.Info("Image reported",
		"report_id", reportID,
		"image_id", req.ImageID,
		"reporter_id", req.ReporterID,
	)

	return report, nil
}

// Delete removes an image, its votes and its reports. Only the uploader or
// an admin may delete. The database record is removed first; a failure to
// remove the blob afterwards is logged but does not fail the operation.
func (s *ImageService) Delete(ctx context.Context, imageID string, actor *domain.User) error {
	img, err := s.store.GetImage(ctx, imageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("image not found")
		}
		return fmt.Errorf("get image: %w", err)
	}

	if !img.CanBeDeletedBy(actor) {
		return domainerrors.Forbidden("only the uploader or an admin can delete this image")
	}

	// Votes and reports go with the record via foreign key cascade.
	if err := s.store.DeleteImage(ctx, imageID); err != nil {
		return fmt.Errorf("delete image record: %w", err)
	}

	if err := s.storage.Delete(imageID); err != nil {
		s.logger.Warn("Failed to delete image blob", "image_id", imageID, "error", err)
	}

	s.logger.Info("Image deleted",
		"image_id", imageID,
		"artist_key", img.ArtistKey,
		"actor_id", actor.ID,
	)

	return nil
}

// ListReports returns moderation reports with the given status.
func (s *ImageService) ListReports(ctx context.Context, status string) ([]*domain.ImageReport, error) {
	switch status {
	case domain.ReportStatusPending, domain.ReportStatusDismissed:
	default:
		return nil, domainerrors.Validation("status must be pending or dismissed")
	}

	reports, err := s.store.ListReportsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// ResolveReport closes a pending report. When remove is true, the reported
// image is deleted along with its votes and remaining reports; otherwise the
// report is dismissed and the image stays.
func (s *ImageService) ResolveReport(ctx context.Context, reportID string, remove bool, actor *domain.User) error {
	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("report not found")
		}
		return fmt.Errorf("get report: %w", err)
	}

	if report.Status != domain.ReportStatusPending {
		return domainerrors.Conflict("report is already closed")
	}

	if remove {
		if err := s.Delete(ctx, report.ImageID, actor); err != nil {
			// The image may already be gone; resolving the report is still valid.
			if !errors.Is(err, domainerrors.ErrNotFound) {
				return err
			}
		}
		// Deleting the image cascades its reports, including this one.
		return nil
	}

	if err := s.store.UpdateReportStatus(ctx, reportID, domain.ReportStatusDismissed); err != nil {
		return fmt.Errorf("update report status: %w", err)
	}

	s.logger.Info("Report dismissed", "report_id", reportID, "actor_id", actor.ID)
	return nil
}
