package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/groovecharts/groovecharts-server/internal/charts"
	"github.com/groovecharts/groovecharts-server/internal/domain"
	domainerrors "github.com/groovecharts/groovecharts-server/internal/errors"
	"github.com/groovecharts/groovecharts-server/internal/id"
	"github.com/groovecharts/groovecharts-server/internal/normalize"
	"github.com/groovecharts/groovecharts-server/internal/store"
	"github.com/groovecharts/groovecharts-server/internal/validation"
)

// ChartService records weekly chart entries and answers canonical catalog
// lookups over them.
type ChartService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewChartService creates a new chart service.
func NewChartService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ChartService {
	return &ChartService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// EntryInput is one row of a published chart.
type EntryInput struct {
	Category    string `json:"category" validate:"required,chartcategory"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=300"`
	ArtistName  string `json:"artist_name" validate:"max=300"`
}

// RecordRequest publishes one chart's rows into a group's history.
type RecordRequest struct {
	GroupID   string       `json:"-"`
	ChartedAt time.Time    `json:"charted_at"`
	Entries   []EntryInput `json:"entries" validate:"required,min=1,max=500,dive"`
}

// RecordEntries stores a published chart's rows. All rows share the chart's
// timestamp and are written atomically. Slugs are derived from the display
// name so later lookups collapse spelling variants.
func (s *ChartService) RecordEntries(ctx context.Context, req RecordRequest) ([]*domain.ChartEntry, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetGroup(ctx, req.GroupID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("group not found")
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	chartedAt := req.ChartedAt
	if chartedAt.IsZero() {
		chartedAt = time.Now()
	}

	now := time.Now()
	entries := make([]*domain.ChartEntry, 0, len(req.Entries))
	for _, in := range req.Entries {
		entryID, err := id.Generate("entry")
		if err != nil {
			return nil, fmt.Errorf("generate entry ID: %w", err)
		}

		entries = append(entries, &domain.ChartEntry{
			ID:          entryID,
			GroupID:     req.GroupID,
			Category:    domain.ChartCategory(in.Category),
			DisplayName: in.DisplayName,
			ArtistName:  in.ArtistName,
			Slug:        normalize.Slugify(in.DisplayName),
			ChartedAt:   chartedAt,
			CreatedAt:   now,
		})
	}

	if err := s.store.CreateChartEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("create chart entries: %w", err)
	}

	s.logger.Info("Chart entries recorded",
		"group_id", req.GroupID,
		"count", len(entries),
		"charted_at", chartedAt,
	)

	return entries, nil
}

// Catalog returns the group's canonical catalog, deduplicated from raw chart
// history with the latest appearance of each logical record winning. An
// empty search term returns the full catalog; a non-empty term filters by
// case-insensitive substring on the display name.
func (s *ChartService) Catalog(ctx context.Context, groupID, searchTerm string, since time.Time) (*charts.Buckets, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("group not found")
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	entries, err := s.store.ListChartEntries(ctx, groupID, since)
	if err != nil {
		return nil, fmt.Errorf("list chart entries: %w", err)
	}

	buckets := charts.Deduplicate(entries, searchTerm)
	return &buckets, nil
}

// SearchCatalog is the search-shaped view of the catalog: a blank term
// short-circuits to empty buckets before any store access, even for an
// unknown group.
func (s *ChartService) SearchCatalog(ctx context.Context, groupID, searchTerm string, since time.Time) (*charts.Buckets, error) {
	if strings.TrimSpace(searchTerm) == "" {
		return &charts.Buckets{}, nil
	}
	return s.Catalog(ctx, groupID, searchTerm, since)
}
