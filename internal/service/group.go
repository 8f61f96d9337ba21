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
	"github.com/groovecharts/groovecharts-server/internal/normalize"
	"github.com/groovecharts/groovecharts-server/internal/store"
	"github.com/groovecharts/groovecharts-server/internal/validation"
)

// GroupService manages charting communities.
type GroupService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewGroupService creates a new group service.
func NewGroupService(store store.Store, validator *validation.Validator, logger *slog.Logger) *GroupService {
	return &GroupService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateGroupRequest contains new group data.
type CreateGroupRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	OwnerID string `json:"-"`
}

// Create registers a new group. The URL slug is derived from the name and
// must be unique across the server.
func (s *GroupService) Create(ctx context.Context, req CreateGroupRequest) (*domain.Group, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	slug := normalize.Slugify(req.Name)
	if slug == "" {
		return nil, domainerrors.Validation("group name must contain at least one alphanumeric character")
	}

	groupID, err := id.Generate("group")
	if err != nil {
		return nil, fmt.Errorf("generate group ID: %w", err)
	}

	now := time.Now()
	group := &domain.Group{
		ID:        groupID,
		Name:      req.Name,
		Slug:      slug,
		OwnerID:   req.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("a group with this name already exists")
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.logger.Info("Group created", "group_id", groupID, "slug", slug, "owner_id", req.OwnerID)

	return group, nil
}

// Get fetches a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("group not found")
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

// GetBySlug fetches a group by its URL slug.
func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	group, err := s.store.GetGroupBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("group not found")
		}
		return nil, fmt.Errorf("get group by slug: %w", err)
	}
	return group, nil
}

// List returns all groups.
func (s *GroupService) List(ctx context.Context) ([]*domain.Group, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
