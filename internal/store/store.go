// Package store defines the persistence interface for the GrooveCharts server.
package store

import (
	"context"
	"time"

	"github.com/groovecharts/groovecharts-server/internal/domain"
)

// SearchIndexer keeps the full-text search index in sync with store changes.
// The store calls it after successful writes; failures are logged, never fatal.
type SearchIndexer interface {
	IndexChartEntry(ctx context.Context, entry *domain.ChartEntry) error
	IndexArtist(ctx context.Context, artistKey, artistName string) error
	DeleteChartEntry(ctx context.Context, entryID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexChartEntry is a no-op.
func (NoopSearchIndexer) IndexChartEntry(context.Context, *domain.ChartEntry) error { return nil }

// IndexArtist is a no-op.
func (NoopSearchIndexer) IndexArtist(context.Context, string, string) error { return nil }

// DeleteChartEntry is a no-op.
func (NoopSearchIndexer) DeleteChartEntry(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	SetSearchIndexer(indexer SearchIndexer)

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	CountUsers(ctx context.Context) (int, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Groups
	CreateGroup(ctx context.Context, group *domain.Group) error
	GetGroup(ctx context.Context, id string) (*domain.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*domain.Group, error)
	ListGroups(ctx context.Context) ([]*domain.Group, error)

	// Artist images
	CreateImage(ctx context.Context, img *domain.ArtistImage) error
	GetImage(ctx context.Context, id string) (*domain.ArtistImage, error)
	ListImagesForArtist(ctx context.Context, artistKey string) ([]domain.ArtistImage, error)
	DeleteImage(ctx context.Context, id string) error
	ListArtistKeys(ctx context.Context) ([]string, error)

	// Votes. UpsertVote enforces the one-vote-per-(image, voter) invariant as
	// a single keyed write: a second vote from the same voter overwrites the
	// direction in place.
	UpsertVote(ctx context.Context, vote *domain.ImageVote) error
	ListVotesForImage(ctx context.Context, imageID string) ([]domain.ImageVote, error)
	ListVotesForArtist(ctx context.Context, artistKey string) (map[string][]domain.ImageVote, error)

	// Reports. CreateReport returns ErrAlreadyExists when the same reporter
	// has already reported the same image.
	CreateReport(ctx context.Context, report *domain.ImageReport) error
	GetReport(ctx context.Context, id string) (*domain.ImageReport, error)
	ListReportsByStatus(ctx context.Context, status string) ([]*domain.ImageReport, error)
	UpdateReportStatus(ctx context.Context, id, status string) error

	// Chart entries
	CreateChartEntries(ctx context.Context, entries []*domain.ChartEntry) error
	ListChartEntries(ctx context.Context, groupID string, since time.Time) ([]domain.ChartEntry, error)
}
