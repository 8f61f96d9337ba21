package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/groovecharts/groovecharts-server/internal/domain"
	"github.com/groovecharts/groovecharts-server/internal/search"
	"github.com/groovecharts/groovecharts-server/internal/store"
)

// SearchService exposes full-text search over the charted catalog and keeps
// the index in sync with store writes via the store.SearchIndexer interface.
type SearchService struct {
	index  *search.Index
	store  store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service and registers it as the
// store's indexer.
func NewSearchService(index *search.Index, st store.Store, logger *slog.Logger) *SearchService {
	s := &SearchService{
		index:  index,
		store:  st,
		logger: logger,
	}
	st.SetSearchIndexer(s)
	return s
}

// Artist pool documents are keyed by artist key rather than a row ID, so a
// re-upload for the same artist overwrites one document instead of
// accumulating duplicates.
func artistDocID(artistKey string) string {
	return "artist:" + artistKey
}

// IndexChartEntry adds a chart entry to the search index.
func (s *SearchService) IndexChartEntry(_ context.Context, entry *domain.ChartEntry) error {
	docType := search.DocTypeTrack
	switch entry.Category {
	case domain.CategoryArtist:
		docType = search.DocTypeArtist
	case domain.CategoryAlbum:
		docType = search.DocTypeAlbum
	}

	return s.index.IndexDocument(&search.Document{
		ID:        entry.ID,
		Type:      docType,
		Name:      entry.DisplayName,
		Artist:    entry.ArtistName,
		Slug:      entry.Slug,
		GroupID:   entry.GroupID,
		ChartedAt: entry.ChartedAt.UnixMilli(),
	})
}

// IndexArtist adds or refreshes an artist pool document.
func (s *SearchService) IndexArtist(_ context.Context, artistKey, artistName string) error {
	return s.index.IndexDocument(&search.Document{
		ID:   artistDocID(artistKey),
		Type: search.DocTypeArtist,
		Name: artistName,
		Slug: artistKey,
	})
}

// DeleteChartEntry removes a chart entry from the search index.
func (s *SearchService) DeleteChartEntry(_ context.Context, entryID string) error {
	return s.index.DeleteDocument(entryID)
}

// Search runs a full-text query over the catalog.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	return s.index.Search(ctx, params)
}

// ReindexAll rebuilds the search index from the store: every group's chart
// history plus every artist image pool. Used after a mapping version bump
// or manual recovery.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	start := time.Now()

	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	var docs []*search.Document

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}
	for _, group := range groups {
		entries, err := s.store.ListChartEntries(ctx, group.ID, time.Time{})
		if err != nil {
			return fmt.Errorf("list chart entries for group %s: %w", group.ID, err)
		}
		for i := range entries {
			entry := &entries[i]
			docType := search.DocTypeTrack
			switch entry.Category {
			case domain.CategoryArtist:
				docType = search.DocTypeArtist
			case domain.CategoryAlbum:
				docType = search.DocTypeAlbum
			}
			docs = append(docs, &search.Document{
				ID:        entry.ID,
				Type:      docType,
				Name:      entry.DisplayName,
				Artist:    entry.ArtistName,
				Slug:      entry.Slug,
				GroupID:   entry.GroupID,
				ChartedAt: entry.ChartedAt.UnixMilli(),
			})
		}
	}

	artistKeys, err := s.store.ListArtistKeys(ctx)
	if err != nil {
		return fmt.Errorf("list artist keys: %w", err)
	}
	for _, key := range artistKeys {
		imgs, err := s.store.ListImagesForArtist(ctx, key)
		if err != nil {
			return fmt.Errorf("list images for artist %s: %w", key, err)
		}
		if len(imgs) == 0 {
			continue
		}
		docs = append(docs, &search.Document{
			ID:   artistDocID(key),
			Type: search.DocTypeArtist,
			Name: imgs[0].ArtistName,
			Slug: key,
		})
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}

	s.logger.Info("Search index rebuilt",
		"documents", len(docs),
		"duration", time.Since(start),
	)

	return nil
}
