package sqlite

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/groovecharts/groovecharts-server/internal/domain"
)

func makeEntry(id, groupID string, chartedAt time.Time) *domain.ChartEntry {
	return &domain.ChartEntry{
		ID:          id,
		GroupID:     groupID,
		Category:    domain.CategoryTrack,
		DisplayName: "Test Track " + id,
		ArtistName:  "Test Artist",
		Slug:        "test-track-" + id,
		ChartedAt:   chartedAt,
		CreatedAt:   time.Now(),
	}
}

func TestCreateChartEntries_Batch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedGroup(t, s, "group-1", "user-1")

	now := time.Now()
	entries := []*domain.ChartEntry{
		makeEntry("ce-1", "group-1", now.Add(-2*time.Hour)),
		makeEntry("ce-2", "group-1", now.Add(-time.Hour)),
		makeEntry("ce-3", "group-1", now),
	}
	if err := s.CreateChartEntries(ctx, entries); err != nil {
		t.Fatalf("CreateChartEntries: %v", err)
	}

	got, err := s.ListChartEntries(ctx, "group-1", time.Time{})
	if err != nil {
		t.Fatalf("ListChartEntries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
}

func TestCreateChartEntries_AtomicOnFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedGroup(t, s, "group-1", "user-1")

	now := time.Now()
	bad := makeEntry("ce-bad", "group-1", now)
	bad.Category = "podcast" // Violates the category CHECK constraint

	entries := []*domain.ChartEntry{
		makeEntry("ce-1", "group-1", now),
		bad,
	}
	if err := s.CreateChartEntries(ctx, entries); err == nil {
		t.Fatal("expected error for invalid category, got nil")
	}

	// The whole batch rolls back, including the valid row.
	got, err := s.ListChartEntries(ctx, "group-1", time.Time{})
	if err != nil {
		t.Fatalf("ListChartEntries: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 entries after rollback, got %d", len(got))
	}
}

func TestListChartEntries_OrderAndSinceFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedGroup(t, s, "group-1", "user-1")
	seedGroup(t, s, "group-2", "user-1")

	now := time.Now()
	entries := []*domain.ChartEntry{
		makeEntry("ce-old", "group-1", now.Add(-48*time.Hour)),
		makeEntry("ce-mid", "group-1", now.Add(-24*time.Hour)),
		makeEntry("ce-new", "group-1", now),
		makeEntry("ce-other", "group-2", now),
	}
	if err := s.CreateChartEntries(ctx, entries); err != nil {
		t.Fatalf("CreateChartEntries: %v", err)
	}

	// No filter: all rows for the group, most recent first.
	got, err := s.ListChartEntries(ctx, "group-1", time.Time{})
	if err != nil {
		t.Fatalf("ListChartEntries: %v", err)
	}
	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	wantIDs := []string{"ce-new", "ce-mid", "ce-old"}
	if !slices.Equal(ids, wantIDs) {
		t.Errorf("order: got %v, want %v", ids, wantIDs)
	}

	// Since filter is inclusive of the boundary.
	got, err = s.ListChartEntries(ctx, "group-1", now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ListChartEntries since: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 entries since cutoff, got %d", len(got))
	}
}

func TestListChartEntries_TiebreakByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedGroup(t, s, "group-1", "user-1")

	at := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	entries := []*domain.ChartEntry{
		makeEntry("ce-a", "group-1", at),
		makeEntry("ce-b", "group-1", at),
	}
	if err := s.CreateChartEntries(ctx, entries); err != nil {
		t.Fatalf("CreateChartEntries: %v", err)
	}

	got, err := s.ListChartEntries(ctx, "group-1", time.Time{})
	if err != nil {
		t.Fatalf("ListChartEntries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Equal charted_at falls back to id descending.
	if got[0].ID != "ce-b" || got[1].ID != "ce-a" {
		t.Errorf("tiebreak order: got [%s, %s], want [ce-b, ce-a]", got[0].ID, got[1].ID)
	}
}

func TestChartEntryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedGroup(t, s, "group-1", "user-1")

	at := time.Date(2026, 8, 14, 20, 30, 0, 0, time.UTC)
	entry := &domain.ChartEntry{
		ID:          "ce-1",
		GroupID:     "group-1",
		Category:    domain.CategoryAlbum,
		DisplayName: "In Rainbows",
		ArtistName:  "Radiohead",
		Slug:        "in-rainbows",
		ChartedAt:   at,
		CreatedAt:   time.Now(),
	}
	if err := s.CreateChartEntries(ctx, []*domain.ChartEntry{entry}); err != nil {
		t.Fatalf("CreateChartEntries: %v", err)
	}

	got, err := s.ListChartEntries(ctx, "group-1", time.Time{})
	if err != nil {
		t.Fatalf("ListChartEntries: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	e := got[0]
	if e.Category != domain.CategoryAlbum {
		t.Errorf("Category: got %q, want %q", e.Category, domain.CategoryAlbum)
	}
	if e.DisplayName != "In Rainbows" {
		t.Errorf("DisplayName: got %q, want %q", e.DisplayName, "In Rainbows")
	}
	if e.ArtistName != "Radiohead" {
		t.Errorf("ArtistName: got %q, want %q", e.ArtistName, "Radiohead")
	}
	if e.Slug != "in-rainbows" {
		t.Errorf("Slug: got %q, want %q", e.Slug, "in-rainbows")
	}
	if !e.ChartedAt.Equal(at) {
		t.Errorf("ChartedAt: got %v, want %v", e.ChartedAt, at)
	}
}
