package charts

import (
	"testing"
	"time"

	"github.com/groovecharts/groovecharts-server/internal/domain"
)

func entry(id string, cat domain.ChartCategory, name, slug string, chartedAt time.Time) domain.ChartEntry {
	return domain.ChartEntry{
		ID:          id,
		GroupID:     "group-1",
		Category:    cat,
		DisplayName: name,
		Slug:        slug,
		ChartedAt:   chartedAt,
		CreatedAt:   chartedAt,
	}
}

func TestDeduplicateLatestWins(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t2.Add(24 * time.Hour)

	// Three chartings of the same track with drifting capitalization; the
	// t3 spelling must be the one that survives.
	entries := []domain.ChartEntry{
		entry("entry-1", domain.CategoryTrack, "paranoid android", "paranoid-android", t1),
		entry("entry-3", domain.CategoryTrack, "Paranoid Android", "paranoid-android", t3),
		entry("entry-2", domain.CategoryTrack, "PARANOID ANDROID", "paranoid-android", t2),
	}

	got := Deduplicate(entries, "")

	if len(got.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(got.Tracks))
	}
	if got.Tracks[0].DisplayName != "Paranoid Android" {
		t.Errorf("kept %q, want the most recent spelling %q", got.Tracks[0].DisplayName, "Paranoid Android")
	}
}

func TestDeduplicateSameNameAcrossCategories(t *testing.T) {
	now := time.Now()

	// An artist and an album sharing a name stay separate records.
	entries := []domain.ChartEntry{
		entry("entry-1", domain.CategoryArtist, "Weezer", "weezer", now),
		entry("entry-2", domain.CategoryAlbum, "Weezer", "weezer", now),
	}

	got := Deduplicate(entries, "")

	if len(got.Artists) != 1 || len(got.Albums) != 1 {
		t.Fatalf("expected 1 artist and 1 album, got %d and %d", len(got.Artists), len(got.Albums))
	}
}

func TestDeduplicateFilterMatchesDisplayNameOnly(t *testing.T) {
	now := time.Now()

	tr := entry("entry-1", domain.CategoryTrack, "Karma Police", "karma-police", now)
	tr.ArtistName = "Radiohead"
	ar := entry("entry-2", domain.CategoryArtist, "Radiohead", "radiohead", now)

	got := Deduplicate([]domain.ChartEntry{tr, ar}, "radiohead")

	// The artist record matches; the track matches only via its performer
	// and must be excluded.
	if len(got.Artists) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(got.Artists))
	}
	if len(got.Tracks) != 0 {
		t.Errorf("expected no tracks, got %d", len(got.Tracks))
	}
}

func TestDeduplicateCaseInsensitiveSubstring(t *testing.T) {
	now := time.Now()
	entries := []domain.ChartEntry{
		entry("entry-1", domain.CategoryArtist, "The National", "the-national", now),
		entry("entry-2", domain.CategoryArtist, "Nationale 7", "nationale-7", now),
		entry("entry-3", domain.CategoryArtist, "Big Thief", "big-thief", now),
	}

	got := Deduplicate(entries, "NATIONAL")

	if len(got.Artists) != 2 {
		t.Fatalf("expected 2 matching artists, got %d", len(got.Artists))
	}
}

func TestDeduplicateBucketsSortedByName(t *testing.T) {
	now := time.Now()
	entries := []domain.ChartEntry{
		entry("entry-1", domain.CategoryArtist, "Zola Jesus", "zola-jesus", now),
		entry("entry-2", domain.CategoryArtist, "aphex twin", "aphex-twin", now),
		entry("entry-3", domain.CategoryArtist, "Björk", "bjork", now),
	}

	got := Deduplicate(entries, "")

	wantOrder := []string{"aphex twin", "Björk", "Zola Jesus"}
	if len(got.Artists) != len(wantOrder) {
		t.Fatalf("expected %d artists, got %d", len(wantOrder), len(got.Artists))
	}
	for i, want := range wantOrder {
		if got.Artists[i].DisplayName != want {
			t.Errorf("position %d: got %q, want %q", i, got.Artists[i].DisplayName, want)
		}
	}
}

func TestDeduplicateInputOrderIrrelevant(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	a := entry("entry-1", domain.CategoryAlbum, "ok computer", "ok-computer", t1)
	b := entry("entry-2", domain.CategoryAlbum, "OK Computer", "ok-computer", t2)

	first := Deduplicate([]domain.ChartEntry{a, b}, "")
	second := Deduplicate([]domain.ChartEntry{b, a}, "")

	if first.Albums[0].DisplayName != "OK Computer" || second.Albums[0].DisplayName != "OK Computer" {
		t.Errorf("dedup result depends on input order: %q vs %q",
			first.Albums[0].DisplayName, second.Albums[0].DisplayName)
	}
}

func TestLogicalKeyFallsBackToNormalizedName(t *testing.T) {
	e := entry("entry-1", domain.CategoryArtist, "  MF DOOM  ", "", time.Now())
	if got := LogicalKey(&e); got != "mf doom" {
		t.Errorf("LogicalKey = %q, want %q", got, "mf doom")
	}

	e.Slug = "mf-doom"
	if got := LogicalKey(&e); got != "mf-doom" {
		t.Errorf("LogicalKey with slug = %q, want %q", got, "mf-doom")
	}
}
