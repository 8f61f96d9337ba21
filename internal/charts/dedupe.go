// Package charts collapses raw chart entry rows into canonical per-entity
// records for search.
package charts

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/groovecharts/groovecharts-server/internal/domain"
	"github.com/groovecharts/groovecharts-server/internal/normalize"
)

// Canonical is the single record kept per (category, logical key) after
// deduplication: the most recently charted row for that key.
type Canonical struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	ArtistName  string `json:"artist_name,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// Buckets partitions canonical records by category, each bucket sorted by
// display name with locale-aware collation.
type Buckets struct {
	Artists []Canonical `json:"artists"`
	Tracks  []Canonical `json:"tracks"`
	Albums  []Canonical `json:"albums"`
}

// LogicalKey is the identity rows are deduplicated under within a category:
// the slug when present, otherwise the normalized display name.
func LogicalKey(e *domain.ChartEntry) string {
	if e.Slug != "" {
		return e.Slug
	}
	return normalize.ArtistKey(e.DisplayName)
}

// Deduplicate filters entries by a case-insensitive substring match on the
// display name, keeps one canonical record per (category, logical key), and
// buckets the survivors.
//
// The rows are sorted by ChartedAt descending here, not trusted to arrive in
// any order, so the kept record for a key is always the most recent one even
// if the underlying storage iteration order changes. Ties on ChartedAt fall
// back to ID so the result is deterministic.
//
// The filter matches only the primary display name; a performer's name that
// appears solely in ArtistName on an otherwise-unmatched title does not match.
func Deduplicate(entries []domain.ChartEntry, searchTerm string) Buckets {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	rows := make([]domain.ChartEntry, len(entries))
	copy(rows, entries)
	slices.SortFunc(rows, func(a, b domain.ChartEntry) int {
		if c := b.ChartedAt.Compare(a.ChartedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	type bucketKey struct {
		category domain.ChartCategory
		key      string
	}
	seen := make(map[bucketKey]bool, len(rows))

	var out Buckets
	for i := range rows {
		e := &rows[i]
		if term != "" && !strings.Contains(strings.ToLower(e.DisplayName), term) {
			continue
		}

		bk := bucketKey{category: e.Category, key: LogicalKey(e)}
		if seen[bk] {
			// A more recent row for this key was already captured.
			continue
		}
		seen[bk] = true

		c := Canonical{
			Key:         bk.key,
			DisplayName: e.DisplayName,
			ArtistName:  e.ArtistName,
			Slug:        e.Slug,
		}
		switch e.Category {
		case domain.CategoryArtist:
			out.Artists = append(out.Artists, c)
		case domain.CategoryTrack:
			out.Tracks = append(out.Tracks, c)
		case domain.CategoryAlbum:
			out.Albums = append(out.Albums, c)
		}
	}

	collator := collate.New(language.English, collate.IgnoreCase)
	byName := func(a, b Canonical) int {
		return collator.CompareString(a.DisplayName, b.DisplayName)
	}
	slices.SortFunc(out.Artists, byName)
	slices.SortFunc(out.Tracks, byName)
	slices.SortFunc(out.Albums, byName)

	return out
}
