// Package search provides full-text search over the community's charted
// catalog using Bleve. It backs the global search endpoint; the per-group
// canonical lookup in internal/charts stays store-driven and independent.
package search

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeArtist DocType = "artist"
	DocTypeTrack  DocType = "track"
	DocTypeAlbum  DocType = "album"
)

// Document is the unified structure for the Bleve index. Chart entries and
// artist image pools are indexed with type discrimination; the performing
// artist is denormalized into track/album documents so one query covers
// related content.
type Document struct {
	ID   string  `json:"id"`
	Type DocType `json:"type"`

	// Primary searchable text: artist name or track/album title.
	Name string `json:"name"`

	// Performing artist, denormalized into track and album documents.
	Artist string `json:"artist,omitempty"`

	Slug    string `json:"slug,omitempty"`
	GroupID string `json:"group_id,omitempty"`

	// Unix millis, for recency sorting.
	ChartedAt int64 `json:"charted_at,omitempty"`
}

// ToMap converts the document to a map with lowercase field names so they
// match the index mapping.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":   d.ID,
		"type": string(d.Type),
		"name": d.Name,
	}
	if d.Artist != "" {
		m["artist"] = d.Artist
	}
	if d.Slug != "" {
		m["slug"] = d.Slug
	}
	if d.GroupID != "" {
		m["group_id"] = d.GroupID
	}
	if d.ChartedAt != 0 {
		m["charted_at"] = d.ChartedAt
	}
	return m
}
