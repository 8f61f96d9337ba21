package domain

import "time"

// ChartCategory partitions chart entries into the three search buckets.
type ChartCategory string

// Chart categories.
const (
	CategoryArtist ChartCategory = "artist"
	CategoryTrack  ChartCategory = "track"
	CategoryAlbum  ChartCategory = "album"
)

// Valid reports whether the category is one of the three known values.
func (c ChartCategory) Valid() bool {
	return c == CategoryArtist || c == CategoryTrack || c == CategoryAlbum
}

// ChartEntry is a raw, timestamped row from a published weekly chart.
// Many rows may exist over time for the same (category, logical key); search
// collapses them into one canonical record, latest ChartedAt winning.
type ChartEntry struct {
	ID          string        `json:"id"`
	GroupID     string        `json:"group_id"`
	Category    ChartCategory `json:"category"`
	DisplayName string        `json:"display_name"`
	// ArtistName is the performing artist for tracks and albums; empty for
	// artist rows. Search never matches against it.
	ArtistName string    `json:"artist_name,omitempty"`
	Slug       string    `json:"slug,omitempty"`
	ChartedAt  time.Time `json:"charted_at"`
	CreatedAt  time.Time `json:"created_at"`
}
