package domain

import "time"

// VoteDirection is the value of a single image vote.
type VoteDirection string

// Vote directions. Anything else is a validation failure, never a mutation.
const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Valid reports whether the direction is one of the two allowed values.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// ArtistImage is a crowd-sourced candidate picture for an artist.
// ArtistKey is the normalized artist name; all surface spellings of the same
// artist share one image pool through it.
type ArtistImage struct {
	ID         string    `json:"id"`
	ArtistKey  string    `json:"artist_key"`
	ArtistName string    `json:"artist_name"` // As entered by the uploader
	UploaderID string    `json:"uploader_id"`
	URL        string    `json:"url"` // Immutable payload reference
	BlurHash   string    `json:"blur_hash,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// CanBeDeletedBy reports whether the user may delete this image.
// Only the original uploader or an admin may.
func (img *ArtistImage) CanBeDeletedBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin || u.ID == img.UploaderID
}

// ImageVote is one member's vote on one image. At most one row exists per
// (image, voter) pair; a new direction overwrites the old one in place.
type ImageVote struct {
	ImageID   string        `json:"image_id"`
	VoterID   string        `json:"voter_id"`
	Direction VoteDirection `json:"direction"`
	CastAt    time.Time     `json:"cast_at"`
}

// Report statuses. There is no stored "resolved" state: resolving a report
// removes the image, and the report row goes with it through the cascade.
const (
	ReportStatusPending   = "pending"
	ReportStatusDismissed = "dismissed"
)

// ImageReport flags an image for moderation. At most one report exists per
// (image, reporter) pair; duplicates are rejected, not merged.
type ImageReport struct {
	ID         string    `json:"id"`
	ImageID    string    `json:"image_id"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
