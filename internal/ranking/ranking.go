// Package ranking computes vote tallies and the deterministic image ordering
// for an artist's image pool.
//
// Everything here is a pure function over a freshly fetched snapshot: scores
// and selections are never stored, so there is no cached state to go stale.
// Callers fetch the current images and votes, rank, and throw the result away.
package ranking

import (
	"slices"

	"github.com/groovecharts/groovecharts-server/internal/domain"
)

// Tally is the derived score for one image.
type Tally struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Score     int `json:"score"`
}

// Count tallies a set of votes for a single image.
// Total over any vote set; the empty set yields a zero tally.
func Count(votes []domain.ImageVote) Tally {
	var t Tally
	for _, v := range votes {
		switch v.Direction {
		case domain.VoteUp:
			t.Upvotes++
		case domain.VoteDown:
			t.Downvotes++
		}
	}
	t.Score = t.Upvotes - t.Downvotes
	return t
}

// RankedImage is one image with its tally and, when a viewer is known, that
// viewer's own vote. ViewerDirection never influences ordering or selection.
type RankedImage struct {
	Image           domain.ArtistImage    `json:"image"`
	Tally           Tally                 `json:"tally"`
	ViewerDirection *domain.VoteDirection `json:"viewer_direction,omitempty"`
}

// Rank produces the total order over an artist's images: score descending,
// ties broken by upload time descending (the most recent upload wins).
//
// votesByImage maps image ID to that image's current votes. viewerID may be
// empty; when set, each result carries the viewer's own direction.
func Rank(images []domain.ArtistImage, votesByImage map[string][]domain.ImageVote, viewerID string) []RankedImage {
	ranked := make([]RankedImage, 0, len(images))
	for _, img := range images {
		votes := votesByImage[img.ID]
		r := RankedImage{
			Image: img,
			Tally: Count(votes),
		}
		if viewerID != "" {
			for _, v := range votes {
				if v.VoterID == viewerID {
					dir := v.Direction
					r.ViewerDirection = &dir
					break
				}
			}
		}
		ranked = append(ranked, r)
	}

	slices.SortFunc(ranked, func(a, b RankedImage) int {
		if a.Tally.Score != b.Tally.Score {
			return b.Tally.Score - a.Tally.Score
		}
		return b.Image.UploadedAt.Compare(a.Image.UploadedAt)
	})

	return ranked
}

// Selected returns the artist's current image: the top of the ranking, but
// only if its score is non-negative. A negative top score means no selection
// even though the gallery still lists every image in ranked order.
func Selected(ranked []RankedImage) *RankedImage {
	if len(ranked) == 0 {
		return nil
	}
	if ranked[0].Tally.Score < 0 {
		return nil
	}
	return &ranked[0]
}
