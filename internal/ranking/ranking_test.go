package ranking

import (
	"testing"
	"time"

	"github.com/groovecharts/groovecharts-server/internal/domain"
)

func vote(imageID, voterID string, dir domain.VoteDirection) domain.ImageVote {
	return domain.ImageVote{
		ImageID:   imageID,
		VoterID:   voterID,
		Direction: dir,
		CastAt:    time.Now(),
	}
}

func img(id string, uploadedAt time.Time) domain.ArtistImage {
	return domain.ArtistImage{
		ID:         id,
		ArtistKey:  "test artist",
		ArtistName: "Test Artist",
		UploaderID: "user-1",
		URL:        "/api/v1/images/" + id + "/file",
		UploadedAt: uploadedAt,
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		votes []domain.ImageVote
		want  Tally
	}{
		{
			name:  "empty set yields zero tally",
			votes: nil,
			want:  Tally{},
		},
		{
			name: "mixed votes",
			votes: []domain.ImageVote{
				vote("img-1", "u1", domain.VoteUp),
				vote("img-1", "u2", domain.VoteUp),
				vote("img-1", "u3", domain.VoteDown),
			},
			want: Tally{Upvotes: 2, Downvotes: 1, Score: 1},
		},
		{
			name: "all downvotes give negative score",
			votes: []domain.ImageVote{
				vote("img-1", "u1", domain.VoteDown),
				vote("img-1", "u2", domain.VoteDown),
			},
			want: Tally{Upvotes: 0, Downvotes: 2, Score: -2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.votes)
			if got != tt.want {
				t.Errorf("Count() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRankOrdersByScoreThenRecency(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// A and B tie on score; B is newer and must sort first. C trails.
	images := []domain.ArtistImage{
		img("img-a", base),
		img("img-b", base.Add(time.Hour)),
		img("img-c", base.Add(2*time.Hour)),
	}
	votes := map[string][]domain.ImageVote{
		"img-a": {vote("img-a", "u1", domain.VoteUp), vote("img-a", "u2", domain.VoteUp)},
		"img-b": {vote("img-b", "u1", domain.VoteUp), vote("img-b", "u3", domain.VoteUp)},
		"img-c": {vote("img-c", "u1", domain.VoteUp)},
	}

	ranked := Rank(images, votes, "")

	wantOrder := []string{"img-b", "img-a", "img-c"}
	for i, want := range wantOrder {
		if ranked[i].Image.ID != want {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].Image.ID, want)
		}
	}
}

func TestRankViewerDirection(t *testing.T) {
	images := []domain.ArtistImage{img("img-a", time.Now())}
	votes := map[string][]domain.ImageVote{
		"img-a": {
			vote("img-a", "u1", domain.VoteUp),
			vote("img-a", "u2", domain.VoteDown),
		},
	}

	ranked := Rank(images, votes, "u2")
	if ranked[0].ViewerDirection == nil {
		t.Fatal("expected viewer direction to be set")
	}
	if *ranked[0].ViewerDirection != domain.VoteDown {
		t.Errorf("viewer direction: got %s, want down", *ranked[0].ViewerDirection)
	}

	// Anonymous viewers get no direction.
	anon := Rank(images, votes, "")
	if anon[0].ViewerDirection != nil {
		t.Error("expected nil viewer direction for anonymous viewer")
	}
}

func TestSelected(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty pool has no selection", func(t *testing.T) {
		if got := Selected(nil); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("zero score still selects", func(t *testing.T) {
		ranked := Rank([]domain.ArtistImage{img("img-a", base)}, nil, "")
		sel := Selected(ranked)
		if sel == nil {
			t.Fatal("expected a selection for score 0")
		}
		if sel.Image.ID != "img-a" {
			t.Errorf("selected %s, want img-a", sel.Image.ID)
		}
	})

	t.Run("negative top score suppresses selection", func(t *testing.T) {
		images := []domain.ArtistImage{img("img-a", base)}
		votes := map[string][]domain.ImageVote{
			"img-a": {vote("img-a", "u1", domain.VoteDown)},
		}
		ranked := Rank(images, votes, "")
		if got := Selected(ranked); got != nil {
			t.Errorf("expected nil selection, got %+v", got)
		}
	})

	t.Run("tie at top selects the newer upload", func(t *testing.T) {
		images := []domain.ArtistImage{
			img("img-a", base),
			img("img-b", base.Add(time.Hour)),
		}
		ranked := Rank(images, nil, "")
		sel := Selected(ranked)
		if sel == nil {
			t.Fatal("expected a selection")
		}
		if sel.Image.ID != "img-b" {
			t.Errorf("selected %s, want img-b", sel.Image.ID)
		}
	})
}
