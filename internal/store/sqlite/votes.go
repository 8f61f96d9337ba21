package sqlite

import (
	"context"

	"github.com/groovecharts/groovecharts-server/internal/domain"
)

// voteColumns is the ordered list of columns selected in vote queries.
// Must match the scan order in scanVote.
const voteColumns = `image_id, voter_id, direction, cast_at`

// scanVote scans a sql.Row (or sql.Rows via its Scan method) into a domain.ImageVote.
func scanVote(scanner interface{ Scan(dest ...any) error }) (*domain.ImageVote, error) {
	var v domain.ImageVote

	var (
		direction string
		castAt    string
	)

	err := scanner.Scan(
		&v.ImageID,
		&v.VoterID,
		&direction,
		&castAt,
	)
	if err != nil {
		return nil, err
	}

	v.Direction = domain.VoteDirection(direction)

	v.CastAt, err = parseTime(castAt)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// UpsertVote writes a vote as a single keyed operation: inserted if the
// (image, voter) pair is new, direction overwritten in place otherwise.
// There is no exists-then-insert branch to race through, so concurrent
// votes from distinct voters commute.
func (s *Store) UpsertVote(ctx context.Context, v *domain.ImageVote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO image_votes (image_id, voter_id, direction, cast_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (image_id, voter_id)
		DO UPDATE SET direction = excluded.direction, cast_at = excluded.cast_at`,
		v.ImageID,
		v.VoterID,
		string(v.Direction),
		formatTime(v.CastAt),
	)
	return err
}

// ListVotesForImage returns all current votes for one image.
func (s *Store) ListVotesForImage(ctx context.Context, imageID string) ([]domain.ImageVote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+voteColumns+` FROM image_votes WHERE image_id = ?`, imageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []domain.ImageVote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *v)
	}
	return votes, rows.Err()
}

// ListVotesForArtist returns the current votes for every image in an artist's
// pool, keyed by image ID. The ranking path uses this to fetch the whole vote
// population in one query.
func (s *Store) ListVotesForArtist(ctx context.Context, artistKey string) (map[string][]domain.ImageVote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.image_id, v.voter_id, v.direction, v.cast_at
		FROM image_votes v
		JOIN artist_images i ON i.id = v.image_id
		WHERE i.artist_key = ?`, artistKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := make(map[string][]domain.ImageVote)
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes[v.ImageID] = append(votes[v.ImageID], *v)
	}
	return votes, rows.Err()
}
