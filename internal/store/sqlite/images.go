package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/groovecharts/groovecharts-server/internal/domain"
	"github.com/groovecharts/groovecharts-server/internal/store"
)

// imageColumns is the ordered list of columns selected in image queries.
// Must match the scan order in scanImage.
const imageColumns = `id, artist_key, artist_name, uploader_id, url, blur_hash, uploaded_at`

// scanImage scans a sql.Row (or sql.Rows via its Scan method) into a domain.ArtistImage.
func scanImage(scanner interface{ Scan(dest ...any) error }) (*domain.ArtistImage, error) {
	var img domain.ArtistImage

	var uploadedAt string

	err := scanner.Scan(
		&img.ID,
		&img.ArtistKey,
		&img.ArtistName,
		&img.UploaderID,
		&img.URL,
		&img.BlurHash,
		&uploadedAt,
	)
	if err != nil {
		return nil, err
	}

	img.UploadedAt, err = parseTime(uploadedAt)
	if err != nil {
		return nil, err
	}

	return &img, nil
}

// CreateImage inserts a new artist image.
func (s *Store) CreateImage(ctx context.Context, img *domain.ArtistImage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artist_images (`+imageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		img.ID,
		img.ArtistKey,
		img.ArtistName,
		img.UploaderID,
		img.URL,
		img.BlurHash,
		formatTime(img.UploadedAt),
	)
	if err != nil {
		return err
	}

	// Keep search aware of the artist's image pool. Best effort.
	if err := s.searchIndexer.IndexArtist(ctx, img.ArtistKey, img.ArtistName); err != nil {
		s.logger.Warn("failed to index artist for search",
			"artist_key", img.ArtistKey,
			"error", err,
		)
	}
	return nil
}

// GetImage retrieves an artist image by ID.
// Returns store.ErrNotFound if the image does not exist.
func (s *Store) GetImage(ctx context.Context, id string) (*domain.ArtistImage, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+imageColumns+` FROM artist_images WHERE id = ?`, id)

	img, err := scanImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ListImagesForArtist returns all images in an artist's pool, most recent first.
func (s *Store) ListImagesForArtist(ctx context.Context, artistKey string) ([]domain.ArtistImage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+imageColumns+` FROM artist_images
		 WHERE artist_key = ? ORDER BY uploaded_at DESC`, artistKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ArtistImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	return images, rows.Err()
}

// DeleteImage removes an image record. Votes and reports referencing it are
// removed in the same statement via the schema's ON DELETE CASCADE.
// Returns store.ErrNotFound if the image does not exist.
func (s *Store) DeleteImage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM artist_images WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListArtistKeys returns the distinct artist keys that have at least one image.
func (s *Store) ListArtistKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT artist_key FROM artist_images ORDER BY artist_key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
