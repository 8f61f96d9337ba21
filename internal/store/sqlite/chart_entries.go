package sqlite

import (
	"context"
	"time"

	"github.com/groovecharts/groovecharts-server/internal/domain"
)

// chartEntryColumns is the ordered list of columns selected in chart entry
// queries. Must match the scan order in scanChartEntry.
const chartEntryColumns = `id, group_id, category, display_name, artist_name, slug, charted_at, created_at`

// scanChartEntry scans a sql.Row (or sql.Rows via its Scan method) into a domain.ChartEntry.
func scanChartEntry(scanner interface{ Scan(dest ...any) error }) (*domain.ChartEntry, error) {
	var e domain.ChartEntry

	var (
		category  string
		chartedAt string
		createdAt string
	)

	err := scanner.Scan(
		&e.ID,
		&e.GroupID,
		&category,
		&e.DisplayName,
		&e.ArtistName,
		&e.Slug,
		&chartedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.Category = domain.ChartCategory(category)

	e.ChartedAt, err = parseTime(chartedAt)
	if err != nil {
		return nil, err
	}
	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// CreateChartEntries inserts a batch of chart entry rows in one transaction.
// A published weekly chart arrives as a batch; either all rows land or none.
func (s *Store) CreateChartEntries(ctx context.Context, entries []*domain.ChartEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chart_entries (`+chartEntryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.ExecContext(ctx,
			e.ID,
			e.GroupID,
			string(e.Category),
			e.DisplayName,
			e.ArtistName,
			e.Slug,
			formatTime(e.ChartedAt),
			formatTime(e.CreatedAt),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// Index the new rows for full-text search. Best effort.
	for _, e := range entries {
		if err := s.searchIndexer.IndexChartEntry(ctx, e); err != nil {
			s.logger.Warn("failed to index chart entry for search",
				"entry_id", e.ID,
				"error", err,
			)
		}
	}
	return nil
}

// ListChartEntries returns a group's chart entry rows charted at or after
// since, most recent first. Ordering is explicit (charted_at, then id) so
// consumers never depend on incidental storage order.
func (s *Store) ListChartEntries(ctx context.Context, groupID string, since time.Time) ([]domain.ChartEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+chartEntryColumns+` FROM chart_entries
		WHERE group_id = ? AND charted_at >= ?
		ORDER BY charted_at DESC, id DESC`,
		groupID, formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ChartEntry
	for rows.Next() {
		e, err := scanChartEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
