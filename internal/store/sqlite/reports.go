package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/groovecharts/groovecharts-server/internal/domain"
	"github.com/groovecharts/groovecharts-server/internal/store"
)

// reportColumns is the ordered list of columns selected in report queries.
// Must match the scan order in scanReport.
const reportColumns = `id, image_id, reporter_id, reason, status, created_at`

// scanReport scans a sql.Row (or sql.Rows via its Scan method) into a domain.ImageReport.
func scanReport(scanner interface{ Scan(dest ...any) error }) (*domain.ImageReport, error) {
	var r domain.ImageReport

	var createdAt string

	err := scanner.Scan(
		&r.ID,
		&r.ImageID,
		&r.ReporterID,
		&r.Reason,
		&r.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateReport inserts a new image report.
// Returns store.ErrAlreadyExists when this reporter already reported this image.
func (s *Store) CreateReport(ctx context.Context, r *domain.ImageReport) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO image_reports (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.ImageID,
		r.ReporterID,
		r.Reason,
		r.Status,
		formatTime(r.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetReport retrieves a report by ID.
// Returns store.ErrNotFound if the report does not exist.
func (s *Store) GetReport(ctx context.Context, id string) (*domain.ImageReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM image_reports WHERE id = ?`, id)

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListReportsByStatus returns all reports with the given status, oldest first
// so moderators work the queue in arrival order.
func (s *Store) ListReportsByStatus(ctx context.Context, status string) ([]*domain.ImageReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM image_reports
		 WHERE status = ? ORDER BY created_at ASC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.ImageReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// UpdateReportStatus moves a report to a new moderation status.
// Returns store.ErrNotFound if the report does not exist.
func (s *Store) UpdateReportStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE image_reports SET status = ? WHERE id = ?`, status, id)
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
