package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/groovecharts/groovecharts-server/internal/domain"
	"github.com/groovecharts/groovecharts-server/internal/store"
)

// groupColumns is the ordered list of columns selected in group queries.
// Must match the scan order in scanGroup.
const groupColumns = `id, name, slug, owner_id, created_at, updated_at`

// scanGroup scans a sql.Row (or sql.Rows via its Scan method) into a domain.Group.
func scanGroup(scanner interface{ Scan(dest ...any) error }) (*domain.Group, error) {
	var g domain.Group

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&g.ID,
		&g.Name,
		&g.Slug,
		&g.OwnerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	g.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// CreateGroup inserts a new group.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateGroup(ctx context.Context, g *domain.Group) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO groups (`+groupColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID,
		g.Name,
		g.Slug,
		g.OwnerID,
		formatTime(g.CreatedAt),
		formatTime(g.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetGroup retrieves a group by ID.
// Returns store.ErrNotFound if the group does not exist.
func (s *Store) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = ?`, id)

	g, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetGroupBySlug retrieves a group by its slug.
// Returns store.ErrNotFound if the group does not exist.
func (s *Store) GetGroupBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE slug = ?`, slug)

	g, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGroups returns all groups ordered by name.
func (s *Store) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+groupColumns+` FROM groups ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
