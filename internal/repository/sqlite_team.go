package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jobledger/jobledger/internal/db"
	"github.com/jobledger/jobledger/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo on SQLite.
type SQLiteTeamRepo struct {
	db db.DBTX
}

// NewSQLiteTeamRepo creates a new SQLiteTeamRepo.
func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

func (r *SQLiteTeamRepo) Create(ctx context.Context, m *domain.TeamMember) error {
	query := `INSERT INTO team_members (id, name, role, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Role,
		nullableTimeToString(m.ArchivedAt, time.RFC3339),
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, role, archived_at, created_at, updated_at FROM team_members WHERE id = ?`, id)
	m, err := scanTeamMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *SQLiteTeamRepo) List(ctx context.Context, includeArchived bool) ([]*domain.TeamMember, error) {
	query := `SELECT id, name, role, archived_at, created_at, updated_at FROM team_members`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var members []*domain.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	return members, nil
}

func (r *SQLiteTeamRepo) Update(ctx context.Context, m *domain.TeamMember) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE team_members SET name = ?, role = ?, updated_at = ? WHERE id = ?`,
		m.Name, m.Role, m.UpdatedAt.Format(time.RFC3339), m.ID)
	if err != nil {
		return fmt.Errorf("updating team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE team_members SET archived_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving team member: %w", err)
	}
	return nil
}

func scanTeamMember(row rowScanner) (*domain.TeamMember, error) {
	var m domain.TeamMember
	var archivedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&m.ID, &m.Name, &m.Role, &archivedAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning team member: %w", err)
	}

	m.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	if m.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing team member created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing team member updated_at: %w", err)
	}
	return &m, nil
}
