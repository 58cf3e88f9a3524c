package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devanshg/splitmate/internal/apperr"
	"github.com/devanshg/splitmate/internal/models"
)

// CreateGroup persists a new group with its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, g *models.Group) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedAt == 0 {
		g.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		g.ID, g.Name, g.CreatedBy, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, name := range g.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, position, name) VALUES (?, ?, ?)",
			g.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group with its members in order.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	g := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?",
		id,
	).Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("group not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM group_members WHERE group_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		g.Members = append(g.Members, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}

	return g, nil
}

// ListGroupsByMember returns every group whose member list contains name,
// newest first.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, name string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT g.id FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.name = ?
		 ORDER BY g.created_at DESC, g.id`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by member: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		g, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// AddGroupMembers appends names to a group's member list, skipping names
// already present.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID string, names []string) error {
	g, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		existing[m] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	pos := len(g.Members)
	for _, name := range names {
		if existing[name] {
			continue
		}
		existing[name] = true
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, position, name) VALUES (?, ?, ?)",
			groupID, pos, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
		pos++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteGroup removes a group by ID; expenses and members cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return apperr.NotFoundf("group not found")
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
