package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
)

func (db *DB) InsertGroup(ctx context.Context, g models.Group) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting group: name=%s", g.Name)

	res, err := db.ExecContext(ctx, `
INSERT INTO groups (parent_id, name)
VALUES (?, ?)
`, g.ParentID, g.Name)
	if err != nil {
		log.Error("failed to insert group: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get group id: %v", err)
		return 0, err
	}
	log.Debug("group inserted: id=%d", id)
	return id, nil
}

// GetGroup returns nil with no error when the id does not exist.
func (db *DB) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	var g models.Group
	var parentID sql.NullInt64
	err := db.QueryRowContext(ctx, `
SELECT id, parent_id, name, created_at
FROM groups
WHERE id = ?
`, id).Scan(&g.ID, &parentID, &g.Name, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("group not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get group: %v", err)
		return nil, err
	}
	if parentID.Valid {
		g.ParentID = &parentID.Int64
	}
	return &g, nil
}

func (db *DB) ListGroups(ctx context.Context) ([]models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	rows, err := db.QueryContext(ctx, `
SELECT id, parent_id, name, created_at
FROM groups
ORDER BY created_at, id
`)
	if err != nil {
		log.Error("failed to list groups: %v", err)
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		var parentID sql.NullInt64
		if err := rows.Scan(&g.ID, &parentID, &g.Name, &g.CreatedAt); err != nil {
			log.Error("failed to scan group row: %v", err)
			return nil, err
		}
		if parentID.Valid {
			g.ParentID = &parentID.Int64
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (db *DB) UpdateGroup(ctx context.Context, g models.Group) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("updating group: id=%d, name=%s", g.ID, g.Name)

	_, err := db.ExecContext(ctx, `
UPDATE groups
SET parent_id = ?, name = ?
WHERE id = ?
`, g.ParentID, g.Name, g.ID)
	if err != nil {
		log.Error("failed to update group: %v", err)
	}
	return err
}

// DeleteGroup removes the group; cards and reviews beneath it cascade.
func (db *DB) DeleteGroup(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("deleting group: id=%d", id)

	_, err := db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete group: %v", err)
	}
	return err
}

// ChildGroupIDs lists direct children only; grouptree.Descendants walks the
// rest of the subtree through this method.
func (db *DB) ChildGroupIDs(ctx context.Context, groupID int64) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	rows, err := db.QueryContext(ctx, `SELECT id FROM groups WHERE parent_id = ? ORDER BY id`, groupID)
	if err != nil {
		log.Error("failed to query child groups: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan child group id: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
