package repository // repository for group and permission persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PermissionRepo resolves capabilities and manages group membership.
// Capabilities are derived transitively (user -> groups -> permissions)
// on every call and never cached, so a group change takes effect on the
// next request.
type PermissionRepo struct {
	db *sql.DB
}

// NewPermissionRepo constructs a PermissionRepo given a DB handle.
func NewPermissionRepo(db *sql.DB) *PermissionRepo {
	return &PermissionRepo{db: db}
}

// CapabilitiesForUser returns the set of permission codenames granted
// to the user through all of their groups.
func (r *PermissionRepo) CapabilitiesForUser(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	const q = `SELECT DISTINCT p.codename
	           FROM permissions p
	           JOIN group_permissions gp ON gp.permission_id = p.id
	           JOIN user_groups ug ON ug.group_id = gp.group_id
	           WHERE ug.user_id = ?`
	rows, err := r.db.QueryContext(ctx, q, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	caps := make(map[string]bool)
	for rows.Next() {
		var codename string
		if err := rows.Scan(&codename); err != nil {
			return nil, err
		}
		caps[codename] = true
	}
	return caps, rows.Err()
}

// GroupExists reports whether a group row exists for the id.
func (r *PermissionRepo) GroupExists(ctx context.Context, groupID uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM `groups` WHERE id = ?", groupID.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UserInGroup reports whether the user is already a member of the group.
func (r *PermissionRepo) UserInGroup(ctx context.Context, userID, groupID uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM user_groups WHERE user_id = ? AND group_id = ?",
		userID.String(), groupID.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AddUserToGroup adds the membership row. Idempotent.
func (r *PermissionRepo) AddUserToGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO user_groups (user_id, group_id) VALUES (?, ?)",
		userID.String(), groupID.String())
	return err
}

// GroupIDByName looks up a group id by its unique name. Used by the
// seeding helper and by registration to place new accounts in the
// default group.
func (r *PermissionRepo) GroupIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM `groups` WHERE name = ?", name).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, ErrGroupNotFound
		}
		return uuid.Nil, err
	}
	return uuid.Parse(raw)
}
