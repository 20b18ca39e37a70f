package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Capability codenames checked by the permission gate. Seeded into the
// permissions table on first run.
var AllCapabilities = []string{
	"view_car_model", "add_car_model", "change_car_model", "delete_car_model",
	"view_part", "add_part", "change_part", "delete_part",
	"view_user", "change_user", "delete_user",
}

// Names of the built-in groups. The administrator group receives every
// capability; the common group can only view car models and parts.
const (
	GroupAdministrator = "administrator"
	GroupCommon        = "common"
)

var commonCapabilities = []string{"view_car_model", "view_part"}

// Seed creates the built-in permissions and groups when they do not
// exist yet, and grants all capabilities to the administrator group and
// the view capabilities to the common group. Safe to run repeatedly;
// every statement is an upsert or INSERT IGNORE.
func Seed(ctx context.Context, db *sql.DB) error {
	for _, codename := range AllCapabilities {
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO permissions (id, codename) VALUES (?, ?)",
			uuid.New().String(), codename); err != nil {
			return err
		}
	}
	for _, name := range []string{GroupAdministrator, GroupCommon} {
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO `groups` (id, name) VALUES (?, ?)",
			uuid.New().String(), name); err != nil {
			return err
		}
	}
	// Administrator: everything.
	if _, err := db.ExecContext(ctx, `
		INSERT IGNORE INTO group_permissions (group_id, permission_id)
		SELECT g.id, p.id FROM `+"`groups`"+` g JOIN permissions p
		WHERE g.name = ?`, GroupAdministrator); err != nil {
		return err
	}
	// Common: view-only on car models and parts.
	for _, codename := range commonCapabilities {
		if _, err := db.ExecContext(ctx, `
			INSERT IGNORE INTO group_permissions (group_id, permission_id)
			SELECT g.id, p.id FROM `+"`groups`"+` g JOIN permissions p ON p.codename = ?
			WHERE g.name = ?`, codename, GroupCommon); err != nil {
			return err
		}
	}
	return nil
}
