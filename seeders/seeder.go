// Package seeders fills a fresh database with the base roles, the default
// dynamic permission claims and the initial admin account.
package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/authz"
	"backoffice/pkg/security"
)

// SeedRoles inserts the base roles when missing.
func SeedRoles(ctx context.Context, db *pgxpool.Pool) error {
	roles := []struct{ name, description string }{
		{authz.RoleAdmin, "Full access, bypasses dynamic permission checks"},
		{"Operator", "Back office staff"},
		{"Customer", "External customer account"},
	}
	for _, role := range roles {
		_, err := db.Exec(ctx,
			"INSERT INTO roles (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING",
			role.name, role.description,
		)
		if err != nil {
			return fmt.Errorf("failed to seed role %q: %w", role.name, err)
		}
	}
	return nil
}

// SeedClaims inserts every assignable dynamic server permission claim row so
// the admin UI has the full catalogue to offer.
func SeedClaims(ctx context.Context, db *pgxpool.Pool) error {
	for _, value := range authz.AllPermissionValues() {
		_, err := db.Exec(ctx,
			"INSERT INTO user_claims (claim_type, claim_value) VALUES ($1, $2) ON CONFLICT (claim_type, claim_value) DO NOTHING",
			authz.DynamicServerPermission, value,
		)
		if err != nil {
			return fmt.Errorf("failed to seed claim %q: %w", value, err)
		}
	}
	return nil
}

// SeedAdmin creates the initial admin user with the Admin role. It is a
// no-op when a user with that username already exists.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, username, password string) error {
	var exists bool
	if err := db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", username,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	var userID uint64
	err = db.QueryRow(ctx,
		`INSERT INTO users (username, first_name, last_name, display_name, password, serial_number, is_active)
		 VALUES ($1, 'System', 'Administrator', 'System Administrator', $2, $3, TRUE) RETURNING id`,
		username, passwordHash, security.NewSecureSerial(),
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id)
		 SELECT $1, id FROM roles WHERE name = $2
		 ON CONFLICT DO NOTHING`,
		userID, authz.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to assign admin role: %w", err)
	}
	return nil
}
