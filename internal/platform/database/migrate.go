package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// dropOrder lists tables children first so DROP works without CASCADE surprises.
var dropOrder = []string{
	"comments",
	"notifications",
	"milestones",
	"project_collaborators",
	"pairing_requests",
	"projects",
	"users",
}

// Migrate applies the embedded schema. All statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("database.Migrate: %w", err)
	}
	return nil
}

// Reset drops every application table and re-applies the schema.
func Reset(ctx context.Context, db *sql.DB) error {
	for _, table := range dropOrder {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("database.Reset: drop %s: %w", table, err)
		}
	}
	return Migrate(ctx, db)
}
