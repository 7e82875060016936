package repository

import (
	"context"
	"database/sql"
	"log"

	"github.com/iliyamo/blood-donor-network/internal/database"
)

// SeedAdmin is the account guaranteed to exist after CreateSchema.
type SeedAdmin struct {
	Username string
	Password string
}

// CreateSchema creates the blood_donors and admins tables if they are missing
// and inserts the seed admin when no account with that username exists.  It is
// safe to call on every startup.
func CreateSchema(ctx context.Context, db *sql.DB, d database.Dialect, seed SeedAdmin) error {
	if _, err := db.ExecContext(ctx, d.DonorsDDL); err != nil {
		return storageErr("create blood_donors", err)
	}
	if _, err := db.ExecContext(ctx, d.AdminsDDL); err != nil {
		return storageErr("create admins", err)
	}

	admins := NewAdminRepo(db, d)
	exists, err := admins.Exists(ctx, seed.Username)
	if err != nil {
		return err
	}
	if !exists {
		if err := admins.create(ctx, seed.Username, seed.Password); err != nil {
			return err
		}
		log.Printf("default admin user %q created", seed.Username)
	}
	return nil
}
