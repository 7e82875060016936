package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/blood-donor-network/internal/database"
	"github.com/iliyamo/blood-donor-network/internal/model"
)

// AdminRepo reads the admins table.  The running service never writes to it
// except for the startup seed.
type AdminRepo struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewAdminRepo(db *sql.DB, d database.Dialect) *AdminRepo {
	return &AdminRepo{db: db, dialect: d}
}

// FindByCredentials returns the admin whose username and password both match
// exactly, or nil when there is none.  Passwords are compared as stored,
// in clear text.
//
// TODO: store bcrypt hashes and compare with bcrypt.CompareHashAndPassword
// once existing seed data can be migrated.
func (r *AdminRepo) FindByCredentials(ctx context.Context, username, password string) (*model.Admin, error) {
	const q = "SELECT id, username, password FROM admins WHERE username = ? AND password = ? LIMIT 1"
	var a model.Admin
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(q), username, password).Scan(&a.ID, &a.Username, &a.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find admin", err)
	}
	return &a, nil
}

// Exists reports whether an admin with the given username is present.
func (r *AdminRepo) Exists(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind("SELECT COUNT(*) FROM admins WHERE username = ?"), username).Scan(&n)
	if err != nil {
		return false, storageErr("check admin", err)
	}
	return n > 0, nil
}

// create inserts an admin row; used only by the schema seed.
func (r *AdminRepo) create(ctx context.Context, username, password string) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind("INSERT INTO admins (username, password) VALUES (?, ?)"), username, password)
	return storageErr("seed admin", err)
}
