package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/blood-donor-network/internal/database"
	"github.com/iliyamo/blood-donor-network/internal/model"
)

const donorColumns = "id, name, blood_group, phone, location, last_donation_date, age"

// DonorRepo encapsulates all queries against the blood_donors table.  Every
// value reaches the database as a bound parameter.
type DonorRepo struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewDonorRepo(db *sql.DB, d database.Dialect) *DonorRepo {
	return &DonorRepo{db: db, dialect: d}
}

// Insert stores a donor and returns the id assigned by the database.  The
// caller is responsible for validating required fields first.
func (r *DonorRepo) Insert(ctx context.Context, d model.Donor) (int64, error) {
	const q = `INSERT INTO blood_donors (name, blood_group, phone, location, last_donation_date, age)
		VALUES (?, ?, ?, ?, ?, ?)`
	args := []any{d.Name, d.BloodGroup, d.Phone, d.Location, d.LastDonationDate, d.Age}

	if r.dialect.InsertIDVia == "returning" {
		var id int64
		err := r.db.QueryRowContext(ctx, r.dialect.Rebind(q+" RETURNING id"), args...).Scan(&id)
		return id, storageErr("insert donor", err)
	}
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return 0, storageErr("insert donor", err)
	}
	id, err := res.LastInsertId()
	return id, storageErr("insert donor", err)
}

// List returns every donor matching f ordered by name, ignoring case.  The
// slice is empty (not nil) when nothing matches.
func (r *DonorRepo) List(ctx context.Context, f model.DonorFilter) ([]model.Donor, error) {
	where := []string{}
	args := []any{}

	if f.BloodGroup != "" {
		where = append(where, "blood_group = ?")
		args = append(args, f.BloodGroup)
	}
	if f.Location != "" {
		// both sides folded by the engine; Go and SQLite disagree on non-ASCII
		where = append(where, "LOWER(location) LIKE LOWER(?)")
		args = append(args, "%"+f.Location+"%")
	}

	q := "SELECT " + donorColumns + " FROM blood_donors"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY LOWER(name) ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, storageErr("list donors", err)
	}
	defer rows.Close()

	out := make([]model.Donor, 0)
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, storageErr("list donors", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list donors", err)
	}
	return out, nil
}

// Delete removes the donor with the given id and reports how many rows were
// affected.  A missing id yields 0 and no error.
func (r *DonorRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind("DELETE FROM blood_donors WHERE id = ?"), id)
	if err != nil {
		return 0, storageErr("delete donor", err)
	}
	n, err := res.RowsAffected()
	return n, storageErr("delete donor", err)
}

type scanner interface {
	Scan(dest ...any) error
}

// scanDonor reads one row in donorColumns order.  Text columns are nullable
// in the legacy schema, so NULL reads back as an empty string.
func scanDonor(s scanner) (model.Donor, error) {
	var (
		d                                   model.Donor
		name, group, phone, location, lastD sql.NullString
		age                                 sql.NullInt64
	)
	if err := s.Scan(&d.ID, &name, &group, &phone, &location, &lastD, &age); err != nil {
		return model.Donor{}, err
	}
	d.Name, d.BloodGroup, d.Phone, d.Location = name.String, group.String, phone.String, location.String
	if lastD.Valid {
		v := lastD.String
		d.LastDonationDate = &v
	}
	if age.Valid {
		v := int(age.Int64)
		d.Age = &v
	}
	return d, nil
}
