package database

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	SQLite   = "sqlite3"
	MySQL    = "mysql"
	Postgres = "postgres"
)

// Dialect captures the few places where the supported engines disagree:
// the registered driver name, the DDL for the two tables and the bind
// parameter syntax.  Queries are written with ? placeholders and passed
// through Rebind before execution.
type Dialect struct {
	Name        string
	DriverName  string
	DonorsDDL   string
	AdminsDDL   string
	InsertIDVia string // "last_insert_id" or "returning"
}

var dialects = map[string]Dialect{
	SQLite: {
		Name:       SQLite,
		DriverName: "sqlite3",
		DonorsDDL: `CREATE TABLE IF NOT EXISTS blood_donors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			blood_group TEXT,
			phone TEXT,
			location TEXT,
			last_donation_date TEXT,
			age INTEGER
		)`,
		AdminsDDL: `CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE,
			password TEXT
		)`,
		InsertIDVia: "last_insert_id",
	},
	MySQL: {
		Name:       MySQL,
		DriverName: "mysql",
		DonorsDDL: `CREATE TABLE IF NOT EXISTS blood_donors (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255),
			blood_group VARCHAR(8),
			phone VARCHAR(64),
			location VARCHAR(255),
			last_donation_date VARCHAR(32) NULL,
			age INT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		AdminsDDL: `CREATE TABLE IF NOT EXISTS admins (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(191) UNIQUE,
			password VARCHAR(255)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		InsertIDVia: "last_insert_id",
	},
	Postgres: {
		Name:       Postgres,
		DriverName: "pgx",
		DonorsDDL: `CREATE TABLE IF NOT EXISTS blood_donors (
			id BIGSERIAL PRIMARY KEY,
			name TEXT,
			blood_group TEXT,
			phone TEXT,
			location TEXT,
			last_donation_date TEXT,
			age INTEGER
		)`,
		AdminsDDL: `CREATE TABLE IF NOT EXISTS admins (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE,
			password TEXT
		)`,
		InsertIDVia: "returning",
	},
}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
	}
	return d, nil
}

// Rebind rewrites ? placeholders into $1, $2, ... for PostgreSQL.  Other
// dialects get the query back unchanged.  Question marks inside single
// quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d.Name != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
