package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/iliyamo/blood-donor-network/internal/config"
)

// MySQLDSN assembles a go-sql-driver DSN from its parts.
func MySQLDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}

// OpenConfig opens the database described by cfg and returns it with its dialect.
func OpenConfig(cfg config.Config) (*sql.DB, Dialect, error) {
	dsn := cfg.DBURL
	if cfg.DBDriver == "mysql" && dsn == "" {
		dsn = MySQLDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	return Open(cfg.DBDriver, dsn)
}

// Open connects to the given driver ("sqlite3", "mysql" or "postgres") and
// verifies the connection.
func Open(driver, dsn string) (*sql.DB, Dialect, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, Dialect{}, err
	}

	// Pool settings
	if d.Name == SQLite {
		// one writer at a time; a single connection also keeps :memory: databases alive
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, err
	}
	return db, d, nil
}
