// Package sqlite
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"actiowatch/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

func NewSqliteDB(dbPath string, log logger.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not responding: %w", err)
	}

	// single writer; settings and alert history are tiny
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("sqlite connection established", "path", dbPath)

	if err := runMigration(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func runMigration(db *sql.DB) error {
	migrations := []struct {
		table string
		query string
	}{
		{"settings", `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`},
		{"notifications", `
		CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications (created_at);`},
	}

	for _, m := range migrations {
		if _, err := db.Exec(m.query); err != nil {
			return fmt.Errorf("failed to migrate %s table: %w", m.table, err)
		}
	}
	return nil
}
