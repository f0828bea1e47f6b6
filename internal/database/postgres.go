package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// ConnectPostgres connects to PostgreSQL. Call InitPostgresTables for the schema.
func ConnectPostgres(ctx context.Context, postgresURI string, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("connected to PostgreSQL", zap.String("uri", MaskURI(postgresURI)))
	return db, nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id UUID PRIMARY KEY,
			owner_id VARCHAR(255) NOT NULL,
			context TEXT NOT NULL CHECK (length(btrim(context)) > 0),
			mood VARCHAR(20) NOT NULL DEFAULT 'neutral',
			insight TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_owner_created_at ON journal_entries(owner_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
