package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Database инкапсулирует пул соединений к PostgreSQL.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB создаёт новый пул соединений по connString и возвращает Database.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %v", err)
	}
	return &Database{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (db *Database) Close() {
	db.Pool.Close()
}

// Ping проверяет доступность базы. Используется /health.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// CreateTables создаёт схему, если она ещё не существует.
func (db *Database) CreateTables(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			industry TEXT NOT NULL,
			website TEXT NOT NULL DEFAULT '',
			uvp JSONB NOT NULL DEFAULT '{}',
			proof_points JSONB NOT NULL DEFAULT '[]',
			competitor_urls TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS trends (
			id SERIAL PRIMARY KEY,
			industry TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			link TEXT NOT NULL DEFAULT '',
			source_count INTEGER NOT NULL DEFAULT 1,
			first_seen TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_seen TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS trends_industry_title
			ON trends (industry, lower(title));

		CREATE TABLE IF NOT EXISTS competitor_signals (
			id SERIAL PRIMARY KEY,
			business_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			headline TEXT NOT NULL DEFAULT '',
			offers TEXT[] NOT NULL DEFAULT '{}',
			fetched_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS context_snapshots (
			business_id TEXT PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
			payload JSONB NOT NULL,
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			generated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS ideas (
			id TEXT PRIMARY KEY,
			business_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			template_id TEXT NOT NULL,
			trend_title TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			hook TEXT NOT NULL,
			platforms TEXT[] NOT NULL DEFAULT '{}',
			score DOUBLE PRECISION NOT NULL,
			breakdown JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			business_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			idea_id TEXT NOT NULL DEFAULT '',
			platform TEXT NOT NULL,
			content TEXT NOT NULL,
			status TEXT NOT NULL,
			platform_post_id TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			published_at TIMESTAMP WITH TIME ZONE
		);
	`)
	return err
}
