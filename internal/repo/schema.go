package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS itineraries (
		id                BIGSERIAL PRIMARY KEY,
		name              VARCHAR(128) NOT NULL,
		prompts           JSONB,
		is_public         BOOLEAN NOT NULL DEFAULT FALSE,
		max_pax           INTEGER NOT NULL DEFAULT 1,
		gender_preference VARCHAR(32) NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id                 BIGSERIAL PRIMARY KEY,
		itinerary_id       BIGINT NOT NULL REFERENCES itineraries (id) ON DELETE CASCADE,
		"date"             VARCHAR(64) NOT NULL,
		name               TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		"type"             VARCHAR(64) NOT NULL DEFAULT '',
		activity_order     INTEGER NOT NULL CHECK (activity_order >= 0),
		time_of_day        VARCHAR(64) NOT NULL DEFAULT '',
		suggested_duration VARCHAR(64) NOT NULL DEFAULT '',
		location           TEXT NOT NULL DEFAULT '',
		latitude           DOUBLE PRECISION,
		longitude          DOUBLE PRECISION,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_itinerary_order ON activities (itinerary_id, activity_order)`,
	`CREATE TABLE IF NOT EXISTS user_itineraries (
		user_id      BIGINT NOT NULL,
		itinerary_id BIGINT NOT NULL REFERENCES itineraries (id) ON DELETE CASCADE,
		is_creator   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, itinerary_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_itineraries_one_creator ON user_itineraries (itinerary_id) WHERE is_creator`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS itineraries (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT NOT NULL,
		prompts           TEXT,
		is_public         BOOLEAN NOT NULL DEFAULT 0,
		max_pax           INTEGER NOT NULL DEFAULT 1,
		gender_preference TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		itinerary_id       INTEGER NOT NULL REFERENCES itineraries (id) ON DELETE CASCADE,
		"date"             TEXT NOT NULL,
		name               TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		"type"             TEXT NOT NULL DEFAULT '',
		activity_order     INTEGER NOT NULL CHECK (activity_order >= 0),
		time_of_day        TEXT NOT NULL DEFAULT '',
		suggested_duration TEXT NOT NULL DEFAULT '',
		location           TEXT NOT NULL DEFAULT '',
		latitude           REAL,
		longitude          REAL,
		created_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_itinerary_order ON activities (itinerary_id, activity_order)`,
	`CREATE TABLE IF NOT EXISTS user_itineraries (
		user_id      INTEGER NOT NULL,
		itinerary_id INTEGER NOT NULL REFERENCES itineraries (id) ON DELETE CASCADE,
		is_creator   BOOLEAN NOT NULL DEFAULT 0,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, itinerary_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_itineraries_one_creator ON user_itineraries (itinerary_id) WHERE is_creator`,
}

// CreateSchema creates the itinerary tables and indexes if they do not exist yet.
// It is idempotent and safe to run on every start.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	var statements []string
	switch db.Dialect().Name() {
	case dialect.PG:
		statements = postgresSchema
	case dialect.SQLite:
		statements = sqliteSchema
	default:
		return errors.Errorf("repo: unsupported dialect %s", db.Dialect().Name())
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "repo: failed to create schema")
		}
	}
	return nil
}
