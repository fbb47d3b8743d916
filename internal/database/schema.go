package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/fyyur/internal/config"
)

// Both dialects share table and column names so the repositories can use a
// single set of queries.

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		city VARCHAR(120) NOT NULL,
		state VARCHAR(120) NOT NULL,
		address VARCHAR(255) NOT NULL,
		phone VARCHAR(120) NOT NULL DEFAULT '',
		image_link VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link VARCHAR(500) NOT NULL DEFAULT '',
		website VARCHAR(500) NOT NULL DEFAULT '',
		seeking_talent TINYINT(1) NOT NULL DEFAULT 0,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		created_at DATETIME(6) NOT NULL,
		KEY idx_venues_area (state, city),
		KEY idx_venues_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artists (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		city VARCHAR(120) NOT NULL,
		state VARCHAR(120) NOT NULL,
		phone VARCHAR(120) NOT NULL DEFAULT '',
		image_link VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link VARCHAR(500) NOT NULL DEFAULT '',
		website VARCHAR(500) NOT NULL DEFAULT '',
		seeking_venue TINYINT(1) NOT NULL DEFAULT 0,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		available_from DATETIME(6) NULL,
		available_to DATETIME(6) NULL,
		created_at DATETIME(6) NOT NULL,
		KEY idx_artists_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shows (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		artist_id BIGINT UNSIGNED NOT NULL,
		venue_id BIGINT UNSIGNED NOT NULL,
		start_time DATETIME(6) NOT NULL,
		KEY idx_shows_artist (artist_id, start_time),
		KEY idx_shows_venue (venue_id, start_time),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists(id) ON DELETE CASCADE,
		CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS venue_genres (
		venue_id BIGINT UNSIGNED NOT NULL,
		position INT NOT NULL,
		genre VARCHAR(120) NOT NULL,
		PRIMARY KEY (venue_id, genre),
		CONSTRAINT fk_venue_genres_venue FOREIGN KEY (venue_id) REFERENCES venues(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artist_genres (
		artist_id BIGINT UNSIGNED NOT NULL,
		position INT NOT NULL,
		genre VARCHAR(120) NOT NULL,
		PRIMARY KEY (artist_id, genre),
		CONSTRAINT fk_artist_genres_artist FOREIGN KEY (artist_id) REFERENCES artists(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		address TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		seeking_talent BOOLEAN NOT NULL DEFAULT 0,
		seeking_description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_area ON venues (state, city)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_created ON venues (created_at)`,
	`CREATE TABLE IF NOT EXISTS artists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		seeking_venue BOOLEAN NOT NULL DEFAULT 0,
		seeking_description TEXT NOT NULL DEFAULT '',
		available_from DATETIME NULL,
		available_to DATETIME NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_artists_created ON artists (created_at)`,
	`CREATE TABLE IF NOT EXISTS shows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
		venue_id INTEGER NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
		start_time DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_artist ON shows (artist_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_venue ON shows (venue_id, start_time)`,
	`CREATE TABLE IF NOT EXISTS venue_genres (
		venue_id INTEGER NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		genre TEXT NOT NULL,
		PRIMARY KEY (venue_id, genre)
	)`,
	`CREATE TABLE IF NOT EXISTS artist_genres (
		artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		genre TEXT NOT NULL,
		PRIMARY KEY (artist_id, genre)
	)`,
}

// Migrate creates the tables and indexes for driver if they do not exist.
// It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case config.DriverMySQL:
		stmts = mysqlSchema
	case config.DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("database: no schema for driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
