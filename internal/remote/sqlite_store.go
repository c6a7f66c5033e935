package remote

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"spotter/internal/models"
	"time"

	_ "modernc.org/sqlite"
)

const defaultTable = "sightings"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// %[1]s is the table name.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
	id         TEXT PRIMARY KEY,
	model      TEXT NOT NULL,
	color      TEXT NOT NULL,
	latitude   REAL,
	longitude  REAL,
	timestamp  TEXT NOT NULL,
	user_id    TEXT,
	is_synced  INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_%[1]s_user_ts ON %[1]s(user_id, timestamp);
`

// SqliteStore keeps the sightings table in a local SQLite file, for
// single-host deployments without a hosted backend.
type SqliteStore struct {
	db    *sql.DB
	table string
}

// NewSqliteStore opens the database at path and creates table if missing.
// An empty table means "sightings".
func NewSqliteStore(path, table string) (*SqliteStore, error) {
	if table == "" {
		table = defaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(fmt.Sprintf(sqliteSchema, table)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SqliteStore{db: db, table: table}, nil
}

func (s *SqliteStore) Insert(ctx context.Context, sightings []models.Sighting) error {
	if len(sightings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT OR IGNORE INTO %s
		(id, model, color, latitude, longitude, timestamp, user_id, is_synced, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`, s.table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, sg := range sightings {
		r := toRow(sg)
		if _, err := stmt.ExecContext(ctx, r.ID, r.Model, r.Color, r.Latitude, r.Longitude, r.Timestamp, r.UserID, now, now); err != nil {
			return fmt.Errorf("insert %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SqliteStore) ListByUser(ctx context.Context, userID string) ([]models.Sighting, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, model, color, latitude, longitude, timestamp, user_id, is_synced
		FROM %s WHERE user_id = ?
		ORDER BY julianday(timestamp) DESC, timestamp DESC`, s.table), userID)
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer rows.Close()

	out := []models.Sighting{}
	for rows.Next() {
		var (
			r        row
			lat, lon sql.NullFloat64
			uid      sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Model, &r.Color, &lat, &lon, &r.Timestamp, &uid, &r.IsSynced); err != nil {
			return nil, fmt.Errorf("scan sighting: %w", err)
		}
		if lat.Valid {
			r.Latitude = &lat.Float64
		}
		if lon.Valid {
			r.Longitude = &lon.Float64
		}
		if uid.Valid {
			r.UserID = &uid.String
		}
		out = append(out, r.sighting())
	}

	return out, rows.Err()
}

func (s *SqliteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}
