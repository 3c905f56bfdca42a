package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
	"BrowseLens/internal/taxonomy"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS activity_records (
    id               TEXT PRIMARY KEY,
    user_id          TEXT NOT NULL,
    url              TEXT NOT NULL,
    title            TEXT NOT NULL DEFAULT '',
    text_content     TEXT NOT NULL DEFAULT '',
    duration_seconds REAL NOT NULL DEFAULT 0,
    clicks           INTEGER NOT NULL DEFAULT 0,
    keypresses       INTEGER NOT NULL DEFAULT 0,
    engagement_score REAL NOT NULL DEFAULT 0,
    received_at      TEXT NOT NULL,
    analysis_json    TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_activity_user_received
    ON activity_records (user_id, received_at);

CREATE TABLE IF NOT EXISTS site_preferences (
    user_id  TEXT NOT NULL,
    site     TEXT NOT NULL,
    category TEXT NOT NULL,
    PRIMARY KEY (user_id, site)
);
`

// SQLStore persists activity records and site preferences through
// database/sql. Postgres and sqlite are both supported; the driver and
// placeholder format follow the DSN.
type SQLStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ActivityStore = (*SQLStore)(nil)
var _ ports.PreferenceStore = (*SQLStore)(nil)

// Open connects to the database named by dsn and runs migrations.
// DSNs starting with postgres:// (or postgresql://) use lib/pq; everything
// else is treated as a sqlite path.
func Open(dsn string) (*SQLStore, error) {
	driver := "sqlite"
	var placeholder sq.PlaceholderFormat = sq.Question
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
		placeholder = sq.Dollar
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ingest appends one record and returns the user's record count.
func (s *SQLStore) Ingest(ctx context.Context, record domain.ActivityRecord) (int, error) {
	if record.UserID == "" {
		return 0, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}

	analysis, err := json.Marshal(record.Analysis)
	if err != nil {
		return 0, fmt.Errorf("marshal analysis: %w", err)
	}

	query, args, err := s.builder.
		Insert("activity_records").
		Columns("id", "user_id", "url", "title", "text_content",
			"duration_seconds", "clicks", "keypresses", "engagement_score",
			"received_at", "analysis_json").
		Values(record.ID, record.UserID, record.URL, record.Title, record.Text,
			record.DurationSeconds, record.Clicks, record.Keypresses, record.EngagementScore,
			record.ReceivedAt.UTC().Format(time.RFC3339Nano), string(analysis)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	return s.countForUser(ctx, record.UserID)
}

// List returns up to limit records, most-recent-first by received_at.
func (s *SQLStore) List(ctx context.Context, userID string, limit int) ([]domain.ActivityRecord, error) {
	limit = clampLimit(limit)

	query, args, err := s.builder.
		Select("id", "user_id", "url", "title", "text_content",
			"duration_seconds", "clicks", "keypresses", "engagement_score",
			"received_at", "analysis_json").
		From("activity_records").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("received_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

// Clear removes every record for the user and reports how many went away.
func (s *SQLStore) Clear(ctx context.Context, userID string) (int, error) {
	query, args, err := s.builder.
		Delete("activity_records").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(removed), nil
}

// SetPreference upserts a site-to-category override keyed by host.
func (s *SQLStore) SetPreference(ctx context.Context, userID, site, category string) error {
	if userID == "" || site == "" {
		return fmt.Errorf("%w: user_id and site are required", domain.ErrInvalidInput)
	}
	if !taxonomy.Valid(category) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}

	query, args, err := s.builder.
		Insert("site_preferences").
		Columns("user_id", "site", "category").
		Values(userID, domain.HostOf(site), category).
		Suffix("ON CONFLICT (user_id, site) DO UPDATE SET category = excluded.category").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// Preferences returns the user's full site-to-category map.
func (s *SQLStore) Preferences(ctx context.Context, userID string) (map[string]string, error) {
	query, args, err := s.builder.
		Select("site", "category").
		From("site_preferences").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	prefs := map[string]string{}
	for rows.Next() {
		var site, category string
		if err := rows.Scan(&site, &category); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		prefs[site] = category
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return prefs, nil
}

func (s *SQLStore) countForUser(ctx context.Context, userID string) (int, error) {
	query, args, err := s.builder.
		Select("COUNT(*)").
		From("activity_records").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

func scanRecord(rows *sql.Rows) (domain.ActivityRecord, error) {
	var record domain.ActivityRecord
	var receivedAt, analysisJSON string

	err := rows.Scan(&record.ID, &record.UserID, &record.URL, &record.Title,
		&record.Text, &record.DurationSeconds, &record.Clicks, &record.Keypresses,
		&record.EngagementScore, &receivedAt, &analysisJSON)
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("scan record: %w", err)
	}

	record.ReceivedAt, err = time.Parse(time.RFC3339Nano, receivedAt)
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("parse received_at: %w", err)
	}
	if err := json.Unmarshal([]byte(analysisJSON), &record.Analysis); err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("unmarshal analysis: %w", err)
	}

	return record, nil
}
