package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/git-release-name/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS releases (
		id          TEXT PRIMARY KEY,
		ns          TEXT NOT NULL,
		sha         TEXT NOT NULL,
		name        TEXT NOT NULL,
		case_format TEXT NOT NULL DEFAULT 'lower',
		version     INTEGER NOT NULL DEFAULT 1,
		supersedes  TEXT,
		created_at  TEXT NOT NULL,
		deleted_at  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_releases_ns_sha ON releases(ns, sha);
	CREATE INDEX IF NOT EXISTS idx_releases_created ON releases(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_releases_deleted ON releases(deleted_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Put(ctx context.Context, p PutParams) (*model.Release, error) {
	now := time.Now().UTC()
	id := s.newID()
	sha := normalizeSHA(p.SHA)

	format := p.Case
	if format == "" {
		format = "lower"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Check for existing latest version
	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM releases
		 WHERE ns = ? AND sha = ? AND deleted_at IS NULL
		 ORDER BY version DESC LIMIT 1`, p.NS, sha).Scan(&prevID, &prevVersion)

	version := 1
	var supersedes *string
	switch {
	case err == nil:
		version = prevVersion + 1
		supersedes = &prevID
	case err != sql.ErrNoRows:
		return nil, fmt.Errorf("lookup previous version: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO releases (id, ns, sha, name, case_format, version, supersedes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.NS, sha, p.Name, format, version, supersedes, now.Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("insert release: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	rel := &model.Release{
		ID:        id,
		NS:        p.NS,
		SHA:       sha,
		Name:      p.Name,
		Case:      format,
		Version:   version,
		CreatedAt: now,
	}
	if supersedes != nil {
		rel.Supersedes = *supersedes
	}
	return rel, nil
}

// timeFormat is fixed width so that stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const releaseColumns = `id, ns, sha, name, case_format, version, supersedes, created_at, deleted_at`

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) ([]model.Release, error) {
	query := `SELECT ` + releaseColumns + `
			  FROM releases WHERE ns = ? AND sha = ? AND deleted_at IS NULL
			  ORDER BY version DESC`
	if !p.History {
		query += ` LIMIT 1`
	}

	releases, err := s.query(ctx, query, p.NS, normalizeSHA(p.SHA))
	if err != nil {
		return nil, err
	}
	if len(releases) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, p.NS, p.SHA)
	}
	return releases, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Release, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := "r.deleted_at IS NULL"
	args := []interface{}{}
	if p.NS != "" {
		where += " AND r.ns = ?"
		args = append(args, p.NS)
	}

	query := `
		SELECT r.id, r.ns, r.sha, r.name, r.case_format, r.version, r.supersedes, r.created_at, r.deleted_at
		FROM releases r
		INNER JOIN (
			SELECT ns, sha, MAX(version) AS max_ver
			FROM releases WHERE deleted_at IS NULL
			GROUP BY ns, sha
		) latest ON r.ns = latest.ns AND r.sha = latest.sha AND r.version = latest.max_ver
		WHERE ` + where + `
		ORDER BY r.created_at DESC
		LIMIT ?`
	args = append(args, limit)

	return s.query(ctx, query, args...)
}

func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	sha := normalizeSHA(p.SHA)
	var res sql.Result
	var err error
	if p.Hard {
		res, err = s.db.ExecContext(ctx, `DELETE FROM releases WHERE ns = ? AND sha = ?`, p.NS, sha)
	} else {
		now := time.Now().UTC().Format(timeFormat)
		res, err = s.db.ExecContext(ctx,
			`UPDATE releases SET deleted_at = ? WHERE ns = ? AND sha = ? AND deleted_at IS NULL`,
			now, p.NS, sha)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, p.NS, p.SHA)
	}
	return nil
}

// normalizeSHA is the registry key for a sha: trimmed and lower-cased.
// Abbreviations are kept as given.
func normalizeSHA(sha string) string {
	return strings.ToLower(strings.TrimSpace(sha))
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...interface{}) ([]model.Release, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var releases []model.Release
	for rows.Next() {
		r, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, r)
	}
	return releases, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRelease(row scanner) (model.Release, error) {
	var r model.Release
	var supersedes, deletedAt sql.NullString
	var createdAt string

	err := row.Scan(
		&r.ID, &r.NS, &r.SHA, &r.Name, &r.Case,
		&r.Version, &supersedes, &createdAt, &deletedAt,
	)
	if err != nil {
		return r, err
	}

	r.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	if supersedes.Valid {
		r.Supersedes = supersedes.String
	}
	if deletedAt.Valid {
		t, _ := time.Parse(timeFormat, deletedAt.String)
		r.DeletedAt = &t
	}
	return r, nil
}
