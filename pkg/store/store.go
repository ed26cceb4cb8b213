// Package store caches fetched leap-seconds.list documents in SQLite.
//
// The leap second list changes at most twice a year, but tools consult it
// constantly. The cache keeps every version we have ever fetched, so a
// machine that goes offline keeps answering from the newest record it has,
// and the history of published lists stays queryable.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/daviddao/leapsec/pkg/date"

	_ "modernc.org/sqlite"
)

// Record is one cached fetch of a leap-seconds.list document.
type Record struct {
	ID        int64
	Source    string    // URL or file path the document came from
	FetchedAt time.Time // when we stored it
	Updated   date.MJD  // the file's last-update day
	Expires   date.MJD  // the file's expiry day
	Compact   string    // the list in compact text form
	Body      []byte    // the document as fetched, byte for byte
}

// Store manages the SQLite cache with WAL mode for concurrent access.
// Several lsc invocations (cron fetch, interactive queries) may share
// one database file.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database and initializes the schema.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// retryOnContention wraps retryOp from retry.go with the default config.
// All store write operations should use this to handle transient SQLite
// errors (BUSY, LOCKED, IOERR_SHORT_READ) under concurrent access.
func retryOnContention(fn func() error) error {
	return retryOp(defaultRetryConfig, fn)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lists (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		source     TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		updated    INTEGER NOT NULL,
		expires    INTEGER NOT NULL,
		compact    TEXT NOT NULL,
		body       BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lists_updated ON lists(updated, id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores a fetched document. If the newest cached record already has
// the same update day and compact form, no new row is inserted; the
// existing row's source and fetch time are refreshed instead. Either way
// the resulting row ID is returned.
//
// The compare-then-write sequence runs inside a transaction so two
// concurrent fetches cannot both insert the same version.
func (s *Store) Save(rec *Record) (int64, error) {
	now := rec.FetchedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var id int64
	err := retryOnContention(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		var curID int64
		var curUpdated int64
		var curCompact string
		err = tx.QueryRow(
			`SELECT id, updated, compact FROM lists ORDER BY updated DESC, id DESC LIMIT 1`,
		).Scan(&curID, &curUpdated, &curCompact)
		switch {
		case err == sql.ErrNoRows:
			// First record.
		case err != nil:
			return err
		case date.MJD(curUpdated) == rec.Updated && curCompact == rec.Compact:
			_, err := tx.Exec(
				`UPDATE lists SET source = ?, fetched_at = ? WHERE id = ?`,
				rec.Source, now.Format(time.RFC3339Nano), curID,
			)
			if err != nil {
				return err
			}
			id = curID
			return tx.Commit()
		}

		res, err := tx.Exec(
			`INSERT INTO lists (source, fetched_at, updated, expires, compact, body)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.Source, now.Format(time.RFC3339Nano),
			int64(rec.Updated), int64(rec.Expires), rec.Compact, rec.Body,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}
		return tx.Commit()
	})
	return id, err
}

// Latest returns the newest cached record by update day, or nil if the
// cache is empty.
func (s *Store) Latest() (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, source, fetched_at, updated, expires, compact, body
		 FROM lists ORDER BY updated DESC, id DESC LIMIT 1`,
	)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// Get retrieves a cached record by row ID.
func (s *Store) Get(id int64) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, source, fetched_at, updated, expires, compact, body
		 FROM lists WHERE id = ?`, id,
	)
	return scanRecord(row)
}

// List returns cached records newest first. A limit <= 0 means all.
func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}
	rows, err := s.db.Query(
		`SELECT id, source, fetched_at, updated, expires, compact, body
		 FROM lists ORDER BY updated DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var r Record
		var fetchedStr string
		var updated, expires int64
		if err := rows.Scan(&r.ID, &r.Source, &fetchedStr, &updated, &expires,
			&r.Compact, &r.Body); err != nil {
			return nil, err
		}
		r.Updated, r.Expires = date.MJD(updated), date.MJD(expires)
		var parseErr error
		r.FetchedAt, parseErr = time.Parse(time.RFC3339Nano, fetchedStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parse fetched_at for record %d: %w", r.ID, parseErr)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Count returns the number of cached records.
func (s *Store) Count() int64 {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM lists`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// Prune deletes all but the newest keep records. Returns the number of
// rows deleted.
func (s *Store) Prune(keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	var deleted int64
	err := retryOnContention(func() error {
		res, err := s.db.Exec(
			`DELETE FROM lists WHERE id NOT IN
			   (SELECT id FROM lists ORDER BY updated DESC, id DESC LIMIT ?)`,
			keep,
		)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}

func scanRecord(row *sql.Row) (*Record, error) {
	var r Record
	var fetchedStr string
	var updated, expires int64
	if err := row.Scan(&r.ID, &r.Source, &fetchedStr, &updated, &expires,
		&r.Compact, &r.Body); err != nil {
		return nil, err
	}
	r.Updated, r.Expires = date.MJD(updated), date.MJD(expires)
	var parseErr error
	r.FetchedAt, parseErr = time.Parse(time.RFC3339Nano, fetchedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parse fetched_at for record %d: %w", r.ID, parseErr)
	}
	return &r, nil
}
