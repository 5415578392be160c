// Package archive persists one row per completed trial into a SQLite
// database under the match-record directory, for post-hoc audit of a
// tuning run.
//
// Sibling connection-script invocations may append concurrently; the
// database is opened in WAL mode with a busy timeout so short inserts
// from independent processes serialize cleanly.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sgfkit/cloptune"
)

const schema = `
CREATE TABLE IF NOT EXISTS trials (
	id         TEXT PRIMARY KEY,
	processor  TEXT NOT NULL,
	seed       TEXT NOT NULL,
	params     TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	played_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS trials_seed ON trials(seed);
`

// Archive is an open trial archive.
type Archive struct {
	db *sql.DB
}

// Open opens (creating if absent) the archive at path and ensures the
// schema exists.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: init %s: %w", path, err)
	}
	return &Archive{db: db}, nil
}

// Close releases the database handle.
func (a *Archive) Close() error { return a.db.Close() }

// Record is one archived trial.
type Record struct {
	ID        string
	Processor string
	Seed      string
	Params    string
	Outcome   cloptune.Outcome
	Detail    string
	PlayedAt  time.Time
}

// Append stores one trial record. A zero ID is assigned a fresh UUID
// and a zero PlayedAt the current time; the stored record is returned.
func (a *Archive) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now().UTC()
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO trials (id, processor, seed, params, outcome, detail, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Processor, rec.Seed, rec.Params, string(rec.Outcome), rec.Detail,
		rec.PlayedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("archive: append trial %s: %w", rec.Seed, err)
	}
	return rec, nil
}

// Trials returns all archived records in insertion order.
func (a *Archive) Trials(ctx context.Context) ([]Record, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, processor, seed, params, outcome, detail, played_at FROM trials ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("archive: list trials: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var outcome, playedAt string
		if err := rows.Scan(&rec.ID, &rec.Processor, &rec.Seed, &rec.Params,
			&outcome, &rec.Detail, &playedAt); err != nil {
			return nil, fmt.Errorf("archive: scan trial: %w", err)
		}
		rec.Outcome = cloptune.Outcome(outcome)
		if t, err := time.Parse(time.RFC3339Nano, playedAt); err == nil {
			rec.PlayedAt = t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
