package prefs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBTimeout is how long SQLite waits on a locked database before failing.
const DefaultDBTimeout = 5 * time.Second

// Store is a flat key-value store scoped by namespace and key. Values are
// either an unordered set of strings or an ordered list of strings.
// A missing value reads back as nil with no error.
type Store interface {
	PutStringSet(ctx context.Context, namespace, key string, values []string) error
	GetStringSet(ctx context.Context, namespace, key string) ([]string, error)
	PutStringList(ctx context.Context, namespace, key string, values []string) error
	GetStringList(ctx context.Context, namespace, key string) ([]string, error)
	Close() error
}

type DB struct {
	sql *sql.DB
}

var _ Store = (*DB)(nil)

func Open(path string, timeout time.Duration) (*DB, error) {
	if timeout <= 0 {
		timeout = DefaultDBTimeout
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, timeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS string_sets (
  namespace TEXT NOT NULL,
  key       TEXT NOT NULL,
  member    TEXT NOT NULL,
  UNIQUE(namespace, key, member)
);
CREATE TABLE IF NOT EXISTS string_lists (
  namespace TEXT NOT NULL,
  key       TEXT NOT NULL,
  position  INTEGER NOT NULL,
  value     TEXT NOT NULL,
  PRIMARY KEY(namespace, key, position)
);
CREATE TABLE IF NOT EXISTS keys_present (
  namespace TEXT NOT NULL,
  key       TEXT NOT NULL,
  kind      TEXT NOT NULL CHECK (kind IN ('set','list')),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(namespace, key)
);
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// PutStringSet replaces the set stored under namespace/key. Duplicate values collapse.
func (d *DB) PutStringSet(ctx context.Context, namespace, key string, values []string) error {
	return d.replace(ctx, namespace, key, "set", func(tx *sql.Tx) error {
		for _, v := range values {
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO string_sets(namespace, key, member) VALUES(?,?,?)`, namespace, key, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetStringSet returns the members in whatever order SQLite yields them.
func (d *DB) GetStringSet(ctx context.Context, namespace, key string) ([]string, error) {
	ok, err := d.present(ctx, namespace, key, "set")
	if err != nil || !ok {
		return nil, err
	}
	out, err := d.queryStrings(ctx, "SELECT member FROM string_sets WHERE namespace = ? AND key = ?", namespace, key)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// PutStringList replaces the list stored under namespace/key, keeping order and duplicates.
func (d *DB) PutStringList(ctx context.Context, namespace, key string, values []string) error {
	return d.replace(ctx, namespace, key, "list", func(tx *sql.Tx) error {
		for i, v := range values {
			if _, err := tx.ExecContext(ctx, `INSERT INTO string_lists(namespace, key, position, value) VALUES(?,?,?,?)`, namespace, key, i, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *DB) GetStringList(ctx context.Context, namespace, key string) ([]string, error) {
	ok, err := d.present(ctx, namespace, key, "list")
	if err != nil || !ok {
		return nil, err
	}
	out, err := d.queryStrings(ctx, "SELECT value FROM string_lists WHERE namespace = ? AND key = ? ORDER BY position", namespace, key)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (d *DB) replace(ctx context.Context, namespace, key, kind string, fill func(tx *sql.Tx) error) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = clearKey(ctx, tx, namespace, key); err != nil {
		return err
	}
	if err = fill(tx); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO keys_present(namespace, key, kind, updated_at) VALUES(?,?,?,CURRENT_TIMESTAMP)`, namespace, key, kind); err != nil {
		return err
	}
	return tx.Commit()
}

func clearKey(ctx context.Context, tx *sql.Tx, namespace, key string) error {
	for _, q := range []string{
		"DELETE FROM string_sets WHERE namespace = ? AND key = ?",
		"DELETE FROM string_lists WHERE namespace = ? AND key = ?",
		"DELETE FROM keys_present WHERE namespace = ? AND key = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, namespace, key); err != nil {
			return err
		}
	}
	return nil
}

// present reports whether a value of the given kind exists. A key stored
// with the other kind reads as missing, like a typed preferences lookup.
func (d *DB) present(ctx context.Context, namespace, key, kind string) (bool, error) {
	var stored string
	err := d.sql.QueryRowContext(ctx, "SELECT kind FROM keys_present WHERE namespace = ? AND key = ?", namespace, key).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == kind, nil
}

func (d *DB) queryStrings(ctx context.Context, q string, args ...interface{}) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
