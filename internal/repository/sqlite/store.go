package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/kailas-cloud/tagrec/internal/db"
	domrating "github.com/kailas-cloud/tagrec/internal/domain/rating"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS tag_applications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id INTEGER NOT NULL,
	tag TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tag_applications_item ON tag_applications(item_id);

CREATE TABLE IF NOT EXISTS ratings (
	user_id INTEGER NOT NULL,
	item_id INTEGER NOT NULL,
	rating REAL NOT NULL,
	PRIMARY KEY (user_id, item_id)
);

CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL
);
`

// Store keeps items, tag applications, ratings and model snapshots in one SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the schema when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	if path == MemoryPath {
		// Every connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
	} else if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlite: set WAL mode: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlite: create tables: %w", err)
	}
	return &Store{db: conn}, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// WaitForReady pings once; a local database is ready as soon as it opens.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ping(ctx)
}

// Close closes the database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// --- items and tag applications ---

// ItemIDs returns every known item in ascending order, tagged or not.
func (s *Store) ItemIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list items: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scan item: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list items: %w", err)
	}
	return ids, nil
}

// CountItems returns the size of the item universe.
func (s *Store) CountItems(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count items: %w", err)
	}
	return n, nil
}

// TagApplications returns every application of a tag to item in insertion order.
func (s *Store) TagApplications(ctx context.Context, item int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag FROM tag_applications WHERE item_id = ? ORDER BY id`, item)
	if err != nil {
		return nil, fmt.Errorf("sqlite: tags of item %d: %w", item, err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("sqlite: scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: tags of item %d: %w", item, err)
	}
	return tags, nil
}

// AddItems registers items without tagging them.
func (s *Store) AddItems(ctx context.Context, items ...int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return insertItems(ctx, tx, items)
	})
}

// Apply records tag applications on item and registers the item.
func (s *Store) Apply(ctx context.Context, item int64, tags ...string) error {
	return s.ApplyMany(ctx, map[int64][]string{item: tags})
}

// ApplyMany records tag applications for many items in one transaction.
func (s *Store) ApplyMany(ctx context.Context, apps map[int64][]string) error {
	if len(apps) == 0 {
		return nil
	}
	items := make([]int64, 0, len(apps))
	for item := range apps {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertItems(ctx, tx, items); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO tag_applications (item_id, tag) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("sqlite: prepare tag insert: %w", err)
		}
		defer stmt.Close()
		for _, item := range items {
			for _, tag := range apps[item] {
				if _, err := stmt.ExecContext(ctx, item, tag); err != nil {
					return fmt.Errorf("sqlite: tag item %d: %w", item, err)
				}
			}
		}
		return nil
	})
}

func insertItems(ctx context.Context, tx *sql.Tx, items []int64) error {
	if len(items) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO items (id) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare item insert: %w", err)
	}
	defer stmt.Close()
	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item); err != nil {
			return fmt.Errorf("sqlite: add item %d: %w", item, err)
		}
	}
	return nil
}

// --- ratings ---

// ForUser returns the user's ratings ordered by item. Unknown users yield an empty slice.
func (s *Store) ForUser(ctx context.Context, user int64) ([]domrating.Rating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, rating FROM ratings WHERE user_id = ? ORDER BY item_id`, user)
	if err != nil {
		return nil, fmt.Errorf("sqlite: ratings of user %d: %w", user, err)
	}
	defer rows.Close()

	out := []domrating.Rating{}
	for rows.Next() {
		var item int64
		var value float64
		if err := rows.Scan(&item, &value); err != nil {
			return nil, fmt.Errorf("sqlite: scan rating: %w", err)
		}
		rt, err := domrating.New(user, item, value)
		if err != nil {
			return nil, fmt.Errorf("sqlite: user %d item %d: %w", user, item, err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: ratings of user %d: %w", user, err)
	}
	return out, nil
}

// Put stores a single rating, replacing any previous value for the same item.
func (s *Store) Put(ctx context.Context, rt domrating.Rating) error {
	return s.PutMany(ctx, []domrating.Rating{rt})
}

// PutMany stores ratings in one transaction.
func (s *Store) PutMany(ctx context.Context, ratings []domrating.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR REPLACE INTO ratings (user_id, item_id, rating) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("sqlite: prepare rating insert: %w", err)
		}
		defer stmt.Close()
		for _, rt := range ratings {
			if _, err := stmt.ExecContext(ctx, rt.UserID, rt.ItemID, rt.Value); err != nil {
				return fmt.Errorf("sqlite: rate item %d by user %d: %w", rt.ItemID, rt.UserID, err)
			}
		}
		return nil
	})
}

// Delete removes the user's rating of item.
func (s *Store) Delete(ctx context.Context, user, item int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM ratings WHERE user_id = ? AND item_id = ?`, user, item); err != nil {
		return fmt.Errorf("sqlite: delete rating: %w", err)
	}
	return nil
}

// --- key-value ---

// Get returns the value at key or db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value at key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("sqlite: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}
