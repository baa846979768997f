// Package storage persists best-in-slot sets and equipped-gear snapshots in
// a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
)

type DB struct {
	sql *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS bis_sets (
  id          INTEGER PRIMARY KEY,
  job         TEXT NOT NULL UNIQUE,
  name        TEXT,
  source_kind TEXT NOT NULL DEFAULT 'manual',
  origin_url  TEXT,
  food_id     INTEGER NOT NULL DEFAULT 0,
  updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS bis_slots (
  id         INTEGER PRIMARY KEY,
  set_id     INTEGER NOT NULL REFERENCES bis_sets(id) ON DELETE CASCADE,
  slot       INTEGER NOT NULL,
  item_id    INTEGER NOT NULL,
  name       TEXT,
  item_level INTEGER NOT NULL DEFAULT 0,
  source     TEXT NOT NULL DEFAULT 'unknown',
  floor      INTEGER NOT NULL DEFAULT 0,
  m1 INTEGER NOT NULL DEFAULT 0,
  m2 INTEGER NOT NULL DEFAULT 0,
  m3 INTEGER NOT NULL DEFAULT 0,
  m4 INTEGER NOT NULL DEFAULT 0,
  m5 INTEGER NOT NULL DEFAULT 0,
  UNIQUE(set_id, slot)
);
CREATE TABLE IF NOT EXISTS equipped_items (
  id         INTEGER PRIMARY KEY,
  job        TEXT NOT NULL,
  slot       INTEGER NOT NULL,
  item_id    INTEGER NOT NULL,
  name       TEXT,
  item_level INTEGER NOT NULL DEFAULT 0,
  m1 INTEGER NOT NULL DEFAULT 0,
  m2 INTEGER NOT NULL DEFAULT 0,
  m3 INTEGER NOT NULL DEFAULT 0,
  m4 INTEGER NOT NULL DEFAULT 0,
  m5 INTEGER NOT NULL DEFAULT 0,
  UNIQUE(job, slot)
);
    `); err != nil {
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

// SaveSet stores a job's set wholesale: re-imports and manual saves both
// replace every slot row in one transaction.
func (d *DB) SaveSet(ctx context.Context, set *gearset.Set) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	updatedAt := set.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO bis_sets(job, name, source_kind, origin_url, food_id, updated_at) VALUES(?,?,?,?,?,?)
ON CONFLICT(job) DO UPDATE SET name=excluded.name, source_kind=excluded.source_kind,
  origin_url=excluded.origin_url, food_id=excluded.food_id, updated_at=excluded.updated_at`,
		set.Job, set.Name, set.SourceKind, set.OriginURL, set.FoodID, updatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	var setID int64
	if err = tx.QueryRowContext(ctx, "SELECT id FROM bis_sets WHERE job = ?", set.Job).Scan(&setID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM bis_slots WHERE set_id = ?", setID); err != nil {
		return err
	}
	for _, item := range set.Slots {
		_, err = tx.ExecContext(ctx, `
INSERT INTO bis_slots(set_id, slot, item_id, name, item_level, source, floor, m1, m2, m3, m4, m5)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
			setID, int(item.Slot), item.ItemID, item.Name, item.ItemLevel, item.Source.String(), item.Floor,
			item.Materia[0], item.Materia[1], item.Materia[2], item.Materia[3], item.Materia[4])
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetSet loads a job's set. A job without a stored set yields (nil, nil).
func (d *DB) GetSet(ctx context.Context, job string) (*gearset.Set, error) {
	set := gearset.NewSet(job)
	var (
		setID     int64
		updatedAt string
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, name, source_kind, origin_url, food_id, updated_at FROM bis_sets WHERE job = ?", job).
		Scan(&setID, &set.Name, &set.SourceKind, &set.OriginURL, &set.FoodID, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	set.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	rows, err := d.sql.QueryContext(ctx,
		"SELECT slot, item_id, name, item_level, source, floor, m1, m2, m3, m4, m5 FROM bis_slots WHERE set_id = ? ORDER BY slot", setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slot   int
			item   gearset.BiSItem
			source string
		)
		if err := rows.Scan(&slot, &item.ItemID, &item.Name, &item.ItemLevel, &source, &item.Floor,
			&item.Materia[0], &item.Materia[1], &item.Materia[2], &item.Materia[3], &item.Materia[4]); err != nil {
			return nil, err
		}
		item.Slot = catalog.SlotID(slot)
		item.Source = gearset.ParseSource(source)
		it := item
		set.Slots[it.Slot] = &it
	}
	return set, rows.Err()
}

// SetSummary is one row of ListSets.
type SetSummary struct {
	Job       string
	Name      string
	Source    string
	SlotCount int
	UpdatedAt time.Time
}

// ListSets returns a summary of every stored set, ordered by job.
func (d *DB) ListSets(ctx context.Context) ([]SetSummary, error) {
	rows, err := d.sql.QueryContext(ctx, `
SELECT s.job, COALESCE(s.name, ''), s.source_kind, COUNT(l.id), s.updated_at
FROM bis_sets s LEFT JOIN bis_slots l ON l.set_id = s.id
GROUP BY s.id ORDER BY s.job`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SetSummary
	for rows.Next() {
		var (
			s         SetSummary
			updatedAt string
		)
		if err := rows.Scan(&s.Job, &s.Name, &s.Source, &s.SlotCount, &updatedAt); err != nil {
			return nil, err
		}
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteSet removes a job's set and its slots.
func (d *DB) DeleteSet(ctx context.Context, job string) error {
	_, err := d.sql.ExecContext(ctx, `
DELETE FROM bis_slots WHERE set_id IN (SELECT id FROM bis_sets WHERE job = ?);`, job)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx, "DELETE FROM bis_sets WHERE job = ?", job)
	return err
}

// ClearSlot removes one slot from a job's stored set.
func (d *DB) ClearSlot(ctx context.Context, job string, slot catalog.SlotID) error {
	_, err := d.sql.ExecContext(ctx, `
DELETE FROM bis_slots WHERE slot = ? AND set_id IN (SELECT id FROM bis_sets WHERE job = ?)`,
		int(slot), job)
	return err
}

// SaveEquipped replaces a job's equipped-gear snapshot.
func (d *DB) SaveEquipped(ctx context.Context, gear *gearset.EquippedGear) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM equipped_items WHERE job = ?", gear.Job); err != nil {
		return err
	}
	for _, item := range gear.Items {
		_, err = tx.ExecContext(ctx, `
INSERT INTO equipped_items(job, slot, item_id, name, item_level, m1, m2, m3, m4, m5)
VALUES(?,?,?,?,?,?,?,?,?,?)`,
			gear.Job, int(item.Slot), item.ItemID, item.Name, item.ItemLevel,
			item.Materia[0], item.Materia[1], item.Materia[2], item.Materia[3], item.Materia[4])
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetEquipped loads a job's equipped snapshot, recomputing the item level
// average.
func (d *DB) GetEquipped(ctx context.Context, job string) (*gearset.EquippedGear, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT slot, item_id, name, item_level, m1, m2, m3, m4, m5 FROM equipped_items WHERE job = ? ORDER BY slot", job)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gear := &gearset.EquippedGear{Job: job}
	for rows.Next() {
		var (
			slot int
			item gearset.EquippedItem
		)
		if err := rows.Scan(&slot, &item.ItemID, &item.Name, &item.ItemLevel,
			&item.Materia[0], &item.Materia[1], &item.Materia[2], &item.Materia[3], &item.Materia[4]); err != nil {
			return nil, err
		}
		item.Slot = catalog.SlotID(slot)
		gear.Items = append(gear.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	gear.RecomputeAverage()
	return gear, nil
}
