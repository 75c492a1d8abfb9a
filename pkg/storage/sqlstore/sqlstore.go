// Package sqlstore implements storage.Driver over database/sql. The sqlite
// and postgres drivers wrap it with their own connection setup.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/storage"
)

// Dialect captures the SQL differences between backends.
type Dialect int

const (
	// SQLite uses "?" placeholders.
	SQLite Dialect = iota

	// Postgres uses "$n" placeholders.
	Postgres
)

const schema = `CREATE TABLE IF NOT EXISTS reminders (
	id       TEXT PRIMARY KEY,
	position BIGINT NOT NULL,
	text     TEXT NOT NULL,
	when_at  TEXT NOT NULL,
	repeat   TEXT NOT NULL DEFAULT '',
	notified BOOLEAN NOT NULL DEFAULT FALSE
)`

// Driver implements storage.Driver using a *sql.DB.
type Driver struct {
	DB      *sql.DB
	Dialect Dialect
}

// New creates the reminders table when missing and returns a driver.
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*Driver, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Driver{
		DB:      db,
		Dialect: dialect,
	}, nil
}

// List returns every reminder ordered by position.
func (d *Driver) List(ctx context.Context) ([]*reminder.Reminder, error) {
	rows, err := d.DB.QueryContext(ctx,
		`SELECT id, text, when_at, repeat, notified FROM reminders ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()

	out := []*reminder.Reminder{}
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get retrieves a reminder by its ID.
func (d *Driver) Get(ctx context.Context, id string) (*reminder.Reminder, error) {
	row := d.DB.QueryRowContext(ctx,
		d.rebind(`SELECT id, text, when_at, repeat, notified FROM reminders WHERE id = ?`), id)

	r, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFoundError{ID: id}
	}
	return r, err
}

// Put inserts a reminder at the end of the list or updates it in place.
func (d *Driver) Put(ctx context.Context, r *reminder.Reminder) error {
	if r == nil {
		return storage.ErrNilReminder
	}

	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		d.rebind(`UPDATE reminders SET text = ?, when_at = ?, repeat = ?, notified = ? WHERE id = ?`),
		r.Text, r.When, string(r.Repeat), r.Notified, r.ID)
	if err != nil {
		return fmt.Errorf("updating reminder %s: %w", r.ID, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		var next int64
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM reminders`).Scan(&next); err != nil {
			return fmt.Errorf("reading next position: %w", err)
		}
		if err := d.insert(ctx, tx, r, next); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update rewrites an existing row and never inserts.
func (d *Driver) Update(ctx context.Context, r *reminder.Reminder) error {
	if r == nil {
		return storage.ErrNilReminder
	}

	res, err := d.DB.ExecContext(ctx,
		d.rebind(`UPDATE reminders SET text = ?, when_at = ?, repeat = ?, notified = ? WHERE id = ?`),
		r.Text, r.When, string(r.Repeat), r.Notified, r.ID)
	if err != nil {
		return fmt.Errorf("updating reminder %s: %w", r.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating reminder %s: %w", r.ID, err)
	}
	if n == 0 {
		return storage.NotFoundError{ID: r.ID}
	}
	return nil
}

// Delete removes a reminder by ID.
func (d *Driver) Delete(ctx context.Context, id string) (bool, error) {
	res, err := d.DB.ExecContext(ctx, d.rebind(`DELETE FROM reminders WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("deleting reminder %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting reminder %s: %w", id, err)
	}
	return n > 0, nil
}

// Replace rewrites the table in one transaction.
func (d *Driver) Replace(ctx context.Context, reminders []*reminder.Reminder) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return fmt.Errorf("clearing reminders: %w", err)
	}

	seen := make(map[string]bool, len(reminders))
	var pos int64
	for _, r := range reminders {
		if r == nil || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		pos++
		if err := d.insert(ctx, tx, r, pos); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (d *Driver) Close() error {
	return d.DB.Close()
}

func (d *Driver) insert(ctx context.Context, tx *sql.Tx, r *reminder.Reminder, pos int64) error {
	_, err := tx.ExecContext(ctx,
		d.rebind(`INSERT INTO reminders (id, position, text, when_at, repeat, notified) VALUES (?, ?, ?, ?, ?, ?)`),
		r.ID, pos, r.Text, r.When, string(r.Repeat), r.Notified)
	if err != nil {
		return fmt.Errorf("inserting reminder %s: %w", r.ID, err)
	}
	return nil
}

// rebind rewrites "?" placeholders for the driver's dialect.
func (d *Driver) rebind(query string) string {
	if d.Dialect != Postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*reminder.Reminder, error) {
	var (
		r      reminder.Reminder
		repeat string
	)
	if err := s.Scan(&r.ID, &r.Text, &r.When, &repeat, &r.Notified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}
	r.Repeat = reminder.Repeat(repeat)
	return &r, nil
}
