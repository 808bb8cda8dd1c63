// Package store persists decks in a local SQLite database. Decks are stored
// as their JSON wire form; the database adds identity and timestamps, nothing
// else, so the schema survives deck model growth without migrations.
package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avelinec/deckwright/internal/deck"
)

// ErrNotFound reports a deck id with no row behind it.
var ErrNotFound = errors.New("deck not found")

// Record is a stored deck plus its storage identity.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slides    int       `json:"slides"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Deck      deck.Deck `json:"deck"`
}

// Summary is a listing row; it omits the deck body.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slides    int       `json:"slides"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store wraps a SQLite database and provides CRUD operations for decks.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func New(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL allows concurrent readers while a save is in flight; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    slides INTEGER NOT NULL,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

// Save inserts a new deck and returns its record with a fresh id.
func (s *Store) Save(d deck.Deck) (Record, error) {
	id, err := newID()
	if err != nil {
		return Record{}, err
	}
	body, err := json.Marshal(d)
	if err != nil {
		return Record{}, err
	}
	now := time.Now().UTC().Truncate(time.Second)
	_, err = s.db.Exec(
		`INSERT INTO decks (id, title, slides, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, d.PresentationTitle, len(d.Slides), string(body), now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Title: d.PresentationTitle, Slides: len(d.Slides), CreatedAt: now, UpdatedAt: now, Deck: d}, nil
}

// Update replaces the deck body of an existing record.
func (s *Store) Update(id string, d deck.Deck) (Record, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return Record{}, err
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.db.Exec(
		`UPDATE decks SET title = ?, slides = ?, body = ?, updated_at = ? WHERE id = ?`,
		d.PresentationTitle, len(d.Slides), string(body), now.Format(time.RFC3339), id,
	)
	if err != nil {
		return Record{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Record{}, err
	}
	if affected == 0 {
		return Record{}, ErrNotFound
	}
	return s.Get(id)
}

// Get returns a single deck by id.
func (s *Store) Get(id string) (Record, error) {
	var rec Record
	var body, created, updated string
	err := s.db.QueryRow(`SELECT id, title, slides, body, created_at, updated_at FROM decks WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Title, &rec.Slides, &body, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(body), &rec.Deck); err != nil {
		return Record{}, fmt.Errorf("decode deck %s: %w", id, err)
	}
	rec.CreatedAt = parseTime(created)
	rec.UpdatedAt = parseTime(updated)
	return rec, nil
}

// List returns summaries of all decks, most recently updated first.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(`SELECT id, title, slides, created_at, updated_at FROM decks ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		var created, updated string
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.Slides, &created, &updated); err != nil {
			return nil, err
		}
		sm.CreatedAt = parseTime(created)
		sm.UpdatedAt = parseTime(updated)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Delete removes a deck by id.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func newID() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
