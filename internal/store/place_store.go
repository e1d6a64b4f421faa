// Package store implements durable storage of Place records using SQLite.
// A PlaceStore exclusively owns its database file; all access is mediated
// by its methods, which serialize conflicting writes internally.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Location is a geographic position with an optionally resolved address.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// Place is a fully persisted record. Every stored place has a non-empty
// id, title, image URI, and coordinates.
type Place struct {
	ID       string
	Title    string
	ImageURI string
	Location Location
}

// DraftPlace is a place before the store has assigned it an id.
type DraftPlace struct {
	Title    string
	ImageURI string
	Location Location
}

// PlaceStore provides durable CRUD over Place records.
type PlaceStore struct {
	db     *sql.DB
	dbPath string
	logger *zap.Logger

	mu      sync.RWMutex
	ready   bool
	initErr error
}

// NewPlaceStore creates a store for the SQLite database at path. The
// database is not touched until Init is called.
func NewPlaceStore(path string, logger *zap.Logger) *PlaceStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlaceStore{dbPath: path, logger: logger}
}

// Init opens the database and creates the places table if absent. It is
// idempotent and safe to call on every launch. On failure the store
// records the condition and every later operation fails with ErrStoreInit
// instead of hanging.
func (s *PlaceStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	if err := s.initLocked(ctx); err != nil {
		s.initErr = fmt.Errorf("%w: %v", ErrStoreInit, err)
		s.logger.Warn("place store init failed", zap.String("path", s.dbPath), zap.Error(err))
		return s.initErr
	}

	s.ready = true
	s.initErr = nil
	s.logger.Debug("place store ready", zap.String("path", s.dbPath))
	return nil
}

func (s *PlaceStore) initLocked(ctx context.Context) error {
	if s.db == nil {
		if dir := filepath.Dir(s.dbPath); dir != "" && s.dbPath != ":memory:" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	schema := `
	CREATE TABLE IF NOT EXISTS places (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		image_uri TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		address TEXT
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create places table: %w", err)
	}

	return nil
}

// checkReady reports ErrStoreInit when the store never initialized or its
// initialization failed. Callers must hold the lock.
func (s *PlaceStore) checkReady() error {
	if s.initErr != nil {
		return s.initErr
	}
	if !s.ready {
		return fmt.Errorf("%w: Init was not called", ErrStoreInit)
	}
	return nil
}

// Insert validates the draft, assigns a fresh id, and commits the record.
// The write is durable before Insert returns.
func (s *PlaceStore) Insert(ctx context.Context, draft DraftPlace) (string, error) {
	if err := validateDraft(draft); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReady(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	address := sql.NullString{String: draft.Location.Address, Valid: draft.Location.Address != ""}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO places (id, title, image_uri, lat, lng, address) VALUES (?, ?, ?, ?, ?, ?)`,
		id, draft.Title, draft.ImageURI, draft.Location.Lat, draft.Location.Lng, address,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert place: %w", err)
	}

	s.logger.Debug("place inserted", zap.String("id", id), zap.String("title", draft.Title))
	return id, nil
}

// All returns every stored place in insertion order. An empty store
// yields an empty slice.
func (s *PlaceStore) All(ctx context.Context) ([]Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkReady(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, image_uri, lat, lng, address FROM places ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	places := make([]Place, 0)
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read places: %w", err)
	}

	return places, nil
}

// ByID returns the place with the given id, or ErrNotFound.
func (s *PlaceStore) ByID(ctx context.Context, id string) (Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkReady(); err != nil {
		return Place{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, image_uri, lat, lng, address FROM places WHERE id = ?`, id)

	place, err := scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Place{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Place{}, fmt.Errorf("failed to read place: %w", err)
	}
	return place, nil
}

// Delete removes the place with the given id, or reports ErrNotFound.
func (s *PlaceStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReady(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.logger.Debug("place deleted", zap.String("id", id))
	return nil
}

// Count returns the number of stored places.
func (s *PlaceStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkReady(); err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM places`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *PlaceStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.ready = false
	return err
}

func validateDraft(draft DraftPlace) error {
	if draft.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if draft.ImageURI == "" {
		return fmt.Errorf("%w: image URI is required", ErrValidation)
	}
	if draft.Location.Lat == 0 && draft.Location.Lng == 0 {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlace(row scanner) (Place, error) {
	var place Place
	var address sql.NullString
	err := row.Scan(&place.ID, &place.Title, &place.ImageURI,
		&place.Location.Lat, &place.Location.Lng, &address)
	if err != nil {
		return Place{}, err
	}
	place.Location.Address = address.String
	return place, nil
}
