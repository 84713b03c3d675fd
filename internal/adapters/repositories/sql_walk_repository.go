package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/db"
	"github.com/justzen0/random-walker/internal/platform/obs"
)

// SQL-backed implementation of the WalkRepository port.
// Works with both SQLite and Postgres; queries are written with "?"
// placeholders and rebound for the driver.
type SQLWalkRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLWalkRepository(conn *sql.DB, driver string) *SQLWalkRepository {
	return &SQLWalkRepository{DB: conn, Driver: driver}
}

const walkColumns = `
		id,
		created_at,
		start_lat,
		start_lon,
		target_km,
		tolerance,
		length_m,
		attempts,
		maps_url,
		path,
		waypoints`

// Insert a walk and fill in its ID. A zero CreatedAt is set to now.
func (s *SQLWalkRepository) SaveWalk(ctx context.Context, walk *domain.Walk) (err error) {
	defer obs.Time(ctx, "walks.SaveWalk")(&err)

	if s.DB == nil {
		return errors.New("save walk: DB is nil")
	}
	if walk == nil {
		return errors.New("save walk: walk is nil")
	}
	if walk.CreatedAt.IsZero() {
		walk.CreatedAt = time.Now().UTC()
	}

	path, err := json.Marshal(walk.Path)
	if err != nil {
		return fmt.Errorf("save walk: encode path: %w", err)
	}
	waypoints, err := json.Marshal(walk.Waypoints)
	if err != nil {
		return fmt.Errorf("save walk: encode waypoints: %w", err)
	}

	query := `
	INSERT INTO walks (
		created_at,
		start_lat,
		start_lon,
		target_km,
		tolerance,
		length_m,
		attempts,
		maps_url,
		path,
		waypoints
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id;
	`

	err = s.DB.QueryRowContext(ctx, db.Rebind(s.Driver, query),
		walk.CreatedAt.UTC().Format(time.RFC3339Nano),
		walk.Start.Lat,
		walk.Start.Lon,
		walk.TargetKm,
		walk.Tolerance,
		walk.LengthMeters,
		walk.Attempts,
		walk.MapsURL,
		string(path),
		string(waypoints),
	).Scan(&walk.ID)
	if err != nil {
		return fmt.Errorf("save walk: insert: %w", err)
	}

	return nil
}

// Return up to limit walks, newest first.
func (s *SQLWalkRepository) ListWalks(ctx context.Context, limit int) (_ []*domain.Walk, err error) {
	defer obs.Time(ctx, "walks.ListWalks")(&err)

	if s.DB == nil {
		return nil, errors.New("list walks: DB is nil")
	}
	if limit <= 0 {
		return []*domain.Walk{}, nil
	}

	query := `SELECT` + walkColumns + `
	FROM walks
	ORDER BY id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, db.Rebind(s.Driver, query), limit)
	if err != nil {
		return nil, fmt.Errorf("list walks: query walks table: %w", err)
	}
	defer rows.Close()

	walks := make([]*domain.Walk, 0, limit)
	for rows.Next() {
		w, err := scanWalk(rows)
		if err != nil {
			return nil, fmt.Errorf("list walks: %w", err)
		}
		walks = append(walks, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list walks: row iteration: %w", err)
	}

	return walks, nil
}

// Return the walk with the given id or domain.ErrWalkNotFound.
func (s *SQLWalkRepository) GetWalk(ctx context.Context, id int64) (_ *domain.Walk, err error) {
	defer obs.Time(ctx, "walks.GetWalk")(&err)

	if s.DB == nil {
		return nil, errors.New("get walk: DB is nil")
	}

	query := `SELECT` + walkColumns + `
	FROM walks
	WHERE id = ?;
	`
	w, err := scanWalk(s.DB.QueryRowContext(ctx, db.Rebind(s.Driver, query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get walk %d: %w", id, domain.ErrWalkNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get walk %d: %w", id, err)
	}

	return w, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWalk(row rowScanner) (*domain.Walk, error) {
	var (
		w                          domain.Walk
		createdAt, path, waypoints string
	)
	err := row.Scan(
		&w.ID,
		&createdAt,
		&w.Start.Lat,
		&w.Start.Lon,
		&w.TargetKm,
		&w.Tolerance,
		&w.LengthMeters,
		&w.Attempts,
		&w.MapsURL,
		&path,
		&waypoints,
	)
	if err != nil {
		return nil, err
	}

	if w.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("walk %d: parse created_at: %w", w.ID, err)
	}
	if err := json.Unmarshal([]byte(path), &w.Path); err != nil {
		return nil, fmt.Errorf("walk %d: decode path: %w", w.ID, err)
	}
	if err := json.Unmarshal([]byte(waypoints), &w.Waypoints); err != nil {
		return nil, fmt.Errorf("walk %d: decode waypoints: %w", w.ID, err)
	}

	return &w, nil
}
