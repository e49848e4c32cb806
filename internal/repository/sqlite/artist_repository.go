package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"artist-admin/internal/domain"
	"artist-admin/internal/repository"
)

const createArtistsTable = `
CREATE TABLE IF NOT EXISTS artists (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	address TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ArtistRepository struct {
	db *sql.DB
}

func NewArtistRepository(db *sql.DB) repository.ArtistRepository {
	return &ArtistRepository{db: db}
}

func (r *ArtistRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createArtistsTable); err != nil {
		return fmt.Errorf("create artists table: %w", err)
	}
	return nil
}

func (r *ArtistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	now := time.Now().UTC()
	if artist.ID == "" {
		artist.ID = uuid.New().String()
	}
	artist.CreatedAt = now
	artist.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO artists (id, name, email, address, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		artist.ID,
		artist.Name,
		artist.Email,
		artist.Address,
		artist.CreatedAt,
		artist.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert artist: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert artist: %w", err)
	}
	return nil
}

func (r *ArtistRepository) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, address, created_at, updated_at
FROM artists
WHERE id = ?`,
		id,
	)
	return scanArtist(row)
}

func (r *ArtistRepository) GetByEmail(ctx context.Context, email string) (*domain.Artist, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, address, created_at, updated_at
FROM artists
WHERE email = ?`,
		email,
	)
	return scanArtist(row)
}

func (r *ArtistRepository) List(ctx context.Context) ([]domain.Artist, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, address, created_at, updated_at
FROM artists
ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]domain.Artist, 0)
	for rows.Next() {
		var artist domain.Artist
		if err := rows.Scan(
			&artist.ID,
			&artist.Name,
			&artist.Email,
			&artist.Address,
			&artist.CreatedAt,
			&artist.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (r *ArtistRepository) Update(ctx context.Context, artist *domain.Artist) error {
	artist.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE artists
SET name = ?, email = ?, address = ?, updated_at = ?
WHERE id = ?`,
		artist.Name,
		artist.Email,
		artist.Address,
		artist.UpdatedAt,
		artist.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update artist: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update artist rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArtistRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete artist rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanArtist(row *sql.Row) (*domain.Artist, error) {
	var artist domain.Artist
	if err := row.Scan(
		&artist.ID,
		&artist.Name,
		&artist.Email,
		&artist.Address,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan artist: %w", err)
	}
	return &artist, nil
}
