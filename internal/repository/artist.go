package repository

import (
	"context"

	"artist-admin/internal/domain"
)

// ArtistRepository defines persistence operations for Artist entities.
type ArtistRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, artist *domain.Artist) error
	GetByID(ctx context.Context, id string) (*domain.Artist, error)
	GetByEmail(ctx context.Context, email string) (*domain.Artist, error)
	List(ctx context.Context) ([]domain.Artist, error)
	Update(ctx context.Context, artist *domain.Artist) error
	Delete(ctx context.Context, id string) error
}
