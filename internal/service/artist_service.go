package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"artist-admin/internal/domain"
	"artist-admin/internal/repository"
)

var (
	// ErrArtistAlreadyExists is returned when the email is taken by another artist.
	ErrArtistAlreadyExists = errors.New("artist already exists")
	// ErrArtistNotFound is returned when no artist matches the given id.
	ErrArtistNotFound = errors.New("artist not found")
)

// ArtistUpdate carries a partial update; nil fields are left unchanged.
type ArtistUpdate struct {
	Name    *string
	Email   *string
	Address *string
}

// ArtistService describes CRUD operations over the artist collection.
type ArtistService interface {
	Create(ctx context.Context, name, email, address string) (*domain.Artist, error)
	List(ctx context.Context) ([]domain.Artist, error)
	Get(ctx context.Context, id string) (*domain.Artist, error)
	Update(ctx context.Context, id string, update ArtistUpdate) (*domain.Artist, error)
	Delete(ctx context.Context, id string) error
}

type artistService struct {
	artists repository.ArtistRepository
}

func NewArtistService(artists repository.ArtistRepository) ArtistService {
	return &artistService{artists: artists}
}

func (s *artistService) Create(ctx context.Context, name, email, address string) (*domain.Artist, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	if _, err := s.artists.GetByEmail(ctx, email); err == nil {
		return nil, ErrArtistAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	artist := &domain.Artist{
		Name:    name,
		Email:   email,
		Address: strings.TrimSpace(address),
	}

	// the store's unique index backstops the check above
	if err := s.artists.Create(ctx, artist); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrArtistAlreadyExists
		}
		return nil, err
	}
	return artist, nil
}

func (s *artistService) List(ctx context.Context) ([]domain.Artist, error) {
	return s.artists.List(ctx)
}

func (s *artistService) Get(ctx context.Context, id string) (*domain.Artist, error) {
	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return artist, nil
}

func (s *artistService) Update(ctx context.Context, id string, update ArtistUpdate) (*domain.Artist, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		artist.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		artist.Email = strings.TrimSpace(*update.Email)
	}
	if update.Address != nil {
		artist.Address = strings.TrimSpace(*update.Address)
	}
	if artist.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if artist.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	if err := s.artists.Update(ctx, artist); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrArtistAlreadyExists
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return artist, nil
}

func (s *artistService) Delete(ctx context.Context, id string) error {
	if err := s.artists.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArtistNotFound
		}
		return err
	}
	return nil
}
