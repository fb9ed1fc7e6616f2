// Package service implements the application's business operations on top of
// the post store and the relational identity store.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"inkstream/internal/models"
	"inkstream/internal/poststore"
	"inkstream/internal/repository"
)

// Vote directions accepted by VotePost.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// PostService owns post creation and counter mutation. Genre existence is
// checked against the identity store at creation time only; the genre name is
// denormalized into the record and never re-synced afterwards.
type PostService struct {
	store  poststore.Store
	genres repository.GenreRepository
}

// CreatePostInput carries the fields of a create request after auth has
// resolved the author.
type CreatePostInput struct {
	AuthorID uint
	Text     string
	GenreID  uint
}

// NewPostService creates a new PostService.
func NewPostService(store poststore.Store, genres repository.GenreRepository) *PostService {
	return &PostService{store: store, genres: genres}
}

// CreatePost validates the input, resolves the genre name, and persists a new
// record with all counters at zero. An identifier collision (possible when
// another process writes to the same directory) is retried once with a fresh
// identifier before giving up.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Post text is required")
	}

	genre, err := s.genres.GetByID(ctx, in.GenreID)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, models.NewValidationError("Invalid genre")
	}

	post := &models.Post{
		UserID:    in.AuthorID,
		PostText:  text,
		GenreID:   genre.ID,
		GenreName: genre.Name,
		CreatedAt: time.Now().UTC(),
		Comments:  []models.Comment{},
	}

	for attempt := 0; attempt < 2; attempt++ {
		post.ID = poststore.NewID()
		err = s.store.Create(ctx, post)
		if !errors.Is(err, poststore.ErrConflict) {
			break
		}
	}
	if errors.Is(err, poststore.ErrConflict) {
		return nil, models.NewConflictError("Post identifier collision, please retry")
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the record for the identifier.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.store.Get(ctx, id)
}

// VotePost increments the up- or down-vote counter by exactly one. The store
// serializes concurrent votes per identifier, so N concurrent votes net N.
func (s *PostService) VotePost(ctx context.Context, id, direction string) (*models.Post, error) {
	switch direction {
	case VoteUp:
		return s.store.Update(ctx, id, func(p *models.Post) { p.UpVoteCount++ })
	case VoteDown:
		return s.store.Update(ctx, id, func(p *models.Post) { p.DownVoteCount++ })
	default:
		return nil, models.NewValidationError("Invalid vote type")
	}
}

// SharePost increments the share counter by exactly one.
func (s *PostService) SharePost(ctx context.Context, id string) (*models.Post, error) {
	return s.store.Update(ctx, id, func(p *models.Post) { p.ShareCount++ })
}
