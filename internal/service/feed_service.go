package service

import (
	"context"
	"sort"

	"inkstream/internal/models"
	"inkstream/internal/poststore"
	"inkstream/internal/repository"
)

// FeedService assembles the personalized feed: every persisted post filtered
// by the reader's genre selection and sorted newest-first. Each call
// re-reads the full store; there is no pagination and no caching.
type FeedService struct {
	store  poststore.Store
	genres repository.GenreRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(store poststore.Store, genres repository.GenreRepository) *FeedService {
	return &FeedService{store: store, genres: genres}
}

// BuildFeed returns the genre-filtered, recency-sorted feed for the user.
// A user with no selected genres gets an empty feed, not an error. Records
// sharing a creation timestamp keep their listing order (millisecond
// resolution makes ties possible), hence the stable sort.
func (s *FeedService) BuildFeed(ctx context.Context, userID uint) ([]*models.Post, error) {
	genreIDs, err := s.genres.UserGenreIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	selected := make(map[uint]struct{}, len(genreIDs))
	for _, id := range genreIDs {
		selected[id] = struct{}{}
	}

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]*models.Post, 0, len(all))
	if len(selected) == 0 {
		return feed, nil
	}
	for _, post := range all {
		if _, ok := selected[post.GenreID]; ok {
			feed = append(feed, post)
		}
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return feed, nil
}
