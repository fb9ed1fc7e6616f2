package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"inkstream/internal/models"
	"inkstream/internal/poststore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedPost(t *testing.T, store poststore.Store, id string, genreID uint, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:        id,
		UserID:    1,
		PostText:  "post " + id,
		GenreID:   genreID,
		GenreName: fmt.Sprintf("genre-%d", genreID),
		CreatedAt: createdAt,
		Comments:  []models.Comment{},
	}
	require.NoError(t, store.Create(context.Background(), post))
	return post
}

func TestBuildFeedFiltersBySelectedGenres(t *testing.T) {
	ctx := context.Background()
	store := poststore.NewMemoryStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedPost(t, store, "a", 1, base.Add(1*time.Minute))
	seedPost(t, store, "b", 2, base.Add(2*time.Minute))
	seedPost(t, store, "c", 3, base.Add(3*time.Minute))
	seedPost(t, store, "d", 1, base.Add(4*time.Minute))

	genres := new(MockGenreRepository)
	genres.On("UserGenreIDs", mock.Anything, uint(7)).Return([]uint{1, 2}, nil)

	feed, err := NewFeedService(store, genres).BuildFeed(ctx, 7)
	require.NoError(t, err)

	require.Len(t, feed, 3)
	for _, post := range feed {
		assert.Contains(t, []uint{1, 2}, post.GenreID)
	}
	// Newest first.
	assert.Equal(t, "d", feed[0].ID)
	assert.Equal(t, "b", feed[1].ID)
	assert.Equal(t, "a", feed[2].ID)
}

func TestBuildFeedStableOrderOnTimestampTies(t *testing.T) {
	ctx := context.Background()
	// FileStore lists in lexicographic name order, so ties must come back
	// in exactly that order.
	store, err := poststore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, store, "1700000000001", 1, ts)
	seedPost(t, store, "1700000000002", 1, ts)
	seedPost(t, store, "1700000000003", 1, ts)

	genres := new(MockGenreRepository)
	genres.On("UserGenreIDs", mock.Anything, uint(7)).Return([]uint{1}, nil)

	feed, err := NewFeedService(store, genres).BuildFeed(ctx, 7)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "1700000000001", feed[0].ID)
	assert.Equal(t, "1700000000002", feed[1].ID)
	assert.Equal(t, "1700000000003", feed[2].ID)
}

func TestBuildFeedNoGenresSelected(t *testing.T) {
	ctx := context.Background()
	store := poststore.NewMemoryStore()
	seedPost(t, store, "a", 1, time.Now().UTC())

	genres := new(MockGenreRepository)
	genres.On("UserGenreIDs", mock.Anything, uint(7)).Return([]uint{}, nil)

	feed, err := NewFeedService(store, genres).BuildFeed(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestBuildFeedNoMatchingPosts(t *testing.T) {
	ctx := context.Background()
	store := poststore.NewMemoryStore()
	seedPost(t, store, "a", 3, time.Now().UTC())

	genres := new(MockGenreRepository)
	genres.On("UserGenreIDs", mock.Anything, uint(7)).Return([]uint{1, 2}, nil)

	feed, err := NewFeedService(store, genres).BuildFeed(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestBuildFeedPropagatesGenreLookupFailure(t *testing.T) {
	ctx := context.Background()
	genres := new(MockGenreRepository)
	genres.On("UserGenreIDs", mock.Anything, uint(7)).Return(nil, errors.New("identity store down"))

	_, err := NewFeedService(poststore.NewMemoryStore(), genres).BuildFeed(ctx, 7)
	assert.Error(t, err)
}
