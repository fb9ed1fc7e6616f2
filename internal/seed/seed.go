// Package seed provides helpers to create test and demo data. These helpers
// are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkstream/internal/database"
	"inkstream/internal/models"
	"inkstream/internal/poststore"
	"inkstream/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls the volume and shape of generated data.
type Options struct {
	Users int
	Posts int
	// MaxDays spreads post timestamps over this many days in the past.
	MaxDays int
}

// Seeder populates the relational store with users and genre selections and
// the post store with posts.
type Seeder struct {
	db     *gorm.DB
	store  poststore.Store
	genres repository.GenreRepository
	users  repository.UserRepository
	opts   Options
	rng    *rand.Rand
}

// NewSeeder creates a Seeder bound to the given database and post store.
func NewSeeder(db *gorm.DB, store poststore.Store, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Seeder{
		db:     db,
		store:  store,
		genres: repository.NewGenreRepository(db),
		users:  repository.NewUserRepository(db),
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds genres, users, genre selections, and posts.
func (s *Seeder) Run(ctx context.Context) error {
	if err := database.SeedDefaultGenres(s.db); err != nil {
		return err
	}

	users, err := s.seedUsers(ctx)
	if err != nil {
		return err
	}
	log.Printf("Seeded %d users", len(users))

	if err := s.seedSelections(ctx, users); err != nil {
		return err
	}

	count, err := s.seedPosts(ctx, users)
	if err != nil {
		return err
	}
	log.Printf("Seeded %d posts", count)

	return nil
}

// seedUsers creates the requested number of users. Every seeded account
// shares the password "password123" so local logins are painless.
func (s *Seeder) seedUsers(ctx context.Context) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("%d_%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create seed user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// seedSelections gives every user a random selection of 3 to 6 genres.
func (s *Seeder) seedSelections(ctx context.Context, users []*models.User) error {
	genres, err := s.genres.List(ctx)
	if err != nil {
		return err
	}
	if len(genres) < 3 {
		return fmt.Errorf("need at least 3 genres to seed selections, have %d", len(genres))
	}

	for _, user := range users {
		perm := s.rng.Perm(len(genres))
		n := 3 + s.rng.Intn(4)
		if n > len(genres) {
			n = len(genres)
		}
		ids := make([]uint, 0, n)
		for _, idx := range perm[:n] {
			ids = append(ids, genres[idx].ID)
		}
		if err := s.genres.SetUserGenres(ctx, user.ID, ids); err != nil {
			return fmt.Errorf("set genres for user %d: %w", user.ID, err)
		}
	}
	return nil
}

// seedPosts writes the requested number of posts into the post store. Each
// post gets an author's selected genre, a timestamp spread over the past
// MaxDays, and plausible counter values.
func (s *Seeder) seedPosts(ctx context.Context, users []*models.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	created := 0
	for i := 0; i < s.opts.Posts; i++ {
		author := users[s.rng.Intn(len(users))]
		selected, err := s.genres.UserGenres(ctx, author.ID)
		if err != nil {
			return created, err
		}
		if len(selected) == 0 {
			continue
		}
		genre := selected[s.rng.Intn(len(selected))]

		age := time.Duration(s.rng.Intn(s.opts.MaxDays*24*60)) * time.Minute
		post := &models.Post{
			ID:            poststore.NewID(),
			UserID:        author.ID,
			PostText:      gofakeit.Sentence(8 + s.rng.Intn(12)),
			GenreID:       genre.ID,
			GenreName:     genre.Name,
			CreatedAt:     time.Now().UTC().Add(-age),
			UpVoteCount:   uint64(s.rng.Intn(500)),
			DownVoteCount: uint64(s.rng.Intn(100)),
			ShareCount:    uint64(s.rng.Intn(50)),
			Comments:      []models.Comment{},
		}
		if err := s.store.Create(ctx, post); err != nil {
			return created, fmt.Errorf("create seed post: %w", err)
		}
		created++
	}
	return created, nil
}
