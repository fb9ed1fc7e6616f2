package repository

import (
	"context"
	"errors"

	"inkstream/internal/models"

	"gorm.io/gorm"
)

// ErrUnknownGenre is returned when a genre selection references an
// identifier that does not exist.
var ErrUnknownGenre = errors.New("unknown genre")

// GenreRepository defines the interface for genre and genre-selection data
// operations. Post records denormalize the genre name at creation time;
// nothing here re-syncs existing posts after a rename.
type GenreRepository interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id uint) (*models.Genre, error)
	GetByName(ctx context.Context, name string) (*models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) error
	// SetUserGenres replaces the user's selection wholesale and marks the
	// user as having selected genres.
	SetUserGenres(ctx context.Context, userID uint, genreIDs []uint) error
	AddUserGenre(ctx context.Context, userID, genreID uint) error
	UserGenres(ctx context.Context, userID uint) ([]models.Genre, error)
	UserGenreIDs(ctx context.Context, userID uint) ([]uint, error)
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new genre repository
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) List(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.WithContext(ctx).Order("name").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) GetByName(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *genreRepository) SetUserGenres(ctx context.Context, userID uint, genreIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Genre{}).Where("id IN ?", genreIDs).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(dedupe(genreIDs))) {
			return ErrUnknownGenre
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.UserGenre{}).Error; err != nil {
			return err
		}
		for _, genreID := range dedupe(genreIDs) {
			if err := tx.Create(&models.UserGenre{UserID: userID, GenreID: genreID}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("has_selected_genres", true).Error
	})
}

func (r *genreRepository) AddUserGenre(ctx context.Context, userID, genreID uint) error {
	return r.db.WithContext(ctx).Create(&models.UserGenre{UserID: userID, GenreID: genreID}).Error
}

func (r *genreRepository) UserGenres(ctx context.Context, userID uint) ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.WithContext(ctx).
		Joins("JOIN user_genres ON user_genres.genre_id = genres.id").
		Where("user_genres.user_id = ?", userID).
		Order("genres.name").
		Find(&genres).Error
	return genres, err
}

func (r *genreRepository) UserGenreIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.UserGenre{}).
		Where("user_id = ?", userID).
		Pluck("genre_id", &ids).Error
	return ids, err
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
