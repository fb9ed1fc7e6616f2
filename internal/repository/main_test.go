package repository

import (
	"fmt"
	"testing"

	"inkstream/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory SQLite database with the identity
// store schema applied. Each call gets its own database so tests stay
// independent.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Genre{}, &models.UserGenre{}))
	return db
}

func seedGenres(t *testing.T, db *gorm.DB, names ...string) []models.Genre {
	t.Helper()
	genres := make([]models.Genre, 0, len(names))
	for _, name := range names {
		g := models.Genre{Name: name}
		require.NoError(t, db.Create(&g).Error)
		genres = append(genres, g)
	}
	return genres
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
