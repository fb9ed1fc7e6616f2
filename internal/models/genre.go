// Package models contains data structures for the application's domain models.
package models

// Genre is a named topic tag. Users subscribe to genres and every post is
// categorized under exactly one genre.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// UserGenre is the join row between a user and a genre they selected.
type UserGenre struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_user_genre" json:"user_id"`
	GenreID uint `gorm:"not null;uniqueIndex:idx_user_genre" json:"genre_id"`
}
