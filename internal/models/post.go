// Package models contains data structures for the application's domain models.
package models

import "time"

// Post is a single user-authored content item. Unlike the relational models,
// posts are persisted as individual JSON documents by the post store, so the
// JSON field names below are the on-disk record format and must stay stable.
type Post struct {
	ID            string    `json:"id"`
	UserID        uint      `json:"user_id"`
	PostText      string    `json:"post_text"`
	GenreID       uint      `json:"genre_id"`
	GenreName     string    `json:"genre_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpVoteCount   uint64    `json:"up_vote_count"`
	DownVoteCount uint64    `json:"down_vote_count"`
	ShareCount    uint64    `json:"share_count"`
	Comments      []Comment `json:"comments"`
}

// Comment is part of the persisted post shape. No current operation creates
// or reads comments, but records containing them must round-trip intact.
type Comment struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy of the post. Stores hand out clones so callers
// can never mutate a record that another goroutine is reading.
func (p *Post) Clone() *Post {
	cp := *p
	if p.Comments != nil {
		cp.Comments = make([]Comment, len(p.Comments))
		copy(cp.Comments, p.Comments)
	}
	return &cp
}
