package model

import "time"

// Project represents a concrete implementation of an idea.
//
// IdeaID is optional — a project can be submitted standalone, and a single
// idea may have any number of implementing projects.
//
// Tags is stored as a JSON array in a TEXT column; the repository handles
// the encoding so the rest of the app only sees []string.
type Project struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url"   db:"image_url"`
	RepoURL     string    `json:"repo_url"    db:"repo_url"`
	LiveURL     string    `json:"live_url"    db:"live_url"`
	Tags        []string  `json:"tags"        db:"tags"`
	LikeCount   int       `json:"like_count"  db:"like_count"`
	UserID      string    `json:"user_id"     db:"user_id"`
	IdeaID      string    `json:"idea_id"     db:"idea_id"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}
