package model

import "time"

// Comment is a user comment on an idea.
//
// AuthorName is joined from the users table at read time so listings can
// show who wrote the comment without an extra query per row.
type Comment struct {
	ID        string    `json:"id"         db:"id"`
	IdeaID    string    `json:"idea_id"    db:"idea_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Content   string    `json:"content"    db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	AuthorName string `json:"author_name" db:"-"`
}
