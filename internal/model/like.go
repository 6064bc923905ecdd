package model

import "time"

// IdeaLike records that a user has liked an idea.
//
// The pair (UserID, IdeaID) is unique, enforced by a constraint in the
// schema — not just application logic. That constraint is the source of
// truth for "has this user liked this idea"; Idea.LikeCount is a projection
// of it kept consistent within the same transaction.
type IdeaLike struct {
	ID        string    `json:"id"         db:"id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	IdeaID    string    `json:"idea_id"    db:"idea_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
