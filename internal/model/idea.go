package model

import "time"

// Idea status values.
const (
	StatusProposed   = "proposed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Idea difficulty values. An empty string means unset.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Idea represents a proposed project concept users can browse, like, and
// comment on.
//
// LikeCount is a denormalized cache of the number of rows in idea_likes for
// this idea. It is only ever mutated inside the same transaction that inserts
// or deletes the like row, so the two can't drift on any committed state.
//
// ProjectCount and HasProjects are derived at read time from the projects
// table — they are never stored. Caching them in the schema was a bug in an
// earlier iteration of this service.
type Idea struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url"   db:"image_url"`
	Solution    string    `json:"solution"    db:"solution"`
	Status      string    `json:"status"      db:"status"`
	Difficulty  string    `json:"difficulty"  db:"difficulty"`
	LikeCount   int       `json:"like_count"  db:"like_count"`
	UserID      string    `json:"user_id"     db:"user_id"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`

	// Derived fields, computed per query.
	ProjectCount int  `json:"project_count" db:"-"`
	HasProjects  bool `json:"has_projects"  db:"-"`
}

// ValidDifficulty reports whether s (already lowercased) is a recognized
// difficulty. Unrecognized values are ignored by the listing filter rather
// than rejected.
func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
