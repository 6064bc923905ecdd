package repository

import (
	"context"

	"github.com/sakif/devhub/internal/model"
)

// IdeaListOptions controls filtering and pagination for ListIdeas.
//
// Limit/Offset are assumed pre-clamped by the service layer. Difficulty, if
// non-empty, must be one of the recognized values. LikedBy, if non-empty,
// restricts the result to ideas the given user has liked — an inner join on
// the likes table, so the uniqueness constraint guarantees no duplicates.
type IdeaListOptions struct {
	Limit      int
	Offset     int
	Difficulty string
	LikedBy    string
}

type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	// CreateUser inserts a new user. A UNIQUE violation on auth_id or email
	// is reported as apperror.ErrConflict.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByAuthID(ctx context.Context, authID string) (*model.User, error)
	// UpdateUserProfile syncs mutable provider-supplied fields (name, email,
	// github username) on an existing row.
	UpdateUserProfile(ctx context.Context, user *model.User) error
}

type IdeaRepository interface {
	CreateIdea(ctx context.Context, idea *model.Idea) error
	// GetIdeaByID returns the idea with its derived project fields populated.
	GetIdeaByID(ctx context.Context, id string) (*model.Idea, error)
	// ListIdeas returns one page of ideas (newest first, id tie-break) plus
	// the total number of ideas matching the filters.
	ListIdeas(ctx context.Context, opts IdeaListOptions) ([]model.Idea, int, error)
	// LikeIdea inserts a like row for (userID, ideaID) and increments the
	// idea's like counter in one transaction. Returns the updated idea.
	// ErrNotFound if the idea is absent, ErrConflict if the like exists.
	LikeIdea(ctx context.Context, userID, ideaID string) (*model.Idea, error)
	// UnlikeIdea deletes the like row and decrements the counter (floored at
	// zero) in one transaction. ErrConflict if no like exists.
	UnlikeIdea(ctx context.Context, userID, ideaID string) (*model.Idea, error)
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	ListProjectsByUser(ctx context.Context, userID string) ([]model.Project, error)
	// ListFeaturedProjects returns the most-liked projects, at most limit rows.
	ListFeaturedProjects(ctx context.Context, limit int) ([]model.Project, error)
	// LikeProject atomically increments the project's like counter and
	// returns the updated project.
	LikeProject(ctx context.Context, id string) (*model.Project, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	// ListCommentsByIdea returns one page of comments for an idea (newest
	// first) plus the total comment count for that idea.
	ListCommentsByIdea(ctx context.Context, ideaID string, opts ListOptions) ([]model.Comment, int, error)
}
