package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/devhub/internal/apperror"
	"github.com/sakif/devhub/internal/model"
	"github.com/sakif/devhub/internal/repository"
)

// Listing limits for comments.
const (
	DefaultCommentPageSize = 20
	MaxCommentPageSize     = 100
)

// CommentService handles comments on ideas. It needs the idea repository
// because both operations are scoped to an idea that must exist.
type CommentService struct {
	comments repository.CommentRepository
	ideas    repository.IdeaRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(comments repository.CommentRepository, ideas repository.IdeaRepository, logger *slog.Logger) *CommentService {
	return &CommentService{comments: comments, ideas: ideas, logger: logger}
}

// ListByIdea returns one page of comments for an idea (newest first), the
// idea itself (listings display its title), and pagination metadata.
// Fails with ErrNotFound if the idea is absent.
func (s *CommentService) ListByIdea(ctx context.Context, ideaID string, page, limit int) ([]model.Comment, *model.Idea, Pagination, error) {
	idea, err := s.ideas.GetIdeaByID(ctx, ideaID)
	if err != nil {
		return nil, nil, Pagination{}, err
	}

	page = clampPage(page)
	limit = clampLimit(limit, DefaultCommentPageSize, MaxCommentPageSize)

	comments, total, err := s.comments.ListCommentsByIdea(ctx, ideaID, repository.ListOptions{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		s.logger.Error("failed to list comments",
			slog.String("ideaID", ideaID),
			slog.String("error", err.Error()),
		)
		return nil, nil, Pagination{}, apperror.Unavailable("failed to fetch comments", err)
	}

	return comments, idea, paginate(page, limit, total), nil
}

// Create validates and saves a new comment on an idea.
func (s *CommentService) Create(ctx context.Context, userID, ideaID, content string) (*model.Comment, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("authentication required to comment")
	}

	if _, err := s.ideas.GetIdeaByID(ctx, ideaID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "comment content is required")
	}

	comment := &model.Comment{
		IdeaID:  ideaID,
		UserID:  userID,
		Content: content,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.String("ideaID", ideaID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.String("id", comment.ID),
		slog.String("ideaID", ideaID),
		slog.String("userID", userID),
	)

	return comment, nil
}
