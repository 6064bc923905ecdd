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

// Listing limits for ideas.
const (
	DefaultIdeaPageSize = 10
	MaxIdeaPageSize     = 50
)

// IdeaService handles browsing, liking, and unliking ideas.
type IdeaService struct {
	repo   repository.IdeaRepository
	logger *slog.Logger
}

// NewIdeaService creates an IdeaService.
func NewIdeaService(repo repository.IdeaRepository, logger *slog.Logger) *IdeaService {
	return &IdeaService{repo: repo, logger: logger}
}

// ListIdeasParams are the raw listing inputs as parsed from the request.
// The service normalizes them; callers don't pre-validate.
type ListIdeasParams struct {
	Page       int
	Limit      int
	Difficulty string
	LikedOnly  bool
	CallerID   string // empty for anonymous callers
}

// List returns one page of ideas plus pagination metadata.
//
// Normalization rules:
//   - page is floored at 1; limit outside [1, 50] falls back to 10
//   - difficulty matches case-insensitively; an unrecognized value applies
//     NO filter (the full listing comes back) rather than failing
//   - LikedOnly requires an authenticated caller and restricts the result to
//     ideas that caller has liked
func (s *IdeaService) List(ctx context.Context, params ListIdeasParams) ([]model.Idea, Pagination, error) {
	page := clampPage(params.Page)
	limit := clampLimit(params.Limit, DefaultIdeaPageSize, MaxIdeaPageSize)

	difficulty := strings.ToLower(strings.TrimSpace(params.Difficulty))
	if !model.ValidDifficulty(difficulty) {
		difficulty = ""
	}

	likedBy := ""
	if params.LikedOnly {
		if params.CallerID == "" {
			return nil, Pagination{}, apperror.Unauthenticated("authentication required to filter liked ideas")
		}
		likedBy = params.CallerID
	}

	ideas, total, err := s.repo.ListIdeas(ctx, repository.IdeaListOptions{
		Limit:      limit,
		Offset:     (page - 1) * limit,
		Difficulty: difficulty,
		LikedBy:    likedBy,
	})
	if err != nil {
		s.logger.Error("failed to list ideas", slog.String("error", err.Error()))
		return nil, Pagination{}, apperror.Unavailable("failed to fetch ideas", err)
	}

	return ideas, paginate(page, limit, total), nil
}

// Get retrieves a single idea with its derived project fields.
func (s *IdeaService) Get(ctx context.Context, id string) (*model.Idea, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "idea ID is required")
	}

	return s.repo.GetIdeaByID(ctx, id)
}

// Like records that userID likes ideaID and returns the updated idea.
//
// The repository performs the like-row insert and counter increment in one
// transaction; a duplicate like surfaces as ErrConflict with the counter
// untouched, which also makes client retries after a partial failure safe.
func (s *IdeaService) Like(ctx context.Context, userID, ideaID string) (*model.Idea, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("authentication required to like ideas")
	}
	ideaID = strings.TrimSpace(ideaID)
	if ideaID == "" {
		return nil, apperror.ValidationFailed("id", "idea ID is required")
	}

	idea, err := s.repo.LikeIdea(ctx, userID, ideaID)
	if err != nil {
		return nil, fmt.Errorf("liking idea %s: %w", ideaID, err)
	}

	s.logger.Info("idea liked",
		slog.String("ideaID", ideaID),
		slog.String("userID", userID),
		slog.Int("likeCount", idea.LikeCount),
	)

	return idea, nil
}

// Unlike removes userID's like from ideaID and returns the updated idea.
// Unliking an idea the user never liked is ErrConflict, counter unchanged.
func (s *IdeaService) Unlike(ctx context.Context, userID, ideaID string) (*model.Idea, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("authentication required to unlike ideas")
	}
	ideaID = strings.TrimSpace(ideaID)
	if ideaID == "" {
		return nil, apperror.ValidationFailed("id", "idea ID is required")
	}

	idea, err := s.repo.UnlikeIdea(ctx, userID, ideaID)
	if err != nil {
		return nil, fmt.Errorf("unliking idea %s: %w", ideaID, err)
	}

	s.logger.Info("idea unliked",
		slog.String("ideaID", ideaID),
		slog.String("userID", userID),
		slog.Int("likeCount", idea.LikeCount),
	)

	return idea, nil
}
