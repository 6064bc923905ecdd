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

// FeaturedProjectCount is how many projects the home listing shows.
const FeaturedProjectCount = 6

// ProjectService handles project submission and browsing.
type ProjectService struct {
	repo   repository.ProjectRepository
	logger *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(repo repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// SubmitProjectInput is the request payload for project submission.
type SubmitProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	RepoURL     string   `json:"repo_url"`
	LiveURL     string   `json:"live_url"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
	IdeaID      string   `json:"idea_id"`
}

// Submit validates and saves a new project for the given user.
// Title, description, and repo URL are required after trimming.
func (s *ProjectService) Submit(ctx context.Context, userID string, in SubmitProjectInput) (*model.Project, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("authentication required to submit projects")
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	repoURL := strings.TrimSpace(in.RepoURL)

	switch {
	case title == "":
		return nil, apperror.ValidationFailed("title", "title is required")
	case description == "":
		return nil, apperror.ValidationFailed("description", "description is required")
	case repoURL == "":
		return nil, apperror.ValidationFailed("repo_url", "repo_url is required")
	}

	project := &model.Project{
		Title:       title,
		Description: description,
		RepoURL:     repoURL,
		LiveURL:     strings.TrimSpace(in.LiveURL),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Tags:        in.Tags,
		UserID:      userID,
		IdeaID:      strings.TrimSpace(in.IdeaID),
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		s.logger.Error("failed to create project",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("submitting project: %w", err)
	}

	s.logger.Info("project submitted",
		slog.String("id", project.ID),
		slog.String("userID", userID),
	)

	return project, nil
}

// Get retrieves a single project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "project ID is required")
	}

	return s.repo.GetProjectByID(ctx, id)
}

// ListByUser returns all projects owned by a user, newest first.
func (s *ProjectService) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	projects, err := s.repo.ListProjectsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list user projects",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Unavailable("failed to fetch projects", err)
	}
	return projects, nil
}

// Featured returns the most-liked projects for the home listing.
func (s *ProjectService) Featured(ctx context.Context) ([]model.Project, error) {
	projects, err := s.repo.ListFeaturedProjects(ctx, FeaturedProjectCount)
	if err != nil {
		s.logger.Error("failed to list featured projects", slog.String("error", err.Error()))
		return nil, apperror.Unavailable("failed to fetch featured projects", err)
	}
	return projects, nil
}

// Like increments the project's like counter and returns the updated
// project. Project likes are plain counters — no per-user record, so no
// duplicate protection.
func (s *ProjectService) Like(ctx context.Context, userID, projectID string) (*model.Project, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("authentication required to like projects")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, apperror.ValidationFailed("id", "project ID is required")
	}

	project, err := s.repo.LikeProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("liking project %s: %w", projectID, err)
	}

	s.logger.Info("project liked",
		slog.String("projectID", projectID),
		slog.String("userID", userID),
		slog.Int("likeCount", project.LikeCount),
	)

	return project, nil
}
