package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/devhub/internal/apperror"
	"github.com/sakif/devhub/internal/model"
	"github.com/sakif/devhub/internal/repository"
)

// compile-time check that *DB implements repository.ProjectRepository
var _ repository.ProjectRepository = (*DB)(nil)

const projectColumns = `id, title, description, image_url, repo_url, live_url,
	tags, like_count, user_id, idea_id, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*model.Project, error) {
	var (
		p      model.Project
		tags   string
		ideaID sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.RepoURL, &p.LiveURL,
		&tags, &p.LikeCount, &p.UserID, &ideaID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.IdeaID = ideaID.String
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags for project %s: %w", p.ID, err)
	}
	return &p, nil
}

// CreateProject inserts a new project. Tags are stored as a JSON array in a
// TEXT column; a nil slice is stored as [].
func (db *DB) CreateProject(ctx context.Context, project *model.Project) error {
	project.ID = xid.New().String()
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Tags == nil {
		project.Tags = []string{}
	}

	tags, err := json.Marshal(project.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: encoding tags: %w", err)
	}

	var ideaID any
	if project.IdeaID != "" {
		ideaID = project.IdeaID
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO projects (id, title, description, image_url, repo_url, live_url,
		                       tags, like_count, user_id, idea_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?)`,
		project.ID, project.Title, project.Description, project.ImageURL,
		project.RepoURL, project.LiveURL, string(tags), project.UserID, ideaID,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project: %w", err)
	}

	return nil
}

// GetProjectByID retrieves a single project.
func (db *DB) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	project, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}

	return project, nil
}

// ListProjectsByUser returns all projects owned by a user, newest first.
func (db *DB) ListProjectsByUser(ctx context.Context, userID string) ([]model.Project, error) {
	return db.listProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`, userID)
}

// ListFeaturedProjects returns the most-liked projects, at most limit rows.
func (db *DB) ListFeaturedProjects(ctx context.Context, limit int) ([]model.Project, error) {
	return db.listProjects(ctx,
		`SELECT `+projectColumns+` FROM projects
		 ORDER BY like_count DESC, created_at DESC LIMIT ?`, limit)
}

func (db *DB) listProjects(ctx context.Context, query string, args ...any) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}

	return projects, nil
}

// LikeProject increments the project's like counter and returns the updated
// project. A single UPDATE is already atomic — projects have no per-user
// like records, so there is no second write to coordinate.
func (db *DB) LikeProject(ctx context.Context, id string) (*model.Project, error) {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects SET like_count = like_count + 1, updated_at = ? WHERE id = ?`,
		time.Now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: liking project %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return nil, apperror.NotFound("project", id)
	}

	return db.GetProjectByID(ctx, id)
}
