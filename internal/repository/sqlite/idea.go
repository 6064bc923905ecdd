package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/devhub/internal/apperror"
	"github.com/sakif/devhub/internal/model"
	"github.com/sakif/devhub/internal/repository"
)

// compile-time check that *DB implements repository.IdeaRepository
var _ repository.IdeaRepository = (*DB)(nil)

// ideaColumns is the SELECT list shared by every idea query. The correlated
// subquery computes project_count per row at read time — it is never stored.
const ideaColumns = `
	i.id, i.title, i.description, i.image_url, i.solution, i.status,
	i.difficulty, i.like_count, i.user_id, i.created_at, i.updated_at,
	(SELECT COUNT(*) FROM projects p WHERE p.idea_id = i.id) AS project_count`

func scanIdea(row interface{ Scan(...any) error }) (*model.Idea, error) {
	var idea model.Idea
	err := row.Scan(
		&idea.ID, &idea.Title, &idea.Description, &idea.ImageURL,
		&idea.Solution, &idea.Status, &idea.Difficulty, &idea.LikeCount,
		&idea.UserID, &idea.CreatedAt, &idea.UpdatedAt, &idea.ProjectCount,
	)
	if err != nil {
		return nil, err
	}
	idea.HasProjects = idea.ProjectCount > 0
	return &idea, nil
}

// CreateIdea inserts a new idea. The ID and timestamps are assigned here.
func (db *DB) CreateIdea(ctx context.Context, idea *model.Idea) error {
	idea.ID = xid.New().String()
	now := time.Now()
	idea.CreatedAt = now
	idea.UpdatedAt = now
	if idea.Status == "" {
		idea.Status = model.StatusProposed
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO ideas (id, title, description, image_url, solution, status,
		                    difficulty, like_count, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		idea.ID, idea.Title, idea.Description, idea.ImageURL, idea.Solution,
		idea.Status, idea.Difficulty, idea.UserID, idea.CreatedAt, idea.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating idea: %w", err)
	}

	return nil
}

// GetIdeaByID retrieves a single idea with its derived project fields.
func (db *DB) GetIdeaByID(ctx context.Context, id string) (*model.Idea, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT`+ideaColumns+` FROM ideas i WHERE i.id = ?`, id)

	idea, err := scanIdea(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("idea", id)
		}
		return nil, fmt.Errorf("sqlite: getting idea %s: %w", id, err)
	}

	return idea, nil
}

// ListIdeas returns one page of ideas plus the total count matching the filters.
//
// Ordering is newest-created first with the id as a tie-break, so pagination
// stays deterministic even when several ideas share a timestamp. The LikedBy
// filter is an inner join on idea_likes — the UNIQUE(user_id, idea_id)
// constraint guarantees at most one join row per idea, so no DISTINCT is
// needed.
func (db *DB) ListIdeas(ctx context.Context, opts repository.IdeaListOptions) ([]model.Idea, int, error) {
	where := ""
	args := []any{}

	join := ""
	if opts.LikedBy != "" {
		join = " JOIN idea_likes l ON l.idea_id = i.id AND l.user_id = ?"
		args = append(args, opts.LikedBy)
	}
	if opts.Difficulty != "" {
		where = " WHERE i.difficulty = ?"
		args = append(args, opts.Difficulty)
	}

	var total int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ideas i"+join+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting ideas: %w", err)
	}

	query := "SELECT" + ideaColumns + " FROM ideas i" + join + where +
		" ORDER BY i.created_at DESC, i.id DESC LIMIT ? OFFSET ?"
	args = append(args, opts.Limit, opts.Offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing ideas: %w", err)
	}
	defer rows.Close()

	ideas := make([]model.Idea, 0, opts.Limit)
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning idea row: %w", err)
		}
		ideas = append(ideas, *idea)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: iterating ideas: %w", err)
	}

	return ideas, total, nil
}

// LikeIdea inserts a like row for (userID, ideaID) and increments the idea's
// counter, both in one transaction — they commit together or not at all.
//
// The INSERT is what enforces at-most-one-like-per-user-per-idea: under a
// race, one writer hits the UNIQUE constraint and gets ErrConflict while the
// other commits. The counter update rides in the same transaction, so the
// invariant like_count == COUNT(idea_likes) holds on every committed state.
func (db *DB) LikeIdea(ctx context.Context, userID, ideaID string) (*model.Idea, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning like transaction: %w", err)
	}
	defer tx.Rollback() // no-op after a successful Commit

	if err := ideaExists(ctx, tx, ideaID); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO idea_likes (id, user_id, idea_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		xid.New().String(), userID, ideaID, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("you have already liked this idea")
		}
		return nil, fmt.Errorf("sqlite: inserting like: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE ideas SET like_count = like_count + 1, updated_at = ? WHERE id = ?`,
		time.Now(), ideaID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: incrementing like count: %w", err)
	}

	idea, err := ideaInTx(ctx, tx, ideaID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing like: %w", err)
	}

	return idea, nil
}

// UnlikeIdea removes the like row for (userID, ideaID) and decrements the
// counter, floored at zero so a prior inconsistency can never drive it
// negative. Same single-transaction guarantee as LikeIdea.
func (db *DB) UnlikeIdea(ctx context.Context, userID, ideaID string) (*model.Idea, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning unlike transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ideaExists(ctx, tx, ideaID); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM idea_likes WHERE user_id = ? AND idea_id = ?`,
		userID, ideaID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: deleting like: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return nil, apperror.Conflict("you haven't liked this idea yet")
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE ideas SET like_count = MAX(like_count - 1, 0), updated_at = ? WHERE id = ?`,
		time.Now(), ideaID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: decrementing like count: %w", err)
	}

	idea, err := ideaInTx(ctx, tx, ideaID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing unlike: %w", err)
	}

	return idea, nil
}

func ideaExists(ctx context.Context, tx *sql.Tx, ideaID string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM ideas WHERE id = ?`, ideaID).Scan(&one)
	if err == sql.ErrNoRows {
		return apperror.NotFound("idea", ideaID)
	}
	if err != nil {
		return fmt.Errorf("sqlite: checking idea %s: %w", ideaID, err)
	}
	return nil
}

// ideaInTx reads the idea back inside the transaction so the returned
// like_count reflects the uncommitted update.
func ideaInTx(ctx context.Context, tx *sql.Tx, ideaID string) (*model.Idea, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT`+ideaColumns+` FROM ideas i WHERE i.id = ?`, ideaID)

	idea, err := scanIdea(row)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading idea %s back: %w", ideaID, err)
	}
	return idea, nil
}
