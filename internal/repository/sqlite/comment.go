package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/devhub/internal/model"
	"github.com/sakif/devhub/internal/repository"
)

// compile-time check that *DB implements repository.CommentRepository
var _ repository.CommentRepository = (*DB)(nil)

// CreateComment inserts a new comment.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (id, idea_id, user_id, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID, comment.IdeaID, comment.UserID, comment.Content,
		comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	return nil
}

// ListCommentsByIdea returns one page of comments for an idea, newest first,
// plus the total comment count for that idea. The author's display name is
// joined in so listings don't need a query per row.
//
// Existence of the idea itself is the service layer's concern — an absent
// idea simply has zero comments here.
func (db *DB) ListCommentsByIdea(ctx context.Context, ideaID string, opts repository.ListOptions) ([]model.Comment, int, error) {
	var total int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE idea_id = ?`, ideaID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting comments: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, c.idea_id, c.user_id, c.content, c.created_at, c.updated_at,
		        COALESCE(u.name, '')
		 FROM comments c
		 LEFT JOIN users u ON u.id = c.user_id
		 WHERE c.idea_id = ?
		 ORDER BY c.created_at DESC, c.id DESC
		 LIMIT ? OFFSET ?`,
		ideaID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0, opts.Limit)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.IdeaID, &c.UserID, &c.Content,
			&c.CreatedAt, &c.UpdatedAt, &c.AuthorName,
		); err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, total, nil
}
