package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/sakif/devhub/internal/model"
)

// newTestDB returns a DB backed by a fresh in-memory database. Each test
// gets its own; the schema comes from the same migrate() production runs.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser inserts a user and fails the test on error. The tag keeps
// the UNIQUE auth_id/email constraints happy across multiple users.
func createTestUser(t *testing.T, db *DB, tag string) *model.User {
	t.Helper()

	user := &model.User{
		AuthID: "auth-" + tag,
		Email:  tag + "@example.com",
		Name:   "User " + tag,
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %q: %v", tag, err)
	}
	return user
}

// createTestIdea inserts an idea owned by userID and fails the test on error.
func createTestIdea(t *testing.T, db *DB, userID, title, difficulty string) *model.Idea {
	t.Helper()

	idea := &model.Idea{
		Title:       title,
		Description: "description of " + title,
		Difficulty:  difficulty,
		UserID:      userID,
	}
	if err := db.CreateIdea(context.Background(), idea); err != nil {
		t.Fatalf("failed to create test idea %q: %v", title, err)
	}
	return idea
}

// createTestIdeas inserts n ideas and returns them in insertion order.
func createTestIdeas(t *testing.T, db *DB, userID string, n int) []*model.Idea {
	t.Helper()

	ideas := make([]*model.Idea, 0, n)
	for i := 0; i < n; i++ {
		ideas = append(ideas, createTestIdea(t, db, userID, fmt.Sprintf("idea %02d", i), ""))
	}
	return ideas
}

// likeCountInStore reads the raw number of like rows for an idea, bypassing
// the denormalized counter, so tests can check the two agree.
func likeCountInStore(t *testing.T, db *DB, ideaID string) int {
	t.Helper()

	var n int
	err := db.conn.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM idea_likes WHERE idea_id = ?`, ideaID).Scan(&n)
	if err != nil {
		t.Fatalf("failed to count like rows: %v", err)
	}
	return n
}
