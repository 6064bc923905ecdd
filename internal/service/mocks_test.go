package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sakif/devhub/internal/apperror"
	"github.com/sakif/devhub/internal/model"
	"github.com/sakif/devhub/internal/repository"
)

// Hand-written in-memory mocks for the repository interfaces. They implement
// just enough semantics (uniqueness, counters, not-found) for the services to
// behave realistically, plus an injectable error to simulate a store outage.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------------
// ideas

type mockIdeaRepo struct {
	ideas  map[string]*model.Idea
	likes  map[string]map[string]bool // ideaID → set of userIDs
	nextID int

	lastListOpts repository.IdeaListOptions
	failWith     error // returned by every method when set
}

func newMockIdeaRepo() *mockIdeaRepo {
	return &mockIdeaRepo{
		ideas: make(map[string]*model.Idea),
		likes: make(map[string]map[string]bool),
	}
}

func (m *mockIdeaRepo) addIdea(title, difficulty string) *model.Idea {
	m.nextID++
	idea := &model.Idea{
		ID:         fmt.Sprintf("idea-%d", m.nextID),
		Title:      title,
		Difficulty: difficulty,
	}
	m.ideas[idea.ID] = idea
	m.likes[idea.ID] = make(map[string]bool)
	return idea
}

func (m *mockIdeaRepo) CreateIdea(_ context.Context, idea *model.Idea) error {
	if m.failWith != nil {
		return m.failWith
	}
	created := m.addIdea(idea.Title, idea.Difficulty)
	idea.ID = created.ID
	return nil
}

func (m *mockIdeaRepo) GetIdeaByID(_ context.Context, id string) (*model.Idea, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	idea, ok := m.ideas[id]
	if !ok {
		return nil, apperror.NotFound("idea", id)
	}
	result := *idea
	return &result, nil
}

func (m *mockIdeaRepo) ListIdeas(_ context.Context, opts repository.IdeaListOptions) ([]model.Idea, int, error) {
	m.lastListOpts = opts
	if m.failWith != nil {
		return nil, 0, m.failWith
	}

	matched := []model.Idea{}
	for _, idea := range m.ideas {
		if opts.Difficulty != "" && idea.Difficulty != opts.Difficulty {
			continue
		}
		if opts.LikedBy != "" && !m.likes[idea.ID][opts.LikedBy] {
			continue
		}
		matched = append(matched, *idea)
	}

	total := len(matched)
	if opts.Offset >= len(matched) {
		return []model.Idea{}, total, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, total, nil
}

func (m *mockIdeaRepo) LikeIdea(_ context.Context, userID, ideaID string) (*model.Idea, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	idea, ok := m.ideas[ideaID]
	if !ok {
		return nil, apperror.NotFound("idea", ideaID)
	}
	if m.likes[ideaID][userID] {
		return nil, apperror.Conflict("you have already liked this idea")
	}
	m.likes[ideaID][userID] = true
	idea.LikeCount++
	result := *idea
	return &result, nil
}

func (m *mockIdeaRepo) UnlikeIdea(_ context.Context, userID, ideaID string) (*model.Idea, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	idea, ok := m.ideas[ideaID]
	if !ok {
		return nil, apperror.NotFound("idea", ideaID)
	}
	if !m.likes[ideaID][userID] {
		return nil, apperror.Conflict("you haven't liked this idea yet")
	}
	delete(m.likes[ideaID], userID)
	if idea.LikeCount > 0 {
		idea.LikeCount--
	}
	result := *idea
	return &result, nil
}

// ---------------------------------------------------------------------------
// users

type mockUserRepo struct {
	users  map[string]*model.User // keyed by internal ID
	nextID int

	createErr error // overrides CreateUser's result when set
	updateErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.AuthID == user.AuthID {
			return apperror.Conflict("user already exists")
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetUserByAuthID(_ context.Context, authID string) (*model.User, error) {
	for _, user := range m.users {
		if user.AuthID == authID {
			result := *user
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", authID)
}

func (m *mockUserRepo) UpdateUserProfile(_ context.Context, user *model.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// ---------------------------------------------------------------------------
// projects

type mockProjectRepo struct {
	projects map[string]*model.Project
	nextID   int
	failWith error
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) CreateProject(_ context.Context, project *model.Project) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	project.ID = fmt.Sprintf("project-%d", m.nextID)
	stored := *project
	m.projects[project.ID] = &stored
	return nil
}

func (m *mockProjectRepo) GetProjectByID(_ context.Context, id string) (*model.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	project, ok := m.projects[id]
	if !ok {
		return nil, apperror.NotFound("project", id)
	}
	result := *project
	return &result, nil
}

func (m *mockProjectRepo) ListProjectsByUser(_ context.Context, userID string) ([]model.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := []model.Project{}
	for _, p := range m.projects {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) ListFeaturedProjects(_ context.Context, limit int) ([]model.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := []model.Project{}
	for _, p := range m.projects {
		result = append(result, *p)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockProjectRepo) LikeProject(_ context.Context, id string) (*model.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	project, ok := m.projects[id]
	if !ok {
		return nil, apperror.NotFound("project", id)
	}
	project.LikeCount++
	result := *project
	return &result, nil
}

// ---------------------------------------------------------------------------
// comments

type mockCommentRepo struct {
	comments []*model.Comment
	nextID   int
	failWith error

	lastListOpts repository.ListOptions
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{}
}

func (m *mockCommentRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	comment.ID = fmt.Sprintf("comment-%d", m.nextID)
	stored := *comment
	m.comments = append(m.comments, &stored)
	return nil
}

func (m *mockCommentRepo) ListCommentsByIdea(_ context.Context, ideaID string, opts repository.ListOptions) ([]model.Comment, int, error) {
	m.lastListOpts = opts
	if m.failWith != nil {
		return nil, 0, m.failWith
	}

	matched := []model.Comment{}
	for _, c := range m.comments {
		if c.IdeaID == ideaID {
			matched = append(matched, *c)
		}
	}
	total := len(matched)
	if opts.Offset >= len(matched) {
		return []model.Comment{}, total, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, total, nil
}
