package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/devhub/internal/auth"
	"github.com/sakif/devhub/internal/service"
)

// CommentHandler serves the comment endpoints nested under an idea.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

// HandleList returns one page of comments for an idea, newest first.
//
// HTTP: GET /ideas/{id}/comments?page=1&limit=20
//
// Response includes the idea so clients can render the thread header without
// a second request:
//
//	{"comments": [...], "idea": {...}, "pagination": {...}}
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	comments, idea, pagination, err := h.comments.ListByIdea(
		r.Context(),
		r.PathValue("id"),
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"comments":   comments,
		"idea":       idea,
		"pagination": pagination,
	})
}

type createCommentRequest struct {
	Content string `json:"content"`
}

// HandleCreate posts a comment on an idea.
//
// HTTP: POST /ideas/{id}/comments (auth required)
// BODY: {"content": "..."}
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), userID, r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
