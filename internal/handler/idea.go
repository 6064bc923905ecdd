package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/devhub/internal/auth"
	"github.com/sakif/devhub/internal/service"
)

// IdeaHandler serves idea browsing and the like/unlike endpoints.
type IdeaHandler struct {
	ideas  *service.IdeaService
	logger *slog.Logger
}

// NewIdeaHandler creates an IdeaHandler.
func NewIdeaHandler(ideas *service.IdeaService, logger *slog.Logger) *IdeaHandler {
	return &IdeaHandler{ideas: ideas, logger: logger}
}

// HandleList returns one page of ideas.
//
// HTTP: GET /ideas?page=1&limit=10&difficulty=easy&liked=true
//
// The route sits behind OptionalAuth: anonymous callers browse freely, and
// liked=true additionally restricts the result to ideas the caller has liked
// (401 without a session). Response:
//
//	{"ideas": [...], "pagination": {...}}
func (h *IdeaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())

	params := service.ListIdeasParams{
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
		Difficulty: r.URL.Query().Get("difficulty"),
		LikedOnly:  r.URL.Query().Get("liked") == "true",
		CallerID:   callerID,
	}

	ideas, pagination, err := h.ideas.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ideas":      ideas,
		"pagination": pagination,
	})
}

// HandleGet returns a single idea.
//
// HTTP: GET /ideas/{id}
func (h *IdeaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	idea, err := h.ideas.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

// HandleLike records a like and returns the idea with its updated count.
//
// HTTP: POST /ideas/{id}/like (auth required)
//
// Liking twice is 409 and leaves the count untouched, so clients can safely
// retry a request that timed out.
func (h *IdeaHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	idea, err := h.ideas.Like(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

// HandleUnlike removes a like and returns the idea with its updated count.
//
// HTTP: DELETE /ideas/{id}/like (auth required)
func (h *IdeaHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	idea, err := h.ideas.Unlike(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed. Services treat 0 as "use the default".
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
