package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/devhub/internal/service"
)

// UserHandler serves user profile pages.
type UserHandler struct {
	auth     *service.AuthService
	projects *service.ProjectService
	logger   *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(authService *service.AuthService, projects *service.ProjectService, logger *slog.Logger) *UserHandler {
	return &UserHandler{auth: authService, projects: projects, logger: logger}
}

// HandleProfile returns a user's profile along with the projects they own.
//
// HTTP: GET /user/{id} (auth required)
//
// Response: {"user": {...}, "projects": [...]}
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.auth.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	projects, err := h.projects.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"projects": projects,
	})
}
