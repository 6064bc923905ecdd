package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/devhub/internal/auth"
	"github.com/sakif/devhub/internal/service"
)

// ProjectHandler serves project submission, lookup, likes, and the home
// listing.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projects *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// HandleSubmit creates a project owned by the caller.
//
// HTTP: POST /submit (auth required)
// BODY: {"title","description","repo_url","live_url","image_url","tags","idea_id"}
func (h *ProjectHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req service.SubmitProjectInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	project, err := h.projects.Submit(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// HandleGet returns a single project.
//
// HTTP: GET /projects/{id}
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// HandleLike bumps a project's like counter.
//
// HTTP: POST /projects/{id}/like (auth required)
//
// Unlike idea likes there is no per-user record here — every call increments.
func (h *ProjectHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	project, err := h.projects.Like(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// HandleHome returns the most-liked projects for the landing page.
//
// HTTP: GET /home
func (h *ProjectHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.Featured(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
	})
}
