package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/VasudevKishan/todo-api/internal/application/project"
	"github.com/VasudevKishan/todo-api/internal/domain"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/http/middleware"
)

// ProjectsHandler handles /myprojects for the authenticated caller.
type ProjectsHandler struct {
	list     *project.ListProjects
	create   *project.CreateProject
	update   *project.UpdateProject
	delete   *project.DeleteProject
	validate *validator.Validate
	log      zerolog.Logger
}

func NewProjectsHandler(list *project.ListProjects, create *project.CreateProject, update *project.UpdateProject, del *project.DeleteProject, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		list:     list,
		create:   create,
		update:   update,
		delete:   del,
		validate: newValidator(),
		log:      log,
	}
}

func projectIDParam(r *http.Request) (domain.ProjectID, bool) {
	id, err := domain.ParseProjectID(chi.URLParam(r, "projectId"))
	return id, err == nil
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromContext(r.Context())
	projects, err := h.list.Execute(r.Context(), caller.UserID)
	if err != nil {
		writeDomainErr(w, h.log, "list projects", err)
		return
	}
	items := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, projectResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": items})
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectName string `json:"projectName" validate:"max=100"`
	}
	if msg, ok := decodeBody(w, r, h.validate, &body); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	caller := middleware.IdentityFromContext(r.Context())
	result, err := h.create.Execute(r.Context(), project.CreateProjectInput{
		OwnerID: caller.UserID,
		Name:    body.ProjectName,
	})
	if err != nil {
		writeDomainErr(w, h.log, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, projectResponse(result.Project))
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Invalid Project ID")
		return
	}
	var body struct {
		ProjectName string `json:"projectName" validate:"max=100"`
	}
	if msg, ok := decodeBody(w, r, h.validate, &body); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	caller := middleware.IdentityFromContext(r.Context())
	result, err := h.update.Execute(r.Context(), project.UpdateProjectInput{
		CallerID:  caller.UserID,
		ProjectID: id,
		Name:      body.ProjectName,
	})
	if err != nil {
		writeDomainErr(w, h.log, "update project", err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(result.Project))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Invalid Project ID")
		return
	}
	caller := middleware.IdentityFromContext(r.Context())
	result, err := h.delete.Execute(r.Context(), project.DeleteProjectInput{
		CallerID:  caller.UserID,
		ProjectID: id,
	})
	if err != nil {
		writeDomainErr(w, h.log, "delete project", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Project %s with ID %s deleted", result.Project.Name, result.Project.ID),
	})
}
