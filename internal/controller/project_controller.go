// internal/controller/project_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/auth"
	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/service"
)

type ProjectController struct {
	ProjectService *service.ProjectService
	Logger         *zap.Logger
}

func principal(r *http.Request) (auth.Principal, error) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		return auth.Principal{}, appErrors.NewUnauthorized("no principal")
	}
	return p, nil
}

func projectID(r *http.Request) (int64, error) {
	pid, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, appErrors.NewBadRequest("Invalid project ID")
	}
	return pid, nil
}

func (c *ProjectController) Register(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	var body service.RegisterProjectInput
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	project, err := c.ProjectService.Register(r.Context(), p, body)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}
	writeOK(w, "Project Registered", project)
}

func (c *ProjectController) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	projects, pagination, err := c.ProjectService.List(r.Context(), p, page, pageSize)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message":    "Project List",
		"data":       projects,
		"pagination": pagination,
	})
}

func (c *ProjectController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}
	pid, err := projectID(r)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	project, err := c.ProjectService.Get(r.Context(), p, pid)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}
	writeOK(w, "Project Information", project)
}

func (c *ProjectController) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}
	pid, err := projectID(r)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	var body service.UpdateProjectInput
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	project, err := c.ProjectService.Update(r.Context(), p, pid, body)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}
	writeOK(w, "Project Updated", project)
}

func (c *ProjectController) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}
	pid, err := projectID(r)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	if err := c.ProjectService.Delete(r.Context(), p, pid); err != nil {
		WriteError(w, c.Logger, err)
		return
	}
	writeOK(w, "Project Deleted", map[string]int64{"pid": pid})
}
