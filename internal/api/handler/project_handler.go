package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SambridhiGhimire/Architech-bidding/internal/api/metrics"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// projectFileFields are the multipart fields accepted on project intake.
var projectFileFields = []string{"propertyImages", "boq", "drawings", "otherDocuments"}

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
	files   ports.FileStore
}

func NewProjectHandler(service ports.ProjectService, files ports.FileStore) *ProjectHandler {
	return &ProjectHandler{service: service, files: files}
}

// Create handles POST /api/projects. Accepts JSON or multipart/form-data
// with bracket-nested fields plus file parts.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	req, files, err := h.bindCreate(c)
	if err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), userID, toCreateProjectInput(req, files))
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(project.Category).Inc()
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) bindCreate(c echo.Context) (createProjectRequest, map[string][]domain.FileRef, error) {
	var req createProjectRequest

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return req, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
		}
		var pf projectForm
		if err := decodeForm(form.Value, &pf); err != nil {
			return req, nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		req, err = pf.toCreateRequest()
		if err != nil {
			return req, nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		files, err := saveUploads(c, h.files, projectFileFields...)
		if err != nil {
			return req, nil, err
		}
		return req, files, nil
	}

	if err := c.Bind(&req); err != nil {
		return req, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return req, nil, nil
}

// List handles GET /api/projects. Without the mine flag it browses the
// public marketplace; with it, the caller's own projects in any status.
//
// @Summary      Browse projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        mine        query  bool    false  "List own projects"
// @Param        category    query  string  false  "Filter by category"
// @Param        city        query  string  false  "Filter by city"
// @Param        state       query  string  false  "Filter by state"
// @Param        status      query  string  false  "Filter by status (own projects only)"
// @Param        min_budget  query  number  false  "Minimum budget"
// @Param        max_budget  query  number  false  "Maximum budget"
// @Param        page        query  int     false  "Page (1-based)"
// @Param        limit       query  int     false  "Page size"
// @Success      200  {object}  listProjectsResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in := ports.ListProjectsInput{
		ActorID:    userID,
		MyProjects: c.QueryParam("mine") == "true",
		Category:   c.QueryParam("category"),
		City:       c.QueryParam("city"),
		State:      c.QueryParam("state"),
		Status:     c.QueryParam("status"),
		MinBudget:  queryFloat(c, "min_budget"),
		MaxBudget:  queryFloat(c, "max_budget"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	}

	page, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProjectsResponse{
		Data: page.Items,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	})
}

// Get handles GET /api/projects/:id. Owners and the awarded bidder receive
// the full detail; everyone else the redacted public view of a live project.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      200  {object}  projectDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	if result.Detail != nil {
		return c.JSON(http.StatusOK, toDetailResponse(result.Detail))
	}
	return c.JSON(http.StatusOK, result.Public)
}

// Update handles PUT /api/projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "Project id"
// @Param        body  body  updateProjectRequest  true  "Fields to update"
// @Success      200  {object}  domain.Project
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	files := map[string][]domain.FileRef{}
	if isMultipart(c) {
		form, ferr := c.MultipartForm()
		if ferr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
		}
		var pf projectForm
		if err := decodeForm(form.Value, &pf); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		req, err = pf.toUpdateRequest()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		files, err = saveUploads(c, h.files, projectFileFields...)
		if err != nil {
			return err
		}
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), toUpdateProjectInput(req, files))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:id. Projects that already received
// bids cannot be deleted.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Publish handles POST /api/projects/:id/publish, moving a draft live.
//
// @Summary      Publish a draft project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/projects/{id}/publish [post]
func (h *ProjectHandler) Publish(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	project, err := h.service.Publish(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}

func queryFloat(c echo.Context, name string) float64 {
	f, _ := strconv.ParseFloat(c.QueryParam(name), 64)
	return f
}
