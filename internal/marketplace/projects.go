package marketplace

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/guard"
	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

type CreateProjectRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"price_cents"`
	ProjectType  string `json:"project_type"`
	LanguageTags string `json:"language_tags"`
	FilePath     string `json:"file_path"`
}

// POST /api/projects — verified sellers only.
func (h *Handler) CreateProject(c echo.Context) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if allowed, reason := guard.CanCreateProject(actor); !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only verified sellers can create projects", "reason": reason})
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.PriceCents < models.MinProjectPriceCents {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be at least 100 cents"})
	}
	projectType, err := models.ParseProjectType(req.ProjectType)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	project, err := h.Store.CreateProject(c.Request().Context(), models.Project{
		SellerID:     actor.ID,
		Title:        req.Title,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		ProjectType:  projectType,
		LanguageTags: req.LanguageTags,
		FilePath:     req.FilePath,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create project"})
	}
	return c.JSON(http.StatusCreated, project)
}

// GET /api/projects?sellerId= — public discovery.
func (h *Handler) GetProjects(c echo.Context) error {
	var sellerID int64
	if raw := c.QueryParam("sellerId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sellerId"})
		}
		sellerID = v
	}

	projects, err := h.Store.ListProjects(c.Request().Context(), sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch projects"})
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

// GET /api/projects/:id — public.
func (h *Handler) GetProject(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project id"})
	}

	project, err := h.Store.GetProject(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch project"})
	}
	return c.JSON(http.StatusOK, project)
}
