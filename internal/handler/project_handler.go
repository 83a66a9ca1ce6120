package handler

import (
	"net/http"
	"strconv"
	"strings"

	"portfoliohub/internal/model"
	"portfoliohub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	portfolio *service.PortfolioService
	logger    *zap.Logger
}

func NewProjectHandler(portfolio *service.PortfolioService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{portfolio: portfolio, logger: logger}
}

// ListProjects handles GET /projects?search=&status=&department=&sort=&order=&page=&page_size=
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	q := service.ListQuery{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
		SortBy:     c.Query("sort"),
		Desc:       strings.EqualFold(c.Query("order"), "desc"),
	}
	var err error
	if q.Page, err = queryInt(c, "page"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	if q.PageSize, err = queryInt(c, "page_size"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return
	}

	page, err := h.portfolio.ListProjects(q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetProject handles GET /projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.portfolio.Project(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var in model.ProjectInput
	if !bindJSON(c, &in) {
		return
	}

	p, err := h.portfolio.CreateProject(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProject handles PATCH /projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var patch model.ProjectPatch
	if !bindJSON(c, &patch) {
		return
	}

	p, err := h.portfolio.UpdateProject(c.Request.Context(), actor(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject handles DELETE /projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.portfolio.DeleteProject(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectProject handles PUT /projects/selection，project_id 为空时清除选中
func (h *ProjectHandler) SelectProject(c *gin.Context) {
	var req struct {
		ProjectID string `json:"project_id"`
	}
	if !bindJSON(c, &req) {
		return
	}

	if err := h.portfolio.SelectProject(actor(c), req.ProjectID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.SelectedProject(c)
}

// SelectedProject handles GET /projects/selection
func (h *ProjectHandler) SelectedProject(c *gin.Context) {
	p, ok := h.portfolio.SelectedProject(actor(c))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"project": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
