package handler

import (
	"net/http"

	"portfoliohub/internal/model"
	"portfoliohub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DirectoryHandler 用户和部门管理接口
type DirectoryHandler struct {
	directory *service.DirectoryService
	logger    *zap.Logger
}

func NewDirectoryHandler(directory *service.DirectoryService, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, logger: logger}
}

// ListUsers handles GET /users
func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.directory.Users()})
}

// CreateUser handles POST /users
func (h *DirectoryHandler) CreateUser(c *gin.Context) {
	in := model.UserInput{IsActive: true}
	if !bindJSON(c, &in) {
		return
	}

	u, err := h.directory.CreateUser(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// UpdateUser handles PATCH /users/:id
func (h *DirectoryHandler) UpdateUser(c *gin.Context) {
	var patch model.UserPatch
	if !bindJSON(c, &patch) {
		return
	}

	u, err := h.directory.UpdateUser(c.Request.Context(), actor(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /users/:id
func (h *DirectoryHandler) DeleteUser(c *gin.Context) {
	if err := h.directory.DeleteUser(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetPassword handles POST /users/:id/reset-password
func (h *DirectoryHandler) ResetPassword(c *gin.Context) {
	u, err := h.directory.ResetPassword(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListDepartments handles GET /departments
func (h *DirectoryHandler) ListDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"departments": h.directory.Departments()})
}

// CreateDepartment handles POST /departments
func (h *DirectoryHandler) CreateDepartment(c *gin.Context) {
	in := model.DepartmentInput{IsActive: true}
	if !bindJSON(c, &in) {
		return
	}

	d, err := h.directory.CreateDepartment(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// UpdateDepartment handles PATCH /departments/:id
func (h *DirectoryHandler) UpdateDepartment(c *gin.Context) {
	var patch model.DepartmentPatch
	if !bindJSON(c, &patch) {
		return
	}

	d, err := h.directory.UpdateDepartment(c.Request.Context(), actor(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DeleteDepartment handles DELETE /departments/:id
func (h *DirectoryHandler) DeleteDepartment(c *gin.Context) {
	if err := h.directory.DeleteDepartment(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
