package handler

import (
	"context"
	"net/http"
	"strconv"

	"portfoliohub/internal/model"
	"portfoliohub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settings *service.SettingsService
	logger   *zap.Logger
}

func NewSettingsHandler(settings *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

type moveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

type dateRequest struct {
	Date string `json:"date" binding:"required"`
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Settings())
}

// VisibleColumns handles GET /settings/columns/visible
func (h *SettingsHandler) VisibleColumns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"columns": h.settings.VisibleColumns()})
}

// ReplacePhases handles PUT /settings/phases
func (h *SettingsHandler) ReplacePhases(c *gin.Context) {
	var phases []model.ProjectPhase
	if !bindJSON(c, &phases) {
		return
	}

	out, err := h.settings.ReplacePhases(c.Request.Context(), actor(c), phases)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"phases": out})
}

// ReplaceColumns handles PUT /settings/columns
func (h *SettingsHandler) ReplaceColumns(c *gin.Context) {
	var columns []model.ColumnConfig
	if !bindJSON(c, &columns) {
		return
	}

	out, err := h.settings.ReplaceColumns(c.Request.Context(), actor(c), columns)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": out})
}

// MovePhase handles POST /settings/phases/:id/move
func (h *SettingsHandler) MovePhase(c *gin.Context) {
	var req moveRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.settings.MovePhase(c.Request.Context(), actor(c), c.Param("id"), req.Direction)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"phases": out})
}

// MoveColumn handles POST /settings/columns/:key/move
func (h *SettingsHandler) MoveColumn(c *gin.Context) {
	var req moveRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.settings.MoveColumn(c.Request.Context(), actor(c), c.Param("key"), req.Direction)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": out})
}

// ToggleColumn handles POST /settings/columns/:key/toggle
func (h *SettingsHandler) ToggleColumn(c *gin.Context) {
	out, err := h.settings.ToggleColumn(c.Request.Context(), actor(c), c.Param("key"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": out})
}

// ReplaceFiscal handles PUT /settings/fiscal
func (h *SettingsHandler) ReplaceFiscal(c *gin.Context) {
	var cfg model.FiscalConfig
	if !bindJSON(c, &cfg) {
		return
	}

	out, err := h.settings.ReplaceFiscal(c.Request.Context(), actor(c), cfg)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SetQuarterStart handles POST /settings/fiscal/quarters/:quarter/start
func (h *SettingsHandler) SetQuarterStart(c *gin.Context) {
	h.setQuarterDate(c, h.settings.SetQuarterStart)
}

// SetQuarterEnd handles POST /settings/fiscal/quarters/:quarter/end
func (h *SettingsHandler) SetQuarterEnd(c *gin.Context) {
	h.setQuarterDate(c, h.settings.SetQuarterEnd)
}

type quarterDateFunc func(ctx context.Context, actor string, quarter int, date string) (model.FiscalConfig, error)

func (h *SettingsHandler) setQuarterDate(c *gin.Context, apply quarterDateFunc) {
	quarter, err := strconv.Atoi(c.Param("quarter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quarter"})
		return
	}
	var req dateRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := apply(c.Request.Context(), actor(c), quarter, req.Date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
