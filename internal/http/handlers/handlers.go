package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fabzclean/backend/internal/db"
	"github.com/fabzclean/backend/internal/service"
)

type Handler struct {
	Store     *db.Store
	Summary   *service.SummaryService
	Recalc    *service.RecalcService
	Validator *validator.Validate
	Logger    zerolog.Logger
	AdminKey  string

	DefaultWindowDays int
}

type RecalcRequest struct {
	Scope      string `json:"scope"`
	WindowDays int    `json:"window_days" validate:"omitempty,min=1,max=365"`
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Business intelligence summary
// @Description Serves the BI summary for a scope and window, from the freshest available tier
// @Tags bi
// @Produce json
// @Param window_days query int false "window in days (default 30)"
// @Param scope query string false "franchise scope or 'all'"
// @Success 200 {object} models.BISummary
// @Failure 400 {object} map[string]any
// @Router /api/bi/summary [get]
func (h *Handler) BISummary(c *gin.Context) {
	windowDays := h.DefaultWindowDays
	if raw := c.Query("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "window_days must be an integer between 1 and 365", nil)
			return
		}
		windowDays = parsed
	}
	scope := c.Query("scope")

	summary, err := h.Summary.GetSummary(c.Request.Context(), scope, windowDays)
	if err != nil {
		h.Logger.Error().Err(err).Str("scope", scope).Int("window_days", windowDays).Msg("summary computation failed")
		writeError(c, http.StatusInternalServerError, "COMPUTATION_ERROR", "Summary computation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Trigger snapshot recalculation
// @Tags bi
// @Accept json
// @Produce json
// @Param request body RecalcRequest true "recalculation request"
// @Success 200 {object} models.BISummary
// @Failure 400 {object} map[string]any
// @Router /api/bi/recalculate [post]
func (h *Handler) Recalculate(c *gin.Context) {
	var req RecalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
		return
	}
	if req.WindowDays == 0 {
		req.WindowDays = h.DefaultWindowDays
	}

	summary, err := h.Recalc.Run(c.Request.Context(), req.Scope, req.WindowDays)
	if err != nil {
		h.Logger.Error().Err(err).Str("scope", req.Scope).Msg("recalculation failed")
		writeError(c, http.StatusInternalServerError, "RECALC_ERROR", "Recalculation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Latest recalculation run
// @Tags bi
// @Produce json
// @Success 200 {object} models.RecalcRun
// @Router /api/bi/runs/latest [get]
func (h *Handler) RunsLatest(c *gin.Context) {
	run, err := h.Store.GetLatestRecalcRun(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load runs", err.Error())
		return
	}
	if run == nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "No recalculation runs yet", nil)
		return
	}
	c.JSON(http.StatusOK, run)
}

func writeError(c *gin.Context, status int, code, message string, details any) {
	body := gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
	if details != nil {
		body["error"].(gin.H)["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
