package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/services"
)

// ViewHandler mutates the transient view state: display mode, active
// rate key, calendar window, and search query.
type ViewHandler struct {
	viewState services.ViewStateServicer
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(viewState services.ViewStateServicer) *ViewHandler {
	return &ViewHandler{viewState: viewState}
}

// GetView returns the current view state.
func (h *ViewHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": h.viewState.Snapshot()})
}

// SetModeRequest selects the primary display currency.
type SetModeRequest struct {
	Mode string `json:"mode" binding:"required,ledger_currency"`
}

// SetMode switches the display currency mode.
func (h *ViewHandler) SetMode(c *gin.Context) {
	var req SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.viewState.SetMode(models.Currency(req.Mode))
	c.JSON(http.StatusOK, gin.H{"view": h.viewState.Snapshot()})
}

// SetRateKeyRequest selects the rate driving conversions.
type SetRateKeyRequest struct {
	Key string `json:"key" binding:"required"`
}

// SetRateKey switches the active rate key.
func (h *ViewHandler) SetRateKey(c *gin.Context) {
	var req SetRateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	key, ok := models.ParseRateKey(req.Key)
	if !ok {
		respondWithError(c, apperrors.ErrInvalidRateKey)
		return
	}

	h.viewState.SetRateKey(key)
	c.JSON(http.StatusOK, gin.H{"view": h.viewState.Snapshot()})
}

// SetQueryRequest carries the search text; an empty string clears it.
type SetQueryRequest struct {
	Query string `json:"query" binding:"max=200"`
}

// SetQuery updates the search filter.
func (h *ViewHandler) SetQuery(c *gin.Context) {
	var req SetQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.viewState.SetQuery(req.Query)
	c.JSON(http.StatusOK, gin.H{"view": h.viewState.Snapshot()})
}

// NextMonth advances the calendar window one month forward.
func (h *ViewHandler) NextMonth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": h.viewState.ShiftMonth(1)})
}

// PrevMonth moves the calendar window one month backward.
func (h *ViewHandler) PrevMonth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": h.viewState.ShiftMonth(-1)})
}
