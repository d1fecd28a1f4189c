package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"patrimonio/internal/models"
	"patrimonio/internal/money"
	"patrimonio/internal/services"
)

// ReportHandler serves the derived views: monthly totals, global
// totals, and the visible transaction rows. Everything here is a pure
// projection of stored state under the current view state.
type ReportHandler struct {
	reports   services.ReportServicer
	rates     services.RateServicer
	viewState services.ViewStateServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports services.ReportServicer, rates services.RateServicer, viewState services.ViewStateServicer) *ReportHandler {
	return &ReportHandler{reports: reports, rates: rates, viewState: viewState}
}

// SummaryResponse is the dashboard header: global net worth in the
// primary currency with its informational conversion, plus the month's
// in/out/net in the display currency.
type SummaryResponse struct {
	MonthLabel  string `json:"month_label"`
	DisplayMode string `json:"display_mode"`

	TotalPrimary   string `json:"total_primary"`
	TotalSecondary string `json:"total_secondary"`

	MonthIn  string `json:"month_in"`
	MonthOut string `json:"month_out"`
	MonthNet string `json:"month_net"`
}

// GetSummary computes monthly and global totals for the active view state.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	state := h.viewState.Snapshot()
	rate := h.rates.Rate(state.ActiveRateKey)

	monthly, err := h.reports.MonthlyTotals(state.Month, state.Year, state.DisplayMode, rate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	global, err := h.reports.GlobalTotals()
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The primary figure is the signed total in the display currency's
	// native ledger; the secondary is that same figure converted into
	// the other currency for information only.
	primary := global.USD
	if state.DisplayMode == models.CurrencyBS {
		primary = global.BS
	}
	other := state.DisplayMode.Other()
	secondary := money.Convert(primary, state.DisplayMode, other, rate)

	c.JSON(http.StatusOK, SummaryResponse{
		MonthLabel:     state.MonthLabel,
		DisplayMode:    string(state.DisplayMode),
		TotalPrimary:   money.FormatWithSymbol(state.DisplayMode, primary),
		TotalSecondary: money.FormatWithSymbol(other, secondary),
		MonthIn:        money.FormatWithSymbol(state.DisplayMode, monthly.In),
		MonthOut:       money.FormatWithSymbol(state.DisplayMode, monthly.Out),
		MonthNet:       money.FormatWithSymbol(state.DisplayMode, monthly.Net),
	})
}

// GetRows returns the visible row projection for the active view state.
func (h *ReportHandler) GetRows(c *gin.Context) {
	state := h.viewState.Snapshot()
	rate := h.rates.Rate(state.ActiveRateKey)

	rows, err := h.reports.VisibleRows(state.Month, state.Year, state.DisplayMode, rate, state.SearchQuery)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}
