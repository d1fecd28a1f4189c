package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/money"
	"patrimonio/internal/ratesync"
	"patrimonio/internal/services"
)

// RateFetcher fetches quotes from the remote sources. Satisfied by
// *ratesync.Client.
type RateFetcher interface {
	Fetch(ctx context.Context) (ratesync.Quotes, error)
}

// RateHandler handles exchange-rate requests, including the quick
// USD/Bs converter panel.
type RateHandler struct {
	rates     services.RateServicer
	viewState services.ViewStateServicer
	fetcher   RateFetcher
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rates services.RateServicer, viewState services.ViewStateServicer, fetcher RateFetcher) *RateHandler {
	return &RateHandler{rates: rates, viewState: viewState, fetcher: fetcher}
}

// RatesResponse carries the four current rates, the sync status, and
// the badge line for the active rate.
type RatesResponse struct {
	Rates  models.RateSet    `json:"rates"`
	Status models.SyncStatus `json:"status"`
	Badge  string            `json:"badge"`
}

// GetRates returns the current RateSet and sync status.
func (h *RateHandler) GetRates(c *gin.Context) {
	state := h.viewState.Snapshot()
	set := h.rates.Current()

	badge := fmt.Sprintf("1 %s = %s Bs",
		state.ActiveRateKey, money.Format(models.CurrencyBS, set.Rate(state.ActiveRateKey)))

	c.JSON(http.StatusOK, RatesResponse{
		Rates:  set,
		Status: h.rates.Status(),
		Badge:  badge,
	})
}

// RefreshRates triggers a manual fetch from the remote sources and
// folds the outcome into the rate store. A failed fetch is not an
// error response: the store keeps its previous rates and reports the
// offline status.
func (h *RateHandler) RefreshRates(c *gin.Context) {
	quotes, err := h.fetcher.Fetch(c.Request.Context())
	h.rates.Apply(quotes, err)

	c.JSON(http.StatusOK, gin.H{
		"rates":  h.rates.Current(),
		"status": h.rates.Status(),
	})
}

// GetStatus returns only the sync status indicator.
func (h *RateHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.rates.Status()})
}

// ConvertRequest is the quick-converter payload: an amount and the
// currency it is denominated in.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from" binding:"required,ledger_currency"`
}

// ConvertResponse returns both sides of the conversion at the active
// rate, formatted for display.
type ConvertResponse struct {
	USD  string `json:"usd"`
	BS   string `json:"bs"`
	Rate string `json:"rate"`
}

// Convert computes the other-currency value of an amount using the
// active rate key, mirroring the converter panel of the client.
func (h *RateHandler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Amount.IsNegative() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative"))
		return
	}

	rate := h.rates.Rate(h.viewState.Snapshot().ActiveRateKey)
	from := models.Currency(req.From)

	usd := money.Convert(req.Amount, from, models.CurrencyUSD, rate)
	bs := money.Convert(req.Amount, from, models.CurrencyBS, rate)

	c.JSON(http.StatusOK, ConvertResponse{
		USD:  usd.StringFixed(2),
		BS:   bs.StringFixed(2),
		Rate: rate.StringFixed(2),
	})
}
