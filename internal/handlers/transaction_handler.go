package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/services"
)

// TransactionHandler handles ledger-related requests.
type TransactionHandler struct {
	ledger services.LedgerServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger services.LedgerServicer) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// CreateTransactionRequest represents the request payload for adding a
// ledger entry. The amount may be a JSON number or a numeric string;
// anything else is rejected before any record is created.
type CreateTransactionRequest struct {
	Desc     string          `json:"desc" binding:"required,max=200"`
	Amount   decimal.Decimal `json:"amt"`
	Type     string          `json:"type" binding:"required,transaction_type"`
	Currency string          `json:"curr" binding:"required,ledger_currency"`
	Category string          `json:"cat" binding:"max=100"`
}

// CreateTransaction appends a new transaction to the ledger.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tx, err := h.ledger.Add(
		req.Desc,
		req.Amount,
		models.TransactionType(req.Type),
		models.Currency(req.Currency),
		req.Category,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// ListTransactions returns a page of ledger entries, most recent first.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ledger.List(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTransaction removes a ledger entry by id. Unknown ids are a
// no-op, so deletion always succeeds for well-formed requests.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledger.Remove(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
