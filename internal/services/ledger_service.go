package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
)

// ledgerService handles the transaction ledger.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// Add validates and appends a new transaction. The id is the creation
// timestamp in Unix milliseconds; if an entry was created within the
// same millisecond the id is bumped past the current maximum so ids
// stay unique and insertion-ordered.
func (s *ledgerService) Add(desc string, amount decimal.Decimal, txType models.TransactionType, currency models.Currency, category string) (*models.Transaction, error) {
	if strings.TrimSpace(desc) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	switch txType {
	case models.TransactionTypeIn, models.TransactionTypeOut:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be in or out")
	}
	switch currency {
	case models.CurrencyUSD, models.CurrencyBS:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency must be USD or BS")
	}

	now := time.Now()
	month := int(now.Month()) - 1
	year := now.Year()

	tx := &models.Transaction{
		ID:       now.UnixMilli(),
		Date:     now.Format("02/01/2006"),
		Month:    &month,
		Year:     &year,
		Desc:     desc,
		Amount:   amount,
		Type:     txType,
		Currency: currency,
		Category: category,
	}

	err := s.db.Transaction(func(dbtx *gorm.DB) error {
		var maxID int64
		if err := dbtx.Model(&models.Transaction{}).
			Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if maxID >= tx.ID {
			tx.ID = maxID + 1
		}
		if err := dbtx.Create(tx).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Remove deletes the transaction with the given id. Removing an id
// that does not exist is a no-op, so Remove is idempotent.
func (s *ledgerService) Remove(id int64) error {
	if err := s.db.Delete(&models.Transaction{}, id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// All returns the full ledger in insertion order.
func (s *ledgerService) All() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Order("id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// List returns a page of transactions, most recent first.
func (s *ledgerService) List(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
