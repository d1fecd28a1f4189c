package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
)

// csvHeader is the fixed export header. Description and category are
// always double-quoted; the remaining fields are written bare.
const csvHeader = "ID,Fecha,Concepto,Categoria,Tipo,Monto,Moneda"

// csvQuote wraps a free-text field in double quotes, doubling any
// embedded quotes so the row stays parseable.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// exportService serializes the full ledger to CSV.
type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

// CSV renders every transaction in insertion order. Requesting an
// export of an empty ledger is rejected so no empty file is produced.
func (s *exportService) CSV() (string, []byte, error) {
	var transactions []models.Transaction
	if err := s.db.Order("id ASC").Find(&transactions).Error; err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(transactions) == 0 {
		return "", nil, apperrors.ErrEmptyExport
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for i := range transactions {
		t := &transactions[i]
		fmt.Fprintf(&b, "%d,%s,%s,%s,%s,%s,%s\n",
			t.ID, t.Date, csvQuote(t.Desc), csvQuote(t.DisplayCategory()), t.Type, t.Amount, t.Currency)
	}

	filename := fmt.Sprintf("PatrimonioPro_Backup_%s.csv", time.Now().Format("02-01-2006"))
	return filename, []byte(b.String()), nil
}
