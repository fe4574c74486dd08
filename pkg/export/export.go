// Package export serializes ledger views to delimited text for external
// consumption. Pure reads, no ledger state changes.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/adigitale/carnet/pkg/models"
)

// Record is anything that can appear as a CSV row.
type Record interface {
	ID() string
	Name() string
	Balance() float64
	Date() string
	Phone() string
}

// FilterFunc selects which records make it into the output.
type FilterFunc[T Record] func(T) bool

var header = []string{"ID", "Name", "Balance", "Date", "Phone"}

// Create renders records as CSV, header first. A nil filter keeps
// everything.
func Create[T Record](records []T, filter FilterFunc[T]) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		row := []string{
			r.ID(),
			r.Name(),
			strconv.FormatFloat(r.Balance(), 'f', 2, 64),
			r.Date(),
			r.Phone(),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DebtRecord adapts a models.Debt to the Record interface.
type DebtRecord struct {
	Debt *models.Debt
}

func (r DebtRecord) ID() string       { return r.Debt.ID }
func (r DebtRecord) Name() string     { return r.Debt.CustomerName }
func (r DebtRecord) Balance() float64 { return r.Debt.Balance }
func (r DebtRecord) Date() string     { return r.Debt.OpenedAt.Format("2006-01-02") }
func (r DebtRecord) Phone() string    { return r.Debt.Phone }

// Debts renders a debt view (e.g. the result of a ledger query) as CSV.
func Debts(debts []*models.Debt) ([]byte, error) {
	records := make([]DebtRecord, len(debts))
	for i, d := range debts {
		records[i] = DebtRecord{Debt: d}
	}
	return Create(records, nil)
}
