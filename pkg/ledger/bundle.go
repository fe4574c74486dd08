package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/adigitale/carnet/pkg/models"
)

// Bundle is the full persisted state: the debt collection plus the
// merchant configuration, exported as one JSON document.
type Bundle struct {
	Debts    []*models.Debt         `json:"debts"`
	Merchant *models.MerchantConfig `json:"merchant,omitempty"`
}

// ExportBundle serializes the entire state for backup. Pure read.
func (l *Ledger) ExportBundle() ([]byte, error) {
	b := Bundle{Debts: l.debts}

	merchant, err := l.Merchant()
	if err != nil {
		return nil, err
	}
	if merchant != (models.MerchantConfig{}) {
		b.Merchant = &merchant
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize bundle: %w", err)
	}
	return data, nil
}

// ImportBundle replaces the whole state with the bundle's content.
// All-or-nothing: the bundle is validated before anything is touched, and
// a rejected import leaves memory and storage as they were.
func (l *Ledger) ImportBundle(data []byte) error {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("%w: bundle: %v", models.ErrCorruptData, err)
	}

	seen := make(map[string]bool, len(b.Debts))
	for _, d := range b.Debts {
		if d.ID == "" {
			return fmt.Errorf("%w: bundle contains a debt without id", models.ErrInvalidInput)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate debt id %s in bundle", models.ErrInvalidInput, d.ID)
		}
		seen[d.ID] = true
	}

	for _, d := range b.Debts {
		d.Normalize()
	}
	l.debts = b.Debts
	l.logger.Info("bundle imported", "debts", len(b.Debts))

	if err := l.persist(); err != nil {
		return err
	}
	if b.Merchant != nil {
		return l.SetMerchant(*b.Merchant)
	}
	return nil
}
