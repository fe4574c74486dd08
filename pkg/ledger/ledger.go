// Package ledger owns the debt collection and every operation that
// creates, mutates, or reads it. UI layers hold a *Ledger and go through
// its methods; they never touch the store directly.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/adigitale/carnet/pkg/models"
	"github.com/adigitale/carnet/pkg/store"
)

// Ledger is an in-memory collection of debts with write-through
// persistence: the full collection is re-serialized to the store after
// every mutation. Single-user, single-goroutine by design.
type Ledger struct {
	debts  []*models.Debt
	kv     store.KV
	logger *log.Logger
}

// New builds a ledger over the given store. Call Load before use.
func New(kv store.KV, logger *log.Logger) *Ledger {
	return &Ledger{kv: kv, logger: logger}
}

// Load reads the debt collection from storage. A missing key yields an
// empty collection; unparsable data is logged and replaced by an empty
// collection rather than crashing the session.
func (l *Ledger) Load() error {
	data, ok, err := l.kv.Get(store.KeyDebts)
	if err != nil {
		return fmt.Errorf("failed to load debts: %w", err)
	}
	if !ok {
		l.debts = nil
		return nil
	}

	var debts []*models.Debt
	if err := json.Unmarshal(data, &debts); err != nil {
		l.logger.Error("stored debts are unreadable, starting empty",
			"key", store.KeyDebts, "error", fmt.Errorf("%w: %v", models.ErrCorruptData, err))
		l.debts = nil
		return nil
	}

	for _, d := range debts {
		d.Normalize()
	}
	l.debts = debts
	l.logger.Debug("loaded debts", "count", len(debts))
	return nil
}

// persist writes the whole collection back to the store. On failure the
// in-memory state stays authoritative; the caller gets a warning-grade
// error wrapping models.ErrPersistence.
func (l *Ledger) persist() error {
	data, err := json.Marshal(l.debts)
	if err != nil {
		return fmt.Errorf("%w: marshal debts: %v", models.ErrPersistence, err)
	}
	if err := l.kv.Set(store.KeyDebts, data); err != nil {
		l.logger.Warn("write-through failed, changes may not survive reload", "error", err)
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

// CreateInput carries the fields of a new debt. Note and Location are
// optional.
type CreateInput struct {
	Name     string
	Amount   float64
	OpenedAt time.Time
	Phone    string
	Note     string
	Location *models.Location
}

// Create opens a new debt with a single CREDIT transaction dated at the
// opening date. The debt is inserted at the head of the collection so the
// newest record wins ties under the default sort.
func (l *Ledger) Create(in CreateInput) (*models.Debt, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", models.ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}

	d := &models.Debt{
		ID:           uuid.New().String(),
		CustomerName: in.Name,
		Phone:        in.Phone,
		Balance:      in.Amount,
		OpenedAt:     in.OpenedAt,
		Status:       models.StatusActive,
		Location:     in.Location,
		Transactions: []models.Transaction{
			models.NewTransaction(models.KindCredit, in.Amount, in.OpenedAt, in.Note),
		},
	}

	l.debts = append([]*models.Debt{d}, l.debts...)
	l.logger.Info("debt created", "id", d.ID, "customer", d.CustomerName, "amount", in.Amount)
	return d, l.persist()
}

// RecordPayment appends a PAYMENT dated now. Overpayment clamps the
// balance at zero; a zero balance flips the status to PAID, overriding a
// contentious flag.
func (l *Ledger) RecordPayment(id string, amount float64, note string) (*models.Debt, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment must be positive", models.ErrInvalidInput)
	}
	d, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	d.Transactions = append(d.Transactions,
		models.NewTransaction(models.KindPayment, amount, time.Now(), note))
	d.Balance -= amount
	if d.Balance <= 0 {
		d.Balance = 0
		d.Status = models.StatusPaid
	}

	l.logger.Info("payment recorded", "id", d.ID, "amount", amount, "balance", d.Balance)
	return d, l.persist()
}

// ToggleContentious flips a debt between ACTIVE and CONTENTIOUS. A paid
// debt cannot be disputed: the call is rejected with ErrInvalidState
// rather than being an inert toggle, so stale bulk selections surface.
func (l *Ledger) ToggleContentious(id string) (*models.Debt, error) {
	d, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	switch d.Status {
	case models.StatusPaid:
		return nil, fmt.Errorf("%w: paid debt cannot be disputed", models.ErrInvalidState)
	case models.StatusContentious:
		d.Status = models.StatusActive
	default:
		d.Status = models.StatusContentious
	}

	l.logger.Info("status toggled", "id", d.ID, "status", d.Status)
	return d, l.persist()
}

// Delete removes a debt. Deleting an absent id is a no-op.
func (l *Ledger) Delete(id string) error {
	return l.DeleteMany([]string{id})
}

// DeleteMany removes every matching debt unconditionally. Missing ids are
// tolerated silently so a stale bulk selection can be deleted as-is.
func (l *Ledger) DeleteMany(ids []string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := l.debts[:0]
	removed := 0
	for _, d := range l.debts {
		if drop[d.ID] {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	l.debts = kept

	if removed == 0 {
		return nil
	}
	l.logger.Info("debts deleted", "count", removed)
	return l.persist()
}

// Get returns the debt with the given id.
func (l *Ledger) Get(id string) (*models.Debt, error) {
	for _, d := range l.debts {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
}

// Merchant reads the merchant configuration from its own storage key. A
// missing record yields a zero config.
func (l *Ledger) Merchant() (models.MerchantConfig, error) {
	var cfg models.MerchantConfig
	data, ok, err := l.kv.Get(store.KeyMerchant)
	if err != nil {
		return cfg, fmt.Errorf("failed to load merchant config: %w", err)
	}
	if !ok {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: merchant config: %v", models.ErrCorruptData, err)
	}
	return cfg, nil
}

// SetMerchant replaces the merchant configuration.
func (l *Ledger) SetMerchant(cfg models.MerchantConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: marshal merchant config: %v", models.ErrPersistence, err)
	}
	if err := l.kv.Set(store.KeyMerchant, data); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}
