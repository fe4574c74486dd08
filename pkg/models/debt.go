package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind is the accounting side of a ledger entry.
type TransactionKind string

const (
	KindCredit  TransactionKind = "CREDIT"
	KindPayment TransactionKind = "PAYMENT"
)

// Status is the lifecycle state of a debt. PAID is terminal.
type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusContentious Status = "CONTENTIOUS"
	StatusPaid        Status = "PAID"
)

// Transaction is a single dated entry in a debt's history. Entries are
// immutable and append-only; a debt is deleted whole, never trimmed.
type Transaction struct {
	ID         string          `json:"id"`
	Kind       TransactionKind `json:"type"`
	Amount     float64         `json:"amount"`
	OccurredAt time.Time       `json:"date"`
	Note       string          `json:"description,omitempty"`
}

// NewTransaction builds a transaction with a fresh id.
func NewTransaction(kind TransactionKind, amount float64, occurredAt time.Time, note string) Transaction {
	return Transaction{
		ID:         uuid.New().String(),
		Kind:       kind,
		Amount:     amount,
		OccurredAt: occurredAt,
		Note:       note,
	}
}

// Location is an optional coordinate pair captured once, at creation.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Debt is a customer's outstanding balance plus its transaction history.
type Debt struct {
	ID           string        `json:"id"`
	CustomerName string        `json:"name"`
	Phone        string        `json:"phone"`
	Balance      float64       `json:"balance"`
	OpenedAt     time.Time     `json:"date"`
	Status       Status        `json:"status"`
	Location     *Location     `json:"location,omitempty"`
	Transactions []Transaction `json:"transactions"`

	// LegacyPaid mirrors the isPaid boolean written by older records.
	// Read for migration only; Normalize clears it so it is never
	// serialized again.
	LegacyPaid bool `json:"isPaid,omitempty"`
}

// ComputedBalance derives the balance from the transaction history:
// max(0, sum(CREDIT) - sum(PAYMENT)).
func (d *Debt) ComputedBalance() float64 {
	var sum float64
	for _, tx := range d.Transactions {
		switch tx.Kind {
		case KindCredit:
			sum += tx.Amount
		case KindPayment:
			sum -= tx.Amount
		}
	}
	if sum < 0 {
		return 0
	}
	return sum
}

// Normalize reconciles a record loaded from storage. Older records carry
// an isPaid boolean and may lack a status; the status enum wins wherever
// both are present. The cached balance is recomputed from the history.
func (d *Debt) Normalize() {
	if len(d.Transactions) > 0 {
		d.Balance = d.ComputedBalance()
	}
	if d.Status == "" {
		if d.LegacyPaid || d.Balance <= 0 {
			d.Status = StatusPaid
		} else {
			d.Status = StatusActive
		}
	}
	if d.Balance <= 0 {
		d.Status = StatusPaid
	}
	d.LegacyPaid = false
}

// IsPaid reports whether the debt is fully settled, honouring both the
// status enum and the legacy boolean for records not yet normalized.
func (d *Debt) IsPaid() bool {
	return d.Status == StatusPaid || d.LegacyPaid
}

// FirstCreditAt returns the date of the opening credit, falling back to
// the debt's opening date when the history is missing one.
func (d *Debt) FirstCreditAt() time.Time {
	for _, tx := range d.Transactions {
		if tx.Kind == KindCredit {
			return tx.OccurredAt
		}
	}
	return d.OpenedAt
}

// DaysSince returns the whole days elapsed between the opening date and
// ref, clamped at zero for future-dated debts.
func (d *Debt) DaysSince(ref time.Time) int {
	days := int(ref.Sub(d.OpenedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
