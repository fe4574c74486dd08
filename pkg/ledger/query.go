package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/adigitale/carnet/pkg/models"
)

// StatusFilter selects a status bucket. FilterAll means "not fully paid":
// everything still owed, whatever its exact status.
type StatusFilter string

const (
	FilterAll         StatusFilter = "ALL"
	FilterActive      StatusFilter = "ACTIVE"
	FilterContentious StatusFilter = "CONTENTIOUS"
	FilterPaid        StatusFilter = "PAID"
)

// Sort orders a query result. The default, oldest opening date first,
// surfaces the most overdue debts at the top.
type Sort string

const (
	SortDateAsc       Sort = "date-asc"
	SortDateDesc      Sort = "date-desc"
	SortAmountDesc    Sort = "amount-desc"
	SortAmountAsc     Sort = "amount-asc"
	SortCreditDateAsc Sort = "date-credit-asc"
	SortCreditDateDec Sort = "date-credit-desc"
)

// Filter composes, by logical AND, a status bucket, a free-text search,
// and an inclusive opening-date range. Zero values mean "no constraint"
// (an empty Status behaves like FilterAll).
type Filter struct {
	Status StatusFilter
	Search string

	// From and To bound OpenedAt inclusively; To covers its whole
	// calendar day. Zero times leave the corresponding side open.
	From time.Time
	To   time.Time
}

func (f Filter) matchStatus(d *models.Debt) bool {
	switch f.Status {
	case FilterPaid:
		return d.IsPaid()
	case FilterActive:
		return d.Status == models.StatusActive
	case FilterContentious:
		return d.Status == models.StatusContentious
	default: // FilterAll
		return !d.IsPaid()
	}
}

func (f Filter) matchSearch(d *models.Debt) bool {
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(d.CustomerName), needle) ||
		strings.Contains(d.Phone, needle) ||
		strings.Contains(d.OpenedAt.Format("2006-01-02"), needle) {
		return true
	}
	for _, tx := range d.Transactions {
		if tx.Note != "" && strings.Contains(strings.ToLower(tx.Note), needle) {
			return true
		}
	}
	return false
}

func (f Filter) matchDates(d *models.Debt) bool {
	if !f.From.IsZero() && d.OpenedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !d.OpenedAt.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (f Filter) match(d *models.Debt) bool {
	return f.matchStatus(d) && f.matchSearch(d) && f.matchDates(d)
}

// Query returns a filtered, sorted snapshot of the collection. It never
// mutates the ledger and is safe to call repeatedly. Ties keep their prior
// relative order (stable sort), so the head-insertion on create makes
// equal sort keys most-recent-first.
func (l *Ledger) Query(f Filter, by Sort) []*models.Debt {
	out := make([]*models.Debt, 0, len(l.debts))
	for _, d := range l.debts {
		if f.match(d) {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch by {
		case SortDateDesc:
			return a.OpenedAt.After(b.OpenedAt)
		case SortAmountDesc:
			return a.Balance > b.Balance
		case SortAmountAsc:
			return a.Balance < b.Balance
		case SortCreditDateAsc:
			return a.FirstCreditAt().Before(b.FirstCreditAt())
		case SortCreditDateDec:
			return a.FirstCreditAt().After(b.FirstCreditAt())
		default: // SortDateAsc
			return a.OpenedAt.Before(b.OpenedAt)
		}
	})
	return out
}

// Totals sums balance and count over every debt not fully paid.
func (l *Ledger) Totals() (totalOutstanding float64, countOutstanding int) {
	for _, d := range l.debts {
		if d.IsPaid() {
			continue
		}
		totalOutstanding += d.Balance
		countOutstanding++
	}
	return totalOutstanding, countOutstanding
}

// Stats aggregates one calendar day of activity.
type Stats struct {
	Collected float64 // PAYMENT amounts dated that day
	Credited  float64 // CREDIT amounts dated that day
}

// DailyStats recomputes the day's totals from the full transaction
// history of every debt. The match is a calendar-day comparison in ref's
// location, not a rolling 24-hour window.
func (l *Ledger) DailyStats(ref time.Time) Stats {
	var s Stats
	refY, refM, refD := ref.Date()
	for _, d := range l.debts {
		for _, tx := range d.Transactions {
			y, m, day := tx.OccurredAt.In(ref.Location()).Date()
			if y != refY || m != refM || day != refD {
				continue
			}
			switch tx.Kind {
			case models.KindPayment:
				s.Collected += tx.Amount
			case models.KindCredit:
				s.Credited += tx.Amount
			}
		}
	}
	return s
}
