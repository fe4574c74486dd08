package ledger

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adigitale/carnet/pkg/models"
	"github.com/adigitale/carnet/pkg/store"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	l := New(kv, log.New(io.Discard))
	if err := l.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return l
}

func TestCreate(t *testing.T) {
	l := newTestLedger(t)

	d, err := l.Create(CreateInput{
		Name:     "Ahmed",
		Amount:   6000,
		OpenedAt: day("2024-01-01"),
		Phone:    "22244444444",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if d.Balance != 6000 {
		t.Errorf("expected balance 6000, got %.2f", d.Balance)
	}
	if d.Status != models.StatusActive {
		t.Errorf("expected status ACTIVE, got %s", d.Status)
	}
	if len(d.Transactions) != 1 {
		t.Fatalf("expected one opening transaction, got %d", len(d.Transactions))
	}
	tx := d.Transactions[0]
	if tx.Kind != models.KindCredit || tx.Amount != 6000 || !tx.OccurredAt.Equal(day("2024-01-01")) {
		t.Errorf("unexpected opening transaction: %+v", tx)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	l := newTestLedger(t)

	cases := []CreateInput{
		{Name: "", Amount: 100, Phone: "222"},
		{Name: "Ahmed", Amount: 0, Phone: "222"},
		{Name: "Ahmed", Amount: -5, Phone: "222"},
		{Name: "Ahmed", Amount: 100, Phone: ""},
	}
	for i, in := range cases {
		if _, err := l.Create(in); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if _, count := l.Totals(); count != 0 {
		t.Errorf("rejected creates must not mutate the collection, count=%d", count)
	}
}

func TestRecordPayment(t *testing.T) {
	l := newTestLedger(t)
	d, _ := l.Create(CreateInput{Name: "Ahmed", Amount: 6000, OpenedAt: day("2024-01-01"), Phone: "22244444444"})

	got, err := l.RecordPayment(d.ID, 500, "")
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if got.Balance != 5500 {
		t.Errorf("expected balance 5500, got %.2f", got.Balance)
	}
	if got.Status != models.StatusActive {
		t.Errorf("expected status ACTIVE, got %s", got.Status)
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(got.Transactions))
	}

	got, err = l.RecordPayment(d.ID, 5500, "solde")
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if got.Balance != 0 {
		t.Errorf("expected balance 0, got %.2f", got.Balance)
	}
	if got.Status != models.StatusPaid {
		t.Errorf("expected status PAID, got %s", got.Status)
	}

	// Balance invariant holds against the full history.
	if got.ComputedBalance() != got.Balance {
		t.Errorf("cached balance %.2f diverged from history %.2f", got.Balance, got.ComputedBalance())
	}
}

func TestRecordPaymentClampsOverpayment(t *testing.T) {
	l := newTestLedger(t)
	d, _ := l.Create(CreateInput{Name: "Mariem", Amount: 1000, OpenedAt: day("2024-02-01"), Phone: "22233333333"})

	got, err := l.RecordPayment(d.ID, 2500, "")
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if got.Balance != 0 {
		t.Errorf("expected clamped balance 0, got %.2f", got.Balance)
	}
	if got.Status != models.StatusPaid {
		t.Errorf("expected status PAID, got %s", got.Status)
	}
}

func TestRecordPaymentErrors(t *testing.T) {
	l := newTestLedger(t)
	d, _ := l.Create(CreateInput{Name: "Oumar", Amount: 1000, OpenedAt: day("2024-02-01"), Phone: "222"})

	if _, err := l.RecordPayment("no-such-id", 100, ""); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := l.RecordPayment(d.ID, 0, ""); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero amount, got %v", err)
	}
	if _, err := l.RecordPayment(d.ID, -50, ""); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative amount, got %v", err)
	}
}

func TestPaymentOverridesContentious(t *testing.T) {
	l := newTestLedger(t)
	d, _ := l.Create(CreateInput{Name: "Mariem", Amount: 1200, OpenedAt: day("2024-02-01"), Phone: "222"})

	got, err := l.ToggleContentious(d.ID)
	if err != nil {
		t.Fatalf("ToggleContentious failed: %v", err)
	}
	if got.Status != models.StatusContentious {
		t.Fatalf("expected status CONTENTIOUS, got %s", got.Status)
	}

	// Partial payments leave the dispute flag alone.
	got, _ = l.RecordPayment(d.ID, 200, "")
	if got.Status != models.StatusContentious {
		t.Errorf("partial payment must keep CONTENTIOUS, got %s", got.Status)
	}

	// Paying off the balance clears it.
	got, _ = l.RecordPayment(d.ID, 1000, "")
	if got.Status != models.StatusPaid {
		t.Errorf("expected status PAID, got %s", got.Status)
	}
}

func TestToggleContentious(t *testing.T) {
	l := newTestLedger(t)
	d, _ := l.Create(CreateInput{Name: "Oumar", Amount: 800, OpenedAt: day("2024-02-01"), Phone: "222"})

	got, _ := l.ToggleContentious(d.ID)
	if got.Status != models.StatusContentious {
		t.Errorf("expected CONTENTIOUS, got %s", got.Status)
	}
	got, _ = l.ToggleContentious(d.ID)
	if got.Status != models.StatusActive {
		t.Errorf("expected toggle back to ACTIVE, got %s", got.Status)
	}

	if _, err := l.ToggleContentious("missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	l.RecordPayment(d.ID, 800, "")
	if _, err := l.ToggleContentious(d.ID); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("disputing a paid debt: expected ErrInvalidState, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	l := newTestLedger(t)
	a, _ := l.Create(CreateInput{Name: "A", Amount: 100, OpenedAt: day("2024-01-01"), Phone: "1"})
	b, _ := l.Create(CreateInput{Name: "B", Amount: 200, OpenedAt: day("2024-01-02"), Phone: "2"})
	c, _ := l.Create(CreateInput{Name: "C", Amount: 300, OpenedAt: day("2024-01-03"), Phone: "3"})

	if err := l.Delete(b.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := l.Get(b.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("deleted debt still retrievable: %v", err)
	}
	for _, d := range l.Query(Filter{}, SortDateAsc) {
		if d.ID == b.ID {
			t.Error("deleted debt still present in query results")
		}
	}
	if total, count := l.Totals(); total != 400 || count != 2 {
		t.Errorf("expected totals (400, 2), got (%.2f, %d)", total, count)
	}

	// Bulk delete tolerates stale ids silently.
	if err := l.DeleteMany([]string{a.ID, c.ID, "already-gone"}); err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if total, count := l.Totals(); total != 0 || count != 0 {
		t.Errorf("expected empty totals, got (%.2f, %d)", total, count)
	}

	// Deleting from an empty ledger is a no-op, not an error.
	if err := l.Delete("missing"); err != nil {
		t.Errorf("delete of missing id: %v", err)
	}
}

func TestLoadReloadsPersistedState(t *testing.T) {
	dir := t.TempDir()
	kv, err := store.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	logger := log.New(io.Discard)

	l := New(kv, logger)
	l.Load()
	d, _ := l.Create(CreateInput{Name: "Ahmed", Amount: 6000, OpenedAt: day("2024-01-01"), Phone: "222"})
	l.RecordPayment(d.ID, 500, "premier versement")

	// A fresh ledger over the same store sees the same state.
	reloaded := New(kv, logger)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reloaded.Get(d.ID)
	if err != nil {
		t.Fatalf("Get after reload failed: %v", err)
	}
	if got.Balance != 5500 {
		t.Errorf("expected reloaded balance 5500, got %.2f", got.Balance)
	}
	if len(got.Transactions) != 2 {
		t.Errorf("expected 2 transactions after reload, got %d", len(got.Transactions))
	}
	if got.Transactions[1].Note != "premier versement" {
		t.Errorf("transaction note lost on reload: %+v", got.Transactions[1])
	}
}

func TestLoadFallsBackOnCorruptData(t *testing.T) {
	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := kv.Set(store.KeyDebts, []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	l := New(kv, log.New(io.Discard))
	if err := l.Load(); err != nil {
		t.Fatalf("Load must not fail on corrupt data: %v", err)
	}
	if _, count := l.Totals(); count != 0 {
		t.Errorf("expected empty fallback collection, got %d debts", count)
	}
}

// failingKV accepts reads but refuses writes, simulating quota exhaustion.
type failingKV struct{ store.KV }

func (f failingKV) Set(string, []byte) error { return errors.New("quota exceeded") }

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	l := New(failingKV{kv}, log.New(io.Discard))
	l.Load()

	d, err := l.Create(CreateInput{Name: "Ahmed", Amount: 100, OpenedAt: day("2024-01-01"), Phone: "222"})
	if !errors.Is(err, models.ErrPersistence) {
		t.Fatalf("expected ErrPersistence warning, got %v", err)
	}
	if d == nil {
		t.Fatal("mutation must still apply in memory")
	}
	if got, getErr := l.Get(d.ID); getErr != nil || got.Balance != 100 {
		t.Errorf("in-memory state lost after persistence failure: %v", getErr)
	}
}

func TestMerchantConfigRoundTrip(t *testing.T) {
	l := newTestLedger(t)

	cfg, err := l.Merchant()
	if err != nil {
		t.Fatalf("Merchant failed: %v", err)
	}
	if cfg != (models.MerchantConfig{}) {
		t.Errorf("expected zero config on fresh store, got %+v", cfg)
	}

	want := models.MerchantConfig{
		Name:     "Boutique Sidi",
		Phone:    "22240000000",
		WhatsApp: "22240000000",
		Address:  "Nouakchott",
	}
	if err := l.SetMerchant(want); err != nil {
		t.Fatalf("SetMerchant failed: %v", err)
	}
	got, err := l.Merchant()
	if err != nil {
		t.Fatalf("Merchant failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
