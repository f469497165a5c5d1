package calc

import (
	"errors"
	"testing"

	"github.com/neofit/paycalc_backend/models"
)

func TestApprove_WrongPasswordLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	cfg := testEngineConfig()
	record := models.DailyRecord{Date: "2025-03-01", Amount: 100000}

	updated, err := Approve(record, "wrong", cfg, "admin@neofit.com")
	if !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	if updated.Approved {
		t.Fatalf("record approved despite wrong password")
	}
}

func TestApprove_SetsStateAndAudit(t *testing.T) {
	t.Parallel()

	cfg := testEngineConfig()
	record := models.DailyRecord{Date: "2025-03-01", Amount: 100000}

	updated, err := Approve(record, cfg.AdminPassword, cfg, "admin@neofit.com")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !updated.Approved {
		t.Fatalf("record not approved")
	}
	if updated.ApprovedBy != "admin@neofit.com" || updated.ApprovedAt == nil {
		t.Fatalf("audit fields not set: by=%q at=%v", updated.ApprovedBy, updated.ApprovedAt)
	}
	if record.Approved {
		t.Fatalf("input record mutated")
	}
}

func TestUnlock_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testEngineConfig()
	record := models.DailyRecord{Date: "2025-03-02", Amount: 50000}

	approved, err := Approve(record, cfg.AdminPassword, cfg, "admin@neofit.com")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if _, err := Unlock(approved, "nope", cfg, "admin@neofit.com"); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}

	unlocked, err := Unlock(approved, cfg.AdminPassword, cfg, "admin@neofit.com")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if unlocked.Approved {
		t.Fatalf("record still approved after unlock")
	}
	if unlocked.ModifiedBy != "admin@neofit.com" || unlocked.ModifiedAt == nil {
		t.Fatalf("audit fields not set on unlock")
	}
}

func TestAddDetail_RecomputesAmount(t *testing.T) {
	t.Parallel()

	record := models.EmptyDailyRecord("2025-03-03")

	updated, err := AddDetail(record, models.SaleDetail{ID: "a", CustomerName: "김민수", Product: "헬스권", Price: 150000})
	if err != nil {
		t.Fatalf("AddDetail: %v", err)
	}
	updated, err = AddDetail(updated, models.SaleDetail{ID: "b", CustomerName: "이서연", Product: "PT 10회", Price: 500000})
	if err != nil {
		t.Fatalf("AddDetail: %v", err)
	}

	if len(updated.Details) != 2 {
		t.Fatalf("detail count = %d, want 2", len(updated.Details))
	}
	if updated.Amount != 650000 {
		t.Fatalf("amount = %v, want 650000", updated.Amount)
	}
	if len(record.Details) != 0 {
		t.Fatalf("input record details mutated")
	}
}

func TestAddDetail_RejectedWhileApproved(t *testing.T) {
	t.Parallel()

	record := models.DailyRecord{Date: "2025-03-04", Amount: 100000, Approved: true}
	if _, err := AddDetail(record, models.SaleDetail{ID: "a", Price: 10000}); !errors.Is(err, ErrRecordLocked) {
		t.Fatalf("expected ErrRecordLocked, got %v", err)
	}
}

func TestRemoveDetail(t *testing.T) {
	t.Parallel()

	record := models.DailyRecord{
		Date:   "2025-03-05",
		Amount: 650000,
		Details: []models.SaleDetail{
			{ID: "a", Price: 150000},
			{ID: "b", Price: 500000},
		},
	}

	updated, err := RemoveDetail(record, "a")
	if err != nil {
		t.Fatalf("RemoveDetail: %v", err)
	}
	if len(updated.Details) != 1 || updated.Details[0].ID != "b" {
		t.Fatalf("unexpected details after remove: %+v", updated.Details)
	}
	if updated.Amount != 500000 {
		t.Fatalf("amount = %v, want 500000", updated.Amount)
	}

	// Unknown id is a no-op.
	same, err := RemoveDetail(updated, "zzz")
	if err != nil {
		t.Fatalf("RemoveDetail(unknown): %v", err)
	}
	if len(same.Details) != 1 || same.Amount != 500000 {
		t.Fatalf("no-op remove changed the record: %+v", same)
	}

	locked := models.DailyRecord{Date: "2025-03-06", Approved: true, Details: []models.SaleDetail{{ID: "a"}}}
	if _, err := RemoveDetail(locked, "a"); !errors.Is(err, ErrRecordLocked) {
		t.Fatalf("expected ErrRecordLocked, got %v", err)
	}
}

func TestAddDetail_NormalizesPrice(t *testing.T) {
	t.Parallel()

	record := models.EmptyDailyRecord("2025-03-07")
	updated, err := AddDetail(record, models.SaleDetail{ID: "a", Price: 99000.0})
	if err != nil {
		t.Fatalf("AddDetail: %v", err)
	}
	if updated.Details[0].Price != 99000 || updated.Amount != 99000 {
		t.Fatalf("price/amount = %v/%v, want 99000/99000", updated.Details[0].Price, updated.Amount)
	}
}
