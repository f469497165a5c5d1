// calc/approval.go
package calc

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/neofit/paycalc_backend/models"
)

var (
	// ErrIncorrectPassword rejects an approval transition with the wrong
	// shared admin password. Retryable.
	ErrIncorrectPassword = errors.New("incorrect credential")

	// ErrRecordLocked rejects detail mutations on an approved day. The
	// caller must unlock the record first.
	ErrRecordLocked = errors.New("record is locked")
)

// checkAdminPassword gates every approval-state transition.
func checkAdminPassword(password string, cfg models.EngineConfig) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) != 1 {
		return ErrIncorrectPassword
	}
	return nil
}

// cloneRecord copies a record together with its detail slice, so mutation
// operations never alias the caller's snapshot.
func cloneRecord(record models.DailyRecord) models.DailyRecord {
	record.Details = append([]models.SaleDetail(nil), record.Details...)
	return record
}

// Approve transitions a pending record to approved. On a wrong password the
// input record is returned unchanged alongside ErrIncorrectPassword.
func Approve(record models.DailyRecord, password string, cfg models.EngineConfig, approvedBy string) (models.DailyRecord, error) {
	if err := checkAdminPassword(password, cfg); err != nil {
		return record, err
	}

	updated := cloneRecord(record)
	now := time.Now()
	updated.Approved = true
	updated.ApprovedBy = approvedBy
	updated.ApprovedAt = &now
	return updated, nil
}

// Unlock transitions an approved record back to pending so its details can
// be edited again. Gated by the same password check as Approve.
func Unlock(record models.DailyRecord, password string, cfg models.EngineConfig, modifiedBy string) (models.DailyRecord, error) {
	if err := checkAdminPassword(password, cfg); err != nil {
		return record, err
	}

	updated := cloneRecord(record)
	now := time.Now()
	updated.Approved = false
	updated.ModifiedBy = modifiedBy
	updated.ModifiedAt = &now
	return updated, nil
}

// AddDetail appends a line item to a pending record and recomputes the
// settled amount as the sum of normalized detail prices. Approved records
// reject the mutation before it can reach storage.
func AddDetail(record models.DailyRecord, detail models.SaleDetail) (models.DailyRecord, error) {
	if record.Approved {
		return record, ErrRecordLocked
	}

	updated := cloneRecord(record)
	detail.Price = NormalizeAmount(detail.Price)
	updated.Details = append(updated.Details, detail)
	updated.Amount = sumDetailPrices(updated.Details)
	return updated, nil
}

// RemoveDetail drops a line item by id from a pending record and recomputes
// the settled amount. Removing an unknown id is a no-op, not an error.
func RemoveDetail(record models.DailyRecord, detailID string) (models.DailyRecord, error) {
	if record.Approved {
		return record, ErrRecordLocked
	}

	updated := cloneRecord(record)
	kept := updated.Details[:0]
	for _, detail := range updated.Details {
		if detail.ID != detailID {
			kept = append(kept, detail)
		}
	}
	updated.Details = kept
	updated.Amount = sumDetailPrices(updated.Details)
	return updated, nil
}

func sumDetailPrices(details []models.SaleDetail) float64 {
	sum := 0.0
	for _, detail := range details {
		sum += NormalizeAmount(detail.Price)
	}
	return sum
}
