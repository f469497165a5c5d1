// models/sales.go
package models

import "time"

// DateKeyLayout is the calendar-day key format used as the document id and
// for lexicographic range queries on the sales collection.
const DateKeyLayout = "2006-01-02"

// SaleDetail is one itemized sale recorded by staff.
type SaleDetail struct {
	ID           string  `json:"id" bson:"id"`
	CustomerName string  `json:"customerName" bson:"customerName"`
	Product      string  `json:"product" bson:"product"`
	Price        float64 `json:"price" bson:"price"`
	Category     string  `json:"category,omitempty" bson:"category,omitempty"`
	Timestamp    string  `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

// DailyRecord is one calendar day's sales summary. Amount is the
// authoritative settled total; Details inform the category breakdown only
// and are not required to sum to Amount.
type DailyRecord struct {
	Date       string       `json:"date" bson:"_id"`
	Amount     float64      `json:"amount" bson:"amount"`
	Approved   bool         `json:"approved" bson:"approved"`
	Details    []SaleDetail `json:"details" bson:"details"`
	CreatedBy  string       `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	ApprovedBy string       `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt *time.Time   `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	ModifiedBy string       `json:"modifiedBy,omitempty" bson:"modifiedBy,omitempty"`
	ModifiedAt *time.Time   `json:"modifiedAt,omitempty" bson:"modifiedAt,omitempty"`
}

// EmptyDailyRecord is the implicit record for a date with no stored
// document: zero amount, pending, no details.
func EmptyDailyRecord(dateKey string) DailyRecord {
	return DailyRecord{
		Date:     dateKey,
		Amount:   0,
		Approved: false,
		Details:  []SaleDetail{},
	}
}

// AddSaleDetailRequest is the payload for adding a line item to a day.
type AddSaleDetailRequest struct {
	CustomerName string  `json:"customerName" validate:"required"`
	Product      string  `json:"product" validate:"required"`
	Price        float64 `json:"price" validate:"gt=0"`
	Category     string  `json:"category,omitempty"`
}

// ApprovalRequest carries the shared admin password for approve/unlock.
type ApprovalRequest struct {
	Password string `json:"password" validate:"required"`
}

// RepairResult reports one rewritten document from the amount-repair pass.
type RepairResult struct {
	Date      string  `json:"date"`
	OldAmount float64 `json:"oldAmount"`
	NewAmount float64 `json:"newAmount"`
}
