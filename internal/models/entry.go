package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and form format of Entry.Date.
const DateLayout = "2006-01-02"

// Status classifies who an entry belongs to.
type Status string

const (
	StatusBusiness Status = "business"
	StatusPersonal Status = "personal"
	StatusTax      Status = "tax"
)

// Statuses lists every accepted Status in display order.
var Statuses = []Status{StatusBusiness, StatusPersonal, StatusTax}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusBusiness, StatusPersonal, StatusTax:
		return true
	}
	return false
}

// EntryType tells income from expense.
type EntryType string

const (
	TypeIncome  EntryType = "income"
	TypeExpense EntryType = "expense"
)

// EntryTypes lists every accepted EntryType in display order.
var EntryTypes = []EntryType{TypeIncome, TypeExpense}

func (t EntryType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Entry is one cash flow record.
// Date is always UTC midnight; Amount carries two decimal places.
type Entry struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Date        time.Time       `gorm:"type:date;index;not null"`
	Status      Status          `gorm:"size:32;index;not null"`
	Type        EntryType       `gorm:"size:32;index;not null"`
	Category    string          `gorm:"size:64;index;index:idx_entries_cat_subcat,priority:1;not null"`
	Subcategory string          `gorm:"size:64;index;index:idx_entries_cat_subcat,priority:2;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null;check:amount_non_negative,CAST(amount AS NUMERIC) >= 0"`
	Comment     *string         `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Entry) TableName() string {
	return "entries"
}

// DateString formats the entry date as YYYY-MM-DD.
func (e *Entry) DateString() string {
	return e.Date.Format(DateLayout)
}

// CommentText returns the comment or "" when unset.
func (e *Entry) CommentText() string {
	if e.Comment == nil {
		return ""
	}
	return *e.Comment
}
