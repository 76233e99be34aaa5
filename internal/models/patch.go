package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryInput is the create payload as decoded from JSON.
type EntryInput struct {
	Date        string           `json:"date"`
	Status      Status           `json:"status"`
	Type        EntryType        `json:"type"`
	Category    string           `json:"category"`
	Subcategory string           `json:"subcategory"`
	Amount      *decimal.Decimal `json:"amount"`
	Comment     *string          `json:"comment"`
}

// EntryPatch is the sparse update payload as decoded from JSON.
// Keys missing from the document stay unset.
type EntryPatch struct {
	Date        Optional[string]          `json:"date"`
	Status      Optional[Status]          `json:"status"`
	Type        Optional[EntryType]       `json:"type"`
	Category    Optional[string]          `json:"category"`
	Subcategory Optional[string]          `json:"subcategory"`
	Amount      Optional[decimal.Decimal] `json:"amount"`
	Comment     Optional[string]          `json:"comment"`
}

// EntryUpdate is a validated EntryPatch. Only Comment may be Null.
type EntryUpdate struct {
	Date        Optional[time.Time]
	Status      Optional[Status]
	Type        Optional[EntryType]
	Category    Optional[string]
	Subcategory Optional[string]
	Amount      Optional[decimal.Decimal]
	Comment     Optional[string]
}

// Columns returns the table columns the update touches.
func (u EntryUpdate) Columns() []string {
	var cols []string
	if u.Date.Set {
		cols = append(cols, "date")
	}
	if u.Status.Set {
		cols = append(cols, "status")
	}
	if u.Type.Set {
		cols = append(cols, "type")
	}
	if u.Category.Set {
		cols = append(cols, "category")
	}
	if u.Subcategory.Set {
		cols = append(cols, "subcategory")
	}
	if u.Amount.Set {
		cols = append(cols, "amount")
	}
	if u.Comment.Set {
		cols = append(cols, "comment")
	}
	return cols
}

// Empty reports whether the update changes nothing.
func (u EntryUpdate) Empty() bool {
	return len(u.Columns()) == 0
}

// Apply overwrites the fields present in u and leaves the rest of e alone.
func (u EntryUpdate) Apply(e *Entry) {
	if u.Date.Set {
		e.Date = u.Date.Value
	}
	if u.Status.Set {
		e.Status = u.Status.Value
	}
	if u.Type.Set {
		e.Type = u.Type.Value
	}
	if u.Category.Set {
		e.Category = u.Category.Value
	}
	if u.Subcategory.Set {
		e.Subcategory = u.Subcategory.Value
	}
	if u.Amount.Set {
		e.Amount = u.Amount.Value
	}
	if u.Comment.Set {
		if u.Comment.Null {
			e.Comment = nil
		} else {
			c := u.Comment.Value
			e.Comment = &c
		}
	}
}
