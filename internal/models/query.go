package models

import "time"

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Filter narrows a listing. Nil or empty criteria impose no constraint;
// DateFrom and DateTo are inclusive.
type Filter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	Status      Status
	Type        EntryType
	Category    string
	Subcategory string
}

// Page bounds a listing ordered by date desc, id desc.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage is used when the caller gives no pagination.
func DefaultPage() Page {
	return Page{Limit: DefaultLimit}
}

// ListQuery is a filter plus the page to return.
type ListQuery struct {
	Filter
	Page
}

// Summary aggregates the amounts matching a filter.
type Summary struct {
	Count   int64
	Income  Money
	Expense Money
}

// Balance is income minus expense.
func (s Summary) Balance() Money {
	return Money{s.Income.Sub(s.Expense.Decimal)}
}
