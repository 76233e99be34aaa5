package util

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"cashflow/internal/models"

	"github.com/shopspring/decimal"
)

const (
	MaxLabelLen   = 64
	MaxCommentLen = 512
)

// maxAmount is the first value that no longer fits numeric(12,2).
var maxAmount = decimal.New(1, 10)

// ValidateAmount checks that amount is non-negative and fits the column,
// and returns it rounded to cents.
func ValidateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must be greater than or equal to 0, got %s", amount)
	}
	amount = amount.Round(2)
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount too large, got %s", amount)
	}
	return amount, nil
}

// ParseDate parses a YYYY-MM-DD date into UTC midnight.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.ParseInLocation(models.DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

// ValidateLabel trims a category or subcategory and checks its length.
func ValidateLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("must not be empty")
	}
	if n := utf8.RuneCountInString(label); n > MaxLabelLen {
		return "", fmt.Errorf("too long, max %d characters", MaxLabelLen)
	}
	return label, nil
}

func ValidateComment(comment string) error {
	if utf8.RuneCountInString(comment) > MaxCommentLen {
		return fmt.Errorf("too long, max %d characters", MaxCommentLen)
	}
	return nil
}

func validateStatus(s models.Status) error {
	if !s.Valid() {
		return fmt.Errorf("must be one of business, personal, tax")
	}
	return nil
}

func validateType(t models.EntryType) error {
	if !t.Valid() {
		return fmt.Errorf("must be one of income, expense")
	}
	return nil
}

// ValidateEntry checks a create payload and builds the entry to insert.
func ValidateEntry(in models.EntryInput) (*models.Entry, error) {
	verr := &ValidationError{}
	e := &models.Entry{Status: in.Status, Type: in.Type}

	if d, err := ParseDate(in.Date); err != nil {
		verr.Add("date", err.Error())
	} else {
		e.Date = d
	}
	if err := validateStatus(in.Status); err != nil {
		verr.Add("status", err.Error())
	}
	if err := validateType(in.Type); err != nil {
		verr.Add("type", err.Error())
	}
	if v, err := ValidateLabel(in.Category); err != nil {
		verr.Add("category", err.Error())
	} else {
		e.Category = v
	}
	if v, err := ValidateLabel(in.Subcategory); err != nil {
		verr.Add("subcategory", err.Error())
	} else {
		e.Subcategory = v
	}
	if in.Amount == nil {
		verr.Add("amount", "is required")
	} else if a, err := ValidateAmount(*in.Amount); err != nil {
		verr.Add("amount", err.Error())
	} else {
		e.Amount = a
	}
	if in.Comment != nil {
		if err := ValidateComment(*in.Comment); err != nil {
			verr.Add("comment", err.Error())
		} else {
			c := *in.Comment
			e.Comment = &c
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// ValidatePatch applies the creation rules to every field present in p.
// Nothing is returned unless all of them pass.
func ValidatePatch(p models.EntryPatch) (models.EntryUpdate, error) {
	verr := &ValidationError{}
	var u models.EntryUpdate

	if p.Date.Set {
		if p.Date.Null {
			verr.Add("date", "may not be null")
		} else if d, err := ParseDate(p.Date.Value); err != nil {
			verr.Add("date", err.Error())
		} else {
			u.Date = models.Some(d)
		}
	}
	if p.Status.Set {
		if p.Status.Null {
			verr.Add("status", "may not be null")
		} else if err := validateStatus(p.Status.Value); err != nil {
			verr.Add("status", err.Error())
		} else {
			u.Status = models.Some(p.Status.Value)
		}
	}
	if p.Type.Set {
		if p.Type.Null {
			verr.Add("type", "may not be null")
		} else if err := validateType(p.Type.Value); err != nil {
			verr.Add("type", err.Error())
		} else {
			u.Type = models.Some(p.Type.Value)
		}
	}
	if p.Category.Set {
		if p.Category.Null {
			verr.Add("category", "may not be null")
		} else if v, err := ValidateLabel(p.Category.Value); err != nil {
			verr.Add("category", err.Error())
		} else {
			u.Category = models.Some(v)
		}
	}
	if p.Subcategory.Set {
		if p.Subcategory.Null {
			verr.Add("subcategory", "may not be null")
		} else if v, err := ValidateLabel(p.Subcategory.Value); err != nil {
			verr.Add("subcategory", err.Error())
		} else {
			u.Subcategory = models.Some(v)
		}
	}
	if p.Amount.Set {
		if p.Amount.Null {
			verr.Add("amount", "may not be null")
		} else if a, err := ValidateAmount(p.Amount.Value); err != nil {
			verr.Add("amount", err.Error())
		} else {
			u.Amount = models.Some(a)
		}
	}
	if p.Comment.Set {
		if p.Comment.Null {
			u.Comment = models.Optional[string]{Set: true, Null: true}
		} else if err := ValidateComment(p.Comment.Value); err != nil {
			verr.Add("comment", err.Error())
		} else {
			u.Comment = models.Some(p.Comment.Value)
		}
	}

	if err := verr.Err(); err != nil {
		return models.EntryUpdate{}, err
	}
	return u, nil
}

// ValidateFilter rejects unknown tags in a listing filter.
func ValidateFilter(f models.Filter) error {
	verr := &ValidationError{}
	if f.Status != "" {
		if err := validateStatus(f.Status); err != nil {
			verr.Add("status", err.Error())
		}
	}
	if f.Type != "" {
		if err := validateType(f.Type); err != nil {
			verr.Add("type", err.Error())
		}
	}
	return verr.Err()
}

// ValidatePage checks pagination bounds.
func ValidatePage(p models.Page) error {
	verr := &ValidationError{}
	if p.Limit < 1 || p.Limit > models.MaxLimit {
		verr.Add("limit", fmt.Sprintf("must be between 1 and %d", models.MaxLimit))
	}
	if p.Offset < 0 {
		verr.Add("offset", "must be greater than or equal to 0")
	}
	return verr.Err()
}

// ValidateListQuery checks both the filter and the page of q.
func ValidateListQuery(q models.ListQuery) error {
	verr := &ValidationError{}
	if err := ValidateFilter(q.Filter); err != nil {
		verr.Fields = append(verr.Fields, err.(*ValidationError).Fields...)
	}
	if err := ValidatePage(q.Page); err != nil {
		verr.Fields = append(verr.Fields, err.(*ValidationError).Fields...)
	}
	return verr.Err()
}
