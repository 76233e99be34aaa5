package util

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"cashflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "0", want: "0.00"},
		{in: "0.01", want: "0.01"},
		{in: "1000", want: "1000.00"},
		{in: "12.345", want: "12.35"},
		{in: "9999999999.99", want: "9999999999.99"},
		{in: "-0.01", wantErr: true},
		{in: "-1000", wantErr: true},
		{in: "10000000000", wantErr: true},
		{in: "9999999999.999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidateAmount(dec(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2025-1-1", "01.01.2025", "2025-02-30", "2025-01-01T00:00:00Z", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateLabel(t *testing.T) {
	got, err := ValidateLabel("  DevOps\t")
	require.NoError(t, err)
	assert.Equal(t, "DevOps", got)

	got, err = ValidateLabel(strings.Repeat("я", MaxLabelLen))
	require.NoError(t, err)
	assert.Len(t, []rune(got), MaxLabelLen)

	_, err = ValidateLabel("")
	assert.Error(t, err)
	_, err = ValidateLabel(" \n\t ")
	assert.Error(t, err)
	_, err = ValidateLabel(strings.Repeat("x", MaxLabelLen+1))
	assert.Error(t, err)
}

func TestValidateComment(t *testing.T) {
	assert.NoError(t, ValidateComment(""))
	assert.NoError(t, ValidateComment(strings.Repeat("c", MaxCommentLen)))
	assert.Error(t, ValidateComment(strings.Repeat("c", MaxCommentLen+1)))
}

func TestValidateEntry(t *testing.T) {
	amount := dec("1000")
	comment := "Income test"

	e, err := ValidateEntry(models.EntryInput{
		Date:        "2025-01-01",
		Status:      models.StatusBusiness,
		Type:        models.TypeIncome,
		Category:    " DevOps ",
		Subcategory: "Servers",
		Amount:      &amount,
		Comment:     &comment,
	})
	require.NoError(t, err)
	assert.Zero(t, e.ID)
	assert.Equal(t, "2025-01-01", e.DateString())
	assert.Equal(t, "DevOps", e.Category)
	assert.Equal(t, "1000.00", e.Amount.StringFixed(2))
	require.NotNil(t, e.Comment)
	assert.Equal(t, comment, *e.Comment)

	negative := dec("-5")
	_, err = ValidateEntry(models.EntryInput{
		Date:        "nope",
		Status:      "other",
		Type:        "refund",
		Category:    "",
		Subcategory: strings.Repeat("s", MaxLabelLen+1),
		Amount:      &negative,
	})
	require.Error(t, err)
	assert.ElementsMatch(t,
		[]string{"date", "status", "type", "category", "subcategory", "amount"},
		fieldsOf(t, err))

	_, err = ValidateEntry(models.EntryInput{
		Date:        "2025-01-01",
		Status:      models.StatusTax,
		Type:        models.TypeExpense,
		Category:    "Tax",
		Subcategory: "VAT",
	})
	assert.Equal(t, []string{"amount"}, fieldsOf(t, err))
}

func decodePatch(t *testing.T, body string) models.EntryPatch {
	t.Helper()
	var p models.EntryPatch
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestValidatePatch(t *testing.T) {
	u, err := ValidatePatch(decodePatch(t, `{"amount": 1234, "category": " Ops "}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"category", "amount"}, u.Columns())
	assert.Equal(t, "Ops", u.Category.Value)
	assert.Equal(t, "1234.00", u.Amount.Value.StringFixed(2))

	u, err = ValidatePatch(decodePatch(t, `{"comment": null}`))
	require.NoError(t, err)
	assert.True(t, u.Comment.Set)
	assert.True(t, u.Comment.Null)

	u, err = ValidatePatch(decodePatch(t, `{}`))
	require.NoError(t, err)
	assert.True(t, u.Empty())
}

func TestValidatePatch_RejectsWholePatch(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"negative amount", `{"category": "Ops", "amount": -1}`, []string{"amount"}},
		{"null status", `{"status": null}`, []string{"status"}},
		{"null date", `{"date": null, "amount": 1}`, []string{"date"}},
		{"blank subcategory", `{"subcategory": "   "}`, []string{"subcategory"}},
		{"bad enums", `{"status": "corp", "type": "transfer"}`, []string{"status", "type"}},
		{"long comment", `{"comment": "` + strings.Repeat("c", MaxCommentLen+1) + `"}`, []string{"comment"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ValidatePatch(decodePatch(t, tt.body))
			require.Error(t, err)
			assert.True(t, u.Empty())
			assert.Equal(t, tt.fields, fieldsOf(t, err))
		})
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		page   models.Page
		fields []string
	}{
		{models.Page{Limit: 1}, nil},
		{models.Page{Limit: models.MaxLimit, Offset: 1000}, nil},
		{models.DefaultPage(), nil},
		{models.Page{Limit: 0}, []string{"limit"}},
		{models.Page{Limit: models.MaxLimit + 1}, []string{"limit"}},
		{models.Page{Limit: 10, Offset: -1}, []string{"offset"}},
		{models.Page{Limit: -1, Offset: -1}, []string{"limit", "offset"}},
	}

	for _, tt := range tests {
		err := ValidatePage(tt.page)
		if tt.fields == nil {
			assert.NoError(t, err, "%+v", tt.page)
			continue
		}
		assert.Equal(t, tt.fields, fieldsOf(t, err))
	}
}

func TestValidateListQuery(t *testing.T) {
	q := models.ListQuery{
		Filter: models.Filter{Status: "corp", Category: "anything"},
		Page:   models.Page{Limit: 501},
	}
	assert.Equal(t, []string{"status", "limit"}, fieldsOf(t, ValidateListQuery(q)))

	q = models.ListQuery{
		Filter: models.Filter{Status: models.StatusPersonal, Type: models.TypeExpense},
		Page:   models.DefaultPage(),
	}
	assert.NoError(t, ValidateListQuery(q))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("id", "bad")))
	assert.False(t, IsValidation(assert.AnError))

	verr := &ValidationError{}
	assert.NoError(t, verr.Err())
	verr.Add("limit", "too big")
	assert.EqualError(t, verr.Err(), "validation failed: limit: too big")
}
