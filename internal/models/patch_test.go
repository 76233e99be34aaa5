package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_DistinguishesAbsentNullAndValue(t *testing.T) {
	var p EntryPatch
	require.NoError(t, json.Unmarshal([]byte(`{"category":"Ops","comment":null,"amount":"12.5"}`), &p))

	assert.False(t, p.Date.Set)
	assert.False(t, p.Status.Set)

	assert.True(t, p.Category.Set)
	assert.False(t, p.Category.Null)
	assert.Equal(t, "Ops", p.Category.Value)

	assert.True(t, p.Comment.Set)
	assert.True(t, p.Comment.Null)

	assert.True(t, p.Amount.Set)
	assert.True(t, decimal.RequireFromString("12.5").Equal(p.Amount.Value))
}

func TestOptional_RejectsWrongType(t *testing.T) {
	var p EntryPatch
	assert.Error(t, json.Unmarshal([]byte(`{"category": 12}`), &p))
}

func TestEntryUpdate_Apply(t *testing.T) {
	comment := "keep me"
	e := &Entry{
		ID:          7,
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:      StatusBusiness,
		Type:        TypeIncome,
		Category:    "DevOps",
		Subcategory: "Servers",
		Amount:      decimal.NewFromInt(1000),
		Comment:     &comment,
	}

	u := EntryUpdate{Amount: Some(decimal.NewFromInt(1234))}
	assert.Equal(t, []string{"amount"}, u.Columns())
	assert.False(t, u.Empty())

	u.Apply(e)
	assert.Equal(t, "1234", e.Amount.String())
	assert.Equal(t, "DevOps", e.Category)
	assert.Equal(t, "2025-01-01", e.DateString())
	assert.Equal(t, "keep me", e.CommentText())

	EntryUpdate{Comment: Optional[string]{Set: true, Null: true}}.Apply(e)
	assert.Nil(t, e.Comment)
	assert.Equal(t, "", e.CommentText())

	EntryUpdate{Comment: Some("new")}.Apply(e)
	require.NotNil(t, e.Comment)
	assert.Equal(t, "new", *e.Comment)

	assert.True(t, EntryUpdate{}.Empty())
}

func TestEnumsValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	for _, ty := range EntryTypes {
		assert.True(t, ty.Valid(), ty)
	}
	assert.False(t, Status("Business").Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, EntryType("refund").Valid())
}

func TestMoney(t *testing.T) {
	b, err := json.Marshal(NewMoney(decimal.NewFromInt(1000)))
	require.NoError(t, err)
	assert.Equal(t, "1000.00", string(b))

	b, err = json.Marshal(NewMoney(decimal.RequireFromString("0.5")))
	require.NoError(t, err)
	assert.Equal(t, "0.50", string(b))

	s := Summary{Income: NewMoney(decimal.NewFromInt(100)), Expense: NewMoney(decimal.RequireFromString("40.5"))}
	assert.Equal(t, "59.50", s.Balance().String())
}
