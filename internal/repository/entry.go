package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cashflow/internal/models"
	"cashflow/internal/util"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no entry has the requested id.
	ErrNotFound = errors.New("entry not found")
	// ErrConstraint is returned when the database rejects a row that passed
	// validation, e.g. the amount_non_negative check.
	ErrConstraint = errors.New("storage constraint violated")
)

// EntryStore persists entries in the entries table.
type EntryStore struct {
	db *gorm.DB
}

func NewEntryStore(db *gorm.DB) *EntryStore {
	return &EntryStore{db: db}
}

// Insert stores e and fills in its id and timestamps.
func (s *EntryStore) Insert(ctx context.Context, e *models.Entry) error {
	e.ID = 0
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("insert entry: %w", translate(err))
	}
	return nil
}

// Get loads the entry with the given id.
func (s *EntryStore) Get(ctx context.Context, id uint) (*models.Entry, error) {
	var e models.Entry
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, translate(err))
	}
	return &e, nil
}

// Update writes exactly the fields present in u onto entry id and returns
// the full stored record. The lookup and the write share one transaction.
func (s *EntryStore) Update(ctx context.Context, id uint, u models.EntryUpdate) (*models.Entry, error) {
	var e models.Entry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, id).Error; err != nil {
			return translate(err)
		}
		if u.Empty() {
			return nil
		}

		u.Apply(&e)
		e.UpdatedAt = time.Now()
		cols := append(u.Columns(), "updated_at")
		if err := tx.Model(&e).Select(cols).Updates(&e).Error; err != nil {
			return translate(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update entry %d: %w", id, err)
	}
	return &e, nil
}

// Delete removes entry id. It reports false, without error, when the
// entry does not exist.
func (s *EntryStore) Delete(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Entry{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete entry %d: %w", id, translate(res.Error))
	}
	return res.RowsAffected > 0, nil
}

// Scan returns one page of the entries matching q, newest first.
// q is validated before the database is touched.
func (s *EntryStore) Scan(ctx context.Context, q models.ListQuery) ([]models.Entry, error) {
	if err := util.ValidateListQuery(q); err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0)
	err := ordered(applyFilter(s.db.WithContext(ctx).Model(&models.Entry{}), q.Filter)).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}
	return entries, nil
}

// Each streams every entry matching f, newest first, without pagination.
func (s *EntryStore) Each(ctx context.Context, f models.Filter, fn func(*models.Entry) error) error {
	if err := util.ValidateFilter(f); err != nil {
		return err
	}

	tx := ordered(applyFilter(s.db.WithContext(ctx).Model(&models.Entry{}), f))
	rows, err := tx.Rows()
	if err != nil {
		return fmt.Errorf("stream entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Entry
		if err := tx.ScanRows(rows, &e); err != nil {
			return fmt.Errorf("scan entry row: %w", err)
		}
		if err := fn(&e); err != nil {
			return err
		}
	}
	return rows.Err()
}

type typeTotal struct {
	Type  models.EntryType
	Count int64
	Total decimal.NullDecimal
}

// Summarize totals income and expense over every entry matching f.
func (s *EntryStore) Summarize(ctx context.Context, f models.Filter) (models.Summary, error) {
	var sum models.Summary
	if err := util.ValidateFilter(f); err != nil {
		return sum, err
	}

	var totals []typeTotal
	err := applyFilter(s.db.WithContext(ctx).Model(&models.Entry{}), f).
		Select("type, COUNT(*) AS count, SUM(amount) AS total").
		Group("type").
		Scan(&totals).Error
	if err != nil {
		return sum, fmt.Errorf("summarize entries: %w", err)
	}

	for _, row := range totals {
		// SUM over numeric(12,2) comes back as a float
		total := row.Total.Decimal.Round(2)
		sum.Count += row.Count
		switch row.Type {
		case models.TypeIncome:
			sum.Income = models.NewMoney(total)
		case models.TypeExpense:
			sum.Expense = models.NewMoney(total)
		}
	}
	return sum, nil
}

// Ping checks that the database answers.
func (s *EntryStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintCheck {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}
