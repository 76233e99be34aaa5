package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cashflow/internal/models"
	"cashflow/internal/repository"
	"cashflow/internal/util"

	"github.com/gin-gonic/gin"
)

// EntryStore is the persistence the entry endpoints rely on.
type EntryStore interface {
	Insert(ctx context.Context, e *models.Entry) error
	Get(ctx context.Context, id uint) (*models.Entry, error)
	Update(ctx context.Context, id uint, u models.EntryUpdate) (*models.Entry, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Scan(ctx context.Context, q models.ListQuery) ([]models.Entry, error)
	Each(ctx context.Context, f models.Filter, fn func(*models.Entry) error) error
	Summarize(ctx context.Context, f models.Filter) (models.Summary, error)
	Ping(ctx context.Context) error
}

// EntryHandler serves the /api/entries endpoints.
type EntryHandler struct {
	Store  EntryStore
	Logger *slog.Logger
}

func NewEntryHandler(store EntryStore, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		Store:  store,
		Logger: logger,
	}
}

// ---------- responses ----------

type entryResp struct {
	ID          uint             `json:"id"`
	Date        string           `json:"date"`
	Status      models.Status    `json:"status"`
	Type        models.EntryType `json:"type"`
	Category    string           `json:"category"`
	Subcategory string           `json:"subcategory"`
	Amount      models.Money     `json:"amount"`
	Comment     *string          `json:"comment"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func toEntryResp(e *models.Entry) entryResp {
	return entryResp{
		ID:          e.ID,
		Date:        e.DateString(),
		Status:      e.Status,
		Type:        e.Type,
		Category:    e.Category,
		Subcategory: e.Subcategory,
		Amount:      models.NewMoney(e.Amount),
		Comment:     e.Comment,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntryResps(entries []models.Entry) []entryResp {
	items := make([]entryResp, 0, len(entries))
	for i := range entries {
		items = append(items, toEntryResp(&entries[i]))
	}
	return items
}

// respondError maps store and validation errors onto the error envelope.
func (h *EntryHandler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case util.IsValidation(err):
		util.ValidationFailed(c, err)
	case errors.Is(err, repository.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "entry not found")
	case errors.Is(err, repository.ErrConstraint):
		h.Logger.ErrorContext(c.Request.Context(), "storage rejected validated entry", "error", err)
		util.Error(c, http.StatusInternalServerError, util.CodeIntegrity, "data integrity error")
	default:
		h.Logger.ErrorContext(c.Request.Context(), "entry store failed", "error", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
	}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, util.NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}

// ---------- create ----------

func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var in models.EntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.ValidationFailed(c, err)
		return
	}

	entry, err := util.ValidateEntry(in)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	if err := h.Store.Insert(c.Request.Context(), entry); err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.InfoContext(c.Request.Context(), "entry created",
		"id", entry.ID, "type", entry.Type, "amount", entry.Amount.StringFixed(2))
	c.JSON(http.StatusCreated, toEntryResp(entry))
}

// ---------- read ----------

func (h *EntryHandler) GetEntry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	entry, err := h.Store.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResp(entry))
}

// ---------- partial update ----------

// UpdateEntry overwrites only the fields present in the request body.
// The whole body is validated before the entry is looked up.
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	var patch models.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.ValidationFailed(c, err)
		return
	}

	update, err := util.ValidatePatch(patch)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	entry, err := h.Store.Update(c.Request.Context(), id, update)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.InfoContext(c.Request.Context(), "entry updated", "id", entry.ID, "fields", update.Columns())
	c.JSON(http.StatusOK, toEntryResp(entry))
}

// ---------- delete ----------

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	ok, err := h.Store.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !ok {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "entry not found")
		return
	}

	h.Logger.InfoContext(c.Request.Context(), "entry deleted", "id", id)
	c.Status(http.StatusNoContent)
}

// ---------- list ----------

// ListEntries returns one page of entries matching the query filters,
// newest first.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	q, err := bindListQuery(c)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	entries, err := h.Store.Scan(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResps(entries))
}

// ---------- summary ----------

// GetSummary totals income and expense over every entry matching the
// query filters.
func (h *EntryHandler) GetSummary(c *gin.Context) {
	f, err := bindFilter(c)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	sum, err := h.Store.Summarize(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   sum.Count,
		"income":  sum.Income,
		"expense": sum.Expense,
		"balance": sum.Balance(),
	})
}

// Health reports whether the database answers.
func (h *EntryHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		h.Logger.WarnContext(c.Request.Context(), "health check failed", "error", err)
		util.Error(c, http.StatusServiceUnavailable, util.CodeUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
