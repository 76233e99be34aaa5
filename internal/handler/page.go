package handler

import (
	"net/http"

	"cashflow/internal/models"
	"cashflow/internal/util"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the HTML listing.
type PageHandler struct {
	Entries *EntryHandler
	// UseTemplates is false when no HTML templates are loaded; the listing
	// then answers with JSON.
	UseTemplates bool
}

func NewPageHandler(entries *EntryHandler, useTemplates bool) *PageHandler {
	return &PageHandler{Entries: entries, UseTemplates: useTemplates}
}

// Index lists entries with the same filters and pagination as the API.
func (h *PageHandler) Index(c *gin.Context) {
	q, err := bindListQuery(c)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	entries, err := h.Entries.Store.Scan(c.Request.Context(), q)
	if err != nil {
		h.Entries.respondError(c, err)
		return
	}
	items := toEntryResps(entries)

	if !h.UseTemplates {
		c.JSON(http.StatusOK, gin.H{"entries": items})
		return
	}

	prevOffset := q.Offset - q.Limit
	if prevOffset < 0 {
		prevOffset = 0
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":   "Cash Flow",
		"entries": items,
		"filters": gin.H{
			"date_from":   c.Query("date_from"),
			"date_to":     c.Query("date_to"),
			"status":      string(q.Status),
			"type":        string(q.Type),
			"category":    q.Category,
			"subcategory": q.Subcategory,
		},
		"pagination": gin.H{
			"limit":       q.Limit,
			"offset":      q.Offset,
			"has_prev":    q.Offset > 0,
			"prev_offset": prevOffset,
			"has_next":    len(items) == q.Limit,
			"next_offset": q.Offset + q.Limit,
		},
		"statuses": models.Statuses,
		"types":    models.EntryTypes,
	})
}
