package handler

import (
	"strconv"

	"cashflow/internal/models"
	"cashflow/internal/util"

	"github.com/gin-gonic/gin"
)

// bindFilter reads the listing filters from the query string.
// Empty parameters are treated as absent.
func bindFilter(c *gin.Context) (models.Filter, error) {
	verr := &util.ValidationError{}
	f := parseFilter(c, verr)
	if err := verr.Err(); err != nil {
		return models.Filter{}, err
	}
	if err := util.ValidateFilter(f); err != nil {
		return models.Filter{}, err
	}
	return f, nil
}

// bindListQuery reads the filters plus limit and offset.
func bindListQuery(c *gin.Context) (models.ListQuery, error) {
	verr := &util.ValidationError{}
	q := models.ListQuery{
		Filter: parseFilter(c, verr),
		Page:   models.DefaultPage(),
	}
	q.Limit = parseInt(c, "limit", q.Limit, verr)
	q.Offset = parseInt(c, "offset", q.Offset, verr)

	if err := verr.Err(); err != nil {
		return models.ListQuery{}, err
	}
	if err := util.ValidateListQuery(q); err != nil {
		return models.ListQuery{}, err
	}
	return q, nil
}

func parseFilter(c *gin.Context, verr *util.ValidationError) models.Filter {
	f := models.Filter{
		Status:      models.Status(c.Query("status")),
		Type:        models.EntryType(c.Query("type")),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
	}
	if s := c.Query("date_from"); s != "" {
		if d, err := util.ParseDate(s); err != nil {
			verr.Add("date_from", err.Error())
		} else {
			f.DateFrom = &d
		}
	}
	if s := c.Query("date_to"); s != "" {
		if d, err := util.ParseDate(s); err != nil {
			verr.Add("date_to", err.Error())
		} else {
			f.DateTo = &d
		}
	}
	return f
}

func parseInt(c *gin.Context, key string, def int, verr *util.ValidationError) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		verr.Add(key, "must be an integer")
		return def
	}
	return n
}
