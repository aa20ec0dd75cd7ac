package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
	DefaultSort  = "-createdAt"
)

// ProductQuery is the filter/sort/pagination triple built from request
// query parameters.
type ProductQuery struct {
	Search   string // case-insensitive substring over name/description
	Category string // hex document id, empty means no category filter
	Sort     string // comma-separated fields, "-" prefix for descending
	Page     int64
	Limit    int64
}

func (q ProductQuery) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

// SortField is one parsed element of a sort expression.
type SortField struct {
	Name string
	Desc bool
}

// ParseSort splits a sort expression into ordered fields. Empty tokens are
// skipped; an empty expression falls back to newest-first.
func ParseSort(sort string) []SortField {
	if strings.TrimSpace(sort) == "" {
		sort = DefaultSort
	}
	var fields []SortField
	for _, tok := range strings.Split(sort, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		f := SortField{Name: tok}
		if strings.HasPrefix(tok, "-") {
			f.Name = tok[1:]
			f.Desc = true
		}
		if f.Name == "" {
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return []SortField{{Name: "createdAt", Desc: true}}
	}
	return fields
}

// BuildProductQuery reads search/category/sort/page/limit from the request.
// Page is clamped to >=1 and limit to [1,100] regardless of what was asked.
func BuildProductQuery(c *gin.Context) ProductQuery {
	search := c.Query("search")
	if search == "" {
		search = c.Query("keywords")
	}

	page := parseInt(c.DefaultQuery("page", "1"), 1)
	if page < 1 {
		page = 1
	}
	limit := parseInt(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)), DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return ProductQuery{
		Search:   search,
		Category: c.Query("category"),
		Sort:     c.DefaultQuery("sort", DefaultSort),
		Page:     page,
		Limit:    limit,
	}
}

// Pages returns ceil(total/limit).
func Pages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}

func parseInt(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
