package utils

import (
	"log"
	"math"

	"github.com/gin-gonic/gin"
)

// RespondWithError aborts the request with a JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	if status >= 500 {
		log.Printf("[ERROR] %s %s: %s", c.Request.Method, c.Request.URL.Path, message)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondWithBindError reports a failed ShouldBind*. Rule violations are
// listed per field; anything else (bad JSON, wrong types) is a plain 400.
func RespondWithBindError(c *gin.Context, err error, obj any) {
	if details := FieldErrors(err, obj); len(details) > 0 {
		c.AbortWithStatusJSON(400, gin.H{
			"error":   "Validation failed",
			"details": details,
		})
		return
	}
	RespondWithError(c, 400, "Invalid input: "+err.Error())
}

// Pagination is the paging block returned with list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// NewPagination fills in defaults for unset page and limit.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// Offset is the number of rows to skip for the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
