package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const MaxLimit = 100

// Query holds parsed limit/offset parameters. Limit == 0 means "no
// pagination requested": return the full result set.
type Query struct {
	Limit  int
	Offset int
}

// FromContext extracts and validates limit/offset from the request.
func FromContext(c *gin.Context) Query {
	limit := parseIntOr(c.Query("limit"), 0)
	offset := parseIntOr(c.Query("offset"), 0)

	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return Query{Limit: limit, Offset: offset}
}

// Paginate counts the filtered set, then applies limit/offset when a
// limit was requested. Without a limit the full set is returned along
// with the total count.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (int64, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}

	tx := db
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
