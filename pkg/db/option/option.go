// Package option provides composable gorm query modifiers for the generic
// repository store.
package option

import (
	"strings"

	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type queryOptionFunc func(db *gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// WithLimit caps the number of returned rows.
func WithLimit(limit int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// WithOffset skips rows before returning results.
func WithOffset(offset int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if offset <= 0 {
			return db
		}
		return db.Offset(offset)
	})
}

// WithOrder applies an ORDER BY clause.
func WithOrder(order string) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if order == "" {
			return db
		}
		return db.Order(order)
	})
}

// WithSortBy is an alias of WithOrder kept for call sites that build the
// clause through WithQuerySortBy.
func WithSortBy(order string) QueryOption {
	return WithOrder(order)
}

// WithQuerySortBy validates a user-supplied sort column against an allow
// list and returns a safe ORDER BY clause. Unknown columns fall back to
// created_at, unknown directions to ASC.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) string {
	column := strings.TrimSpace(strings.ToLower(sortBy))
	if column == "" || !allowed[column] {
		column = "created_at"
	}
	direction := strings.TrimSpace(strings.ToUpper(orderBy))
	if direction != "DESC" {
		direction = "ASC"
	}
	return column + " " + direction
}
