package option

import (
	"strings"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/pagination"
	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type queryOptionFunc func(db *gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

type QuerySortBy struct {
	Column    string
	Direction string
	Allow     map[string]bool
}

// WithQuerySortBy builds a sort option from request values, falling back to created_at desc.
func WithQuerySortBy(sortBy, orderBy string, allow map[string]bool) QuerySortBy {
	return QuerySortBy{
		Column:    strings.ToLower(strings.TrimSpace(sortBy)),
		Direction: strings.ToLower(strings.TrimSpace(orderBy)),
		Allow:     allow,
	}
}

func WithSortBy(s QuerySortBy) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		column := s.Column
		if column == "" || !s.Allow[column] {
			column = "created_at"
		}
		direction := "desc"
		if s.Direction == "asc" {
			direction = "asc"
		}
		return db.Order(column + " " + direction)
	})
}

func ApplyPagination(p pagination.Pagination) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if p.Limit <= 0 {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.Limit)
	})
}

// likeEscape is the LIKE escape character. A backslash would need different quoting on
// mysql and postgres.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// EscapeLike quotes LIKE wildcards in term so it matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// WithNameLike matches term as a case-insensitive substring of name on every supported dialect.
func WithNameLike(term string) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		pattern := "%" + EscapeLike(strings.ToLower(term)) + "%"
		return db.Where("LOWER(name) LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	})
}
