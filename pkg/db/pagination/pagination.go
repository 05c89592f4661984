package pagination

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxOffset bounds the row offset a page may address.
	MaxOffset = math.MaxInt32
)

type Pagination struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Normalize applies defaults to non-positive values and caps the limit at maxLimit when maxLimit > 0.
func (p Pagination) Normalize(defaultLimit, maxLimit int) Pagination {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if lastPage := MaxOffset/p.Limit + 1; p.Page > lastPage {
		p.Page = lastPage
	}
	return p
}

// Offset never exceeds MaxOffset, so a huge page cannot overflow into a negative offset.
func (p Pagination) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > MaxOffset/p.Limit {
		return MaxOffset
	}
	return (p.Page - 1) * p.Limit
}

func NewPageInfo(total int64, p Pagination) PageInfo {
	info := PageInfo{
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}
	if p.Limit > 0 {
		info.TotalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return info
}
