package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// PaginationParams carries the page/per_page query values accepted by
// the listing endpoints.
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// NewPaginationParams builds validated params from raw query values.
func NewPaginationParams(page, perPage int) *PaginationParams {
	p := &PaginationParams{Page: page, PerPage: perPage}
	p.Validate()
	return p
}

// Validate clamps the params to usable bounds. Listings cap at 100
// rows per request.
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 15
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset returns the row offset for the current page.
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination is the page metadata returned alongside a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPagination derives page metadata from a total row count.
func NewPagination(page, perPage int, total int64) *Pagination {
	pages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult pairs a page of items with its metadata.
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult wraps a fetched page for the response envelope.
func NewPaginatedResult[T any](items []T, p *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{Items: items, Pagination: p}
}

// Keyset (cursor) pagination. The register scrolls long histories
// such as sales and customers, where offset pages drift as new rows
// land, so those listings also accept an opaque cursor.

// CursorDirection says which side of the cursor to fetch.
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is the decoded keyset position, the (created_at, id) pair of
// the boundary row.
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CursorParams carries the cursor/limit query values.
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// Validate clamps the limit and defaults the direction to forward.
func (c *CursorParams) Validate() {
	if c.Limit < 1 {
		c.Limit = 15
	}
	if c.Limit > 100 {
		c.Limit = 100
	}
	if c.Direction == "" {
		c.Direction = CursorDirectionNext
	}
}

// DecodeCursor unpacks the opaque cursor. An empty cursor means the
// first page and decodes to nil.
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}

	raw, err := base64.URLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}

	var cur Cursor
	if err := json.Unmarshal(raw, &cur); err != nil {
		return nil, fmt.Errorf("invalid cursor data: %w", err)
	}

	return &cur, nil
}

// EncodeCursor packs a row position into an opaque cursor string.
func EncodeCursor(id string, createdAt ...time.Time) string {
	cur := Cursor{ID: id}
	if len(createdAt) > 0 {
		cur.CreatedAt = createdAt[0]
	}

	raw, _ := json.Marshal(cur)
	return base64.URLEncoding.EncodeToString(raw)
}

// CursorPagination is the cursor metadata returned alongside a keyset
// listing. HasPrev is left to the caller, which knows whether the
// request arrived with a cursor.
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// NewCursorPagination trims an overfetched page (repositories fetch
// limit+1 rows to detect a next page) and derives cursors from the
// first and last rows kept.
func NewCursorPagination[T any](items []T, limit int, getID func(T) string, getCreatedAt func(T) time.Time) (*CursorPagination, []T) {
	hasNext := len(items) > limit
	if hasNext {
		items = items[:limit]
	}

	meta := &CursorPagination{Limit: limit, HasNext: hasNext}
	if len(items) == 0 {
		return meta, items
	}

	last := items[len(items)-1]
	next := EncodeCursor(getID(last), getCreatedAt(last))
	meta.NextCursor = &next

	first := items[0]
	prev := EncodeCursor(getID(first), getCreatedAt(first))
	meta.PrevCursor = &prev

	return meta, items
}

// CursorPaginatedResult pairs a keyset page with its cursors.
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// NewCursorPaginatedResult wraps a keyset page for the response envelope.
func NewCursorPaginatedResult[T any](items []T, p *CursorPagination) *CursorPaginatedResult[T] {
	return &CursorPaginatedResult[T]{Items: items, Pagination: p}
}
