package pagination

import (
	"math"
	"strconv"
)

// Defaults applied when a list request omits page or page_size
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Response headers mirroring the envelope
const (
	HeaderTotalCount  = "X-Pagination-Total-Count"
	HeaderPageCount   = "X-Pagination-Page-Count"
	HeaderCurrentPage = "X-Pagination-Current-Page"
	HeaderPageSize    = "X-Pagination-Page-Size"
)

// Params is the page selection of a list query.
type Params struct {
	Page     int `form:"page" json:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" json:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize fills zero values with the defaults.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Skip is the number of records the store must skip for this page.
func (p Params) Skip() int {
	return Offset(p.Page, p.PageSize)
}

// Offset returns (page-1)*pageSize, never negative. Offsets past
// math.MaxInt are clamped to it, which still selects no records.
func Offset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// Count is one row of the count facet.
type Count struct {
	Count int64 `bson:"count" json:"count"`
}

// FacetResult is the two-part result of a count-and-slice query:
// {totalCount: [{count}] | [], data: [...]}.
type FacetResult[T any] struct {
	TotalCount []Count `bson:"totalCount" json:"totalCount"`
	Data       []T     `bson:"data" json:"data"`
}

// NewFacetResult builds a facet result from a separately computed total.
func NewFacetResult[T any](total int64, data []T) FacetResult[T] {
	result := FacetResult[T]{Data: data}
	if total > 0 {
		result.TotalCount = []Count{{Count: total}}
	}
	return result
}

// Total extracts the count facet, 0 when it is empty.
func (f FacetResult[T]) Total() int64 {
	if len(f.TotalCount) == 0 {
		return 0
	}
	return f.TotalCount[0].Count
}

// Envelope is the paginated response returned by list operations.
type Envelope[T any] struct {
	TotalCount  int64 `json:"total_count"`
	PageCount   int   `json:"page_count"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	Data        []T   `json:"data"`
}

// PageCount returns ceil(total/pageSize), or 0 when either side is not positive.
func PageCount(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// BuildEnvelope shapes a facet result into the paginated envelope.
func BuildEnvelope[T any](p Params, result FacetResult[T]) Envelope[T] {
	total := result.Total()
	data := result.Data
	if data == nil {
		data = []T{}
	}
	return Envelope[T]{
		TotalCount:  total,
		PageCount:   PageCount(total, p.PageSize),
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
		Data:        data,
	}
}

// Empty returns an envelope with no records for the given page.
func Empty[T any](p Params) Envelope[T] {
	return BuildEnvelope(p, FacetResult[T]{})
}

// Headers returns the X-Pagination-* header values of an envelope.
func (e Envelope[T]) Headers() map[string]string {
	return map[string]string{
		HeaderTotalCount:  strconv.FormatInt(e.TotalCount, 10),
		HeaderPageCount:   strconv.Itoa(e.PageCount),
		HeaderCurrentPage: strconv.Itoa(e.CurrentPage),
		HeaderPageSize:    strconv.Itoa(e.PageSize),
	}
}
