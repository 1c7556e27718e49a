package users

import (
	"net/url"
	"strconv"
)

// Pagination defaults and bounds
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 20
)

// ResolvePageNumber parses a raw page number. Malformed input falls back to
// the default instead of failing; the list endpoint never rejects bad paging
// input. There is no upper bound: an out-of-range page yields an empty page.
func ResolvePageNumber(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultPageNumber
	}
	if page < 1 {
		return DefaultPageNumber
	}
	return page
}

// ResolvePageSize parses a raw page size, clamping it into [1, MaxPageSize].
// Malformed input falls back to the default.
func ResolvePageSize(raw string) int {
	size, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultPageSize
	}
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// LinkBuilder constructs navigation URIs keyed by route name. Routes are
// registered at construction so handlers never hardcode paths into links.
type LinkBuilder struct {
	routes map[string]string
}

func NewLinkBuilder() *LinkBuilder {
	return &LinkBuilder{
		routes: map[string]string{
			"users.list": "/users",
			"users.read": "/users",
		},
	}
}

// PageLink builds a list URI for the given page and size
func (b *LinkBuilder) PageLink(route string, pageNumber, pageSize int) string {
	query := url.Values{}
	query.Set("pageNumber", strconv.Itoa(pageNumber))
	query.Set("pageSize", strconv.Itoa(pageSize))

	u := url.URL{
		Path:     b.routes[route],
		RawQuery: query.Encode(),
	}
	return u.String()
}

// ResourceLink builds a URI addressing a single resource
func (b *LinkBuilder) ResourceLink(route string, id string) string {
	u := url.URL{
		Path: b.routes[route] + "/" + id,
	}
	return u.String()
}

// PageMeta is the pagination summary attached to list responses under the
// X-Pagination header. Absent links serialize as null.
type PageMeta struct {
	TotalCount       int     `json:"totalCount"`
	PageSize         int     `json:"pageSize"`
	CurrentPage      int     `json:"currentPage"`
	TotalPages       int     `json:"totalPages"`
	PreviousPageLink *string `json:"previousPageLink"`
	NextPageLink     *string `json:"nextPageLink"`
}

// BuildPageMeta copies the page counters verbatim and attaches a previous
// link only when a previous page exists and a next link only when a next
// page exists. Both links use the same pageNumber parameter.
func BuildPageMeta(page *UserPage, links *LinkBuilder) PageMeta {
	meta := PageMeta{
		TotalCount:  page.TotalCount,
		PageSize:    page.PageSize,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}

	if page.HasPrevious() {
		prev := links.PageLink("users.list", page.CurrentPage-1, page.PageSize)
		meta.PreviousPageLink = &prev
	}
	if page.HasNext() {
		next := links.PageLink("users.list", page.CurrentPage+1, page.PageSize)
		meta.NextPageLink = &next
	}
	return meta
}
