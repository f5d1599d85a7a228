package pagination

import "strconv"

// Pagination is the navigation metadata returned alongside paged listings.
// NextNum and PrevNum are null when there's no page in that direction.
type Pagination struct {
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
	NextNum *int `json:"next_num"`
	PrevNum *int `json:"prev_num"`
	Pages   int  `json:"pages"`
}

// ParsePage parses the requested page number. Absent, non-numeric, or
// non-positive values fall back to the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePerPage parses the requested page size. Absent, non-numeric, or
// non-positive values fall back to the configured default. The fallback is
// always the configured constant, never the page number.
func ParsePerPage(raw string, fallback int) int {
	perPage, err := strconv.Atoi(raw)
	if err != nil || perPage < 1 {
		return fallback
	}
	return perPage
}

// Offset returns the item offset of a 1-indexed page.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// Paginate computes the navigation metadata for a page window over total
// items. Pages beyond the end keep HasPrev set so callers can navigate back.
func Paginate(page, perPage, total int) Pagination {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}

	p := Pagination{
		HasNext: page < pages,
		HasPrev: page > 1,
		Pages:   pages,
	}
	if p.HasNext {
		next := page + 1
		p.NextNum = &next
	}
	if p.HasPrev {
		prev := page - 1
		p.PrevNum = &prev
	}
	return p
}
