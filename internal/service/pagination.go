// Package service contains the business logic layer: validation, pagination
// rules, the like/unlike policy, and identity provisioning. Services accept
// primitives and return domain errors — they know nothing about HTTP.
package service

// Pagination is the metadata returned alongside every paged listing.
// NextPage/PrevPage are pointers so absent pages serialize as null.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	NextPage   *int `json:"next_page"`
	PrevPage   *int `json:"prev_page"`
}

// paginate computes the metadata for a page request against a total item
// count. page and limit must already be clamped to valid ranges.
func paginate(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit

	p := Pagination{
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	if p.HasNext {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrev {
		prev := page - 1
		p.PrevPage = &prev
	}

	return p
}

// clampPage floors the page number at 1.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// clampLimit returns def when limit is outside [1, max]. Out-of-range values
// are normalized, not rejected — a client asking for 10000 items per page
// gets the default, not an error.
func clampLimit(limit, def, max int) int {
	if limit < 1 || limit > max {
		return def
	}
	return limit
}
