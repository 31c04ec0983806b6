package response

// Pagination describes one page of a list endpoint. From and To are 1-based
// item positions and stay zero when the page is past the end.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

func NewPagination(page, pageSize int, total int64) *Pagination {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
	}
	from := int64((page-1)*pageSize) + 1
	if from <= total {
		p.From = int(from)
		p.To = int(min(from+int64(pageSize)-1, total))
	}
	return p
}
