package models

// Page is the paginated list envelope returned by every list endpoint.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
}

// CanPrevious reports whether a "previous page" action is available.
func (p *Page[T]) CanPrevious() bool {
	return p.Page > 1
}

// CanNext reports whether a "next page" action is available. This follows
// the server-reported hasNext flag, not a local computation.
func (p *Page[T]) CanNext() bool {
	return p.HasNext
}
