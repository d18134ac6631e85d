package models

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items    []T `json:"items"`
	Number   int `json:"page"`
	Size     int `json:"page_size"`
	Total    int `json:"total"`
	NumPages int `json:"num_pages"`
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}
