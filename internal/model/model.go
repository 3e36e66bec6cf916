package model

// PageSize is the fixed number of items in one page of query results.
const PageSize = 20

type Item struct {
	ID    int64 `json:"id"`
	Value int64 `json:"value"`
}

// Page is the result of an item query.
//
// Total counts every item matching the filter (not just this page); Selected is the
// whole selection set, independent of the filter.
type Page struct {
	Items    []Item  `json:"items"`
	Total    int     `json:"total"`
	Selected []int64 `json:"selected"`

	// Version increases with every mutation of selection or order.
	Version uint64 `json:"version"`
}

type OrderRequest struct {
	Order IDList `json:"order"`
}

type SelectRequest struct {
	Selected IDList `json:"selected"`
}

type Ack struct {
	Success bool `json:"success"`
}

// Change describes shared state after a mutation; it is what change streams publish.
type Change struct {
	Version       uint64 `json:"version"`
	SelectedCount int    `json:"selectedCount"`
	OrderLength   int    `json:"orderLength"`
}
