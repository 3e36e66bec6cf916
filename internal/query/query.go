// Package query answers paginated, filtered and reordered item queries against a
// dataset.Store.
package query

import (
	"context"

	"numlist/internal/dataset"
	"numlist/internal/model"
)

type Service struct {
	store *dataset.Store
}

func NewService(store *dataset.Store) *Service {
	return &Service{store: store}
}

// Items returns one page of the filtered, reordered sequence. A page past the
// end yields no items and the unchanged total.
//
// Searching scans the whole dataset; the scan stops early when ctx is done.
func (s *Service) Items(ctx context.Context, p Params) (model.Page, error) {
	p = p.normalized()
	snap := s.store.Snapshot()

	v, err := filter(ctx, s.store.Items(), p.Search)
	if err != nil {
		return model.Page{}, err
	}
	items, err := slice(ctx, v, snap.Order, p.offset(), model.PageSize)
	if err != nil {
		return model.Page{}, err
	}
	return model.Page{
		Items:    items,
		Total:    v.Len(),
		Selected: snap.Selection.IDs(),
		Version:  snap.Version,
	}, nil
}
