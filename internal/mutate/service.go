// Package mutate replaces the shared selection set and custom order.
//
// Both operations are wholesale replacements: there is no merge, no validation of
// ids against the dataset and no conflict detection. The last call wins.
package mutate

import (
	"context"

	"numlist/internal/dataset"
	"numlist/internal/model"

	"github.com/rs/zerolog"
)

// Notifier is told about every applied mutation.
type Notifier interface {
	Notify(model.Change)
}

type Service struct {
	store  *dataset.Store
	notify Notifier
	log    zerolog.Logger
}

func NewService(store *dataset.Store, n Notifier, log zerolog.Logger) *Service {
	return &Service{store: store, notify: n, log: log}
}

type Result struct {
	Ack    model.Ack
	Change model.Change
}

func (s *Service) SetSelection(ctx context.Context, ids []int64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	v := s.store.SetSelection(ids)
	ch := s.change(v)
	s.log.Debug().Uint64("version", v).Int("selected", ch.SelectedCount).Msg("selection replaced")
	s.publish(ch)
	return Result{Ack: model.Ack{Success: true}, Change: ch}, nil
}

func (s *Service) SetOrder(ctx context.Context, ids []int64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	v := s.store.SetOrder(ids)
	ch := s.change(v)
	s.log.Debug().Uint64("version", v).Int("order", ch.OrderLength).Msg("order replaced")
	s.publish(ch)
	return Result{Ack: model.Ack{Success: true}, Change: ch}, nil
}

// change reads counts from a snapshot; with overlapping writers the counts may
// belong to a later version than v, which is reported instead.
func (s *Service) change(v uint64) model.Change {
	snap := s.store.Snapshot()
	if snap.Version > v {
		v = snap.Version
	}
	return model.Change{
		Version:       v,
		SelectedCount: snap.Selection.Len(),
		OrderLength:   len(snap.Order),
	}
}

func (s *Service) publish(ch model.Change) {
	if s.notify != nil {
		s.notify.Notify(ch)
	}
}
