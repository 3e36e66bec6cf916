package mutate

import (
	"context"
	"testing"

	"numlist/internal/dataset"
	"numlist/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	changes []model.Change
}

func (r *recordingNotifier) Notify(ch model.Change) { r.changes = append(r.changes, ch) }

func TestSetSelection_ReplacesAndNotifies(t *testing.T) {
	t.Parallel()

	st := dataset.New(10)
	rec := &recordingNotifier{}
	svc := NewService(st, rec, zerolog.Nop())

	res, err := svc.SetSelection(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, res.Ack.Success)
	assert.Equal(t, model.Change{Version: 1, SelectedCount: 3}, res.Change)

	_, err = svc.SetSelection(context.Background(), []int64{4})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, st.Selection().IDs())

	require.Len(t, rec.changes, 2)
	assert.Equal(t, 1, rec.changes[1].SelectedCount)
}

func TestSetOrder_AcceptsUnvalidatedIDs(t *testing.T) {
	t.Parallel()

	st := dataset.New(10)
	svc := NewService(st, nil, zerolog.Nop())

	res, err := svc.SetOrder(context.Background(), []int64{500, -1, 3})
	require.NoError(t, err)
	assert.True(t, res.Ack.Success)
	assert.Equal(t, 3, res.Change.OrderLength)
	assert.Equal(t, []int64{500, -1, 3}, st.Order())
}

func TestSetOrder_EmptyClearsOrder(t *testing.T) {
	t.Parallel()

	st := dataset.New(10)
	svc := NewService(st, nil, zerolog.Nop())
	_, err := svc.SetOrder(context.Background(), []int64{2, 1})
	require.NoError(t, err)
	_, err = svc.SetOrder(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, st.Order())
}

func TestMutations_CancelledContextLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	st := dataset.New(10)
	svc := NewService(st, nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SetSelection(ctx, []int64{1})
	require.ErrorIs(t, err, context.Canceled)
	_, err = svc.SetOrder(ctx, []int64{1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), st.Version())
}
