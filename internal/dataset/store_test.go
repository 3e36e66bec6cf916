package dataset

import (
	"sync"
	"testing"

	"numlist/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DenseSequence(t *testing.T) {
	t.Parallel()

	s := New(5)
	require.Equal(t, 5, s.Len())
	for i, it := range s.Items() {
		assert.Equal(t, int64(i+1), it.ID)
		assert.Equal(t, it.ID, it.Value)
	}

	it, ok := s.Item(3)
	require.True(t, ok)
	assert.Equal(t, model.Item{ID: 3, Value: 3}, it)

	_, ok = s.Item(0)
	assert.False(t, ok)
	_, ok = s.Item(6)
	assert.False(t, ok)
}

func TestNew_NegativeSizeIsEmpty(t *testing.T) {
	t.Parallel()

	s := New(-3)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items())
}

func TestSetSelection_ReplacesWholesale(t *testing.T) {
	t.Parallel()

	s := New(10)
	v1 := s.SetSelection([]int64{1, 2, 3})
	assert.True(t, s.IsSelected(2))

	v2 := s.SetSelection([]int64{7})
	assert.Greater(t, v2, v1)
	assert.False(t, s.IsSelected(2), "previous selection must not be merged")
	assert.True(t, s.IsSelected(7))
	assert.Equal(t, []int64{7}, s.Selection().IDs())
}

func TestSelection_KeepsUnvalidatedIDs(t *testing.T) {
	t.Parallel()

	sel := NewSelection([]int64{42, -5, 0, 99_000_000_000, 42, -1})
	assert.Equal(t, 5, sel.Len())
	assert.Equal(t, []int64{-5, -1, 0, 42, 99_000_000_000}, sel.IDs())
	assert.True(t, sel.Contains(-5))
	assert.False(t, sel.Contains(-2))
}

func TestSelection_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var sel *Selection
	assert.Equal(t, 0, sel.Len())
	assert.False(t, sel.Contains(1))
	assert.Equal(t, []int64{}, sel.IDs())
}

func TestSetOrder_CopiesInput(t *testing.T) {
	t.Parallel()

	s := New(10)
	in := []int64{5, 3, 1}
	s.SetOrder(in)
	in[0] = 9

	assert.Equal(t, []int64{5, 3, 1}, s.Order())

	s.SetOrder(nil)
	assert.Empty(t, s.Order())
}

func TestSnapshot_ConsistentVersion(t *testing.T) {
	t.Parallel()

	s := New(3)
	s.SetOrder([]int64{3})
	s.SetSelection([]int64{1})

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.Version)
	assert.Equal(t, []int64{3}, snap.Order)
	assert.True(t, snap.Selection.Contains(1))
}

func TestStore_ConcurrentMutationsLastWriterWins(t *testing.T) {
	t.Parallel()

	s := New(100)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetSelection([]int64{int64(i)})
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, uint64(50), s.Version())
	assert.Equal(t, 1, s.Selection().Len())
}
