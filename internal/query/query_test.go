package query

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"numlist/internal/dataset"
	"numlist/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []model.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func seq(from, to int64) []int64 {
	var out []int64
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestItems_EmptySearchPagesAreAscendingSlices(t *testing.T) {
	t.Parallel()

	st := dataset.New(1000)
	svc := NewService(st)
	ctx := context.Background()

	for _, page := range []int{1, 2, 7, 50} {
		got, err := svc.Items(ctx, Params{Page: page})
		require.NoError(t, err)
		want := seq(int64((page-1)*20+1), int64(page*20))
		if diff := cmp.Diff(want, ids(got.Items)); diff != "" {
			t.Fatalf("page %d mismatch (-want +got):\n%s", page, diff)
		}
		assert.Equal(t, 1000, got.Total)
	}
}

func TestItems_PageBeyondEndIsEmpty(t *testing.T) {
	t.Parallel()

	svc := NewService(dataset.New(45))
	got, err := svc.Items(context.Background(), Params{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, seq(41, 45), ids(got.Items))

	got, err = svc.Items(context.Background(), Params{Page: 4})
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, 45, got.Total)

	got, err = svc.Items(context.Background(), Params{Page: maxPage})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestItems_NonPositivePageIsFirstPage(t *testing.T) {
	t.Parallel()

	svc := NewService(dataset.New(100))
	for _, page := range []int{0, -3} {
		got, err := svc.Items(context.Background(), Params{Page: page})
		require.NoError(t, err)
		assert.Equal(t, seq(1, 20), ids(got.Items))
	}
}

func TestItems_SearchIsSubstringOfPrintedValue(t *testing.T) {
	t.Parallel()

	const n = 1_000_000
	svc := NewService(dataset.New(n))

	want := 0
	var first []int64
	for i := 1; i <= n; i++ {
		if strings.Contains(strconv.Itoa(i), "123") {
			want++
			if len(first) < 20 {
				first = append(first, int64(i))
			}
		}
	}

	got, err := svc.Items(context.Background(), Params{Page: 1, Search: "123"})
	require.NoError(t, err)
	assert.Equal(t, want, got.Total)
	assert.Equal(t, first, ids(got.Items))
	assert.Equal(t, []int64{123, 1123, 1230, 1231}, ids(got.Items)[:4])
	for _, it := range got.Items {
		assert.Contains(t, strconv.FormatInt(it.Value, 10), "123")
	}
}

func TestItems_SearchWithNoMatches(t *testing.T) {
	t.Parallel()

	svc := NewService(dataset.New(100))
	got, err := svc.Items(context.Background(), Params{Page: 1, Search: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestItems_CustomOrderComesFirst(t *testing.T) {
	t.Parallel()

	st := dataset.New(1000)
	st.SetOrder([]int64{5, 3, 1})
	svc := NewService(st)

	got, err := svc.Items(context.Background(), Params{Page: 1})
	require.NoError(t, err)
	want := append([]int64{5, 3, 1, 2, 4}, seq(6, 20)...)
	if diff := cmp.Diff(want, ids(got.Items)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1000, got.Total)

	// Page 2 continues the tail without repeating placed ids.
	got, err = svc.Items(context.Background(), Params{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, seq(21, 40), ids(got.Items))
}

func TestItems_CustomOrderSpanningPages(t *testing.T) {
	t.Parallel()

	st := dataset.New(30)
	order := seq(1, 25)
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	st.SetOrder(order)
	svc := NewService(st)

	got, err := svc.Items(context.Background(), Params{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 3, 2, 1, 26, 27, 28, 29, 30}, ids(got.Items))
}

func TestItems_CustomOrderSkipsFilteredAndUnknownIDs(t *testing.T) {
	t.Parallel()

	st := dataset.New(2000)
	st.SetOrder([]int64{1123, 5, -7, 999999, 123, 1123})
	svc := NewService(st)

	got, err := svc.Items(context.Background(), Params{Page: 1, Search: "123"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1123, 123, 1230, 1231, 1232}, ids(got.Items)[:5])
	assert.Equal(t, got.Total, countContaining(2000, "123"))
}

func TestItems_DuplicateOrderIDsPlacedOnce(t *testing.T) {
	t.Parallel()

	st := dataset.New(5)
	st.SetOrder([]int64{3, 3, 2})
	got, err := NewService(st).Items(context.Background(), Params{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1, 4, 5}, ids(got.Items))
	assert.Equal(t, 5, got.Total)
}

func TestItems_SettingSameOrderTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	st := dataset.New(100)
	svc := NewService(st)

	st.SetOrder([]int64{9, 8, 7})
	once, err := svc.Items(context.Background(), Params{Page: 1})
	require.NoError(t, err)

	st.SetOrder([]int64{9, 8, 7})
	twice, err := svc.Items(context.Background(), Params{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, ids(once.Items), ids(twice.Items))
}

func TestItems_SelectedIsWholeSelectionSet(t *testing.T) {
	t.Parallel()

	st := dataset.New(100)
	st.SetSelection([]int64{90, 2})
	svc := NewService(st)

	got, err := svc.Items(context.Background(), Params{Page: 1, Search: "9"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 90}, got.Selected)
	assert.Equal(t, st.Version(), got.Version)

	st.SetSelection([]int64{})
	got, err = svc.Items(context.Background(), Params{Page: 1})
	require.NoError(t, err)
	assert.NotNil(t, got.Selected)
	assert.Empty(t, got.Selected)
}

func TestItems_CancelledContextStopsSearch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(dataset.New(10)).Items(ctx, Params{Page: 1, Search: "1"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		page int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-4", 1},
		{"3", 3},
		{" 12 ", 12},
		{"+2", 2},
		{"7abc", 7},
		{"1e3", 1},
		{"99999999999999999999999", maxPage},
		{"-99999999999999999999999", 1},
	}
	for _, tt := range tests {
		got := ParseParams(url.Values{"page": {tt.raw}, "search": {"12"}})
		assert.Equal(t, tt.page, got.Page, "page=%q", tt.raw)
		assert.Equal(t, "12", got.Search)
	}

	assert.Equal(t, Params{Page: 1}, ParseParams(url.Values{}))
}

func countContaining(n int, s string) int {
	c := 0
	for i := 1; i <= n; i++ {
		if strings.Contains(strconv.Itoa(i), s) {
			c++
		}
	}
	return c
}
