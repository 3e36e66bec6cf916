package query

import (
	"bytes"
	"context"
	"strconv"

	"numlist/internal/model"

	"github.com/RoaringBitmap/roaring/v2"
)

// scanChunk is how many items are scanned between context checks.
const scanChunk = 1 << 16

// view is the filtered item sequence, in ascending id order.
type view interface {
	Len() int
	At(i int) model.Item
	Contains(id int64) bool
	ByID(id int64) model.Item
}

type fullView struct{ items []model.Item }

func (v fullView) Len() int { return len(v.items) }

func (v fullView) At(i int) model.Item { return v.items[i] }

func (v fullView) ByID(id int64) model.Item { return v.items[id-1] }

func (v fullView) Contains(id int64) bool {
	return id >= 1 && id <= int64(len(v.items))
}

type matchView struct {
	items   []model.Item
	idx     []int32
	needle  []byte
	scratch []byte
}

func (v *matchView) Len() int { return len(v.idx) }

func (v *matchView) At(i int) model.Item { return v.items[v.idx[i]] }

func (v *matchView) ByID(id int64) model.Item { return v.items[id-1] }

func (v *matchView) Contains(id int64) bool {
	if id < 1 || id > int64(len(v.items)) {
		return false
	}
	var ok bool
	v.scratch, ok = matches(v.items[id-1].Value, v.needle, v.scratch)
	return ok
}

// matches reports whether the printed value contains the search text.
func matches(value int64, needle []byte, scratch []byte) ([]byte, bool) {
	scratch = strconv.AppendInt(scratch[:0], value, 10)
	return scratch, bytes.Contains(scratch, needle)
}

func filter(ctx context.Context, items []model.Item, search string) (view, error) {
	if search == "" {
		return fullView{items: items}, nil
	}
	v := &matchView{items: items, needle: []byte(search)}
	var ok bool
	for i, it := range items {
		if i%scanChunk == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		v.scratch, ok = matches(it.Value, v.needle, v.scratch)
		if ok {
			v.idx = append(v.idx, int32(i))
		}
	}
	return v, nil
}

// slice returns [offset, offset+limit) of the filtered sequence after the custom
// order has been applied: ordered ids present in the view first (first occurrence
// wins), then the rest of the view in ascending id order.
func slice(ctx context.Context, v view, order []int64, offset, limit int) ([]model.Item, error) {
	out := make([]model.Item, 0, limit)
	if offset >= v.Len() {
		return out, nil
	}
	if len(order) == 0 {
		end := offset + limit
		if end > v.Len() {
			end = v.Len()
		}
		for i := offset; i < end; i++ {
			out = append(out, v.At(i))
		}
		return out, nil
	}

	placed := roaring.New()
	head := make([]int64, 0, len(order))
	for _, id := range order {
		if !v.Contains(id) || placed.Contains(uint32(id)) {
			continue
		}
		placed.Add(uint32(id))
		head = append(head, id)
	}

	pos := offset
	for pos < len(head) && len(out) < limit {
		out = append(out, v.ByID(head[pos]))
		pos++
	}
	skip := pos - len(head)
	for i := 0; i < v.Len() && len(out) < limit; i++ {
		if i%scanChunk == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		it := v.At(i)
		if placed.Contains(uint32(it.ID)) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
