package dataset

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Selection is an immutable set of item ids.
//
// Ids are not validated against the dataset, so anything a client sends is kept:
// non-negative ids live in a roaring bitmap, negative ids in a small side set.
type Selection struct {
	bits      *roaring64.Bitmap
	negatives map[int64]struct{}
}

func NewSelection(ids []int64) *Selection {
	s := &Selection{bits: roaring64.New()}
	for _, id := range ids {
		if id < 0 {
			if s.negatives == nil {
				s.negatives = map[int64]struct{}{}
			}
			s.negatives[id] = struct{}{}
			continue
		}
		s.bits.Add(uint64(id))
	}
	s.bits.RunOptimize()
	return s
}

func (s *Selection) Contains(id int64) bool {
	if s == nil {
		return false
	}
	if id < 0 {
		_, ok := s.negatives[id]
		return ok
	}
	return s.bits.Contains(uint64(id))
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return int(s.bits.GetCardinality()) + len(s.negatives)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	if s == nil {
		return []int64{}
	}
	out := make([]int64, 0, s.Len())
	if len(s.negatives) > 0 {
		for id := range s.negatives {
			out = append(out, id)
		}
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	}
	it := s.bits.Iterator()
	for it.HasNext() {
		out = append(out, int64(it.Next()))
	}
	return out
}
