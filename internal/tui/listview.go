package tui

import (
	"slices"

	"numlist/internal/model"
)

// loadStatus tracks the current fetch. A failed fetch has no status of its own: it
// returns to Loaded or Idle and leaves its message in lastErr until the next success.
type loadStatus int

const (
	statusIdle loadStatus = iota
	statusLoading
	statusLoaded
)

func (s loadStatus) String() string {
	switch s {
	case statusIdle:
		return "idle"
	case statusLoading:
		return "loading"
	case statusLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// nearBottomRows is how close the cursor has to get to the last loaded row before the
// next page is requested.
const nearBottomRows = 3

// fetchRequest identifies one page fetch. seq fences out responses that arrive after a
// newer fetch was issued.
type fetchRequest struct {
	seq    uint64
	page   int
	search string
}

// listState is the client-side view of the dataset: the loaded prefix of the current
// query plus a mirror of the selection. It has no I/O; the bubbletea model turns the
// returned requests into commands.
type listState struct {
	status   loadStatus
	search   string
	page     int
	items    []model.Item
	total    int
	selected map[int64]struct{}
	version  uint64

	seq     uint64
	pending int
	lastErr string
}

func newListState(search string) listState {
	return listState{
		status:   statusIdle,
		search:   search,
		page:     1,
		selected: map[int64]struct{}{},
	}
}

// begin issues a fetch for the current page and search.
func (s *listState) begin() fetchRequest {
	s.seq++
	s.status = statusLoading
	return fetchRequest{seq: s.seq, page: s.page, search: s.search}
}

// reload restarts the current query from page 1.
func (s *listState) reload() fetchRequest {
	s.page = 1
	s.items = nil
	s.total = 0
	return s.begin()
}

// setSearch resets paging for new search text. It reports false when text is unchanged.
func (s *listState) setSearch(text string) (fetchRequest, bool) {
	if text == s.search {
		return fetchRequest{}, false
	}
	s.search = text
	return s.reload(), true
}

func (s *listState) hasMore() bool {
	return len(s.items) < s.total
}

// nearBottom requests the next page when cursor is within nearBottomRows of the end of the
// loaded items. Triggers while a fetch is in flight are ignored.
func (s *listState) nearBottom(cursor int) (fetchRequest, bool) {
	if s.status != statusLoaded || !s.hasMore() {
		return fetchRequest{}, false
	}
	if len(s.items)-1-cursor >= nearBottomRows {
		return fetchRequest{}, false
	}
	s.page++
	return s.begin(), true
}

// applyPage folds a fetched page into the state. Stale responses are dropped and reported
// as false.
func (s *listState) applyPage(req fetchRequest, p model.Page) bool {
	if req.seq != s.seq {
		return false
	}
	if req.page <= 1 {
		s.items = slices.Clone(p.Items)
	} else {
		s.items = append(s.items, p.Items...)
	}
	s.total = p.Total
	s.selected = make(map[int64]struct{}, len(p.Selected))
	for _, id := range p.Selected {
		s.selected[id] = struct{}{}
	}
	s.version = p.Version
	s.lastErr = ""
	s.status = statusLoaded
	return true
}

// failPage records a failed fetch. Loaded data is kept; a failed follow-up page is rolled
// back so the next near-bottom trigger asks for it again.
func (s *listState) failPage(req fetchRequest, err error) bool {
	if req.seq != s.seq {
		return false
	}
	if req.page > 1 && s.page == req.page {
		s.page--
	}
	s.lastErr = err.Error()
	if len(s.items) > 0 {
		s.status = statusLoaded
	} else {
		s.status = statusIdle
	}
	return true
}

func (s *listState) isSelected(id int64) bool {
	_, ok := s.selected[id]
	return ok
}

// toggle flips id in the local selection and returns the whole resulting set, ascending.
func (s *listState) toggle(id int64) []int64 {
	if s.isSelected(id) {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	return s.selectedIDs()
}

func (s *listState) selectedIDs() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// move relocates the loaded item at from to index to and returns the resulting id order
// of every loaded item. It reports false for out-of-range or no-op moves.
func (s *listState) move(from, to int) ([]int64, bool) {
	n := len(s.items)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return nil, false
	}
	it := s.items[from]
	s.items = slices.Delete(s.items, from, from+1)
	s.items = slices.Insert(s.items, to, it)
	return s.orderIDs(), true
}

func (s *listState) orderIDs() []int64 {
	ids := make([]int64, len(s.items))
	for i, it := range s.items {
		ids[i] = it.ID
	}
	return ids
}

func (s *listState) indexOf(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *listState) beginMutation() {
	s.pending++
}

func (s *listState) endMutation(err error) {
	if s.pending > 0 {
		s.pending--
	}
	if err != nil {
		s.lastErr = err.Error()
	}
}
