package web

import (
	"net/http"
	"sync"
	"time"

	"numlist/internal/model"

	"github.com/starfederation/datastar-go/datastar"
)

type changeHub struct {
	mu     sync.Mutex
	subs   map[chan model.Change]struct{}
	closed bool
}

func newChangeHub() *changeHub {
	return &changeHub{subs: map[chan model.Change]struct{}{}}
}

// subscribe returns a channel of changes. It is closed by cancel or closeAll,
// whichever comes first.
func (h *changeHub) subscribe() (ch chan model.Change, cancel func()) {
	ch = make(chan model.Change, 8)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
}

// Notify fans a change out to subscribers; slow subscribers miss intermediate
// changes but always see a later one.
func (h *changeHub) Notify(c model.Change) {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- c:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- c:
			default:
			}
		}
	}
	h.mu.Unlock()
}

func (h *changeHub) closeAll() {
	h.mu.Lock()
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (s *Server) currentChange() model.Change {
	snap := s.cfg.Store.Snapshot()
	return model.Change{
		Version:       snap.Version,
		SelectedCount: snap.Selection.Len(),
		OrderLength:   len(snap.Order),
	}
}

// handleEvents streams the shared state summary as datastar signal patches:
// once on connect, then after every mutation.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ch, cancel := s.hub.subscribe()
	defer cancel()

	// The access log wrapper forwards Flush without recording a status, so the
	// status is committed through it before datastar flushes the headers.
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	if r.ProtoMajor == 1 {
		h.Set("Connection", "keep-alive")
	}
	w.WriteHeader(http.StatusOK)

	sse := datastar.NewSSE(w, r)
	_ = sse.MarshalAndPatchSignals(s.currentChange())

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case c, ok := <-ch:
			if !ok {
				return
			}
			_ = sse.MarshalAndPatchSignals(c)
		}
	}
}
