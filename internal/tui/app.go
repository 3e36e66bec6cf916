package tui

import (
	"context"
	"time"

	"numlist/internal/docs"
	"numlist/internal/model"
	"numlist/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// itemsAPI is the part of the HTTP client the list view needs.
type itemsAPI interface {
	Items(ctx context.Context, page int, search string) (model.Page, error)
	SetSelection(ctx context.Context, ids []int64) (model.Ack, error)
	SetOrder(ctx context.Context, ids []int64) (model.Ack, error)
}

const requestTimeout = 30 * time.Second

const (
	// Title, search input and column header sit above the rows.
	listTop = 3
	// Status line and key help sit below them.
	footerRows = 2
	// Clicks left of this column hit the checkbox.
	checkboxCols = 3
	wheelStep    = 3
)

type pageLoadedMsg struct {
	req  fetchRequest
	page model.Page
}

type pageFailedMsg struct {
	req fetchRequest
	err error
}

type mutationDoneMsg struct {
	op  string
	err error
}

type appModel struct {
	api       itemsAPI
	serverURL string
	log       zerolog.Logger

	width  int
	height int

	state     listState
	initial   fetchRequest
	cursor    int
	offset    int
	restoreID int64

	input     textinput.Model
	searching bool
	spinner   spinner.Model
	keys      keyMap
	help      help.Model
	styles    styles

	showHelp   bool
	helpOffset int

	ptr pointerDrag
	kbd keyboardDrag
}

func newAppModel(api itemsAPI, serverURL string, log zerolog.Logger, vs store.ViewState) appModel {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "search values"
	in.CharLimit = 32
	in.SetValue(vs.Search)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := appModel{
		api:       api,
		serverURL: serverURL,
		log:       log,
		width:     80,
		height:    24,
		state:     newListState(vs.Search),
		restoreID: vs.CursorID,
		input:     in,
		spinner:   sp,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    newStyles(),
	}
	m.initial = m.state.begin()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.initial), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-len(m.input.Prompt)-1)
		m.ensureVisible()
		return m, nil

	case pageLoadedMsg:
		if !m.state.applyPage(msg.req, msg.page) {
			m.log.Debug().Uint64("seq", msg.req.seq).Int("page", msg.req.page).Msg("dropped stale page")
			return m, nil
		}
		if msg.req.page <= 1 {
			m.cursor, m.offset = 0, 0
			if m.restoreID != 0 {
				if i := m.state.indexOf(m.restoreID); i >= 0 {
					m.cursor = i
				}
				m.restoreID = 0
			}
		}
		m.clampCursor()
		return m, nil

	case pageFailedMsg:
		if m.state.failPage(msg.req, msg.err) {
			m.log.Error().Err(msg.err).Int("page", msg.req.page).Str("search", msg.req.search).Msg("fetch items")
		}
		return m, nil

	case mutationDoneMsg:
		m.state.endMutation(msg.err)
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("op", msg.op).Msg("persist failed")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		cmd := m.updateMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch {
		case m.searching:
			cmd = m.updateSearch(msg)
		case m.showHelp:
			cmd = m.updateHelp(msg)
		case m.kbd.active:
			cmd = m.updateKeyboardDrag(msg)
		default:
			cmd = m.updateList(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *appModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if req, ok := m.state.setSearch(m.input.Value()); ok {
		m.cursor, m.offset = 0, 0
		return tea.Batch(cmd, m.fetch(req))
	}
	return cmd
}

func (m *appModel) updateHelp(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help, m.keys.Cancel):
		m.showHelp = false
	case key.Matches(msg, m.keys.Up):
		m.helpOffset = max(0, m.helpOffset-1)
	case key.Matches(msg, m.keys.Down):
		m.helpOffset++
	}
	return nil
}

func (m *appModel) updateList(msg tea.KeyMsg) tea.Cmd {
	n := len(m.state.items)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpOffset = 0
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.input.Focus()
	case key.Matches(msg, m.keys.Reload):
		m.cursor, m.offset = 0, 0
		return m.fetch(m.state.reload())
	case isMoveUp(msg):
		return m.moveCurrent(-1)
	case isMoveDown(msg):
		return m.moveCurrent(1)
	case key.Matches(msg, m.keys.Up):
		return m.setCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		return m.setCursor(m.cursor + 1)
	case key.Matches(msg, m.keys.PageUp):
		return m.setCursor(m.cursor - m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		return m.setCursor(m.cursor + m.visibleRows())
	case key.Matches(msg, m.keys.Top):
		return m.setCursor(0)
	case key.Matches(msg, m.keys.Bottom):
		return m.setCursor(n - 1)
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleAt(m.cursor)
	case key.Matches(msg, m.keys.Grab):
		if m.cursor < n {
			m.kbd.pickUp(m.cursor)
		}
	}
	return nil
}

func (m *appModel) updateKeyboardDrag(msg tea.KeyMsg) tea.Cmd {
	n := len(m.state.items)
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.kbd.step(-1, n)
		m.cursor = m.kbd.over
		m.ensureVisible()
	case key.Matches(msg, m.keys.Down):
		m.kbd.step(1, n)
		m.cursor = m.kbd.over
		m.ensureVisible()
	case key.Matches(msg, m.keys.Grab, m.keys.Drop):
		return m.finishDrop(m.kbd.drop())
	case key.Matches(msg, m.keys.Cancel):
		m.cursor = m.kbd.from
		m.kbd.cancel()
		m.ensureVisible()
	}
	return nil
}

func (m *appModel) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if m.searching || m.showHelp || m.kbd.active {
		return nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.setCursor(m.cursor - wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		return m.setCursor(m.cursor + wheelStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if i := m.rowAt(msg.Y); i >= 0 {
			m.ptr.press(msg.X, msg.Y, i)
		}
	case msg.Action == tea.MouseActionMotion:
		m.ptr.motion(msg.X, msg.Y, m.rowAt(msg.Y))
	case msg.Action == tea.MouseActionRelease:
		res := m.ptr.release(msg.X, msg.Y, m.rowAt(msg.Y))
		if res.click {
			m.cursor = res.from
			m.ensureVisible()
			if msg.X < checkboxCols {
				return m.toggleAt(res.from)
			}
			return m.loadMoreIfNearBottom()
		}
		return m.finishDrop(res)
	}
	return nil
}

func (m *appModel) setCursor(i int) tea.Cmd {
	m.cursor = i
	m.clampCursor()
	return m.loadMoreIfNearBottom()
}

func (m *appModel) loadMoreIfNearBottom() tea.Cmd {
	if m.ptr.active || m.kbd.active {
		return nil
	}
	req, ok := m.state.nearBottom(m.cursor)
	if !ok {
		return nil
	}
	return m.fetch(req)
}

func (m *appModel) toggleAt(i int) tea.Cmd {
	if i < 0 || i >= len(m.state.items) {
		return nil
	}
	ids := m.state.toggle(m.state.items[i].ID)
	return m.persistSelection(ids)
}

func (m *appModel) moveCurrent(delta int) tea.Cmd {
	to := m.cursor + delta
	ids, ok := m.state.move(m.cursor, to)
	if !ok {
		return nil
	}
	m.cursor = to
	m.ensureVisible()
	return m.persistOrder(ids)
}

func (m *appModel) finishDrop(res dropResult) tea.Cmd {
	if !res.dropped {
		return nil
	}
	ids, ok := m.state.move(res.from, res.to)
	if !ok {
		return nil
	}
	m.cursor = res.to
	m.ensureVisible()
	return m.persistOrder(ids)
}

func (m *appModel) fetch(req fetchRequest) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		p, err := api.Items(ctx, req.page, req.search)
		if err != nil {
			return pageFailedMsg{req: req, err: err}
		}
		return pageLoadedMsg{req: req, page: p}
	}
}

func (m *appModel) persistSelection(ids []int64) tea.Cmd {
	m.state.beginMutation()
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := api.SetSelection(ctx, ids)
		return mutationDoneMsg{op: "select", err: err}
	}
}

func (m *appModel) persistOrder(ids []int64) tea.Cmd {
	m.state.beginMutation()
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := api.SetOrder(ctx, ids)
		return mutationDoneMsg{op: "order", err: err}
	}
}

func (m *appModel) visibleRows() int {
	return max(1, m.height-listTop-footerRows)
}

// rowAt maps a screen row to an item index, or -1.
func (m *appModel) rowAt(y int) int {
	i := y - listTop
	if i < 0 || i >= m.visibleRows() {
		return -1
	}
	idx := m.offset + i
	if idx >= len(m.state.items) {
		return -1
	}
	return idx
}

func (m *appModel) clampCursor() {
	n := len(m.state.items)
	if n == 0 {
		m.cursor = 0
	} else {
		m.cursor = clamp(m.cursor, 0, n-1)
	}
	m.ensureVisible()
}

func (m *appModel) ensureVisible() {
	h := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// cursorID is the id under the cursor, 0 when nothing is loaded.
func (m appModel) cursorID() int64 {
	if m.cursor < 0 || m.cursor >= len(m.state.items) {
		return 0
	}
	return m.state.items[m.cursor].ID
}

func (m appModel) viewState() store.ViewState {
	return store.ViewState{
		ServerURL: m.serverURL,
		Search:    m.state.search,
		CursorID:  m.cursorID(),
	}
}

func helpMarkdown() string {
	md, _ := docs.Get("tui")
	return md
}
