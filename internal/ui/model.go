package ui

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sprinter/internal/config"
	"sprinter/internal/domain"
	"sprinter/internal/ingest"
	"sprinter/internal/store"
	"sprinter/internal/ui/controller"
	"sprinter/internal/ui/logic"
	"sprinter/internal/ui/views"
)

const (
	// inlineHeight is the default box height when not in fullscreen
	inlineHeight = 15
	// defaultCellWidth is the grid cell width when --size is not given
	defaultCellWidth = 20
	// doubleClickInterval is the maximum delay between two clicks that activate a row
	doubleClickInterval = 400 * time.Millisecond
)

// Model represents the UI state
type Model struct {
	config   *config.Config
	ctrl     *controller.Controller
	store    *store.ItemStore
	ingestor *ingest.Ingestor // nil when nothing is piped in
	renderer *views.Renderer
	keys     KeyMap
	help     help.Model

	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode
	lastClick   int
	lastClickAt time.Time
	now         func() time.Time

	helpOps *HelpOps
	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model reading items from ingestor. ingestor may
// be nil, the picker then works as a plain prompt.
func NewModel(cfg *config.Config, items *store.ItemStore, ingestor *ingest.Ingestor, styles *views.Styles) *Model {
	if styles == nil {
		styles = views.NewStyles()
	}

	cell := cellSize(cfg)
	items.SetItemSize(cell.Width, cell.Height)

	opts := controller.DefaultOptions()
	opts.Minimal = cfg.Minimal
	opts.Wrap = cfg.Wrap
	opts.Strict = cfg.Strict
	opts.SortOnStart = cfg.Sort
	opts.SpaceWildcard = cfg.SpaceWildcard
	if delay := cfg.FilterDelay(); delay > 0 {
		opts.FilterDelay = delay
	}

	m := &Model{
		config:    cfg,
		ctrl:      controller.New(items, opts),
		store:     items,
		ingestor:  ingestor,
		renderer:  views.NewRenderer(styles),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     80, // Updated on first WindowSizeMsg
		height:    inlineHeight,
		lastClick: -1,
		now:       time.Now,
	}
	m.ctrl.Field().SetStyles(styles.Prompt, styles.Text, styles.Selection)
	m.help.Styles.ShortKey = styles.Help
	m.help.Styles.ShortDesc = styles.Dim
	m.help.Styles.FullKey = styles.Help
	m.help.Styles.FullDesc = styles.Dim

	if ingestor == nil {
		m.ctrl.IngestStopped(domain.IngestStoppedEvent{})
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Controller returns the picker state machine
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Result returns the outcome of the session
func (m *Model) Result() domain.Result {
	return m.ctrl.Result()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	m.updateViewport()
	cmds := []tea.Cmd{m.ctrl.Field().Focus()}
	if m.ingestor != nil {
		cmds = append(cmds, pollAfter(0), materializeTick())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		cmd = m.apply(m.ctrl.HandleKey(msg))

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case pollMsg:
		cmd = m.poll()

	case materializeMsg:
		if m.ctrl.Done() {
			return m, nil
		}
		m.materialize()
		if !m.ctrl.State().IngestDone || m.store.CanMaterializeMore() {
			cmd = materializeTick()
		}

	case filterMsg:
		cmd = m.apply(m.ctrl.FilterTimeout())

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: fall back to the inline key list
			log.Printf("Help pager failed: %v", msg.err)
			m.ctrl.State().ShowHelp = true
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
	}

	m.updateViewport()
	return m, cmd
}

// poll drains ready input and schedules the next poll
func (m *Model) poll() tea.Cmd {
	if m.ctrl.Done() || m.ingestor == nil || m.ingestor.Done() {
		return nil
	}

	batch := m.ingestor.Poll()
	for _, line := range batch.Lines {
		m.store.Append(line)
	}

	if batch.Done {
		if batch.Err != nil {
			log.Printf("Input read failed after %d lines: %v", m.store.Len(), batch.Err)
		} else {
			log.Printf("Input finished: %d lines", m.store.Len())
		}
		m.ctrl.IngestStopped(domain.IngestStoppedEvent{Total: m.store.Len(), Err: batch.Err})
		m.materialize()
		return nil
	}
	if batch.More {
		return pollAfter(0)
	}
	return pollAfter(pollInterval)
}

// materialize publishes pending items to the list
func (m *Model) materialize() {
	if ev := m.store.Materialize(); !ev.Empty() {
		m.ctrl.RowsInserted(ev)
	}
}

// apply carries out what the controller asked for
func (m *Model) apply(effect controller.Effect) tea.Cmd {
	if effect.Finished != nil {
		if m.ingestor != nil {
			m.ingestor.Stop()
		}
		log.Printf("Session finished: %s", effect.Finished.Result.Outcome)
		return tea.Quit
	}

	var cmds []tea.Cmd
	if effect.Cmd != nil {
		cmds = append(cmds, effect.Cmd)
	}
	if effect.ScheduleFilter > 0 {
		cmds = append(cmds, filterAfter(effect.ScheduleFilter))
	}
	if effect.ToggleHelp {
		cmds = append(cmds, m.toggleHelp())
	}
	return tea.Batch(cmds...)
}

// toggleHelp opens the key reference in the pager, or toggles the inline
// key list when no pager can run
func (m *Model) toggleHelp() tea.Cmd {
	st := m.ctrl.State()
	if st.ShowHelp {
		st.ShowHelp = false
		return nil
	}
	if m.helpOps == nil {
		st.ShowHelp = true
		return nil
	}
	content := RenderKeyReference(m.keys.KeyReference(), m.width, m.config.NoColor)
	return m.fetchHelpPager(content)
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{
			err: err,
		}
	}
}

// handleMouse highlights a clicked row; a second click on it activates it
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.ctrl.Done() {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress && m.ctrl.State().Focus == domain.FocusList {
			return m.apply(m.ctrl.HandleKey(tea.KeyMsg{Type: tea.KeyUp}))
		}
		return nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			return m.apply(m.ctrl.HandleKey(tea.KeyMsg{Type: tea.KeyDown}))
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	x, y := m.offset()
	state := m.viewState()
	i := m.renderer.HitTest(state, msg.X-x, msg.Y-y)
	if i < 0 {
		return nil
	}
	from, _ := m.ctrl.Navigator().Visible(m.ctrl.Engine().Len())
	pos := from + i

	now := m.now()
	if pos == m.lastClick && now.Sub(m.lastClickAt) <= doubleClickInterval {
		m.lastClick = -1
		return m.apply(m.ctrl.Activate(pos))
	}
	m.lastClick = pos
	m.lastClickAt = now
	return m.apply(m.ctrl.Select(pos))
}

// View renders the UI
func (m *Model) View() string {
	if m.ctrl.Done() || m.inPagerMode {
		return ""
	}
	out := m.renderer.Render(m.viewState())
	if x, y := m.offset(); x > 0 || y > 0 {
		out = lipgloss.NewStyle().MarginLeft(x).MarginTop(y).Render(out)
	}
	return out
}

// layoutState holds everything that decides how many list rows fit
func (m *Model) layoutState() views.ViewState {
	width, height := m.boxSize()
	cell := cellSize(m.config)

	state := views.ViewState{
		Width:      width,
		Height:     height,
		Title:      m.config.Title,
		Label:      m.config.Label,
		CellWidth:  cell.Width,
		CellHeight: cell.Height,
		Columns:    1,
	}
	if m.config.Wrap {
		state.Columns = views.GridColumns(width, cell.Width)
	}

	st := m.ctrl.State()
	m.help.Width = width
	m.help.ShowAll = st.ShowHelp
	if st.ShowHelp || !m.config.Minimal {
		state.HelpView = m.help.View(m.keys)
	}
	return state
}

// viewState builds the full state for rendering
func (m *Model) viewState() views.ViewState {
	state := m.layoutState()
	st := m.ctrl.State()
	engine := m.ctrl.Engine()
	field := m.ctrl.Field()

	field.SetWidth(state.Width - 2)
	state.Field = field.View()
	state.Pattern = engine.Pattern()
	state.ListVisible = m.ctrl.ListVisible()
	state.Matches = engine.Len()
	state.Total = m.store.Materialized()
	state.Highlight = st.Highlight
	state.Loading = !st.IngestDone
	state.Sorted = engine.Mode() == logic.SortAlphabetical
	state.StatusMessage = st.StatusMessage
	state.StatusError = st.StatusMessage != ""

	from, to := m.ctrl.Navigator().Visible(engine.Len())
	state.Rows = make([]views.Row, 0, to-from)
	for pos := from; pos < to; pos++ {
		state.Rows = append(state.Rows, views.Row{
			Text:        m.store.Text(engine.At(pos)),
			Highlighted: pos == st.Highlight,
			Selected:    st.IsSelected(pos),
		})
	}
	return state
}

// updateViewport resizes the list viewport to the current layout
func (m *Model) updateViewport() {
	state := m.layoutState()
	m.ctrl.SetViewport(m.renderer.ListRows(state), state.Columns)
}

// boxSize returns the size of the picker box within the terminal
func (m *Model) boxSize() (int, int) {
	g := m.config.Window()
	width, height := m.width, m.height
	if !m.config.Fullscreen && height > inlineHeight {
		height = inlineHeight
	}
	if g.Width > 0 && g.Width < m.width {
		width = g.Width
	}
	if g.Height > 0 && g.Height < m.height {
		height = g.Height
	}
	return width, height
}

// offset returns the box position; only fullscreen places the box
func (m *Model) offset() (int, int) {
	if !m.config.Fullscreen {
		return 0, 0
	}
	g := m.config.Window()
	width, height := m.boxSize()
	return place(g.X, g.HasX, width, m.width), place(g.Y, g.HasY, height, m.height)
}

// place resolves a coordinate where negative values count from the far edge
func place(v int, set bool, size, total int) int {
	if !set {
		return 0
	}
	if v < 0 {
		v = total + v - size
	}
	if v > total-size {
		v = total - size
	}
	if v < 0 {
		v = 0
	}
	return v
}

func cellSize(cfg *config.Config) config.Size {
	cell := cfg.Cell()
	if cell.Width <= 0 {
		cell.Width = defaultCellWidth
	}
	if cell.Height <= 0 {
		cell.Height = 1
	}
	return cell
}

// Run starts the event loop on the controlling terminal and blocks until
// the session is decided. The interface is drawn on stderr so stdout only
// carries the result.
func Run(ctx context.Context, m *Model) (domain.Result, error) {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInputTTY(),
		tea.WithOutput(os.Stderr),
	}
	if m.config.Fullscreen {
		// Mouse coordinates are only meaningful when we own the screen
		opts = append(opts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(m, opts...)
	m.SetProgram(p)
	if _, err := p.Run(); err != nil {
		return domain.Result{}, err
	}
	return m.Result(), nil
}
