// Package controller is the picker state machine. It owns the text field,
// the filter engine and the navigation state, and turns input actions into
// state changes. Every method runs inside one event loop turn; timers are
// requested from the caller through Effect.
package controller

import (
	"log"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"sprinter/internal/debounce"
	"sprinter/internal/domain"
	"sprinter/internal/store"
	"sprinter/internal/ui/input"
	"sprinter/internal/ui/input/types"
	"sprinter/internal/ui/logic"
	"sprinter/internal/ui/state"
	"sprinter/internal/ui/textfield"
)

// Options configures the controller
type Options struct {
	Minimal       bool          // hide the list until it is popped
	Wrap          bool          // grid layout
	Strict        bool          // only accept text equal to an item
	SortOnStart   bool          // alphabetical order
	SpaceWildcard bool          // spaces in the pattern match anything
	FilterDelay   time.Duration // debounce for typed filters
	Clock         func() time.Time
}

// DefaultOptions returns the options used by the command line
func DefaultOptions() Options {
	return Options{
		SpaceWildcard: true,
		FilterDelay:   debounce.DefaultDelay,
	}
}

// Effect tells the event loop what to do after a controller call
type Effect struct {
	ScheduleFilter time.Duration // call FilterTimeout after this delay when > 0
	Cmd            tea.Cmd
	ToggleHelp     bool
	Finished       *domain.SessionFinishedEvent
}

func (e *Effect) merge(o Effect) {
	if o.ScheduleFilter > 0 {
		e.ScheduleFilter = o.ScheduleFilter
	}
	if o.Cmd != nil {
		e.Cmd = tea.Batch(e.Cmd, o.Cmd)
	}
	e.ToggleHelp = e.ToggleHelp || o.ToggleHelp
	if o.Finished != nil {
		e.Finished = o.Finished
	}
}

// Controller coordinates the text field, the filter and the list
type Controller struct {
	opts      Options
	store     *store.ItemStore
	engine    *logic.Engine
	navigator *logic.Navigator
	field     *textfield.Model
	state     *state.NavigationState
	handler   *input.Handler
	ctx       *input.ModelContext
	debouncer *debounce.Debouncer

	// completion is the item text behind a pending inline completion
	completion string
}

// New creates a controller over the given store
func New(items *store.ItemStore, opts Options) *Controller {
	if opts.FilterDelay <= 0 {
		opts.FilterDelay = debounce.DefaultDelay
	}
	var debounceOpts []debounce.Option
	if opts.Clock != nil {
		debounceOpts = append(debounceOpts, debounce.WithClock(opts.Clock))
	}

	c := &Controller{
		opts:      opts,
		store:     items,
		engine:    logic.NewEngine(opts.SpaceWildcard),
		navigator: logic.NewNavigator(),
		field:     textfield.New(),
		state:     state.NewNavigationState(opts.Minimal),
		handler:   input.New(),
		debouncer: debounce.New(opts.FilterDelay, debounceOpts...),
	}
	c.ctx = &input.ModelContext{
		State:     c.state,
		Field:     c.field,
		Navigator: c.navigator,
		Wrap:      opts.Wrap,
	}
	if opts.SortOnStart {
		c.engine.Sort(items)
	}
	return c
}

// Accessors for the views

func (c *Controller) Store() *store.ItemStore       { return c.store }
func (c *Controller) Engine() *logic.Engine         { return c.engine }
func (c *Controller) Navigator() *logic.Navigator   { return c.navigator }
func (c *Controller) Field() *textfield.Model       { return c.field }
func (c *Controller) State() *state.NavigationState { return c.state }
func (c *Controller) Options() Options              { return c.opts }
func (c *Controller) Mode() types.Mode              { return c.handler.CurrentMode() }

// Done reports whether the session has been decided
func (c *Controller) Done() bool {
	return c.state.Done()
}

// Result returns the outcome of the session
func (c *Controller) Result() domain.Result {
	return c.state.Result
}

// ListVisible reports whether the list is shown
func (c *Controller) ListVisible() bool {
	return !c.state.HideList
}

// SetViewport sets the list viewport size in rows and cells per row
func (c *Controller) SetViewport(height, columns int) {
	if !c.opts.Wrap {
		columns = 1
	}
	c.navigator.SetViewport(height, columns)
	c.navigator.EnsureVisible(c.state.Highlight, c.engine.Len())
}

// HandleKey runs a key through the input modes and applies the resulting actions
func (c *Controller) HandleKey(msg tea.KeyMsg) Effect {
	var effect Effect
	if c.Done() {
		return effect
	}
	for _, action := range c.handler.HandleKey(msg, c.ctx) {
		effect.merge(c.apply(action))
		if c.Done() {
			break
		}
	}
	return effect
}

func (c *Controller) apply(action types.Action) Effect {
	switch a := action.(type) {
	case types.CancelAction:
		return c.Cancel()
	case types.SubmitAction:
		return c.Submit()
	case types.AcceptCompletionAction:
		c.acceptCompletion()
	case types.PopListAction:
		c.popList()
	case types.FocusTextAction:
		return c.focusText()
	case types.RestoreTypedTextAction:
		c.restoreTypedText()
	case types.EditTextAction:
		return c.editText(a.Key)
	case types.SelectAllTextAction:
		c.field.SelectAll()
		c.completion = ""
	case types.NavigateAction:
		c.navigate(a.Direction)
	case types.ExtendSelectionAction:
		c.extendSelection(a.Direction)
	case types.HistoryAction:
		c.history(a.Step)
	case types.SortListAction:
		c.SortList()
	case types.ToggleHelpAction:
		return Effect{ToggleHelp: true}
	default:
		log.Printf("controller: unhandled action %s", action.Type())
	}
	return Effect{}
}

// Cancel ends the session without output
func (c *Controller) Cancel() Effect {
	return c.finish(domain.Result{Outcome: domain.OutcomeCancelled})
}

// Submit resolves the final text and ends the session. In strict mode text
// that is not an item is rejected without any state change.
func (c *Controller) Submit() Effect {
	text := c.field.Value()
	if c.field.HasSelection() && c.completion != "" && strings.EqualFold(c.completion, text) {
		text = c.completion
	}

	if c.opts.Strict && !c.exists(text) {
		log.Printf("controller: strict mode rejected %q", text)
		return Effect{}
	}
	return c.finish(domain.Result{Outcome: domain.OutcomeSubmitted, Text: text})
}

// Activate submits the item at a display position
func (c *Controller) Activate(pos int) Effect {
	if c.Done() || !c.engine.Valid(pos) {
		return Effect{}
	}
	c.state.Highlight = pos
	c.state.Anchor = -1
	c.field.SetText(c.store.Text(c.engine.At(pos)))
	c.completion = ""
	return c.Submit()
}

// Select focuses the list on a display position, as a single click does
func (c *Controller) Select(pos int) Effect {
	if c.Done() || !c.engine.Valid(pos) {
		return Effect{}
	}
	c.state.Highlight = pos
	c.state.Anchor = -1
	c.state.HistoryPos = -1
	c.state.Focus = domain.FocusList
	c.handler.ChangeMode(types.ModeList)
	c.field.Blur()
	c.navigator.EnsureVisible(pos, c.engine.Len())
	c.echo()
	return Effect{}
}

// RowsInserted reacts to newly published items
func (c *Controller) RowsInserted(ev domain.RowsInsertedEvent) {
	if c.Done() || ev.Empty() {
		return
	}
	c.refresh()

	// First-match auto-seed, once per session
	if c.state.Seeded {
		return
	}
	c.state.Seeded = true
	if c.state.OriginalTypedText != "" || c.engine.Len() == 0 {
		return
	}
	c.state.Highlight = 0
	c.state.Anchor = -1
	c.field.SetText(c.store.Text(c.engine.At(0)))
	c.field.SelectAll()
	c.completion = ""
	c.navigator.EnsureVisible(0, c.engine.Len())
}

// IngestStopped records the end of the input stream
func (c *Controller) IngestStopped(ev domain.IngestStoppedEvent) {
	c.state.IngestDone = true
	if ev.Err != nil {
		c.state.StatusMessage = "read error: " + ev.Err.Error()
	}
}

// FilterTimeout is called when a requested filter timer expires
func (c *Controller) FilterTimeout() Effect {
	if c.Done() {
		c.debouncer.Stop()
		return Effect{}
	}
	ready, delay := c.debouncer.Fire()
	if delay > 0 {
		return Effect{ScheduleFilter: delay}
	}
	if ready {
		c.applyFilter()
	}
	return Effect{}
}

// SortList switches the list to alphabetical order
func (c *Controller) SortList() {
	hl := c.itemAt(c.state.Highlight)
	c.engine.Sort(c.store)
	c.state.Highlight = c.position(hl)
	c.state.Anchor = -1
	c.navigator.EnsureVisible(c.state.Highlight, c.engine.Len())
}

func (c *Controller) finish(result domain.Result) Effect {
	c.state.Result = result
	c.debouncer.Stop()
	c.field.Blur()
	return Effect{Finished: &domain.SessionFinishedEvent{Result: result}}
}

func (c *Controller) exists(text string) bool {
	if !strings.Contains(text, "\n") {
		return c.store.Contains(text)
	}
	for _, line := range strings.Split(text, "\n") {
		if !c.store.Contains(line) {
			return false
		}
	}
	return true
}

func (c *Controller) acceptCompletion() {
	if c.completion != "" {
		c.field.SetText(c.completion)
	} else {
		c.field.AcceptSelection()
	}
	c.completion = ""
}

func (c *Controller) editText(msg tea.KeyMsg) Effect {
	var effect Effect
	edited, cmd := c.field.Update(msg)
	effect.Cmd = cmd
	if !edited {
		return effect
	}

	c.completion = ""
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		c.inlineComplete()
	}
	c.state.OriginalTypedText = c.field.UnselectedText()
	c.state.HistoryPos = -1

	if !c.opts.Minimal {
		if delay, schedule := c.debouncer.Trigger(); schedule {
			effect.ScheduleFilter = delay
		}
	}
	return effect
}

// inlineComplete extends the typed text with the first published item
// starting with it and selects the added part
func (c *Controller) inlineComplete() {
	if !c.field.AtEnd() || c.field.HasSelection() {
		return
	}
	typed := c.field.Value()
	item, ok := c.store.FirstWithPrefix(typed)
	if !ok {
		return
	}
	n := utf8.RuneCountInString(typed)
	full := []rune(item.Text)
	if len(full) <= n {
		return
	}
	c.field.SetTextWithSelection(typed+string(full[n:]), n)
	c.completion = item.Text
}

func (c *Controller) focusText() Effect {
	c.state.Focus = domain.FocusText
	c.handler.ChangeMode(types.ModeText)
	if c.opts.Minimal {
		c.state.HideList = true
	}
	return Effect{Cmd: c.field.Focus()}
}

func (c *Controller) restoreTypedText() {
	if c.state.OriginalTypedText != c.field.UnselectedText() {
		c.field.SetText(c.state.OriginalTypedText)
		c.completion = ""
	}
}

// popList shows the list and moves focus into it. The highlight skips a
// row that merely repeats the typed text.
func (c *Controller) popList() {
	if c.state.HideList {
		c.state.HideList = false
		c.debouncer.Stop()
		c.applyFilter()
	} else if c.debouncer.Pending() {
		c.debouncer.Stop()
		c.applyFilter()
	}
	c.refresh()

	total := c.engine.Len()
	if total == 0 {
		if c.opts.Minimal {
			c.state.HideList = true
		}
		return
	}

	pos := c.state.Highlight
	if pos < 0 {
		pos = 0
	}
	// Compare with the typed prefix: the field may still show a completion,
	// which would otherwise hide the row the user actually typed.
	if c.store.Text(c.engine.At(pos)) == c.field.UnselectedText() && pos+1 < total {
		pos++
	}

	c.state.Highlight = pos
	c.state.Anchor = -1
	c.state.HistoryPos = -1
	c.state.Focus = domain.FocusList
	c.handler.ChangeMode(types.ModeList)
	c.field.Blur()
	c.navigator.EnsureVisible(pos, total)
	c.echo()
}

func (c *Controller) navigate(direction string) {
	total := c.engine.Len()
	if total == 0 {
		return
	}
	pos := c.state.Highlight
	if pos < 0 {
		pos = 0
	}

	columns := c.navigator.Columns()
	next := pos
	switch direction {
	case "up":
		next = pos - columns
	case "down":
		next = pos + columns
	case "left":
		next = pos - 1
	case "right":
		next = pos + 1
	case "pageup":
		next = c.navigator.Move(pos, -c.navigator.PageSize(), total)
	case "pagedown":
		next = c.navigator.Move(pos, c.navigator.PageSize(), total)
	case "home":
		next = 0
	case "end":
		next = total - 1
	}
	if next < 0 || next >= total {
		return
	}

	c.state.Highlight = next
	c.state.Anchor = -1
	c.navigator.EnsureVisible(next, total)
	c.echo()
}

func (c *Controller) extendSelection(direction string) {
	total := c.engine.Len()
	if total == 0 || c.state.Highlight < 0 {
		return
	}
	next := c.state.Highlight + 1
	if direction == "up" {
		next = c.state.Highlight - 1
	}
	if next < 0 || next >= total {
		return
	}
	if c.state.Anchor < 0 {
		c.state.Anchor = c.state.Highlight
	}
	c.state.Highlight = next
	c.navigator.EnsureVisible(next, total)
	c.echo()
}

// history steps through matches of the typed text while the list is
// hidden. Stepping back before the first match restores the typed text.
func (c *Controller) history(step int) {
	typed := c.state.OriginalTypedText
	c.engine.SetPattern(typed)
	c.refresh()

	total := c.engine.Len()
	if total == 0 {
		return
	}
	pos := c.state.HistoryPos + step
	if pos >= total {
		pos = total - 1
	}
	if pos < 0 {
		c.state.HistoryPos = -1
		c.field.SetText(typed)
		c.completion = ""
		return
	}

	c.state.HistoryPos = pos
	c.state.Highlight = pos
	c.showText(c.store.Text(c.engine.At(pos)))
}

// echo mirrors the highlighted rows into the text field
func (c *Controller) echo() {
	if c.state.Focus != domain.FocusList {
		return
	}
	from, to := c.state.Selected()
	if from < 0 {
		return
	}
	texts := make([]string, 0, to-from+1)
	for pos := from; pos <= to; pos++ {
		texts = append(texts, c.store.Text(c.engine.At(pos)))
	}
	c.showText(strings.Join(texts, "\n"))
}

// showText puts text into the field, selecting the part beyond what the
// user typed so the next keystroke replaces it
func (c *Controller) showText(text string) {
	typed := c.state.OriginalTypedText
	c.completion = ""
	if store.HasPrefixFold(text, strings.ToLower(typed)) {
		c.field.SetTextWithSelection(text, utf8.RuneCountInString(typed))
		return
	}
	c.field.SetText(text)
}

// applyFilter filters by the unselected text and highlights the first
// match starting with it
func (c *Controller) applyFilter() {
	if c.state.Focus != domain.FocusText {
		return
	}
	pattern := c.field.UnselectedText()
	c.engine.SetPattern(pattern)
	c.refresh()

	c.state.Anchor = -1
	if pos := c.engine.FirstStartingWith(c.store, pattern); pos >= 0 {
		c.state.Highlight = pos
	}
	c.navigator.EnsureVisible(c.state.Highlight, c.engine.Len())
}

// refresh brings the matches up to date and keeps the highlighted items
func (c *Controller) refresh() {
	hl := c.itemAt(c.state.Highlight)
	anchor := c.itemAt(c.state.Anchor)
	if !c.engine.Refresh(c.store) {
		return
	}
	c.state.Highlight = c.position(hl)
	c.state.Anchor = c.position(anchor)
	if c.state.Highlight < 0 {
		c.state.Anchor = -1
	}
	c.navigator.EnsureVisible(c.state.Highlight, c.engine.Len())
}

func (c *Controller) itemAt(pos int) int {
	if !c.engine.Valid(pos) {
		return -1
	}
	return c.engine.At(pos)
}

func (c *Controller) position(index int) int {
	if index < 0 {
		return -1
	}
	return c.engine.Position(index)
}
