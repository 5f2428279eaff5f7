package ui

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"dragsort/internal/animate"
	"dragsort/internal/config"
	"dragsort/internal/dom"
	"dragsort/internal/domain"
	"dragsort/internal/eventbus"
	"dragsort/internal/geometry"
	"dragsort/internal/gesture"
	"dragsort/internal/sortable"
	"dragsort/internal/ui/views"
)

const (
	title      = "dragsort"
	gripClass  = "handler"
	grip       = "⠿ "
	leftMargin = 2
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	// List and engine
	container  *html.Node
	itemTag    string
	engine     *sortable.Sortable
	gestures   *gesture.Dispatcher
	spring     *animate.Spring
	layout     *geometry.Layout
	drawn      []*html.Node // items in the order the layout was computed
	horizontal bool

	// UI-specific state
	width        int
	height       int
	styles       *views.Styles
	keys         keyMap
	help         help.Model
	helpRenderer *HelpRenderer
	pager        *PagerOps
	input        textinput.Model
	adding       bool
	inPagerMode  bool
	ticking      bool

	focus   *html.Node // item keyboard moves apply to
	pointer *html.Node // press target while the left button is down
	pressed bool

	status      string
	statusError bool
	statusID    int

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a UI model that lets the user reorder the children of
// container. The container's items are bound with the selectors in cfg.
func NewModel(bus eventbus.EventBus, cfg *config.Config, container *html.Node) (*Model, error) {
	hold, err := cfg.HoldDuration()
	if err != nil {
		return nil, err
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		container:    container,
		itemTag:      "li",
		horizontal:   cfg.Horizontal,
		styles:       views.NewStyles(),
		keys:         newKeyMap(),
		help:         help.New(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPagerOps(),
		layout:       geometry.NewLayout(),
		gestures:     gesture.NewDispatcher(),
		spring: animate.NewSpring(animate.SpringConfig{
			FPS:       cfg.Animation.FPS,
			Frequency: cfg.Animation.Frequency,
			Damping:   cfg.Animation.Damping,
		}),
	}

	m.input = textinput.New()
	m.input.Placeholder = "new item"
	m.input.Prompt = "add: "
	m.input.CharLimit = 64

	m.engine, err = sortable.New(container, &sortable.Options{
		Delta:    cfg.Delta,
		Hold:     hold,
		Probe:    m.layout,
		Animator: m.spring,
		Gestures: m.gestures,
	})
	if err != nil {
		return nil, err
	}
	if err := m.bind(); err != nil {
		return nil, err
	}

	items := m.engine.Order()
	if len(items) > 0 {
		m.itemTag = items[0].Data
		m.focus = items[0]
	}
	if cfg.UISettings.Handles {
		for _, n := range items {
			ensureHandle(n)
		}
	}
	m.forwardEvents()
	m.relayout()

	log.Printf("UI: %d items bound with %q (%s)", len(items), cfg.Selector, m.engine.Axis())
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Engine returns the reorder engine
func (m *Model) Engine() *sortable.Sortable {
	return m.engine
}

// Order returns the item texts in their current order
func (m *Model) Order() []string {
	return dom.Texts(m.engine.Order())
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m, m.handleAddKey(msg)
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case frameMsg:
		return m, m.handleFrame(time.Time(msg))

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
			m.publish(eventbus.ErrorEvent{Message: fmt.Sprintf("Pager failed: %v", msg.err), Err: msg.err})
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.startFrames()

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.showInPager(m.helpRenderer.RenderHelpContent(m.keys))
	case key.Matches(msg, m.keys.Source):
		return m.showInPager(dom.Render(m.container))
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.MoveUp):
		return m.nudge(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.nudge(1)
	case key.Matches(msg, m.keys.Add):
		if m.engine.State() != sortable.Idle {
			return nil
		}
		m.adding = true
		m.input.Reset()
		return m.input.Focus()
	case key.Matches(msg, m.keys.Orient):
		return m.toggleOrientation()
	}
	return nil
}

func (m *Model) handleAddKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		text := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		if text != "" {
			return m.addItem(text)
		}
		return nil
	case key.Matches(msg, m.keys.CancelAdd):
		m.adding = false
		m.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// handleMouse turns terminal mouse events into gestures. The press target
// is the smallest laid out element under the pointer.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := domain.Point{X: float64(msg.X), Y: float64(msg.Y)}
	ev := gesture.Event{Point: p, Time: time.Now()}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			target := m.hitTest(p)
			if it := dom.ChildOf(target, m.container); it != nil && m.isItem(it) {
				m.focus = it
			}
			m.pointer = target
			m.pressed = true
			ev.Kind, ev.Target = gesture.Press, target
		case tea.MouseButtonRight:
			m.pressed = false
			ev.Kind = gesture.Cancel
		default:
			return nil
		}
	case tea.MouseActionMotion:
		if !m.pressed {
			return nil
		}
		ev.Kind, ev.Target = gesture.Move, m.pointer
	case tea.MouseActionRelease:
		if !m.pressed {
			return nil
		}
		m.pressed = false
		ev.Kind, ev.Target = gesture.Release, m.pointer
		m.pointer = nil
	default:
		return nil
	}

	m.gestures.Dispatch(ev)
	return m.startFrames()
}

// nudge moves the focused item one slot by replaying a drag through the
// engine, the way a pointer would.
func (m *Model) nudge(dir int) tea.Cmd {
	if m.engine.State() != sortable.Idle || m.focus == nil {
		return nil
	}
	order := m.engine.Order()
	i := indexOf(order, m.focus)
	j := i + dir
	if i < 0 || j < 0 || j >= len(order) {
		return nil
	}

	target := m.focus
	r, ok := m.layout.Measure(target)
	if !ok {
		return nil
	}
	if h := handleOf(m.focus); h != nil {
		if hr, ok := m.layout.Measure(h); ok {
			target, r = h, hr
		}
	}
	neighbor, ok := m.layout.Measure(order[j])
	if !ok {
		return nil
	}

	axis := m.engine.Axis()
	from := center(r)
	shift := domain.OnAxis(axis, float64(dir)*neighbor.Size(axis))
	to := domain.Point{X: from.X + shift.X, Y: from.Y + shift.Y}
	now := time.Now()

	m.gestures.Dispatch(gesture.Event{Kind: gesture.Press, Target: target, Point: from, Time: now})
	m.gestures.Dispatch(gesture.Event{Kind: gesture.Move, Target: target, Point: to, Time: now})
	m.gestures.Dispatch(gesture.Event{Kind: gesture.Release, Target: target, Point: to, Time: now})
	return m.startFrames()
}

func (m *Model) moveFocus(dir int) {
	order := m.engine.Order()
	if len(order) == 0 {
		return
	}
	i := indexOf(order, m.focus) + dir
	if i < 0 {
		i = 0
	}
	if i >= len(order) {
		i = len(order) - 1
	}
	m.focus = order[i]
}

func (m *Model) addItem(text string) tea.Cmd {
	if m.engine.State() != sortable.Idle {
		return m.setStatus("Cannot add items while dragging", true)
	}
	n := dom.AppendItem(m.container, m.itemTag, text)
	if m.config.UISettings.Handles {
		ensureHandle(n)
	}
	m.relayout()

	if !m.isItem(n) {
		log.Printf("UI: added item %q does not match %q", text, m.config.Selector)
		return m.setStatus(fmt.Sprintf("%q does not match %s and cannot be dragged", text, m.config.Selector), true)
	}
	m.focus = n
	m.publish(eventbus.ItemAddedEvent{Item: text})
	return nil
}

func (m *Model) toggleOrientation() tea.Cmd {
	if m.engine.State() != sortable.Idle {
		return nil
	}
	m.horizontal = !m.horizontal
	if err := m.bind(); err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.relayout()
	return m.setStatus(fmt.Sprintf("Layout is now %s", m.engine.Axis()), false)
}

// bind installs the selectors from the config on the engine
func (m *Model) bind() error {
	b := m.engine.Bind(m.config.Selector)
	if m.config.Ignore != "" {
		b.Ignore(m.config.Ignore)
	}
	handle := m.config.Handle
	if handle == "" && m.config.UISettings.Handles {
		handle = "." + gripClass
	}
	if handle != "" {
		b.Handle(handle)
	}
	if m.horizontal {
		b.Horizon()
	}
	return b.Err()
}

// forwardEvents republishes engine events on the bus and keeps the layout
// in step with committed orders
func (m *Model) forwardEvents() {
	m.engine.On(sortable.EventStart, func(ev sortable.Event) {
		m.focus = ev.Item
		m.publish(eventbus.DragStartedEvent{Item: textOf(ev.Item), Index: ev.Index})
	})
	m.engine.On(sortable.EventEnd, func(ev sortable.Event) {
		m.publish(eventbus.DragEndedEvent{Item: textOf(ev.Item), Index: ev.Index})
	})
	m.engine.On(sortable.EventCommit, func(ev sortable.Event) {
		m.relayout()
		m.publish(eventbus.OrderCommittedEvent{Order: dom.Texts(ev.Order), Changed: ev.Changed})
	})
	m.engine.On(sortable.EventAbort, func(ev sortable.Event) {
		m.relayout()
		m.publish(eventbus.SessionAbortedEvent{Reason: ev.Reason})
	})
}

func (m *Model) publish(ev eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(ev)
	}
}

func (m *Model) handleEvent(ev eventbus.DomainEvent) tea.Cmd {
	switch e := ev.(type) {
	case eventbus.DragStartedEvent:
		return m.setStatus(fmt.Sprintf("Dragging %q", e.Item), false)
	case eventbus.DragEndedEvent:
		return m.setStatus(fmt.Sprintf("Dropped %q at position %d", e.Item, e.Index+1), false)
	case eventbus.OrderCommittedEvent:
		if !e.Changed {
			return m.setStatus("Order unchanged", false)
		}
		return m.setStatus("Order: "+strings.Join(e.Order, ", "), false)
	case eventbus.SessionAbortedEvent:
		return m.setStatus(fmt.Sprintf("Drag cancelled (%s)", e.Reason), true)
	case eventbus.ItemAddedEvent:
		return m.setStatus(fmt.Sprintf("Added %q", e.Item), false)
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusError = isError
	id := m.statusID
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}

func (m *Model) showInPager(content string) tea.Cmd {
	if m.program == nil {
		return m.setStatus("Pager is not available", true)
	}
	program, pager := m.program, m.pager
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})
		err := pager.ShowInPager(content)
		program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

// animating reports whether frames are needed: a spring is moving or a
// gesture is in progress and may be promoted by holding
func (m *Model) animating() bool {
	return m.spring.Active() || m.engine.State() != sortable.Idle
}

func (m *Model) startFrames() tea.Cmd {
	if m.ticking || !m.animating() {
		return nil
	}
	m.ticking = true
	return m.frame()
}

func (m *Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.spring.FPS()), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleFrame(now time.Time) tea.Cmd {
	if m.inPagerMode {
		m.ticking = false
		return nil
	}
	m.spring.Step()
	m.engine.Tick(now)
	if m.animating() {
		return m.frame()
	}
	m.ticking = false
	return nil
}

// relayout recomputes item boxes from the container's order. It is skipped
// during a drag, when the engine relies on the boxes measured at its start.
func (m *Model) relayout() {
	if m.engine.State() != sortable.Idle {
		return
	}
	m.layout.Reset()
	m.drawn = m.engine.Order()

	origin := domain.Point{X: leftMargin, Y: float64(lipgloss.Height(m.styles.Title.Render(title)))}
	geometry.StackInto(m.layout, m.engine.Axis(), origin, m.drawn, m.measure)

	for _, n := range m.drawn {
		h := handleOf(n)
		if h == nil {
			continue
		}
		r, _ := m.layout.Measure(n)
		m.layout.Set(h, gripRect(r))
	}
}

// hitTest returns the element drawn under p. While a gesture is in
// progress the layout still holds the boxes from before the drag, so the
// boxes as drawn are tested instead, the dragged item last since it is
// drawn on top.
func (m *Model) hitTest(p domain.Point) *html.Node {
	if m.engine.State() == sortable.Idle {
		return m.layout.HitTest(p)
	}
	drawn := geometry.NewLayout()
	add := func(n *html.Node) {
		r := m.drawnRect(n)
		drawn.Set(n, r)
		if h := handleOf(n); h != nil {
			drawn.Set(h, gripRect(r))
		}
	}
	dragged := m.engine.Dragged()
	for _, n := range m.drawn {
		if n != dragged {
			add(n)
		}
	}
	if indexOf(m.drawn, dragged) >= 0 {
		add(dragged)
	}
	return drawn.HitTest(p)
}

// drawnRect is the layout box of n moved by its animated offset and
// snapped to whole cells
func (m *Model) drawnRect(n *html.Node) domain.Rect {
	r, _ := m.layout.Measure(n)
	off := m.spring.Offset(n)
	r.X = math.Round(r.X + off.X)
	r.Y = math.Round(r.Y + off.Y)
	return r
}

func gripRect(item domain.Rect) domain.Rect {
	return domain.Rect{X: item.X + 1, Y: item.Y, Width: float64(lipgloss.Width(grip)), Height: 1}
}

func (m *Model) measure(n *html.Node) (float64, float64) {
	return float64(lipgloss.Width(m.label(n))), 1
}

func (m *Model) label(n *html.Node) string {
	text := textOf(n)
	if handleOf(n) != nil {
		text = grip + text
	}
	return " " + text + " "
}

func (m *Model) isItem(n *html.Node) bool {
	return indexOf(m.engine.Order(), n) >= 0
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")

	if m.adding {
		b.WriteString(m.styles.Prompt.Render(m.input.View()))
		b.WriteString("\n")
	}

	status := m.status
	style := m.styles.Status
	switch {
	case status == "":
		status = fmt.Sprintf("%d items · %s · %s", len(m.drawn), m.engine.Axis(), m.engine.State())
	case m.statusError:
		style = style.Foreground(m.styles.StatusError.GetForeground())
	default:
		style = style.Foreground(m.styles.StatusSuccess.GetForeground())
	}
	b.WriteString(style.Render(status))

	if m.config.UISettings.ShowHelp {
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	}
	return b.String()
}

func (m *Model) renderList() string {
	c := m.paintList()
	if c == nil {
		return m.styles.Dim.Render(strings.Repeat(" ", leftMargin) + "(empty list, press a to add an item)")
	}
	return c.render(m.cellStyle)
}

// Canvas cells are owned by item index; the low bit marks grip cells
const gripCell = 1

func cellOwner(i int, isGrip bool) int {
	o := i << 1
	if isGrip {
		o |= gripCell
	}
	return o
}

// paintList draws every item at its animated position. The canvas grows to
// hold the dragged item when it is pulled past the end of the list; above
// the list it is pinned to the first row.
func (m *Model) paintList() *canvas {
	if len(m.drawn) == 0 {
		return nil
	}

	dragged := m.engine.Dragged()
	top := math.Inf(1)
	right, bottom := 0.0, 0.0
	for _, n := range m.drawn {
		r, _ := m.layout.Measure(n)
		top = math.Min(top, r.Y)
		right = math.Max(right, r.X+r.Width)
		bottom = math.Max(bottom, r.Y+r.Height)
	}
	if dragged != nil {
		r := m.drawnRect(dragged)
		right = math.Max(right, r.X+r.Width)
		bottom = math.Max(bottom, r.Y+r.Height)
	}
	width := int(right)
	if m.width > width {
		width = m.width
	}
	c := newCanvas(width, int(bottom-top))

	paint := func(i int, n *html.Node) {
		r := m.drawnRect(n)
		x := max(int(r.X), 0)
		y := max(int(r.Y-top), 0)
		c.draw(x, y, padRight(m.label(n), int(r.Width)), cellOwner(i, false))
		if handleOf(n) != nil {
			c.draw(x+1, y, grip, cellOwner(i, true))
		}
	}
	for i, n := range m.drawn {
		if n != dragged {
			paint(i, n)
		}
	}
	if i := indexOf(m.drawn, dragged); i >= 0 {
		paint(i, dragged)
	}
	return c
}

func (m *Model) cellStyle(owner int) lipgloss.Style {
	n := m.drawn[owner>>1]
	dragged := m.engine.Dragged()

	var style lipgloss.Style
	switch {
	case n == dragged && m.engine.Dragging():
		style = m.styles.Dragging
	case n == dragged:
		style = m.styles.Settling
	case n == m.focus:
		style = m.styles.Focus
	default:
		style = m.styles.Item
	}
	if owner&gripCell != 0 {
		return m.styles.Handle.Inherit(style)
	}
	return style
}

// ensureHandle gives an item an empty grip element the handle selector can
// match
func ensureHandle(n *html.Node) {
	if handleOf(n) != nil {
		return
	}
	h := dom.NewElement("span", "class", gripClass)
	n.InsertBefore(h, n.FirstChild)
}

func handleOf(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "span" {
			if v, _ := dom.Attr(c, "class"); v == gripClass {
				return c
			}
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	return strings.TrimSpace(dom.Text(n))
}

func indexOf(nodes []*html.Node, n *html.Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}

func center(r domain.Rect) domain.Point {
	return domain.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
