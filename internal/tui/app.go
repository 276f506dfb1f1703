package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/headerscroll/internal/config"
	"github.com/jask/headerscroll/internal/scroll"
	"github.com/jask/headerscroll/internal/service"
)

// pageFlingVelocity is the keyboard fling speed in units per second.
const pageFlingVelocity = 2400

var pageTitles = []string{"Inbox", "Starred", "Archive"}

// ConfigMsg delivers a reloaded configuration to a running App.
type ConfigMsg config.Config

// hostState is the App's part of the saved state, chained beneath the
// container's.
type hostState struct {
	Page      int   `json:"page"`
	Positions []int `json:"positions"`
}

// pullView records the rubber-band state the header draws.
type pullView struct {
	ratio    float64
	releases int
}

func (p *pullView) OnPulled(ratio float64) { p.ratio = ratio }
func (p *pullView) OnReleased()            { p.releases++ }

// App is the terminal host for one collapsible-header container.
type App struct {
	ctx    context.Context
	cfg    config.Config
	log    *zap.Logger
	clock  func() time.Time
	keys   keyMap
	states *service.StateService
	name   string

	c     *scroll.Container
	pager *scroll.Pager
	pages []*listPage
	pull  *pullView
	trace *offsetTrace

	frames frameLoop
	wheel  wheelCoalescer

	width, height int
	pressed       bool
	showTrace     bool
	status        string
}

// Options configures New. States may be nil to run without persistence.
type Options struct {
	Config    config.Config
	Container string
	States    *service.StateService
	Log       *zap.Logger
	Clock     func() time.Time
}

// New builds the App and restores any saved state for the container.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	cfg := opts.Config
	cfg.Normalize()
	name := opts.Container
	if name == "" {
		name = cfg.State.Container
	}

	sc, err := cfg.ToScroll(opts.Log.Named("scroll"), opts.Clock)
	if err != nil {
		return nil, err
	}
	if !sc.AutoMaxScroll && sc.MaxScroll == 0 {
		sc.MaxScroll = cfg.UI.HeaderRows * cfg.UI.RowUnits
	}

	a := &App{
		ctx:       ctx,
		cfg:       cfg,
		log:       opts.Log,
		clock:     opts.Clock,
		keys:      newKeyMap(),
		states:    opts.States,
		name:      name,
		c:         scroll.New(sc),
		pull:      &pullView{},
		trace:     newOffsetTrace(cfg.UI.TraceSeconds),
		frames:    newFrameLoop(cfg.UI.FPS),
		showTrace: cfg.UI.Trace,
	}

	content := make([]scroll.Content, 0, cfg.UI.Pages)
	for i := 0; i < cfg.UI.Pages; i++ {
		title := fmt.Sprintf("Page %d", i+1)
		if i < len(pageTitles) {
			title = pageTitles[i]
		}
		p := newListPage(title, cfg.UI.PageRows, cfg.UI.RowUnits)
		a.pages = append(a.pages, p)
		content = append(content, p)
	}
	a.pager = scroll.NewPager(content...)

	a.c.ObservePager(a.pager)
	a.c.SetDraggableRegion(tabRegion{a})
	a.c.SetDispatcher(scroll.DispatcherFunc(a.dispatch))
	a.c.SetFlingOverListener(scroll.FlingOverFunc(a.flingOver))
	a.c.AddScrollListener(scroll.ListenerFunc(func(offset, _, bound int) {
		a.trace.record(a.clock(), offset, bound)
	}))
	a.setOverscroll(cfg.UI.Overscroll)

	a.restore()
	return a, nil
}

// Container exposes the scroll container, mainly for tests and the CLI.
func (a *App) Container() *scroll.Container { return a.c }

// SetSender routes coalesced wheel events through send, usually
// tea.Program.Send. Without one each wheel notch is applied directly.
func (a *App) SetSender(send func(tea.Msg)) { a.wheel.SetSender(send) }

func (a *App) currentPage() *listPage {
	i := a.pager.Index()
	if i < 0 || i >= len(a.pages) {
		return nil
	}
	return a.pages[i]
}

func (a *App) dispatch(ev scroll.TouchEvent) {
	if p := a.currentPage(); p != nil {
		p.Dispatch(ev)
	}
}

func (a *App) flingOver(overshoot int, remaining time.Duration) {
	if p := a.currentPage(); p != nil {
		p.Continue(a.clock(), overshoot, remaining)
	}
}

func (a *App) setOverscroll(on bool) {
	if on == (a.c.Overscroll() != nil) {
		return
	}
	if on {
		a.c.SetOverscrollListener(a.pull)
		return
	}
	a.c.SetOverscrollListener(nil)
	a.pull.ratio = 0
}

func (a *App) setSnapping(on bool) {
	if on == (a.c.CloseUpPolicy() != nil) {
		return
	}
	if on {
		a.c.SetCloseUpPolicy(scroll.QuartileCloseUp{})
		return
	}
	a.c.SetCloseUpPolicy(nil)
}

func (a *App) restore() {
	if a.states == nil {
		return
	}
	super, err := a.states.Restore(a.ctx, a.name, a.c)
	if err != nil {
		a.log.Warn("restore state", zap.String("container", a.name), zap.Error(err))
		a.status = "restore failed: " + err.Error()
		return
	}
	if len(super) == 0 {
		return
	}
	var hs hostState
	if err := json.Unmarshal(super, &hs); err != nil {
		a.log.Warn("restore host state", zap.Error(err))
		return
	}
	a.pager.Select(hs.Page)
	for i, pos := range hs.Positions {
		if i < len(a.pages) {
			a.pages[i].pos = max(pos, 0)
		}
	}
}

// persist detaches the container and saves it with the page positions.
func (a *App) persist() error {
	a.frames.stop()
	if a.states == nil {
		a.c.Detach()
		return nil
	}
	hs := hostState{Page: a.pager.Index(), Positions: make([]int, len(a.pages))}
	for i, p := range a.pages {
		p.stop(a.clock())
		hs.Positions[i] = p.pos
	}
	super, err := json.Marshal(hs)
	if err != nil {
		return err
	}
	if err := a.states.Persist(a.ctx, a.name, a.c, super); err != nil {
		a.log.Error("persist state", zap.String("container", a.name), zap.Error(err))
		return err
	}
	return nil
}

func (a *App) Init() tea.Cmd {
	return a.wake()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(m.Width, m.Height)
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			if err := a.persist(); err != nil {
				a.status = "save failed: " + err.Error()
			}
			return a, tea.Quit
		}
		a.handleKey(m)
	case tea.MouseMsg:
		a.handleMouse(m)
	case wheelMsg:
		a.applyWheel(m.Delta)
	case frameMsg:
		return a, a.frame(m)
	case ConfigMsg:
		a.applyConfig(config.Config(m))
	}
	return a, a.wake()
}

func (a *App) handleKey(m tea.KeyMsg) {
	switch {
	case key.Matches(m, a.keys.NextTab):
		a.pager.Next()
	case key.Matches(m, a.keys.PrevTab):
		a.pager.Prev()
	case key.Matches(m, a.keys.Down):
		a.nestedScroll(a.cfg.UI.RowUnits)
	case key.Matches(m, a.keys.Up):
		a.nestedScroll(-a.cfg.UI.RowUnits)
	case key.Matches(m, a.keys.PageDown):
		a.keyFling(pageFlingVelocity)
	case key.Matches(m, a.keys.PageUp):
		a.keyFling(-pageFlingVelocity)
	case key.Matches(m, a.keys.Collapse):
		a.c.SmoothScrollTo(a.c.Bound())
	case key.Matches(m, a.keys.Reset):
		if p := a.currentPage(); p != nil {
			p.setPos(0)
		}
		a.c.SmoothScrollTo(0)
	case key.Matches(m, a.keys.Snapping):
		a.setSnapping(a.c.CloseUpPolicy() == nil)
		a.status = "snapping " + onOff(a.c.CloseUpPolicy() != nil)
	case key.Matches(m, a.keys.Overscroll):
		a.setOverscroll(a.c.Overscroll() == nil)
		a.status = "overscroll " + onOff(a.c.Overscroll() != nil)
	case key.Matches(m, a.keys.Trace):
		a.showTrace = !a.showTrace
		a.resize(a.width, a.height)
	case key.Matches(m, a.keys.Manual):
		a.c.SetSelfUpdateScroll(!a.c.SelfUpdateScroll())
		a.status = "manual " + onOff(a.c.SelfUpdateScroll())
	}
}

// keyFling flings whichever of container and page can move first in
// that direction.
func (a *App) keyFling(velocity float64) {
	p := a.currentPage()
	if velocity > 0 && a.c.Offset() < a.c.Bound() {
		a.c.Fling(velocity)
		return
	}
	if velocity < 0 && (p == nil || !p.CanScrollVertically(-1)) {
		a.c.Fling(velocity)
		return
	}
	if p != nil {
		p.fling(a.clock(), velocity)
	}
}

// nestedScroll moves content by dy units. Collapsing goes to the
// container first, revealing goes to the page first.
func (a *App) nestedScroll(dy int) {
	p := a.currentPage()
	if dy > 0 {
		rest := dy - a.c.ScrollBy(dy)
		if p != nil && rest != 0 {
			p.stop(a.clock())
			p.ScrollByOffset(rest)
		}
		return
	}
	rest := dy
	if p != nil {
		p.stop(a.clock())
		rest -= p.scrollBy(dy)
	}
	if rest != 0 {
		a.c.ScrollBy(rest)
	}
}

const wheelRows = 3

func (a *App) applyWheel(notches int) {
	a.nestedScroll(notches * wheelRows * a.cfg.UI.RowUnits)
}

func (a *App) colUnits() int {
	return max(a.cfg.UI.RowUnits/2, 1)
}

func (a *App) handleMouse(m tea.MouseMsg) {
	if a.wheel.Handle(m) {
		return
	}
	if d, ok := wheelDelta(m); ok {
		a.applyWheel(d)
		return
	}
	ev := scroll.TouchEvent{
		X:    float64(m.X * a.colUnits()),
		Y:    float64(m.Y * a.cfg.UI.RowUnits),
		Time: a.clock(),
	}
	switch {
	case m.Action == tea.MouseActionPress && m.Button == tea.MouseButtonLeft:
		ev.Action = scroll.ActionDown
		a.pressed = true
	case m.Action == tea.MouseActionMotion && a.pressed:
		ev.Action = scroll.ActionMove
	case m.Action == tea.MouseActionRelease && a.pressed:
		ev.Action = scroll.ActionUp
		a.pressed = false
	default:
		return
	}
	a.c.HandleTouch(ev)
}

func (a *App) needsFrames() bool {
	if a.c.Animating() {
		return true
	}
	if _, armed := a.c.NextWake(); armed {
		return true
	}
	for _, p := range a.pages {
		if p.Animating() {
			return true
		}
	}
	return false
}

// wake starts the frame loop when there is animation to run.
func (a *App) wake() tea.Cmd {
	if !a.c.Attached() || !a.needsFrames() {
		return nil
	}
	return a.frames.start()
}

func (a *App) frame(m frameMsg) tea.Cmd {
	if !a.frames.current(m) {
		return nil
	}
	now := a.clock()
	a.c.Advance()
	for _, p := range a.pages {
		p.Advance(now)
	}
	if a.showTrace {
		a.trace.record(now, a.c.Offset(), a.c.Bound())
	}
	if !a.needsFrames() {
		a.frames.stop()
		return nil
	}
	return a.frames.tick()
}

func (a *App) applyConfig(cfg config.Config) {
	cfg.Normalize()
	// page geometry is fixed for the life of the App
	cfg.UI.RowUnits = a.cfg.UI.RowUnits
	cfg.UI.HeaderRows = a.cfg.UI.HeaderRows
	cfg.UI.Pages = a.cfg.UI.Pages
	cfg.UI.PageRows = a.cfg.UI.PageRows

	a.status = "config reloaded"
	sc, err := cfg.ToScroll(a.log.Named("scroll"), a.clock)
	if err != nil {
		a.log.Warn("config easing", zap.Error(err))
		a.status = "config: " + err.Error()
		cfg.Scroll.CloseUpEasing = a.cfg.Scroll.CloseUpEasing
		sc, _ = cfg.ToScroll(a.log.Named("scroll"), a.clock)
	}
	a.c.Retune(sc)
	a.setSnapping(cfg.Scroll.DefaultCloseUp)
	a.setOverscroll(cfg.UI.Overscroll)
	a.frames.setFPS(cfg.UI.FPS)
	a.trace.window = time.Duration(cfg.UI.TraceSeconds) * time.Second
	a.showTrace = cfg.UI.Trace
	a.cfg = cfg
	a.resize(a.width, a.height)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
