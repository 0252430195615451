package app

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"launchpad/components"
	"launchpad/internal/clients"
	"launchpad/internal/deposit"
	"launchpad/internal/state"
	"launchpad/internal/workflow"
)

const (
	focusBack     = "back"
	focusContinue = "continue"
)

type button int

const (
	buttonNone button = iota
	buttonBack
	buttonContinue
)

type buttonReleaseMsg struct{ btn button }

type depositLoadedMsg struct {
	path    string
	entries []deposit.Entry
	err     error
}

// pageScratch is input owned by the page on screen. It is rebuilt every time
// a page is entered and never persisted.
type pageScratch struct {
	ack bool

	role   clients.Role
	cursor int

	count components.Field
	os    OS
	tool  Tool

	path    components.Field
	loading bool
	loaded  []deposit.Entry
}

type model struct {
	svc   Services
	store *state.Store
	keys  keyMap
	log   *zap.Logger

	w int
	h int

	// route is what the user asked for; page is the step whose scratch is
	// loaded. They differ only until syncRoute runs.
	route   workflow.Route
	page    workflow.Step
	entered bool

	focus   string
	scroll  int
	err     string
	notice  string
	btnDown button

	orders   map[clients.Role][]clients.Client
	deposits []deposit.Entry
	scratch  pageScratch
}

type Options struct {
	Store    *state.Store
	Services Services
	Logger   *zap.Logger
	// Route is the first route requested; empty means the current stage.
	Route workflow.Route
	Rand  *rand.Rand
}

func NewModel(opts Options) tea.Model { return newModel(opts) }

func newModel(opts Options) model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := model{
		svc:   opts.Services,
		store: opts.Store,
		keys:  defaultKeyMap(),
		log:   log,
		route: opts.Route,
		orders: map[clients.Role][]clients.Client{
			clients.RoleExecution: clients.ForRole(clients.RoleExecution, rng),
			clients.RoleConsensus: clients.ForRole(clients.RoleConsensus, rng),
		},
	}
	if m.route == "" {
		m.route = workflow.RouteFor(workflow.Normalize(m.store.WorkflowStep()))
	}
	m.syncRoute()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) progress() workflow.Step { return m.store.WorkflowStep() }

// syncRoute applies the guard to the requested route. A redirect replaces
// the route and, like entering a different page, resets the page scratch.
func (m *model) syncRoute() {
	d := workflow.GuardRoute(m.progress(), m.route)
	if d.Redirected() {
		m.log.Info("route redirected",
			zap.String("requested", string(m.route)),
			zap.String("to", string(d.Route)),
			zap.Stringer("progress", m.progress()))
		m.route = d.Route
	}
	if d.Redirected() || !m.entered || d.Step != m.page {
		m.enterPage(d.Step)
	}
}

func (m *model) enterPage(step workflow.Step) {
	m.page = step
	m.entered = true
	m.scratch = pageScratch{}
	m.err = ""
	m.notice = ""
	m.scroll = 0
	m.btnDown = buttonNone
	if p, ok := pageFor(step); ok && p.enter != nil {
		p.enter(m)
	}
	m.focus = ""
	if targets := m.focusTargets(); len(targets) > 0 {
		m.focus = targets[0]
	}
}

func (m *model) navigate(r workflow.Route) {
	m.route = r
	m.syncRoute()
}

// advance marks step complete and moves on to the following stage's route.
// A stale submission still navigates; the guard decides what renders.
func (m *model) advance(step workflow.Step) {
	before := m.progress()
	if workflow.Advance(m.store, step) {
		m.log.Info("workflow advanced",
			zap.Stringer("from", before),
			zap.Stringer("to", m.progress()))
	} else {
		m.log.Debug("submission ignored",
			zap.Stringer("step", step),
			zap.Stringer("progress", before))
	}
	next, ok := step.Next()
	if !ok {
		return
	}
	m.navigate(workflow.RouteFor(next))
}

func (m model) currentPage() page {
	p, _ := pageFor(m.page)
	return p
}

func (m model) blocks() []components.Block {
	p := m.currentPage()
	if p.blocks == nil {
		return nil
	}
	out := p.blocks(m)
	for i := range out {
		out[i].Focused = out[i].ID != "" && out[i].ID == m.focus
	}
	return out
}

func (m model) backVisible() bool {
	p := m.currentPage()
	if p.back != nil {
		return true
	}
	_, ok := m.page.Prev()
	return ok
}

func (m model) focusTargets() []string {
	var out []string
	for _, b := range m.blocks() {
		if b.Focusable() && b.ID != "" {
			out = append(out, b.ID)
		}
	}
	if m.backVisible() {
		out = append(out, focusBack)
	}
	return append(out, focusContinue)
}

func (m *model) setFocus(id string) {
	m.focus = id
	m.btnDown = buttonNone
	m.scroll = components.ScrollToFocus(m.toViewState())
}

func (m *model) moveFocus(delta int) {
	targets := m.focusTargets()
	if len(targets) == 0 {
		return
	}
	idx := 0
	for i, id := range targets {
		if id == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(targets)) % len(targets)
	m.setFocus(targets[idx])
}
