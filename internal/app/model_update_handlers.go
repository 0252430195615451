package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"launchpad/components"
	"launchpad/internal/workflow"
)

const buttonReleaseDelay = 80 * time.Millisecond

func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.w, m.h = msg.Width, msg.Height
	m.clampScroll()
	return m, nil
}

func (m model) handleButtonRelease(msg buttonReleaseMsg) (tea.Model, tea.Cmd) {
	wasDown := m.btnDown
	m.btnDown = buttonNone
	if wasDown != msg.btn {
		return m, nil
	}
	return m, m.pressButton(msg.btn)
}

// pressDown shows the button pressed; the release message triggers it.
func (m model) pressDown(btn button) (tea.Model, tea.Cmd) {
	if m.btnDown != buttonNone {
		return m, nil
	}
	m.btnDown = btn
	return m, tea.Tick(buttonReleaseDelay, func(time.Time) tea.Msg { return buttonReleaseMsg{btn: btn} })
}

func (m *model) pressButton(btn button) tea.Cmd {
	switch btn {
	case buttonBack:
		m.goBack()
		return nil
	case buttonContinue:
		return m.submit()
	default:
		return nil
	}
}

func (m *model) submit() tea.Cmd {
	p := m.currentPage()
	if p.ready != nil {
		if ok, why := p.ready(*m); !ok {
			m.err = why
			return nil
		}
	}
	if p.submit == nil {
		return nil
	}
	return p.submit(m)
}

func (m *model) goBack() {
	if p := m.currentPage(); p.back != nil && p.back(m) {
		return
	}
	prev, ok := m.page.Prev()
	if !ok {
		return
	}
	m.navigate(workflow.RouteFor(prev))
}

func (m model) handleMouseMsg(me tea.MouseEvent) (tea.Model, tea.Cmd) {
	switch me.Button {
	case tea.MouseButtonWheelUp:
		m.scroll -= 2
		m.clampScroll()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scroll += 2
		m.clampScroll()
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	layout, ok := components.ComputeLayout(m.w, m.h, len(workflow.Definitions()))
	if !ok {
		return m, nil
	}
	backR, contR, ok := components.ButtonRects(layout.Card)
	if !ok {
		return m, nil
	}
	hit := buttonNone
	switch {
	case contR.Contains(me.X, me.Y):
		hit = buttonContinue
	case m.backVisible() && backR.Contains(me.X, me.Y):
		hit = buttonBack
	}

	switch me.Action {
	case tea.MouseActionPress:
		m.btnDown = hit
		if hit == buttonContinue {
			m.focus = focusContinue
		} else if hit == buttonBack {
			m.focus = focusBack
		}
	case tea.MouseActionRelease:
		wasDown := m.btnDown
		m.btnDown = buttonNone
		if wasDown != buttonNone && wasDown == hit {
			return m, m.pressButton(hit)
		}
	}
	return m, nil
}

func (m model) focusedBlock() (components.Block, bool) {
	for _, b := range m.blocks() {
		if b.ID != "" && b.ID == m.focus {
			return b, true
		}
	}
	return components.Block{}, false
}

func (m model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Force) {
		return m, tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.goBack()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.scroll -= 5
		m.clampScroll()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.scroll += 5
		m.clampScroll()
		return m, nil
	}

	if b, ok := m.focusedBlock(); ok && b.Kind == components.BlockField {
		return m.handleFieldKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Jump):
		return m.handleJump(msg.String())
	}

	switch m.focus {
	case focusBack, focusContinue:
		return m.handleButtonKey(msg)
	}
	return m.handleBlockKey(msg)
}

// handleJump is the terminal's address bar: the digit names a stage route
// and the guard decides what is shown.
func (m model) handleJump(k string) (tea.Model, tea.Cmd) {
	n := int(k[0] - '1')
	defs := workflow.Definitions()
	if n < 0 || n >= len(defs) {
		return m, nil
	}
	m.navigate(defs[n].Route)
	return m, nil
}

func (m model) handleButtonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Activate), key.Matches(msg, m.keys.Toggle):
		if m.focus == focusBack {
			return m.pressDown(buttonBack)
		}
		return m.pressDown(buttonContinue)
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		if m.focus == focusContinue && m.backVisible() {
			m.setFocus(focusBack)
		} else {
			m.setFocus(focusContinue)
		}
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	}
	return m, nil
}

func (m model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Activate):
		if m.focus == blockPath {
			return m, m.startDepositLoad()
		}
		m.moveFocus(1)
		return m, nil
	case msg.Type == tea.KeyUp:
		m.moveFocus(-1)
		return m, nil
	case msg.Type == tea.KeyDown:
		m.moveFocus(1)
		return m, nil
	}

	switch m.focus {
	case blockCount:
		m.scratch.count.HandleKey(msg)
	case blockPath:
		before := m.scratch.path.ValueString()
		m.scratch.path.HandleKey(msg)
		if m.scratch.path.ValueString() != before {
			m.scratch.loaded = nil
			m.scratch.loading = false
			m.notice = ""
		}
	}
	m.err = ""
	return m, nil
}

func (m model) handleBlockKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, ok := m.focusedBlock()
	if !ok {
		return m, nil
	}
	switch b.Kind {
	case components.BlockList:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.scratch.cursor > 0 {
				m.scratch.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.scratch.cursor < len(b.Options)-1 {
				m.scratch.cursor++
			}
		case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Activate):
			m.chooseClient()
		}
		m.scroll = components.ScrollToFocus(m.toViewState())

	case components.BlockChoice:
		delta := 0
		switch {
		case key.Matches(msg, m.keys.Left):
			delta = -1
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
			delta = 1
		case key.Matches(msg, m.keys.Up):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Activate):
			m.moveFocus(1)
		}
		if delta != 0 {
			n := len(b.Options)
			next := (b.Selected + delta + n) % n
			switch m.focus {
			case blockOS:
				m.scratch.os = OS(next)
			case blockTool:
				m.scratch.tool = Tool(next)
			}
		}

	case components.BlockCheckbox:
		switch {
		case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Activate):
			m.scratch.ack = !m.scratch.ack
			if m.scratch.ack {
				m.err = ""
			}
		case key.Matches(msg, m.keys.Up):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveFocus(1)
		}
	}
	return m, nil
}
