package app

import tea "github.com/charmbracelet/bubbletea"

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.syncRoute()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case buttonReleaseMsg:
		return m.handleButtonRelease(msg)
	case depositLoadedMsg:
		return m.handleDepositLoaded(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(tea.MouseEvent(msg))
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	default:
		return m, nil
	}
}
