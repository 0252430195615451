package app

import "launchpad/components"

func (m *model) clampScroll() {
	if m.scroll < 0 {
		m.scroll = 0
		return
	}
	if max := components.ScrollLimit(m.toViewState()); m.scroll > max {
		m.scroll = max
	}
}
