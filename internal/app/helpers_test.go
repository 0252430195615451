package app

import (
	"launchpad/components"
	"launchpad/internal/workflow"
)

func componentsLayout(m model) (components.Rect, bool) {
	layout, ok := components.ComputeLayout(m.w, m.h, len(workflow.Definitions()))
	if !ok {
		return components.Rect{}, false
	}
	_, cont, ok := components.ButtonRects(layout.Card)
	return cont, ok
}
