package app

import (
	"launchpad/components"
	"launchpad/internal/workflow"
)

func mapStepState(s workflow.StepState) components.StepState {
	switch s {
	case workflow.StepDone:
		return components.StepDone
	case workflow.StepCurrent:
		return components.StepCurrent
	default:
		return components.StepLocked
	}
}

func (m model) stepper() []components.Step {
	progress := m.progress()
	defs := workflow.Definitions()
	out := make([]components.Step, 0, len(defs))
	for _, def := range defs {
		out = append(out, components.Step{
			Label:   def.Label,
			State:   mapStepState(workflow.StateOf(progress, def.Step)),
			Showing: def.Step == m.page,
		})
	}
	return out
}

func (m model) toViewState() components.ViewState {
	p := m.currentPage()
	ready := true
	if p.ready != nil {
		ready, _ = p.ready(m)
	}
	contLabel := components.ContinueLabel
	if p.finish {
		contLabel = components.FinishLabel
	}
	return components.ViewState{
		W:     m.w,
		H:     m.h,
		Steps: m.stepper(),
		Card: components.Card{
			Number: int(m.page) + 1,
			Title:  p.title,
			Blocks: m.blocks(),
			Scroll: m.scroll,
			Back: components.Button{
				Label:   components.BackLabel,
				Visible: m.backVisible(),
				Focused: m.focus == focusBack,
				Down:    m.btnDown == buttonBack,
			},
			Continue: components.Button{
				Label:    contLabel,
				Visible:  true,
				Disabled: !ready,
				Focused:  m.focus == focusContinue,
				Down:     m.btnDown == buttonContinue,
			},
			Err:    m.err,
			Notice: m.notice,
		},
		Hint: m.keys.hint(),
	}
}

// View re-evaluates the guard so a store change made outside Update can
// never show a page the progress does not allow.
func (m model) View() string {
	m.syncRoute()
	return components.Render(m.toViewState())
}
