package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"launchpad/internal/clients"
	"launchpad/internal/persist"
	"launchpad/internal/state"
	"launchpad/internal/workflow"
)

var (
	statusTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D7FF00"))
	statusSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	statusDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9FB800"))
	statusCurrent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D7FF00"))
	statusLocked  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	statusCell    = lipgloss.NewStyle().Padding(0, 1)
)

var stepStateNames = map[workflow.StepState]string{
	workflow.StepDone:    "done",
	workflow.StepCurrent: "current",
	workflow.StepLocked:  "locked",
}

func clientLabel(id clients.ClientID) string {
	if c, ok := clients.Lookup(id); ok {
		return c.Name
	}
	return "not chosen"
}

// renderStatus formats a session's saved progress as a table.
func renderStatus(sessionID string, st state.State, saved bool) string {
	progress := workflow.Normalize(st.Workflow)
	states := make([]workflow.StepState, 0, len(workflow.Definitions()))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(statusSub).
		Headers("#", "Step", "Route", "State")
	for _, def := range workflow.Definitions() {
		s := workflow.StateOf(progress, def.Step)
		states = append(states, s)
		t.Row(strconv.Itoa(int(def.Step)+1), def.Label, string(def.Route), stepStateNames[s])
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row < 0 || row >= len(states) {
			return statusCell.Inherit(statusSub)
		}
		switch states[row] {
		case workflow.StepDone:
			return statusCell.Inherit(statusDone)
		case workflow.StepCurrent:
			return statusCell.Inherit(statusCurrent)
		default:
			return statusCell.Inherit(statusLocked)
		}
	})

	header := statusTitle.Render("launchpad session " + sessionID)
	if !saved {
		header += statusSub.Render("  (nothing saved yet)")
	}
	info := statusSub.Render(fmt.Sprintf("execution: %s   consensus: %s",
		clientLabel(st.Clients.Execution), clientLabel(st.Clients.Consensus)))
	return lipgloss.JoinVertical(lipgloss.Left, header, t.String(), info)
}

func (c *cli) runStatus(cmd *cobra.Command, args []string) error {
	backend, err := persist.Open(cmd.Context(), c.cfg.Storage)
	if err != nil {
		return err
	}
	defer backend.Close()

	snap, ok, err := backend.Load(cmd.Context(), c.cfg.Session.ID)
	if err != nil {
		return err
	}
	st := state.Initial()
	if ok {
		st = snap.State()
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderStatus(c.cfg.Session.ID, st, ok))
	return nil
}
