package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"launchpad/components"
	"launchpad/internal/clients"
	"launchpad/internal/workflow"
)

const blockClients = "clients"

func clientName(id clients.ClientID) string {
	if c, ok := clients.Lookup(id); ok {
		return c.Name
	}
	return "your client"
}

func (m model) clientOrder() []clients.Client {
	return m.orders[m.scratch.role]
}

// selectCursor moves the list cursor onto the stored choice for the current
// sub-step, if any.
func (m *model) selectCursor() {
	m.scratch.cursor = 0
	chosen := m.store.Clients().For(m.scratch.role)
	for i, c := range m.clientOrder() {
		if c.ID == chosen {
			m.scratch.cursor = i
			return
		}
	}
}

func (m *model) chooseClient() {
	order := m.clientOrder()
	if len(order) == 0 {
		return
	}
	c := order[clampIndex(m.scratch.cursor, len(order))]
	if err := m.store.SetClient(m.scratch.role, c.ID); err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.log.Info("client selected", zap.String("role", string(m.scratch.role)), zap.String("client", string(c.ID)))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func selectClientPage() page {
	return page{
		title: "Select client",
		enter: func(m *model) {
			m.scratch.role = clients.RoleExecution
			m.selectCursor()
		},
		blocks: func(m model) []components.Block {
			role := m.scratch.role
			chosen := m.store.Clients().For(role)
			order := m.clientOrder()

			list := components.Block{
				ID:       blockClients,
				Kind:     components.BlockList,
				Label:    fmt.Sprintf("%s clients", roleTitle(role)),
				Selected: -1,
				Cursor:   m.scratch.cursor,
			}
			for i, c := range order {
				list.Options = append(list.Options, components.Option{
					Label:  c.Name,
					Detail: c.Language + " · " + c.Summary,
				})
				if c.ID == chosen {
					list.Selected = i
				}
			}

			out := []components.Block{}
			if role == clients.RoleExecution {
				out = append(out,
					heading("Choose your execution client"),
					text("The execution client runs the EVM and keeps the state of the chain. Pick a minority client "+
						"to help keep the network resilient."))
			} else {
				out = append(out,
					components.Block{
						Kind: components.BlockText,
						Text: "Execution client: " + clientName(m.store.Clients().Execution),
						Tone: components.ToneAccent,
					},
					heading("Choose your consensus client"),
					text("The consensus client follows the beacon chain and runs your validator keys."))
			}
			out = append(out, list)
			out = append(out, subText("Order is shuffled on every visit so no client is favoured."))
			return out
		},
		ready: func(m model) (bool, string) {
			if m.store.Clients().For(m.scratch.role) == clients.None {
				return false, fmt.Sprintf("Select your %s client to continue", m.scratch.role)
			}
			return true, ""
		},
		submit: func(m *model) tea.Cmd {
			if m.scratch.role == clients.RoleExecution {
				m.scratch.role = clients.RoleConsensus
				m.selectCursor()
				m.err = ""
				m.scroll = 0
				m.setFocus(blockClients)
				return nil
			}
			m.advance(workflow.StepSelectClient)
			return nil
		},
		back: func(m *model) bool {
			if m.scratch.role != clients.RoleConsensus {
				return false
			}
			m.scratch.role = clients.RoleExecution
			m.selectCursor()
			m.err = ""
			m.scroll = 0
			m.setFocus(blockClients)
			return true
		},
	}
}

func roleTitle(r clients.Role) string {
	switch r {
	case clients.RoleExecution:
		return "Execution"
	case clients.RoleConsensus:
		return "Consensus"
	default:
		return string(r)
	}
}
