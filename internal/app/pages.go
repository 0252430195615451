package app

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"launchpad/components"
	"launchpad/internal/workflow"
)

type page struct {
	title  string
	enter  func(m *model)
	blocks func(m model) []components.Block
	// ready reports whether Continue is enabled, and why not.
	ready  func(m model) (bool, string)
	submit func(m *model) tea.Cmd
	// back handles Back within the page; false falls through to the
	// previous stage.
	back   func(m *model) bool
	finish bool
}

var (
	pagesOnce sync.Once
	pages     map[workflow.Step]page
	pagesErr  error
)

func pageRegistry() (map[workflow.Step]page, error) {
	pagesOnce.Do(func() {
		pages = map[workflow.Step]page{
			workflow.StepOverview:            overviewPage(),
			workflow.StepSelectClient:        selectClientPage(),
			workflow.StepGenerateKeyPairs:    generateKeysPage(),
			workflow.StepUploadValidatorFile: uploadPage(),
			workflow.StepConnectWallet:       connectWalletPage(),
			workflow.StepSummary:             summaryPage(),
			workflow.StepTransactionSigning:  transactionsPage(),
			workflow.StepCongratulations:     congratulationsPage(),
		}
		defs := workflow.Definitions()
		if err := workflow.ValidateStepDefinitions(defs); err != nil {
			pagesErr = err
			return
		}
		for _, def := range defs {
			p, ok := pages[def.Step]
			if !ok {
				pagesErr = fmt.Errorf("missing page for step %q", def.ID)
				return
			}
			if p.blocks == nil || p.submit == nil {
				pagesErr = fmt.Errorf("page for step %q is incomplete", def.ID)
				return
			}
		}
		if len(pages) != len(defs) {
			pagesErr = fmt.Errorf("page count mismatch: pages=%d steps=%d", len(pages), len(defs))
		}
	})
	return pages, pagesErr
}

// ValidatePages checks that every workflow stage has a complete page.
func ValidatePages() error {
	_, err := pageRegistry()
	return err
}

func pageFor(step workflow.Step) (page, bool) {
	reg, _ := pageRegistry()
	p, ok := reg[step]
	return p, ok
}

func alwaysReady(model) (bool, string) { return true, "" }

func ackReady(m model) (bool, string) {
	if m.scratch.ack {
		return true, ""
	}
	return false, "Tick the checkbox to continue"
}

// advanceSubmit completes step and moves to the next stage.
func advanceSubmit(step workflow.Step) func(m *model) tea.Cmd {
	return func(m *model) tea.Cmd {
		m.advance(step)
		return nil
	}
}

func text(s string) components.Block {
	return components.Block{Kind: components.BlockText, Text: s}
}

func subText(s string) components.Block {
	return components.Block{Kind: components.BlockText, Text: s, Tone: components.ToneSub}
}

func heading(s string) components.Block {
	return components.Block{Kind: components.BlockHeading, Text: s}
}

func checkbox(id, s string, checked bool) components.Block {
	return components.Block{ID: id, Kind: components.BlockCheckbox, Text: s, Checked: checked}
}

const blockAck = "ack"

func overviewPage() page {
	return page{
		title: "Overview",
		enter: func(m *model) {
			m.scratch.ack = m.progress() > workflow.StepOverview
		},
		blocks: func(m model) []components.Block {
			return []components.Block{
				heading("Become an Ethereum validator"),
				text("Validators propose and attest to blocks on the beacon chain. Each validator needs its own " +
					"deposit and must stay online to earn rewards."),
				text(fmt.Sprintf("This wizard walks you through choosing clients, generating keys and sending the deposit "+
					"of %s per validator on %s.", priceLabel(m), m.svc.Network())),
				subText("Your deposit cannot be withdrawn until withdrawals are enabled for your validator. Being offline " +
					"costs rewards and misbehaving is penalised by slashing."),
				checkbox(blockAck, "I understand the risks of running a validator and keep my keys safe.", m.scratch.ack),
			}
		},
		ready:  ackReady,
		submit: advanceSubmit(workflow.StepOverview),
	}
}

func priceLabel(m model) string {
	cost, err := m.svc.ValidatorCost("1")
	if err != nil || cost == "" {
		return m.svc.Ticker()
	}
	return cost + " " + m.svc.Ticker()
}

func congratulationsPage() page {
	return page{
		title: "Congratulations",
		blocks: func(m model) []components.Block {
			sel := m.store.Clients()
			return []components.Block{
				heading("You are a validator"),
				text("Your deposits are on their way. After the beacon chain processes them your validator enters the " +
					"activation queue; this can take from hours to weeks."),
				text(fmt.Sprintf("Keep %s and %s synced and your validator client running with the imported keys.",
					clientName(sel.Execution), clientName(sel.Consensus))),
				subText("Press Finish to leave the wizard. Your progress stays saved."),
			}
		},
		ready: alwaysReady,
		submit: func(m *model) tea.Cmd {
			m.log.Info("wizard finished")
			return tea.Quit
		},
		finish: true,
	}
}
