package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"launchpad/components"
	"launchpad/internal/workflow"
)

const blockPath = "path"

func (m model) loadDepositCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.svc.LoadDepositFile(path)
		return depositLoadedMsg{path: path, entries: entries, err: err}
	}
}

func (m *model) startDepositLoad() tea.Cmd {
	path := strings.TrimSpace(m.scratch.path.ValueString())
	if path == "" {
		m.err = "Enter the path of your deposit file"
		return nil
	}
	m.err = ""
	m.notice = ""
	m.scratch.loading = true
	m.scratch.loaded = nil
	return m.loadDepositCmd(path)
}

func shortKey(pubkey string) string {
	k := strings.TrimPrefix(pubkey, "0x")
	if len(k) <= 16 {
		return "0x" + k
	}
	return "0x" + k[:8] + "…" + k[len(k)-6:]
}

func uploadPage() page {
	return page{
		title: "Upload deposit data",
		enter: func(m *model) {
			m.scratch.path = components.Field{Placeholder: "./validator_keys/deposit_data.json"}
		},
		blocks: func(m model) []components.Block {
			field := components.Block{ID: blockPath, Kind: components.BlockField, Label: "File", Field: m.scratch.path}
			switch {
			case m.scratch.loading:
				field.Text, field.Tone = "Checking…", components.ToneSub
			case len(m.scratch.loaded) > 0:
				field.Text = fmt.Sprintf("%d deposit(s) for %s", len(m.scratch.loaded), m.svc.Network())
				field.Tone = components.ToneAccent
			}
			out := []components.Block{
				heading("Upload your deposit data"),
				text("Enter the path of the deposit_data-*.json file from the previous step and press enter to check it."),
				field,
			}
			if len(m.scratch.loaded) == 0 && m.progress() > workflow.StepUploadValidatorFile {
				out = append(out, subText("This step is already complete. You can continue without loading the file again."))
			}
			return out
		},
		ready: func(m model) (bool, string) {
			if len(m.scratch.loaded) > 0 || m.progress() > workflow.StepUploadValidatorFile {
				return true, ""
			}
			if m.scratch.loading {
				return false, "Still checking the deposit file"
			}
			return false, "Load a valid deposit file to continue"
		},
		submit: advanceSubmit(workflow.StepUploadValidatorFile),
	}
}

func (m model) handleDepositLoaded(msg depositLoadedMsg) (tea.Model, tea.Cmd) {
	if m.page != workflow.StepUploadValidatorFile || !m.scratch.loading {
		return m, nil
	}
	if msg.path != strings.TrimSpace(m.scratch.path.ValueString()) {
		return m, nil
	}
	m.scratch.loading = false
	if msg.err != nil {
		m.err = msg.err.Error()
		m.log.Warn("deposit file rejected", zap.String("path", msg.path), zap.Error(msg.err))
		return m, nil
	}
	m.scratch.loaded = msg.entries
	m.deposits = msg.entries
	m.err = ""
	m.notice = fmt.Sprintf("Loaded %s", msg.path)
	m.log.Info("deposit file loaded", zap.String("path", msg.path), zap.Int("deposits", len(msg.entries)))
	m.setFocus(focusContinue)
	return m, nil
}

func connectWalletPage() page {
	return page{
		title: "Connect wallet",
		blocks: func(m model) []components.Block {
			out := []components.Block{
				heading("Connect your wallet"),
				text("Deposits go to the official deposit contract. Check that your wallet shows this exact address " +
					"before you sign anything."),
			}
			addr, err := m.svc.DepositContract()
			if err != nil {
				return append(out, components.Block{Kind: components.BlockText, Text: err.Error(), Tone: components.ToneError})
			}
			out = append(out, components.Block{
				Kind:  components.BlockCode,
				Label: "Deposit contract on " + m.svc.Network(),
				Lines: []string{addr},
			})
			qr, err := m.svc.ContractQR()
			if err != nil {
				return append(out, components.Block{Kind: components.BlockText, Text: err.Error(), Tone: components.ToneError})
			}
			out = append(out, components.Block{
				Kind:  components.BlockText,
				Lines: strings.Split(strings.TrimRight(qr, "\n"), "\n"),
			})
			return out
		},
		ready:  alwaysReady,
		submit: advanceSubmit(workflow.StepConnectWallet),
	}
}

func summaryPage() page {
	return page{
		title: "Summary",
		enter: func(m *model) {
			m.scratch.ack = m.progress() > workflow.StepSummary
		},
		blocks: func(m model) []components.Block {
			sel := m.store.Clients()
			validators := "no deposit file loaded in this session"
			total := "unknown"
			if n := len(m.deposits); n > 0 {
				validators = fmt.Sprintf("%d", n)
				if cost, err := m.svc.ValidatorCost(validators); err == nil && cost != "" {
					total = cost + " " + m.svc.Ticker()
				}
			}
			return []components.Block{
				heading("Review your setup"),
				{Kind: components.BlockText, Lines: []string{
					"Network           " + m.svc.Network(),
					"Execution client  " + clientName(sel.Execution),
					"Consensus client  " + clientName(sel.Consensus),
					"Validators        " + validators,
					"Total deposit     " + total,
				}},
				checkbox(blockAck, "I have checked the details above.", m.scratch.ack),
			}
		},
		ready:  ackReady,
		submit: advanceSubmit(workflow.StepSummary),
	}
}

func transactionsPage() page {
	return page{
		title: "Transactions",
		blocks: func(m model) []components.Block {
			out := []components.Block{
				heading("Sign the deposit transactions"),
				text(fmt.Sprintf("Send one deposit of %s per validator from your connected wallet.", priceLabel(m))),
			}
			if len(m.deposits) == 0 {
				return append(out, subText("No deposit file was loaded in this session. Your wallet lists the transactions to sign."))
			}
			lines := make([]string, 0, len(m.deposits))
			for i, e := range m.deposits {
				lines = append(lines, fmt.Sprintf("[ ] %2d  %s", i+1, shortKey(e.Pubkey)))
			}
			return append(out, components.Block{Kind: components.BlockText, Lines: lines})
		},
		ready:  alwaysReady,
		submit: advanceSubmit(workflow.StepTransactionSigning),
	}
}
