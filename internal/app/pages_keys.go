package app

import (
	"fmt"

	"launchpad/components"
	"launchpad/internal/deposit"
	"launchpad/internal/workflow"
)

const (
	blockCount = "count"
	blockOS    = "os"
	blockTool  = "tool"
)

func (m model) validatorCount() int {
	n, err := deposit.ParseCount(m.scratch.count.ValueString())
	if err != nil {
		return 0
	}
	return n
}

func (m model) costLine() (string, components.Tone) {
	raw := m.scratch.count.ValueString()
	if _, err := deposit.ParseCount(raw); err != nil {
		return err.Error(), components.ToneError
	}
	cost, err := m.svc.ValidatorCost(raw)
	if err != nil {
		return err.Error(), components.ToneError
	}
	if cost == "" {
		return "", components.ToneSub
	}
	return fmt.Sprintf("Cost: %s %s", cost, m.svc.Ticker()), components.ToneAccent
}

func choice(id, label string, labels []string, selected int) components.Block {
	b := components.Block{ID: id, Kind: components.BlockChoice, Label: label, Selected: selected}
	for _, l := range labels {
		b.Options = append(b.Options, components.Option{Label: l})
	}
	return b
}

func generateKeysPage() page {
	return page{
		title: "Generate key pairs",
		enter: func(m *model) {
			m.scratch.count = components.Field{Placeholder: "1", Digits: true, MaxLen: 4}
			m.scratch.os = OSLinux
			m.scratch.tool = ToolGUI
			m.scratch.ack = m.progress() > workflow.StepGenerateKeyPairs
		},
		blocks: func(m model) []components.Block {
			cost, tone := m.costLine()
			out := []components.Block{
				heading("Generate your validator keys"),
				text("How many validators do you want to run?"),
				{ID: blockCount, Kind: components.BlockField, Label: "Validators", Field: m.scratch.count, Text: cost, Tone: tone},
				choice(blockOS, "Operating system", osLabels, int(m.scratch.os)),
				choice(blockTool, "Key generation tool", toolLabels, int(m.scratch.tool)),
			}
			lines, err := m.svc.Instructions(m.scratch.os, m.scratch.tool, m.validatorCount())
			if err != nil {
				out = append(out, components.Block{Kind: components.BlockText, Text: err.Error(), Tone: components.ToneError})
			} else {
				out = append(out, components.Block{Kind: components.BlockCode, Label: "Run", Lines: lines})
			}
			out = append(out,
				subText("The tool writes a validator_keys folder with your keystores and a deposit_data-*.json file. "+
					"Write the mnemonic down offline; it is the only way to recover your keys."),
				checkbox(blockAck, "I have generated my keys and stored the mnemonic safely.", m.scratch.ack),
			)
			return out
		},
		ready:  ackReady,
		submit: advanceSubmit(workflow.StepGenerateKeyPairs),
	}
}
