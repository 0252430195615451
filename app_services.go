package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"launchpad/internal/app"
	"launchpad/internal/config"
	"launchpad/internal/deposit"
)

type runtimeServices struct {
	network config.Network
}

type instructionKey struct {
	os   app.OS
	tool app.Tool
}

// instructionTemplate names the template file and the commands that differ
// per operating system.
type instructionTemplate struct {
	path    string
	binary  string
	install string
	script  string
}

type instructionData struct {
	OS      string
	Network string
	Count   string
	Binary  string
	Install string
	Script  string
}

var (
	validateTemplatesOnce sync.Once
	validateTemplatesErr  error
)

var unixSource = instructionTemplate{
	path:    "templates/instructions/source.tmpl",
	install: "./deposit.sh install",
	script:  "./deposit.sh",
}

var instructionTemplates = map[instructionKey]instructionTemplate{
	{app.OSLinux, app.ToolGUI}:      {path: "templates/instructions/gui.tmpl"},
	{app.OSMac, app.ToolGUI}:        {path: "templates/instructions/gui.tmpl"},
	{app.OSWindows, app.ToolGUI}:    {path: "templates/instructions/gui.tmpl"},
	{app.OSLinux, app.ToolCLI}:      {path: "templates/instructions/cli.tmpl", binary: "./deposit"},
	{app.OSMac, app.ToolCLI}:        {path: "templates/instructions/cli.tmpl", binary: "./deposit"},
	{app.OSWindows, app.ToolCLI}:    {path: "templates/instructions/cli.tmpl", binary: "deposit.exe"},
	{app.OSLinux, app.ToolSource}:   unixSource,
	{app.OSMac, app.ToolSource}:     unixSource,
	{app.OSWindows, app.ToolSource}: {path: "templates/instructions/source.tmpl", install: "pip3 install -r requirements.txt && python setup.py install", script: "python .\\staking_deposit\\deposit.py"},
}

func newRuntimeServices(network config.Network) app.Services {
	return runtimeServices{network: network}
}

func (s runtimeServices) Network() string { return s.network.Name }
func (s runtimeServices) Ticker() string  { return s.network.Ticker }

func (s runtimeServices) ValidatorCost(count string) (string, error) {
	return deposit.Cost(count, s.network.PricePerValidator)
}

func (s runtimeServices) Instructions(target app.OS, tool app.Tool, count int) ([]string, error) {
	if err := validateInstructionTemplates(); err != nil {
		return nil, err
	}
	return renderInstructions(target, tool, s.network.Name, count)
}

func renderInstructions(target app.OS, tool app.Tool, network string, count int) ([]string, error) {
	tpl, ok := instructionTemplates[instructionKey{target, tool}]
	if !ok {
		return nil, fmt.Errorf("no instructions for %s with %s", target.Label(), tool.Label())
	}
	countStr := "<count>"
	if count > 0 {
		countStr = strconv.Itoa(count)
	}
	out, err := renderTemplateFile(tpl.path, instructionData{
		OS:      target.Label(),
		Network: network,
		Count:   countStr,
		Binary:  tpl.binary,
		Install: tpl.install,
		Script:  tpl.script,
	})
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(out, "\n"), "\n"), nil
}

func (s runtimeServices) LoadDepositFile(path string) ([]deposit.Entry, error) {
	opts, err := depositOptions(s.network)
	if err != nil {
		return nil, err
	}
	return deposit.ParseFile(expandHome(path), opts)
}

// depositOptions is what a deposit file for network must match.
func depositOptions(network config.Network) (deposit.Options, error) {
	amount, err := deposit.GweiFromEther(network.PricePerValidator)
	if err != nil {
		return deposit.Options{}, err
	}
	return deposit.Options{AmountGwei: amount, Network: network.Name}, nil
}

func (s runtimeServices) DepositContract() (string, error) {
	return deposit.ChecksumAddress(s.network.DepositContract)
}

func (s runtimeServices) ContractQR() (string, error) {
	addr, err := s.DepositContract()
	if err != nil {
		return "", err
	}
	return deposit.QR(addr)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func validateInstructionTemplates() error {
	validateTemplatesOnce.Do(func() {
		for _, o := range app.OSes() {
			for _, t := range app.Tools() {
				if _, ok := instructionTemplates[instructionKey{o, t}]; !ok {
					validateTemplatesErr = fmt.Errorf("missing instructions for %s with %s", o.Label(), t.Label())
					return
				}
				if _, err := renderInstructions(o, t, "mainnet", 1); err != nil {
					validateTemplatesErr = err
					return
				}
			}
		}
		if len(instructionTemplates) != len(app.OSes())*len(app.Tools()) {
			validateTemplatesErr = fmt.Errorf("instruction template count mismatch: %d", len(instructionTemplates))
		}
	})
	return validateTemplatesErr
}
