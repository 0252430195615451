package app

import "launchpad/internal/deposit"

// OS is the operating system the key generation instructions target.
type OS int

const (
	OSMac OS = iota
	OSLinux
	OSWindows
)

var osLabels = []string{"macOS", "Linux", "Windows"}
var osKeys = []string{"mac", "linux", "windows"}

func OSes() []OS { return []OS{OSMac, OSLinux, OSWindows} }

func (o OS) Label() string {
	if o < 0 || int(o) >= len(osLabels) {
		return "unknown"
	}
	return osLabels[o]
}

// Key is the lowercase name used for template lookup.
func (o OS) Key() string {
	if o < 0 || int(o) >= len(osKeys) {
		return ""
	}
	return osKeys[o]
}

// Tool is the way the deposit key tool is obtained.
type Tool int

const (
	ToolGUI Tool = iota
	ToolCLI
	ToolSource
)

var toolLabels = []string{"Launcher GUI", "CLI binary", "Build from source"}
var toolKeys = []string{"gui", "cli", "source"}

func Tools() []Tool { return []Tool{ToolGUI, ToolCLI, ToolSource} }

func (t Tool) Label() string {
	if t < 0 || int(t) >= len(toolLabels) {
		return "unknown"
	}
	return toolLabels[t]
}

func (t Tool) Key() string {
	if t < 0 || int(t) >= len(toolKeys) {
		return ""
	}
	return toolKeys[t]
}

type Services interface {
	Network() string
	Ticker() string
	// ValidatorCost formats count * price per validator; "" for an empty count.
	ValidatorCost(count string) (string, error)
	Instructions(os OS, tool Tool, count int) ([]string, error)
	LoadDepositFile(path string) ([]deposit.Entry, error)
	DepositContract() (string, error)
	ContractQR() (string, error)
}
