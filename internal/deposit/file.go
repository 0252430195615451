package deposit

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one record of the deposit_data.json file produced by the key
// generation tool.
type Entry struct {
	Pubkey                string `json:"pubkey"`
	WithdrawalCredentials string `json:"withdrawal_credentials"`
	Amount                uint64 `json:"amount"`
	Signature             string `json:"signature"`
	DepositMessageRoot    string `json:"deposit_message_root"`
	DepositDataRoot       string `json:"deposit_data_root"`
	ForkVersion           string `json:"fork_version"`
	NetworkName           string `json:"network_name,omitempty"`
	Eth2NetworkName       string `json:"eth2_network_name,omitempty"`
	DepositCLIVersion     string `json:"deposit_cli_version"`
}

func (e Entry) Network() string {
	if e.NetworkName != "" {
		return e.NetworkName
	}
	return e.Eth2NetworkName
}

// Options are the network expectations a deposit file is checked against.
type Options struct {
	AmountGwei uint64
	Network    string
}

const maxFileSize = 1 << 20

// ParseFile reads and checks a deposit file.
func ParseFile(path string, opts Options) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deposit file: %w", err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse checks the structure of a deposit file. Signatures are not verified.
func Parse(r io.Reader, opts Options) ([]Entry, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read deposit file: %w", err)
	}
	if len(raw) > maxFileSize {
		return nil, fmt.Errorf("deposit file is larger than %d bytes", maxFileSize)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("deposit file is not a JSON array of deposits: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("deposit file contains no deposits")
	}
	seen := map[string]int{}
	for i, e := range entries {
		if err := e.validate(opts); err != nil {
			return nil, fmt.Errorf("deposit %d: %w", i+1, err)
		}
		key := strings.ToLower(strings.TrimPrefix(e.Pubkey, "0x"))
		if first, ok := seen[key]; ok {
			return nil, fmt.Errorf("deposit %d repeats the pubkey of deposit %d", i+1, first)
		}
		seen[key] = i + 1
	}
	return entries, nil
}

func (e Entry) validate(opts Options) error {
	fields := []struct {
		name  string
		value string
		size  int
	}{
		{"pubkey", e.Pubkey, 48},
		{"withdrawal_credentials", e.WithdrawalCredentials, 32},
		{"signature", e.Signature, 96},
		{"deposit_message_root", e.DepositMessageRoot, 32},
		{"deposit_data_root", e.DepositDataRoot, 32},
		{"fork_version", e.ForkVersion, 4},
	}
	for _, f := range fields {
		if err := checkHex(f.value, f.size); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	if opts.AmountGwei != 0 && e.Amount != opts.AmountGwei {
		return fmt.Errorf("amount is %d gwei, expected %d", e.Amount, opts.AmountGwei)
	}
	if opts.Network != "" && !strings.EqualFold(e.Network(), opts.Network) {
		return fmt.Errorf("generated for network %q, expected %q", e.Network(), opts.Network)
	}
	return nil
}

func checkHex(s string, size int) error {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return fmt.Errorf("missing")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("not hex")
	}
	if len(b) != size {
		return fmt.Errorf("want %d bytes, got %d", size, len(b))
	}
	return nil
}
