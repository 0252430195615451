package clients

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Role string

const (
	RoleExecution Role = "execution"
	RoleConsensus Role = "consensus"
)

func Roles() []Role { return []Role{RoleExecution, RoleConsensus} }

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleExecution:
		return RoleExecution, nil
	case RoleConsensus:
		return RoleConsensus, nil
	default:
		return "", fmt.Errorf("unknown client role %q (want execution or consensus)", s)
	}
}

type ClientID string

const (
	None ClientID = ""

	Geth         ClientID = "geth"
	OpenEthereum ClientID = "openethereum"
	Besu         ClientID = "besu"
	Nethermind   ClientID = "nethermind"
	Teku         ClientID = "teku"
	Lighthouse   ClientID = "lighthouse"
	Prysm        ClientID = "prysm"
	Nimbus       ClientID = "nimbus"
)

type Client struct {
	ID       ClientID
	Role     Role
	Name     string
	Language string
	Summary  string
}

var catalog = []Client{
	{ID: OpenEthereum, Role: RoleExecution, Name: "OpenEthereum", Language: "Rust",
		Summary: "Fast, feature-rich client focused on a small footprint."},
	{ID: Geth, Role: RoleExecution, Name: "Geth", Language: "Go",
		Summary: "Go Ethereum, the most widely run execution client."},
	{ID: Besu, Role: RoleExecution, Name: "Besu", Language: "Java",
		Summary: "Enterprise friendly client with public and private network support."},
	{ID: Nethermind, Role: RoleExecution, Name: "Nethermind", Language: "C#, .NET",
		Summary: "Performance oriented client with extensive tracing and analytics."},
	{ID: Teku, Role: RoleConsensus, Name: "Teku", Language: "Java",
		Summary: "Consensus client built for institutional staking setups."},
	{ID: Lighthouse, Role: RoleConsensus, Name: "Lighthouse", Language: "Rust",
		Summary: "Security focused consensus client with a strong test suite."},
	{ID: Prysm, Role: RoleConsensus, Name: "Prysm", Language: "Go",
		Summary: "Consensus client with a web interface for validator management."},
	{ID: Nimbus, Role: RoleConsensus, Name: "Nimbus", Language: "Nim",
		Summary: "Lightweight client suited to resource constrained devices."},
}

// Catalog returns every known client in a fixed order.
func Catalog() []Client {
	out := make([]Client, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(id ClientID) (Client, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// ForRole returns the clients of a role shuffled with rng so no client is
// favoured by list position. A nil rng keeps catalog order.
func ForRole(role Role, rng *rand.Rand) []Client {
	var out []Client
	for _, c := range catalog {
		if c.Role == role {
			out = append(out, c)
		}
	}
	if rng != nil {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// ParseClientID resolves a user supplied client name. Unknown names get the
// closest known id suggested.
func ParseClientID(s string) (ClientID, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(norm)
	for _, c := range catalog {
		if string(c.ID) == norm {
			return c.ID, nil
		}
	}
	if norm == "" {
		return None, fmt.Errorf("empty client id")
	}
	best, bestDist := None, -1
	for _, c := range catalog {
		d := levenshtein.ComputeDistance(norm, string(c.ID))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c.ID, d
		}
	}
	if bestDist <= len(norm)/2+1 {
		return None, fmt.Errorf("unknown client %q, did you mean %q?", s, best)
	}
	return None, fmt.Errorf("unknown client %q", s)
}
