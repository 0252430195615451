package clients

import "fmt"

// Selection holds at most one chosen client per role.
type Selection struct {
	Execution ClientID
	Consensus ClientID
}

func (s Selection) For(role Role) ClientID {
	if role == RoleConsensus {
		return s.Consensus
	}
	return s.Execution
}

// With returns a copy of s with the role's choice replaced. The other role is
// left untouched.
func (s Selection) With(role Role, id ClientID) (Selection, error) {
	if id != None {
		c, ok := Lookup(id)
		if !ok {
			return s, fmt.Errorf("unknown client %q", id)
		}
		if c.Role != role {
			return s, fmt.Errorf("%s is a %s client, not %s", c.Name, c.Role, role)
		}
	}
	switch role {
	case RoleExecution:
		s.Execution = id
	case RoleConsensus:
		s.Consensus = id
	default:
		return s, fmt.Errorf("unknown client role %q", role)
	}
	return s, nil
}

func (s Selection) Complete() bool {
	return s.Execution != None && s.Consensus != None
}

// Sanitize drops choices that are unknown or filed under the wrong role.
func (s Selection) Sanitize() Selection {
	var out Selection
	for _, role := range Roles() {
		if next, err := out.With(role, s.For(role)); err == nil {
			out = next
		}
	}
	return out
}
