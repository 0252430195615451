package clients

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRole_ShufflesWithinRole(t *testing.T) {
	for _, role := range Roles() {
		got := ForRole(role, rand.New(rand.NewSource(7)))
		require.Len(t, got, 4)
		for _, c := range got {
			assert.Equal(t, role, c.Role)
		}
		again := ForRole(role, rand.New(rand.NewSource(7)))
		assert.Equal(t, got, again, "same seed must give the same order")
	}
	assert.Equal(t, OpenEthereum, ForRole(RoleExecution, nil)[0].ID)
}

func TestParseClientID(t *testing.T) {
	id, err := ParseClientID("  Geth ")
	require.NoError(t, err)
	assert.Equal(t, Geth, id)

	id, err = ParseClientID("open-ethereum")
	require.NoError(t, err)
	assert.Equal(t, OpenEthereum, id)

	_, err = ParseClientID("lighthose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "lighthouse"`)

	_, err = ParseClientID("zzzzzzzzzzzzzzzzzz")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = ParseClientID("")
	require.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("Consensus")
	require.NoError(t, err)
	assert.Equal(t, RoleConsensus, r)
	_, err = ParseRole("beacon")
	require.Error(t, err)
}

func TestSelection_WithOverwritesOnlyThatRole(t *testing.T) {
	var s Selection
	s, err := s.With(RoleExecution, Geth)
	require.NoError(t, err)
	s, err = s.With(RoleConsensus, Prysm)
	require.NoError(t, err)
	s, err = s.With(RoleExecution, Besu)
	require.NoError(t, err)

	assert.Equal(t, Besu, s.Execution)
	assert.Equal(t, Prysm, s.Consensus)
	assert.True(t, s.Complete())
}

func TestSelection_RejectsWrongRole(t *testing.T) {
	s := Selection{Execution: Geth}
	got, err := s.With(RoleExecution, Teku)
	require.Error(t, err)
	assert.Equal(t, s, got)

	_, err = s.With(RoleConsensus, "unknown")
	require.Error(t, err)
}

func TestSelection_Sanitize(t *testing.T) {
	s := Selection{Execution: Lighthouse, Consensus: Nimbus}.Sanitize()
	assert.Equal(t, None, s.Execution)
	assert.Equal(t, Nimbus, s.Consensus)
}
