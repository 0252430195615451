package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type memStore struct {
	step   Step
	writes int
}

func (m *memStore) WorkflowStep() Step { return m.step }

func (m *memStore) SetWorkflowStep(next Step) {
	m.step = next
	m.writes++
}

func TestAdvance_MovesExactlyOneStage(t *testing.T) {
	s := &memStore{step: StepSelectClient}
	require.True(t, Advance(s, StepSelectClient))
	require.Equal(t, StepGenerateKeyPairs, s.step)

	// Revisiting the select-client page now renders.
	require.False(t, Guard(s.step, StepSelectClient).Redirected())
}

func TestAdvance_IsIdempotent(t *testing.T) {
	once := &memStore{step: StepGenerateKeyPairs}
	Advance(once, StepGenerateKeyPairs)

	twice := &memStore{step: StepGenerateKeyPairs}
	Advance(twice, StepGenerateKeyPairs)
	require.False(t, Advance(twice, StepGenerateKeyPairs))

	require.Equal(t, once.step, twice.step)
	require.Equal(t, 1, twice.writes)
}

func TestAdvance_IgnoresStaleAndFutureSubmissions(t *testing.T) {
	s := &memStore{step: StepSummary}
	require.False(t, Advance(s, StepSelectClient))
	require.False(t, Advance(s, StepCongratulations))
	require.Equal(t, StepSummary, s.step)
	require.Zero(t, s.writes)
}

func TestAdvance_NeverDecreasesProgress(t *testing.T) {
	s := &memStore{step: First()}
	prev := s.step
	for i := 0; i < 3; i++ {
		for _, def := range Definitions() {
			Advance(s, def.Step)
			require.GreaterOrEqual(t, s.step, prev)
			prev = s.step
		}
	}
	require.Equal(t, Last(), s.step)
	require.False(t, Advance(s, Last()))
}

func TestAdvance_InvalidStoredProgressCountsAsEarliestStage(t *testing.T) {
	for _, bad := range []Step{-1, Last() + 1} {
		s := &memStore{step: bad}
		require.False(t, Advance(s, bad))
		require.False(t, Advance(s, StepSummary))
		require.Equal(t, bad, s.step)

		require.True(t, Advance(s, First()))
		next, _ := First().Next()
		require.Equal(t, next, s.step)
	}
}

// staleStore answers WorkflowStep from an out-of-date read while the
// atomic update sees the real value, as when another request advanced
// in between.
type staleStore struct {
	memStore
	stale Step
}

func (s *staleStore) WorkflowStep() Step { return s.stale }

func (s *staleStore) UpdateWorkflowStep(fn func(Step) (Step, bool)) bool {
	next, ok := fn(s.step)
	if ok {
		s.SetWorkflowStep(next)
	}
	return ok
}

func TestAdvance_UsesAtomicUpdateWhenAvailable(t *testing.T) {
	s := &staleStore{memStore: memStore{step: StepGenerateKeyPairs}, stale: StepOverview}

	require.False(t, Advance(s, StepOverview))
	require.Equal(t, StepGenerateKeyPairs, s.step)
	require.Zero(t, s.writes)

	require.True(t, Advance(s, StepGenerateKeyPairs))
	require.Equal(t, StepUploadValidatorFile, s.step)
	require.Equal(t, 1, s.writes)
}
