package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/clients"
	"launchpad/internal/workflow"
)

func TestStore_ImplementsWorkflowStore(t *testing.T) {
	var _ workflow.Store = New(Initial())
}

func TestStore_AdvanceThroughStore(t *testing.T) {
	s := New(State{Workflow: workflow.StepSelectClient})
	require.True(t, workflow.Advance(s, workflow.StepSelectClient))
	require.Equal(t, workflow.StepGenerateKeyPairs, s.WorkflowStep())
	require.False(t, workflow.Advance(s, workflow.StepSelectClient))
	require.Equal(t, workflow.StepGenerateKeyPairs, s.WorkflowStep())
}

func TestStore_SetClientLeavesWorkflowAlone(t *testing.T) {
	s := New(State{Workflow: workflow.StepSelectClient})
	require.NoError(t, s.SetClient(clients.RoleExecution, clients.Geth))
	require.NoError(t, s.SetClient(clients.RoleConsensus, clients.Teku))
	require.Error(t, s.SetClient(clients.RoleConsensus, clients.Besu))

	assert.Equal(t, clients.Selection{Execution: clients.Geth, Consensus: clients.Teku}, s.Clients())
	assert.Equal(t, workflow.StepSelectClient, s.WorkflowStep())
}

func TestStore_SubscribersSeeEveryWriteInOrder(t *testing.T) {
	s := New(Initial())
	var order []string
	var seen []workflow.Step
	unsubA := s.Subscribe(func(st State) {
		order = append(order, "a")
		seen = append(seen, st.Workflow)
	})
	s.Subscribe(func(State) { order = append(order, "b") })

	workflow.Advance(s, workflow.StepOverview)
	unsubA()
	workflow.Advance(s, workflow.StepSelectClient)

	assert.Equal(t, []string{"a", "b", "b"}, order)
	assert.Equal(t, []workflow.Step{workflow.StepSelectClient}, seen)
}

func TestStore_RestoreNormalises(t *testing.T) {
	s := New(Initial())
	s.Restore(State{
		Workflow: workflow.Step(99),
		Clients:  clients.Selection{Execution: clients.Prysm, Consensus: clients.Lighthouse},
	})
	st := s.Snapshot()
	assert.Equal(t, workflow.StepOverview, st.Workflow)
	assert.Equal(t, clients.None, st.Clients.Execution)
	assert.Equal(t, clients.Lighthouse, st.Clients.Consensus)

	s.Reset()
	assert.Equal(t, Initial(), s.Snapshot())
}

func TestStore_ImplementsStepUpdater(t *testing.T) {
	var _ workflow.StepUpdater = New(Initial())
}

func TestStore_UpdateWorkflowStepSkipsRejectedWrites(t *testing.T) {
	s := New(State{Workflow: workflow.StepSummary})
	notified := 0
	s.Subscribe(func(State) { notified++ })

	require.False(t, s.UpdateWorkflowStep(func(cur workflow.Step) (workflow.Step, bool) {
		return cur, false
	}))
	require.Zero(t, notified)
	require.Error(t, s.SetClient(clients.RoleExecution, clients.Teku))
	require.Zero(t, notified)

	require.True(t, s.UpdateWorkflowStep(func(cur workflow.Step) (workflow.Step, bool) {
		return cur + 1, true
	}))
	require.Equal(t, workflow.StepTransactionSigning, s.WorkflowStep())
	require.Equal(t, 1, notified)
}

func TestStore_SlowSubscriberCannotPersistStaleSnapshot(t *testing.T) {
	s := New(Initial())

	var (
		mu    sync.Mutex
		saved []State
		once  sync.Once
	)
	entered := make(chan struct{})
	release := make(chan struct{})
	s.Subscribe(func(st State) {
		once.Do(func() {
			close(entered)
			<-release
		})
		mu.Lock()
		saved = append(saved, st)
		mu.Unlock()
	})

	advanced := make(chan struct{})
	go func() {
		defer close(advanced)
		workflow.Advance(s, workflow.StepOverview)
	}()
	<-entered

	chosen := make(chan struct{})
	go func() {
		defer close(chosen)
		assert.NoError(t, s.SetClient(clients.RoleExecution, clients.Geth))
	}()

	// The second write waits for the first write's subscribers.
	require.Never(t, func() bool {
		select {
		case <-chosen:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond)
	close(release)
	<-advanced
	<-chosen

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, saved, 2)
	assert.Equal(t, clients.None, saved[0].Clients.Execution)
	assert.Equal(t, s.Snapshot(), saved[len(saved)-1])
}

func TestStore_ConcurrentAdvanceNeverMovesBackwards(t *testing.T) {
	s := New(Initial())

	var (
		mu   sync.Mutex
		seen []workflow.Step
	)
	s.Subscribe(func(st State) {
		mu.Lock()
		seen = append(seen, st.Workflow)
		mu.Unlock()
	})

	var (
		wg       sync.WaitGroup
		advanced int
		countMu  sync.Mutex
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				cur := s.WorkflowStep()
				if cur == workflow.Last() {
					return
				}
				if workflow.Advance(s, cur) {
					countMu.Lock()
					advanced++
					countMu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, workflow.Last(), s.WorkflowStep())
	require.Equal(t, int(workflow.Last()-workflow.First()), advanced)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, advanced)
	for i := 1; i < len(seen); i++ {
		require.Equal(t, seen[i-1]+1, seen[i], "notifications out of order: %v", seen)
	}
}
