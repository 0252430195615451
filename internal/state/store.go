// Package state holds the wizard's shared state: workflow progress and the
// chosen clients. A Store is created explicitly and handed to whatever needs
// it; there is no process-wide instance.
package state

import (
	"sync"

	"launchpad/internal/clients"
	"launchpad/internal/workflow"
)

type State struct {
	Workflow workflow.Step
	Clients  clients.Selection
}

// Initial is the state of a fresh session.
func Initial() State {
	return State{Workflow: workflow.First()}
}

type Store struct {
	// notifyMu is held from a write until its subscribers have run, so
	// subscribers observe writes in the order they were made.
	notifyMu sync.Mutex
	mu       sync.Mutex
	state    State
	nextID   int
	subs     []subscriber
}

type subscriber struct {
	id int
	fn func(State)
}

func New(initial State) *Store {
	return &Store{state: initial}
}

func (s *Store) WorkflowStep() workflow.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Workflow
}

// SetWorkflowStep overwrites progress unconditionally. Request paths go
// through workflow.Advance, which uses UpdateWorkflowStep.
func (s *Store) SetWorkflowStep(next workflow.Step) {
	s.update(func(st *State) bool {
		st.Workflow = next
		return true
	})
}

// UpdateWorkflowStep runs fn on the stored progress and stores its result,
// both under the store lock. Nothing is written or notified when fn reports
// false.
func (s *Store) UpdateWorkflowStep(fn func(current workflow.Step) (workflow.Step, bool)) bool {
	return s.update(func(st *State) bool {
		next, ok := fn(st.Workflow)
		if ok {
			st.Workflow = next
		}
		return ok
	})
}

func (s *Store) Clients() clients.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clients
}

func (s *Store) SetClient(role clients.Role, id clients.ClientID) error {
	var err error
	s.update(func(st *State) bool {
		var next clients.Selection
		next, err = st.Clients.With(role, id)
		if err != nil {
			return false
		}
		st.Clients = next
		return true
	})
	return err
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Restore replaces the whole state, normalising progress that is not a
// known stage and dropping invalid client choices.
func (s *Store) Restore(st State) {
	st.Workflow = workflow.Normalize(st.Workflow)
	st.Clients = st.Clients.Sanitize()
	s.update(func(cur *State) bool {
		*cur = st
		return true
	})
}

func (s *Store) Reset() {
	s.Restore(Initial())
}

// Subscribe registers fn to run after every write, in registration order,
// on the writing goroutine. Notifications for one write finish before the
// next write starts, so fn must not write to the store itself.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) update(fn func(*State) bool) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return false
	}
	snap := s.state
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
	return true
}
