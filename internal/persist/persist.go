// Package persist keeps a session's progress and client choice between runs.
// Persistence is best effort: the wizard works without it and write failures
// are only logged.
package persist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"launchpad/internal/clients"
	"launchpad/internal/config"
	"launchpad/internal/state"
	"launchpad/internal/workflow"
)

// Snapshot is the durable part of a session. Page-local input is never
// part of it.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Workflow  int       `json:"workflow"`
	Execution string    `json:"execution"`
	Consensus string    `json:"consensus"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Backend interface {
	Load(ctx context.Context, sessionID string) (Snapshot, bool, error)
	Save(ctx context.Context, snap Snapshot) error
	Delete(ctx context.Context, sessionID string) error
	Close() error
}

func FromState(sessionID string, st state.State, now time.Time) Snapshot {
	return Snapshot{
		SessionID: sessionID,
		Workflow:  int(st.Workflow),
		Execution: string(st.Clients.Execution),
		Consensus: string(st.Clients.Consensus),
		UpdatedAt: now.UTC().Truncate(time.Second),
	}
}

// State converts back without validation; state.Store.Restore normalises.
func (s Snapshot) State() state.State {
	return state.State{
		Workflow: workflow.Step(s.Workflow),
		Clients: clients.Selection{
			Execution: clients.ClientID(s.Execution),
			Consensus: clients.ClientID(s.Consensus),
		},
	}
}

func NewSessionID() string { return uuid.NewString() }

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg config.Storage) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.Path)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	default:
		return nil, errors.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Attach restores the session into store and saves every later write.
// The returned func stops saving.
func Attach(ctx context.Context, store *state.Store, b Backend, sessionID string, log *zap.Logger) (func(), error) {
	snap, ok, err := b.Load(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "load session %q", sessionID)
	}
	if ok {
		store.Restore(snap.State())
		restored := store.Snapshot()
		if int(restored.Workflow) != snap.Workflow {
			log.Warn("stored progress is not a known stage, starting over",
				zap.String("session", sessionID), zap.Int("stored", snap.Workflow))
		}
		log.Info("session restored",
			zap.String("session", sessionID),
			zap.Stringer("step", restored.Workflow),
			zap.String("execution", string(restored.Clients.Execution)),
			zap.String("consensus", string(restored.Clients.Consensus)))
	}
	unsubscribe := store.Subscribe(func(st state.State) {
		if err := b.Save(ctx, FromState(sessionID, st, time.Now())); err != nil {
			log.Warn("save session", zap.String("session", sessionID), zap.Error(err))
		}
	})
	return unsubscribe, nil
}
