package workflow

// Step is a stage of the setup workflow. The numeric value is the stage's
// rank; stages are totally ordered by it.
type Step int

const (
	StepOverview            Step = 0
	StepSelectClient        Step = 1
	StepGenerateKeyPairs    Step = 2
	StepUploadValidatorFile Step = 3
	StepConnectWallet       Step = 4
	StepSummary             Step = 5
	StepTransactionSigning  Step = 6
	StepCongratulations     Step = 7
)

// StepID is the stable tag of a step, used in logs and persisted snapshots.
type StepID string

// Route identifies a navigable page.
type Route string

type StepDef struct {
	Step  Step
	ID    StepID
	Label string
	Route Route
}

// StepState describes a step relative to the user's progress.
type StepState int

const (
	StepLocked StepState = iota
	StepCurrent
	StepDone
)

// StateOf reports how s looks from the given progress. Invalid progress is
// treated as the earliest stage.
func StateOf(progress, s Step) StepState {
	progress = Normalize(progress)
	switch {
	case s < progress:
		return StepDone
	case s == progress:
		return StepCurrent
	default:
		return StepLocked
	}
}

// Store is the read/write contract the guard and advancement depend on.
type Store interface {
	WorkflowStep() Step
	SetWorkflowStep(next Step)
}

// StepUpdater is implemented by stores that can read and write progress
// atomically. fn sees the stored value and returns the new one; nothing is
// written when it reports false.
type StepUpdater interface {
	UpdateWorkflowStep(fn func(current Step) (next Step, ok bool)) bool
}
