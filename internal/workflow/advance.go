package workflow

// Advance records completion of a stage. Progress moves to the next stage only
// when completed is the stage the store is currently at; stale or duplicate
// submissions are ignored. Stored progress that is not a known stage counts
// as the earliest stage. Progress never decreases here.
//
// Stores that implement StepUpdater get the check and the write under one
// lock.
func Advance(s Store, completed Step) bool {
	if u, ok := s.(StepUpdater); ok {
		return u.UpdateWorkflowStep(func(current Step) (Step, bool) {
			return advanceFrom(current, completed)
		})
	}
	next, ok := advanceFrom(s.WorkflowStep(), completed)
	if !ok {
		return false
	}
	s.SetWorkflowStep(next)
	return true
}

func advanceFrom(stored, completed Step) (Step, bool) {
	if !completed.Valid() || Normalize(stored) != completed {
		return stored, false
	}
	return completed.Next()
}
