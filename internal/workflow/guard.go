package workflow

type DecisionKind int

const (
	Render DecisionKind = iota
	Redirect
)

// Decision is the outcome of guarding a page: either render the requested
// step or redirect to the route of the user's real position.
type Decision struct {
	Kind  DecisionKind
	Step  Step
	Route Route
}

func (d Decision) Redirected() bool { return d.Kind == Redirect }

// Guard decides whether a page requiring the given stage may render for the
// stored progress. A user behind the required stage is sent to the page of
// the stage they are actually on; progress that is not a known stage counts
// as the earliest one.
func Guard(progress, required Step) Decision {
	if progress.Valid() && progress >= required {
		return Decision{Kind: Render, Step: required, Route: RouteFor(required)}
	}
	at := Normalize(progress)
	return Decision{Kind: Redirect, Step: at, Route: RouteFor(at)}
}

// GuardRoute guards an arbitrary route. Unknown routes redirect to the page
// of the stage the user is on.
func GuardRoute(progress Step, r Route) Decision {
	required, ok := StepForRoute(r)
	if !ok {
		at := Normalize(progress)
		return Decision{Kind: Redirect, Step: at, Route: RouteFor(at)}
	}
	return Guard(progress, required)
}
