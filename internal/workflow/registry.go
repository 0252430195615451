package workflow

import "fmt"

func ValidateStepDefinitions(defs []StepDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("empty step definitions")
	}
	seenIDs := map[StepID]struct{}{}
	seenRoutes := map[Route]StepID{}
	for i, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("step %d has empty id", i)
		}
		if int(def.Step) != i {
			return fmt.Errorf("step %q has rank %d at position %d", def.ID, def.Step, i)
		}
		if def.Label == "" {
			return fmt.Errorf("step %q has empty label", def.ID)
		}
		if def.Route == "" {
			return fmt.Errorf("step %q has empty route", def.ID)
		}
		if _, ok := seenIDs[def.ID]; ok {
			return fmt.Errorf("duplicate step id: %q", def.ID)
		}
		if other, ok := seenRoutes[def.Route]; ok {
			return fmt.Errorf("route %q shared by %q and %q", def.Route, other, def.ID)
		}
		seenIDs[def.ID] = struct{}{}
		seenRoutes[def.Route] = def.ID
	}
	return nil
}
