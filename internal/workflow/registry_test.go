package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStepDefinitions(t *testing.T) {
	valid := Definitions()
	require.NoError(t, ValidateStepDefinitions(valid))

	tests := []struct {
		name   string
		mutate func([]StepDef) []StepDef
		want   string
	}{
		{"empty", func([]StepDef) []StepDef { return nil }, "empty step definitions"},
		{"empty id", func(d []StepDef) []StepDef { d[1].ID = ""; return d }, "empty id"},
		{"empty label", func(d []StepDef) []StepDef { d[2].Label = ""; return d }, "empty label"},
		{"empty route", func(d []StepDef) []StepDef { d[3].Route = ""; return d }, "empty route"},
		{"duplicate id", func(d []StepDef) []StepDef { d[2].ID = d[1].ID; return d }, "duplicate step id"},
		{"shared route", func(d []StepDef) []StepDef { d[4].Route = d[0].Route; return d }, "shared by"},
		{"reordered", func(d []StepDef) []StepDef { d[1], d[2] = d[2], d[1]; return d }, "has rank"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStepDefinitions(tc.mutate(Definitions()))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}
