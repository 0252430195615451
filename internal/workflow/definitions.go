package workflow

const (
	RouteOverview        Route = "/overview"
	RouteSelectClient    Route = "/select-client"
	RouteGenerateKeys    Route = "/generate-keys"
	RouteUploadValidator Route = "/upload-validator"
	RouteConnectWallet   Route = "/connect-wallet"
	RouteSummary         Route = "/summary"
	RouteTransactions    Route = "/transactions"
	RouteCongratulations Route = "/congratulations"
)

var definitions = []StepDef{
	{Step: StepOverview, ID: "overview", Label: "Overview", Route: RouteOverview},
	{Step: StepSelectClient, ID: "select_client", Label: "Select client", Route: RouteSelectClient},
	{Step: StepGenerateKeyPairs, ID: "generate_key_pairs", Label: "Generate key pairs", Route: RouteGenerateKeys},
	{Step: StepUploadValidatorFile, ID: "upload_validator_file", Label: "Upload deposit data", Route: RouteUploadValidator},
	{Step: StepConnectWallet, ID: "connect_wallet", Label: "Connect wallet", Route: RouteConnectWallet},
	{Step: StepSummary, ID: "summary", Label: "Summary", Route: RouteSummary},
	{Step: StepTransactionSigning, ID: "transaction_signing", Label: "Transactions", Route: RouteTransactions},
	{Step: StepCongratulations, ID: "congratulations", Label: "Congratulations", Route: RouteCongratulations},
}

// Definitions returns the ordered step registry.
func Definitions() []StepDef {
	out := make([]StepDef, len(definitions))
	copy(out, definitions)
	return out
}

func First() Step { return definitions[0].Step }

func Last() Step { return definitions[len(definitions)-1].Step }

// Valid reports whether s is one of the enumerated stages.
func (s Step) Valid() bool {
	return s >= First() && s <= Last()
}

func (s Step) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return string(definitions[s].ID)
}

// Next returns the stage after s and false when s is the last or invalid.
func (s Step) Next() (Step, bool) {
	if !s.Valid() || s == Last() {
		return s, false
	}
	return s + 1, true
}

// Prev returns the stage before s and false when s is the first or invalid.
func (s Step) Prev() (Step, bool) {
	if !s.Valid() || s == First() {
		return s, false
	}
	return s - 1, true
}

// Def returns the registry entry of a step. Invalid steps resolve to the
// earliest stage.
func Def(s Step) StepDef {
	return definitions[Normalize(s)]
}

// Normalize maps anything that is not an enumerated stage to the earliest
// stage.
func Normalize(s Step) Step {
	if !s.Valid() {
		return First()
	}
	return s
}

// RouteFor is total: invalid steps map to the earliest stage's route.
func RouteFor(s Step) Route {
	return Def(s).Route
}

func StepForRoute(r Route) (Step, bool) {
	for _, def := range definitions {
		if def.Route == r {
			return def.Step, true
		}
	}
	return First(), false
}

func StepForID(id StepID) (Step, bool) {
	for _, def := range definitions {
		if def.ID == id {
			return def.Step, true
		}
	}
	return First(), false
}
