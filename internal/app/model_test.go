package app

import (
	"errors"
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/clients"
	"launchpad/internal/deposit"
	"launchpad/internal/state"
	"launchpad/internal/workflow"
)

type fakeServices struct {
	lastOS    OS
	lastTool  Tool
	lastCount int
	loadPath  string
	entries   []deposit.Entry
	loadErr   error
}

func (f *fakeServices) Network() string { return "mainnet" }
func (f *fakeServices) Ticker() string  { return "ETH" }

func (f *fakeServices) ValidatorCost(count string) (string, error) {
	return deposit.Cost(count, "32")
}

func (f *fakeServices) Instructions(os OS, tool Tool, count int) ([]string, error) {
	f.lastOS, f.lastTool, f.lastCount = os, tool, count
	return []string{"./deposit new-mnemonic"}, nil
}

func (f *fakeServices) LoadDepositFile(path string) ([]deposit.Entry, error) {
	f.loadPath = path
	return f.entries, f.loadErr
}

func (f *fakeServices) DepositContract() (string, error) {
	return "0x00000000219ab540356cBB839Cbe05303d7705Fa", nil
}

func (f *fakeServices) ContractQR() (string, error) { return "██\n██", nil }

func newTestModel(t *testing.T, progress workflow.Step, route workflow.Route) (model, *state.Store, *fakeServices) {
	t.Helper()
	require.NoError(t, ValidatePages())
	store := state.New(state.State{Workflow: progress})
	svc := &fakeServices{}
	m := newModel(Options{
		Store:    store,
		Services: svc,
		Route:    route,
		Rand:     rand.New(rand.NewSource(1)),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return next.(model), store, svc
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

// pressContinue focuses Continue and plays the press and release.
func pressContinue(t *testing.T, m model) (model, tea.Cmd) {
	t.Helper()
	m.setFocus(focusContinue)
	m, cmd := update(t, m, keyEnter)
	require.NotNil(t, cmd)
	require.Equal(t, buttonContinue, m.btnDown)
	return update(t, m, buttonReleaseMsg{btn: buttonContinue})
}

func TestPages_CoverEveryStage(t *testing.T) {
	require.NoError(t, ValidatePages())
	reg, _ := pageRegistry()
	for _, def := range workflow.Definitions() {
		p, ok := reg[def.Step]
		require.True(t, ok, def.ID)
		assert.NotEmpty(t, p.title, def.ID)
	}
}

func TestNewModel_DefaultsToCurrentStage(t *testing.T) {
	m, _, _ := newTestModel(t, workflow.StepUploadValidatorFile, "")
	assert.Equal(t, workflow.StepUploadValidatorFile, m.page)
	assert.Equal(t, workflow.RouteUploadValidator, m.route)
}

func TestDirectJumpToKeyGeneration_SnapsBackToOverview(t *testing.T) {
	m, store, _ := newTestModel(t, workflow.StepOverview, workflow.RouteGenerateKeys)
	assert.Equal(t, workflow.StepOverview, m.page)
	assert.Equal(t, workflow.RouteOverview, m.route)

	m.setFocus(focusContinue)
	m, _ = update(t, m, keyRunes("3"))
	assert.Equal(t, workflow.StepOverview, m.page)
	assert.Equal(t, workflow.StepOverview, store.WorkflowStep())
}

func TestJump_CompletedPagesStayReachable(t *testing.T) {
	m, _, _ := newTestModel(t, workflow.StepSummary, "")
	m, _ = update(t, m, keyRunes("2"))
	assert.Equal(t, workflow.StepSelectClient, m.page)
	m, _ = update(t, m, keyRunes("6"))
	assert.Equal(t, workflow.StepSummary, m.page)
	m, _ = update(t, m, keyRunes("7"))
	assert.Equal(t, workflow.StepSummary, m.page)
}

func TestInvalidProgress_RendersEarliestStage(t *testing.T) {
	m, _, _ := newTestModel(t, workflow.Step(42), workflow.RouteSummary)
	assert.Equal(t, workflow.StepOverview, m.page)
	assert.Contains(t, m.View(), "Overview")
}

func TestView_GuardsAgainstProgressChangedOutsideUpdate(t *testing.T) {
	m, store, _ := newTestModel(t, workflow.StepSummary, workflow.RouteSummary)
	require.Contains(t, m.View(), "Review your setup")

	store.Reset()
	out := m.View()
	assert.Contains(t, out, "01 › Overview")
	assert.Contains(t, out, "Become an Ethereum validator")
	assert.NotContains(t, out, "Review your setup")
}

func TestOverview_ContinueNeedsAcknowledgement(t *testing.T) {
	m, store, _ := newTestModel(t, workflow.StepOverview, "")
	require.Equal(t, blockAck, m.focus)

	m, _ = pressContinue(t, m)
	assert.NotEmpty(t, m.err)
	assert.Equal(t, workflow.StepOverview, store.WorkflowStep())

	m.setFocus(blockAck)
	m, _ = update(t, m, keySpace)
	require.True(t, m.scratch.ack)
	assert.Empty(t, m.err)

	m, _ = pressContinue(t, m)
	assert.Equal(t, workflow.StepSelectClient, store.WorkflowStep())
	assert.Equal(t, workflow.StepSelectClient, m.page)
	assert.Equal(t, workflow.RouteSelectClient, m.route)
}

func moveCursorTo(t *testing.T, m model, id clients.ClientID) model {
	t.Helper()
	for i, c := range m.clientOrder() {
		if c.ID == id {
			m.scratch.cursor = i
			return m
		}
	}
	require.Failf(t, "client not offered", "%q for %s", id, m.scratch.role)
	return m
}

func TestSelectClient_ExecutionThenConsensus(t *testing.T) {
	m, store, _ := newTestModel(t, workflow.StepSelectClient, "")
	require.Equal(t, clients.RoleExecution, m.scratch.role)
	require.Equal(t, blockClients, m.focus)

	m, _ = pressContinue(t, m)
	assert.NotEmpty(t, m.err)

	m.setFocus(blockClients)
	m = moveCursorTo(t, m, clients.Geth)
	m, _ = update(t, m, keyEnter)
	assert.Equal(t, clients.Geth, store.Clients().Execution)

	m, _ = pressContinue(t, m)
	assert.Equal(t, clients.RoleConsensus, m.scratch.role)
	assert.Equal(t, workflow.StepSelectClient, store.WorkflowStep())

	m = moveCursorTo(t, m, clients.Lighthouse)
	m, _ = update(t, m, keySpace)
	assert.Equal(t, clients.Lighthouse, store.Clients().Consensus)

	m, _ = pressContinue(t, m)
	assert.Equal(t, workflow.StepGenerateKeyPairs, store.WorkflowStep())
	assert.Equal(t, workflow.StepGenerateKeyPairs, m.page)
}

func TestSelectClient_BackReturnsToExecutionSubStep(t *testing.T) {
	m, store, _ := newTestModel(t, workflow.StepSelectClient, "")
	require.NoError(t, store.SetClient(clients.RoleExecution, clients.Besu))

	m, _ = pressContinue(t, m)
	require.Equal(t, clients.RoleConsensus, m.scratch.role)

	m, _ = update(t, m, keyEsc)
	assert.Equal(t, workflow.StepSelectClient, m.page)
	assert.Equal(t, clients.RoleExecution, m.scratch.role)
	assert.Equal(t, clients.Besu, m.clientOrder()[m.scratch.cursor].ID)

	m, _ = update(t, m, keyEsc)
	assert.Equal(t, workflow.StepOverview, m.page)
}

func TestGenerateKeys_PageLocalStateResetsOnReentry(t *testing.T) {
	m, _, svc := newTestModel(t, workflow.StepGenerateKeyPairs, "")
	require.Equal(t, blockCount, m.focus)
	assert.Equal(t, OSLinux, m.scratch.os)
	assert.Equal(t, ToolGUI, m.scratch.tool)
	assert.False(t, m.scratch.ack)

	m, _ = update(t, m, keyRunes("3"))
	assert.Equal(t, "3", m.scratch.count.ValueString())
	line, _ := m.costLine()
	assert.Equal(t, "Cost: 96.0 ETH", line)
	_ = m.View()
	assert.Equal(t, 3, svc.lastCount)

	m, _ = update(t, m, keyDown)
	require.Equal(t, blockOS, m.focus)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, OSWindows, m.scratch.os)

	m, _ = update(t, m, keyEsc)
	require.Equal(t, workflow.StepSelectClient, m.page)
	m, _ = update(t, m, keyRunes("3"))
	require.Equal(t, workflow.StepGenerateKeyPairs, m.page)
	assert.Empty(t, m.scratch.count.ValueString())
	assert.Equal(t, OSLinux, m.scratch.os)
}

func TestGenerateKeys_AcknowledgementStartsCheckedWhenDone(t *testing.T) {
	m, _, _ := newTestModel(t, workflow.StepUploadValidatorFile, workflow.RouteGenerateKeys)
	require.Equal(t, workflow.StepGenerateKeyPairs, m.page)
	assert.True(t, m.scratch.ack)
	ok, _ := m.currentPage().ready(m)
	assert.True(t, ok)
}

func TestStaleContinue_DoesNotMoveProgress(t *testing.T) {
	m, store, _ := newTestModel(t, workflow.StepSummary, workflow.RouteOverview)
	require.Equal(t, workflow.StepOverview, m.page)
	require.True(t, m.scratch.ack)

	m, _ = pressContinue(t, m)
	assert.Equal(t, workflow.StepSummary, store.WorkflowStep())
	assert.Equal(t, workflow.StepSelectClient, m.page)
}

func TestUpload_LoadsDepositFileBeforeContinue(t *testing.T) {
	m, store, svc := newTestModel(t, workflow.StepUploadValidatorFile, "")
	svc.entries = []deposit.Entry{{Pubkey: "0xaa"}, {Pubkey: "0xbb"}}
	require.Equal(t, blockPath, m.focus)

	m, _ = pressContinue(t, m)
	assert.Equal(t, workflow.StepUploadValidatorFile, store.WorkflowStep())

	m.setFocus(blockPath)
	m, _ = update(t, m, keyRunes("deposit.json"))
	m, cmd := update(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.scratch.loading)

	m, _ = update(t, m, cmd())
	assert.Equal(t, "deposit.json", svc.loadPath)
	assert.Len(t, m.scratch.loaded, 2)
	assert.Equal(t, focusContinue, m.focus)

	m, _ = pressContinue(t, m)
	assert.Equal(t, workflow.StepConnectWallet, store.WorkflowStep())
	assert.Len(t, m.deposits, 2)
}

func TestUpload_RejectedFileShowsError(t *testing.T) {
	m, store, svc := newTestModel(t, workflow.StepUploadValidatorFile, "")
	svc.loadErr = errors.New("deposit file contains no deposits")

	m, _ = update(t, m, keyRunes("empty.json"))
	m, cmd := update(t, m, keyEnter)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "deposit file contains no deposits", m.err)
	assert.Empty(t, m.scratch.loaded)

	m, _ = pressContinue(t, m)
	assert.Equal(t, workflow.StepUploadValidatorFile, store.WorkflowStep())
}

func TestUpload_StaleLoadResultIgnored(t *testing.T) {
	m, _, svc := newTestModel(t, workflow.StepUploadValidatorFile, "")
	svc.entries = []deposit.Entry{{Pubkey: "0xaa"}}

	m, _ = update(t, m, keyRunes("a.json"))
	m, cmd := update(t, m, keyEnter)
	msg := cmd()
	m, _ = update(t, m, keyRunes("x"))
	m, _ = update(t, m, msg)
	assert.Empty(t, m.scratch.loaded)
}

func TestCongratulations_FinishQuits(t *testing.T) {
	m, _, _ := newTestModel(t, workflow.StepCongratulations, "")
	m, cmd := pressContinue(t, m)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, workflow.StepCongratulations, m.page)
}

func TestMouse_ClickContinue(t *testing.T) {
	m, store, _ := newTestModel(t, workflow.StepConnectWallet, "")
	vs := m.toViewState()
	require.Equal(t, 140, vs.W)

	layout, ok := componentsLayout(m)
	require.True(t, ok)
	x, y := layout.X+1, layout.Y+1

	m, _ = update(t, m, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, buttonContinue, m.btnDown)
	m, _ = update(t, m, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Equal(t, workflow.StepSummary, store.WorkflowStep())
	assert.Equal(t, workflow.StepSummary, m.page)
}

func TestView_ShowsStepperAndCard(t *testing.T) {
	m, _, _ := newTestModel(t, workflow.StepGenerateKeyPairs, "")
	out := m.View()
	assert.Contains(t, out, "Generate key pairs")
	assert.Contains(t, out, "01 ✓ Overview")
	assert.Contains(t, out, "03 › Generate key pairs")
	assert.Contains(t, out, "./deposit new-mnemonic")
}
