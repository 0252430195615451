package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"launchpad/internal/clients"
	"launchpad/internal/deposit"
	"launchpad/internal/workflow"
)

type stepView struct {
	ID    workflow.StepID `json:"id"`
	Label string          `json:"label"`
	Route workflow.Route  `json:"route"`
	State string          `json:"state"`
}

type clientsView struct {
	Execution clients.ClientID `json:"execution"`
	Consensus clients.ClientID `json:"consensus"`
}

type stateView struct {
	Progress workflow.StepID `json:"progress"`
	Route    workflow.Route  `json:"route"`
	Clients  clientsView     `json:"clients"`
	Steps    []stepView      `json:"steps"`
}

type pageView struct {
	Step  workflow.StepID `json:"step"`
	Label string          `json:"label"`
	Route workflow.Route  `json:"route"`
	stateView
}

var stepStates = map[workflow.StepState]string{
	workflow.StepLocked:  "locked",
	workflow.StepCurrent: "current",
	workflow.StepDone:    "done",
}

func (s *Server) snapshot() stateView {
	st := s.store.Snapshot()
	current := workflow.Def(workflow.Normalize(st.Workflow))
	v := stateView{
		Progress: current.ID,
		Route:    current.Route,
		Clients:  clientsView{Execution: st.Clients.Execution, Consensus: st.Clients.Consensus},
	}
	for _, def := range workflow.Definitions() {
		v.Steps = append(v.Steps, stepView{
			ID:    def.ID,
			Label: def.Label,
			Route: def.Route,
			State: stepStates[workflow.StateOf(st.Workflow, def.Step)],
		})
	}
	return v
}

// guard resolves the {page} variable. It writes the response and returns
// false when the request must not reach the page.
func (s *Server) guard(w http.ResponseWriter, r *http.Request) (workflow.Step, bool) {
	route := workflow.Route("/" + mux.Vars(r)["page"])
	step, ok := workflow.StepForRoute(route)
	if !ok {
		respondWithError(w, http.StatusNotFound, "unknown page "+string(route))
		return 0, false
	}
	d := workflow.Guard(s.store.WorkflowStep(), step)
	if d.Redirected() {
		s.log.Info("route redirected", zap.String("requested", string(route)), zap.String("to", string(d.Route)))
		http.Redirect(w, r, string(d.Route), http.StatusSeeOther)
		return 0, false
	}
	return step, true
}

func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, string(workflow.RouteFor(workflow.Normalize(s.store.WorkflowStep()))), http.StatusSeeOther)
}

func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	step, ok := s.guard(w, r)
	if !ok {
		return
	}
	def := workflow.Def(step)
	respondWithJSON(w, http.StatusOK, pageView{
		Step:      def.ID,
		Label:     def.Label,
		Route:     def.Route,
		stateView: s.snapshot(),
	})
}

type continueRequest struct {
	Acknowledged bool            `json:"acknowledged"`
	DepositData  json.RawMessage `json:"deposit_data"`
}

// ackSteps need the same confirmation the terminal UI asks for with a
// checkbox.
var ackSteps = map[workflow.Step]bool{
	workflow.StepOverview:         true,
	workflow.StepGenerateKeyPairs: true,
	workflow.StepSummary:          true,
}

func (s *Server) HandleContinue(w http.ResponseWriter, r *http.Request) {
	step, ok := s.guard(w, r)
	if !ok {
		return
	}
	var req continueRequest
	if r.Body != nil {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	// Only the current stage is gated; revisiting a completed one just
	// moves on.
	if workflow.Normalize(s.store.WorkflowStep()) == step {
		if msg, ok := s.ready(step, req); !ok {
			respondWithError(w, http.StatusConflict, msg)
			return
		}
	}
	if workflow.Advance(s.store, step) {
		s.log.Info("workflow advanced", zap.Stringer("completed", step), zap.Stringer("progress", s.store.WorkflowStep()))
	}
	next, ok := step.Next()
	if !ok {
		next = step
	}
	http.Redirect(w, r, string(workflow.RouteFor(next)), http.StatusSeeOther)
}

// ready reports whether step may be completed with req, and why not.
func (s *Server) ready(step workflow.Step, req continueRequest) (string, bool) {
	switch {
	case ackSteps[step] && !req.Acknowledged:
		return "confirm with {\"acknowledged\": true} to continue", false
	case step == workflow.StepSelectClient && !s.store.Clients().Complete():
		return "select an execution and a consensus client first", false
	case step == workflow.StepUploadValidatorFile:
		if len(req.DepositData) == 0 {
			return "post the deposit file contents as deposit_data", false
		}
		entries, err := deposit.Parse(bytes.NewReader(req.DepositData), s.deposits)
		if err != nil {
			s.log.Warn("deposit data rejected", zap.Error(err))
			return err.Error(), false
		}
		s.log.Info("deposit data accepted", zap.Int("deposits", len(entries)))
	}
	return "", true
}

type setClientRequest struct {
	Client string `json:"client"`
}

func (s *Server) HandleSetClient(w http.ResponseWriter, r *http.Request) {
	d := workflow.Guard(s.store.WorkflowStep(), workflow.StepSelectClient)
	if d.Redirected() {
		http.Redirect(w, r, string(d.Route), http.StatusSeeOther)
		return
	}
	role, err := clients.ParseRole(mux.Vars(r)["role"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer r.Body.Close()
	var req setClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "body must be {\"client\": \"<id>\"}")
		return
	}
	id, err := clients.ParseClientID(req.Client)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.SetClient(role, id); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Info("client selected", zap.String("role", string(role)), zap.String("client", string(id)))
	respondWithJSON(w, http.StatusOK, s.snapshot())
}
