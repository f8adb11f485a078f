package rest

import (
	"encoding/json"
	"net/http"

	"github.com/finacore/tradeflow/service"
	"github.com/gorilla/mux"
)

func (s *Server) HandleAddConditionGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		StageId    string                   `json:"stageId"`
		GroupName  string                   `json:"groupName"`
		Operator   string                   `json:"groupOperator"`
		Conditions []service.ConditionInput `json:"conditions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	conditions, err := s.conditionService.AddGroup(vars["id"], req.StageId, req.GroupName, req.Operator, req.Conditions, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conditions)
}

func (s *Server) HandleAddCondition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req service.ConditionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	condition, err := s.conditionService.AddCondition(vars["id"], vars["group"], req, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, condition)
}

func (s *Server) HandleUpdateGroupOperator(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		Operator string `json:"groupOperator"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	if err := s.conditionService.UpdateGroupOperator(vars["id"], vars["group"], req.Operator, requestUser(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, "updated")
}

func (s *Server) HandleDeleteConditionGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.conditionService.DeleteGroup(vars["id"], vars["group"], requestUser(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, "deleted")
}

func (s *Server) HandleDeleteCondition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.conditionService.DeleteCondition(vars["id"], vars["conditionId"], requestUser(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, "deleted")
}

func (s *Server) HandleListConditions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groups, err := s.conditionService.List(vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, groups)
}

func (s *Server) HandleConditionSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	summary, err := s.conditionService.Summary(vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	matched, err := s.conditionService.Evaluate(vars["id"], record)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"matched": matched})
}

func (s *Server) HandleEvaluateStage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	matched, err := s.conditionService.EvaluateStage(vars["id"], vars["stageId"], record)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"matched": matched})
}
