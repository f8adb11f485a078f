package rest

import (
	"encoding/json"
	"net/http"

	"github.com/finacore/tradeflow/service"
	"github.com/gorilla/mux"
)

func (s *Server) HandleAddStage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		CatalogKey string `json:"catalogKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	stage, err := s.stageService.Add(vars["id"], req.CatalogKey, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, stage)
}

func (s *Server) HandleListStages(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stages, err := s.stageService.List(vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stages)
}

func (s *Server) HandleUpdateStage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req service.UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	stage, err := s.stageService.Update(vars["id"], vars["stageId"], req, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stage)
}

func (s *Server) HandleReorderStage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		Position int `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	stages, err := s.stageService.Reorder(vars["id"], vars["stageId"], req.Position, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stages)
}

func (s *Server) HandleSetReject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		RejectToStageId string `json:"rejectToStageId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	stage, err := s.stageService.SetReject(vars["id"], vars["stageId"], req.RejectToStageId, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stage)
}

func (s *Server) HandleRemoveStage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.stageService.Remove(vars["id"], vars["stageId"], requestUser(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, "removed")
}

func (s *Server) HandleFlowchart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	nodes, err := s.stageService.Flowchart(vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, nodes)
}
