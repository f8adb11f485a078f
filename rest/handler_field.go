package rest

import (
	"encoding/json"
	"net/http"

	"github.com/finacore/tradeflow/model"
	"github.com/gorilla/mux"
)

func (s *Server) HandleListAvailableFields(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fields, err := s.fieldService.ListAvailable(vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, fields)
}

func (s *Server) HandleListBoundFields(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bindings, err := s.fieldService.ListBound(vars["stageId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bindings)
}

func (s *Server) HandleBindField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		FieldId string `json:"fieldId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	binding, err := s.fieldService.Bind(vars["id"], vars["stageId"], req.FieldId, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, binding)
}

func (s *Server) HandleBindAllFields(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bindings, err := s.fieldService.BindAllUnbound(vars["id"], vars["stageId"], requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, bindings)
}

func (s *Server) HandleUpdateFlags(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		IsVisible   bool `json:"isVisible"`
		IsEditable  bool `json:"isEditable"`
		IsMandatory bool `json:"isMandatory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	binding, err := s.fieldService.UpdateFlags(vars["id"], vars["stageId"], vars["bindingId"],
		req.IsVisible, req.IsEditable, req.IsMandatory, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, binding)
}

func (s *Server) HandleSetAllFlag(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		Flag  string `json:"flag"`
		Value bool   `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	if err := s.fieldService.SetAllFlag(vars["id"], vars["stageId"], model.FieldFlag(req.Flag), req.Value, requestUser(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, "updated")
}

func (s *Server) HandleUnbindField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.fieldService.Unbind(vars["id"], vars["stageId"], vars["bindingId"], requestUser(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, "removed")
}
