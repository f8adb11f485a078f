package rest

import (
	"encoding/json"
	"net/http"

	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	if req.UserId == "" {
		req.UserId = requestUser(r)
	}
	template, err := s.templateService.Create(req)
	if err != nil {
		logger.Error("error creating template", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, template)
}

func (s *Server) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templateService.List(r.URL.Query().Get("filter"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, templates)
}

func (s *Server) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	template, err := s.templateService.Get(vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, template)
}

func (s *Server) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.templateService.Delete(vars["id"], requestUser(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, "deleted")
}

func (s *Server) HandleCopyTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	template, err := s.templateService.Copy(vars["id"], requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, template)
}

func (s *Server) HandleUpdateTemplateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	template, err := s.templateService.UpdateStatus(vars["id"], req.Status, requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, template)
}
