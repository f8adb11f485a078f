package rest

import (
	"net/http"

	"github.com/finacore/tradeflow/metadata"
)

func (s *Server) HandleStageCatalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, metadata.StageCatalog())
}

func (s *Server) HandleProductEvents(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, metadata.ProductEvents())
}

func (s *Server) HandleTriggerTypes(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, metadata.TriggerTypes())
}

func (s *Server) HandlePanes(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, metadata.PaneIdentifiers())
}

func (s *Server) HandleOperators(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, metadata.Operators())
}

func (s *Server) HandleSampleFields(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, metadata.SampleFields())
}
