package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/finacore/tradeflow/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	http.Server
	Port             int
	templateService  *service.TemplateService
	stageService     *service.StageService
	conditionService *service.ConditionService
	fieldService     *service.FieldService
}

func NewServer(httpPort int,
	templateService *service.TemplateService, stageService *service.StageService,
	conditionService *service.ConditionService, fieldService *service.FieldService) (*Server, error) {

	s := &Server{
		Server: http.Server{
			Addr: fmt.Sprintf(":%d", httpPort),
		},
		templateService:  templateService,
		stageService:     stageService,
		conditionService: conditionService,
		fieldService:     fieldService,
		Port:             httpPort,
	}

	router := mux.NewRouter()
	router.HandleFunc("/template", s.HandleCreateTemplate).Methods(http.MethodPost)
	router.HandleFunc("/template", s.HandleListTemplates).Methods(http.MethodGet)
	router.HandleFunc("/template/{id}", s.HandleGetTemplate).Methods(http.MethodGet)
	router.HandleFunc("/template/{id}", s.HandleDeleteTemplate).Methods(http.MethodDelete)
	router.HandleFunc("/template/{id}/copy", s.HandleCopyTemplate).Methods(http.MethodPost)
	router.HandleFunc("/template/{id}/status", s.HandleUpdateTemplateStatus).Methods(http.MethodPut)

	router.HandleFunc("/template/{id}/stage", s.HandleAddStage).Methods(http.MethodPost)
	router.HandleFunc("/template/{id}/stage", s.HandleListStages).Methods(http.MethodGet)
	router.HandleFunc("/template/{id}/stage/{stageId}", s.HandleUpdateStage).Methods(http.MethodPut)
	router.HandleFunc("/template/{id}/stage/{stageId}", s.HandleRemoveStage).Methods(http.MethodDelete)
	router.HandleFunc("/template/{id}/stage/{stageId}/reorder", s.HandleReorderStage).Methods(http.MethodPut)
	router.HandleFunc("/template/{id}/stage/{stageId}/reject", s.HandleSetReject).Methods(http.MethodPut)
	router.HandleFunc("/template/{id}/flowchart", s.HandleFlowchart).Methods(http.MethodGet)

	router.HandleFunc("/template/{id}/condition-group", s.HandleAddConditionGroup).Methods(http.MethodPost)
	router.HandleFunc("/template/{id}/condition-group/{group}", s.HandleDeleteConditionGroup).Methods(http.MethodDelete)
	router.HandleFunc("/template/{id}/condition-group/{group}/condition", s.HandleAddCondition).Methods(http.MethodPost)
	router.HandleFunc("/template/{id}/condition-group/{group}/operator", s.HandleUpdateGroupOperator).Methods(http.MethodPut)
	router.HandleFunc("/template/{id}/condition", s.HandleListConditions).Methods(http.MethodGet)
	router.HandleFunc("/template/{id}/condition/summary", s.HandleConditionSummary).Methods(http.MethodGet)
	router.HandleFunc("/template/{id}/condition/{conditionId}", s.HandleDeleteCondition).Methods(http.MethodDelete)
	router.HandleFunc("/template/{id}/evaluate", s.HandleEvaluate).Methods(http.MethodPost)
	router.HandleFunc("/template/{id}/stage/{stageId}/evaluate", s.HandleEvaluateStage).Methods(http.MethodPost)

	router.HandleFunc("/template/{id}/field/available", s.HandleListAvailableFields).Methods(http.MethodGet)
	router.HandleFunc("/template/{id}/stage/{stageId}/field", s.HandleListBoundFields).Methods(http.MethodGet)
	router.HandleFunc("/template/{id}/stage/{stageId}/field", s.HandleBindField).Methods(http.MethodPost)
	router.HandleFunc("/template/{id}/stage/{stageId}/field/bind-all", s.HandleBindAllFields).Methods(http.MethodPost)
	router.HandleFunc("/template/{id}/stage/{stageId}/field/flags", s.HandleSetAllFlag).Methods(http.MethodPut)
	router.HandleFunc("/template/{id}/stage/{stageId}/field/{bindingId}/flags", s.HandleUpdateFlags).Methods(http.MethodPut)
	router.HandleFunc("/template/{id}/stage/{stageId}/field/{bindingId}", s.HandleUnbindField).Methods(http.MethodDelete)

	router.HandleFunc("/metadata/stage-catalog", s.HandleStageCatalog).Methods(http.MethodGet)
	router.HandleFunc("/metadata/product-events", s.HandleProductEvents).Methods(http.MethodGet)
	router.HandleFunc("/metadata/trigger-types", s.HandleTriggerTypes).Methods(http.MethodGet)
	router.HandleFunc("/metadata/panes", s.HandlePanes).Methods(http.MethodGet)
	router.HandleFunc("/metadata/operators", s.HandleOperators).Methods(http.MethodGet)
	router.HandleFunc("/metadata/sample-fields", s.HandleSampleFields).Methods(http.MethodGet)
	router.Use(loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("startting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server")
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOK(w http.ResponseWriter, message string) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	res, _ := json.Marshal(map[string]string{"message": message})
	w.Write(res)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondServiceError maps service errors onto http statuses. Validation
// failures are the caller's fault, missing entities are 404, the rest is the
// storage layer.
func respondServiceError(w http.ResponseWriter, err error) {
	if model.IsValidationError(err) {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var notFound persistence.NotFoundError
	if errors.As(err, &notFound) {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}

func requestUser(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}
