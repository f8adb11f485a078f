package service

import (
	"strings"

	"github.com/finacore/tradeflow/analytics"
	"github.com/finacore/tradeflow/cache"
	"github.com/finacore/tradeflow/flow"
	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/metadata"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/finacore/tradeflow/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSlaHours = 24

// StageService owns the ordered stage pipeline of a template. Stage order is
// 1-based and kept dense across every mutation.
type StageService struct {
	templateDao   persistence.TemplateDao
	stageDao      persistence.StageDao
	conditionDao  persistence.ConditionDao
	stageFieldDao persistence.StageFieldDao
	cache         *cache.TemplateCache
}

func NewStageService(templateDao persistence.TemplateDao, stageDao persistence.StageDao,
	conditionDao persistence.ConditionDao, stageFieldDao persistence.StageFieldDao,
	cache *cache.TemplateCache) *StageService {
	return &StageService{
		templateDao:   templateDao,
		stageDao:      stageDao,
		conditionDao:  conditionDao,
		stageFieldDao: stageFieldDao,
		cache:         cache,
	}
}

// Add appends a catalog stage to the end of the template's pipeline.
func (ss *StageService) Add(templateId string, catalogKey string, userId string) (*model.WorkflowStage, error) {
	if _, err := ss.templateDao.Get(templateId); err != nil {
		return nil, err
	}
	entry, err := metadata.GetStageCatalogEntry(catalogKey)
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	stages, err := ss.stageDao.ListByTemplate(templateId)
	if err != nil {
		return nil, err
	}
	stage := model.WorkflowStage{
		Id:           uuid.NewString(),
		TemplateId:   templateId,
		Name:         entry.Name,
		StageOrder:   len(stages) + 1,
		ActorType:    entry.ActorType,
		StageType:    entry.StageType,
		SlaHours:     defaultSlaHours,
		IsRejectable: false,
		RenderMode:   model.RENDER_MODE_DYNAMIC,
	}
	if err := ss.stageDao.Save(stage); err != nil {
		return nil, err
	}
	ss.cache.Invalidate(templateId)
	logger.Info("added stage", zap.String("template", templateId), zap.String("stage", stage.Id), zap.String("name", stage.Name))
	analytics.RecordChange("stage", templateId, stage.Id, "add", userId)
	return &stage, nil
}

type UpdateStageRequest struct {
	SlaHours    int      `json:"slaHours"`
	RenderMode  string   `json:"uiRenderMode"`
	StaticPanes []string `json:"staticPanes"`
}

// Update changes the tunable attributes of a stage. Order and reject edges
// go through Reorder and SetReject.
func (ss *StageService) Update(templateId string, stageId string, req UpdateStageRequest, userId string) (*model.WorkflowStage, error) {
	stage, err := ss.stageDao.Get(templateId, stageId)
	if err != nil {
		return nil, err
	}
	if req.SlaHours <= 0 {
		return nil, model.NewValidationError("sla hours must be positive")
	}
	renderMode, err := model.ToRenderMode(req.RenderMode)
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	if renderMode == model.RENDER_MODE_STATIC && len(req.StaticPanes) == 0 {
		return nil, model.NewValidationError("static render mode needs at least one pane")
	}
	for _, pane := range req.StaticPanes {
		if !util.Contains(metadata.PaneIdentifiers(), pane) {
			return nil, model.NewValidationError("unknown pane %s", pane)
		}
	}
	stage.SlaHours = req.SlaHours
	stage.RenderMode = renderMode
	stage.StaticPanes = req.StaticPanes
	if renderMode == model.RENDER_MODE_DYNAMIC {
		stage.StaticPanes = nil
	}
	if err := ss.stageDao.Update(*stage); err != nil {
		return nil, err
	}
	ss.cache.Invalidate(templateId)
	analytics.RecordChange("stage", templateId, stageId, "update", userId)
	return stage, nil
}

// Reorder moves a stage to the given 1-based position and renumbers the whole
// sequence so orders stay dense.
func (ss *StageService) Reorder(templateId string, stageId string, position int, userId string) ([]model.WorkflowStage, error) {
	stages, err := ss.stageDao.ListByTemplate(templateId)
	if err != nil {
		return nil, err
	}
	index := -1
	for i, stage := range stages {
		if stage.Id == stageId {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, persistence.NotFoundError{Entity: "stage", Id: stageId}
	}
	if position < 1 || position > len(stages) {
		return nil, model.NewValidationError("position %d out of range 1..%d", position, len(stages))
	}
	moved := stages[index]
	remaining := append(stages[:index:index], stages[index+1:]...)
	reordered := make([]model.WorkflowStage, 0, len(stages))
	reordered = append(reordered, remaining[:position-1]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, remaining[position-1:]...)
	if err := ss.renumber(templateId, reordered); err != nil {
		return nil, err
	}
	logger.Info("reordered stages", zap.String("template", templateId), zap.String("stage", stageId), zap.Int("position", position))
	analytics.RecordChange("stage", templateId, stageId, "reorder", userId)
	return ss.stageDao.ListByTemplate(templateId)
}

// SetReject points a stage's reject edge at an earlier stage. An empty target
// clears the edge.
func (ss *StageService) SetReject(templateId string, stageId string, rejectToStageId string, userId string) (*model.WorkflowStage, error) {
	stage, err := ss.stageDao.Get(templateId, stageId)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rejectToStageId) == "" {
		stage.IsRejectable = false
		stage.RejectToStageId = ""
	} else {
		if rejectToStageId == stageId {
			return nil, model.NewValidationError("stage can not reject to itself")
		}
		target, err := ss.stageDao.Get(templateId, rejectToStageId)
		if err != nil {
			return nil, err
		}
		if target.StageOrder >= stage.StageOrder {
			return nil, model.NewValidationError("reject target must be an earlier stage")
		}
		stage.IsRejectable = true
		stage.RejectToStageId = rejectToStageId
	}
	if err := ss.stageDao.Update(*stage); err != nil {
		return nil, err
	}
	ss.cache.Invalidate(templateId)
	analytics.RecordChange("stage", templateId, stageId, "set-reject", userId)
	return stage, nil
}

// Remove deletes a stage, its field bindings and its stage scoped conditions,
// renumbers the survivors and clears reject edges that pointed at it.
func (ss *StageService) Remove(templateId string, stageId string, userId string) error {
	if _, err := ss.stageDao.Get(templateId, stageId); err != nil {
		return err
	}
	bindings, err := ss.stageFieldDao.ListByStage(stageId)
	if err != nil {
		return err
	}
	for _, binding := range bindings {
		if err := ss.stageFieldDao.Delete(stageId, binding.Id); err != nil {
			return err
		}
	}
	conditions, err := ss.conditionDao.ListByTemplate(templateId)
	if err != nil {
		return err
	}
	for _, condition := range conditions {
		if condition.StageId == stageId {
			if err := ss.conditionDao.Delete(templateId, condition.Id); err != nil {
				return err
			}
		}
	}
	if err := ss.stageDao.Delete(templateId, stageId); err != nil {
		return err
	}
	stages, err := ss.stageDao.ListByTemplate(templateId)
	if err != nil {
		return err
	}
	for i := range stages {
		if stages[i].RejectToStageId == stageId {
			stages[i].IsRejectable = false
			stages[i].RejectToStageId = ""
		}
	}
	if err := ss.renumber(templateId, stages); err != nil {
		return err
	}
	logger.Info("removed stage", zap.String("template", templateId), zap.String("stage", stageId))
	analytics.RecordChange("stage", templateId, stageId, "remove", userId)
	return nil
}

func (ss *StageService) List(templateId string) ([]model.WorkflowStage, error) {
	return ss.cache.GetStages(templateId)
}

// Flowchart renders the stage pipeline as a linear graph with reject back
// edges resolved.
func (ss *StageService) Flowchart(templateId string) ([]flow.FlowNode, error) {
	stages, err := ss.cache.GetStages(templateId)
	if err != nil {
		return nil, err
	}
	return flow.BuildFlowchart(stages), nil
}

// renumber writes the slice back with orders 1..N. The cache is dropped even
// on a partial failure so readers refetch the store's view.
func (ss *StageService) renumber(templateId string, stages []model.WorkflowStage) error {
	defer ss.cache.Invalidate(templateId)
	for i := range stages {
		stages[i].StageOrder = i + 1
		if err := ss.stageDao.Update(stages[i]); err != nil {
			return err
		}
	}
	return nil
}
