package service

import (
	"strings"
	"time"

	"github.com/finacore/tradeflow/analytics"
	"github.com/finacore/tradeflow/cache"
	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/metadata"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/finacore/tradeflow/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateService owns the workflow template lifecycle.
type TemplateService struct {
	templateDao   persistence.TemplateDao
	stageDao      persistence.StageDao
	conditionDao  persistence.ConditionDao
	stageFieldDao persistence.StageFieldDao
	cache         *cache.TemplateCache
}

func NewTemplateService(templateDao persistence.TemplateDao, stageDao persistence.StageDao,
	conditionDao persistence.ConditionDao, stageFieldDao persistence.StageFieldDao,
	cache *cache.TemplateCache) *TemplateService {
	return &TemplateService{
		templateDao:   templateDao,
		stageDao:      stageDao,
		conditionDao:  conditionDao,
		stageFieldDao: stageFieldDao,
		cache:         cache,
	}
}

type CreateTemplateRequest struct {
	UserId       string   `json:"userId"`
	Name         string   `json:"templateName"`
	ModuleCode   string   `json:"moduleCode"`
	ModuleName   string   `json:"moduleName"`
	ProductCode  string   `json:"productCode"`
	EventCode    string   `json:"eventCode"`
	TriggerTypes []string `json:"triggerTypes"`
}

func (ts *TemplateService) Create(req CreateTemplateRequest) (*model.WorkflowTemplate, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, model.NewValidationError("template name can not be empty")
	}
	if strings.TrimSpace(req.ModuleCode) == "" {
		return nil, model.NewValidationError("module code can not be empty")
	}
	if strings.TrimSpace(req.ProductCode) == "" || strings.TrimSpace(req.EventCode) == "" {
		return nil, model.NewValidationError("product code and event code can not be empty")
	}
	if err := metadata.ValidateProductEvent(req.ProductCode, req.EventCode); err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	for _, trigger := range req.TriggerTypes {
		if !util.Contains(metadata.TriggerTypes(), trigger) {
			return nil, model.NewValidationError("unknown trigger type %s", trigger)
		}
	}
	productName, eventName := productEventNames(req.ProductCode, req.EventCode)
	now := time.Now()
	template := model.WorkflowTemplate{
		Id:           uuid.NewString(),
		UserId:       req.UserId,
		Name:         req.Name,
		ModuleCode:   req.ModuleCode,
		ModuleName:   req.ModuleName,
		ProductCode:  req.ProductCode,
		ProductName:  productName,
		EventCode:    req.EventCode,
		EventName:    eventName,
		TriggerTypes: req.TriggerTypes,
		Status:       model.TEMPLATE_STATUS_DRAFT,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := ts.templateDao.Save(template); err != nil {
		return nil, err
	}
	logger.Info("created template", zap.String("template", template.Id), zap.String("name", template.Name))
	analytics.RecordChange("template", template.Id, template.Id, "create", req.UserId)
	return &template, nil
}

// Copy duplicates the template header only. Stages, conditions and field
// bindings are not carried over, the copy starts as an empty draft.
func (ts *TemplateService) Copy(id string, userId string) (*model.WorkflowTemplate, error) {
	source, err := ts.templateDao.Get(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	duplicate := *source
	duplicate.Id = uuid.NewString()
	duplicate.UserId = userId
	duplicate.Name = source.Name + " (Copy)"
	duplicate.Status = model.TEMPLATE_STATUS_DRAFT
	duplicate.CreatedAt = now
	duplicate.UpdatedAt = now
	if err := ts.templateDao.Save(duplicate); err != nil {
		return nil, err
	}
	analytics.RecordChange("template", duplicate.Id, duplicate.Id, "copy", userId)
	return &duplicate, nil
}

func (ts *TemplateService) Get(id string) (*model.WorkflowTemplate, error) {
	return ts.templateDao.Get(id)
}

// List returns templates newest first. A non empty filter matches the
// template name, product and event columns case insensitively.
func (ts *TemplateService) List(filter string) ([]model.WorkflowTemplate, error) {
	templates, err := ts.templateDao.List()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(filter) == "" {
		return templates, nil
	}
	needle := strings.ToLower(strings.TrimSpace(filter))
	matched := make([]model.WorkflowTemplate, 0)
	for _, template := range templates {
		haystack := strings.ToLower(strings.Join([]string{
			template.Name, template.ProductCode, template.ProductName,
			template.EventCode, template.EventName,
		}, " "))
		if strings.Contains(haystack, needle) {
			matched = append(matched, template)
		}
	}
	return matched, nil
}

// UpdateStatus moves the template along its one-directional lifecycle.
func (ts *TemplateService) UpdateStatus(id string, status string, userId string) (*model.WorkflowTemplate, error) {
	next, err := model.ToTemplateStatus(status)
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	template, err := ts.templateDao.Get(id)
	if err != nil {
		return nil, err
	}
	if !template.Status.CanTransitionTo(next) {
		return nil, model.NewValidationError("template status can not move from %s to %s", template.Status, next)
	}
	template.Status = next
	template.UpdatedAt = time.Now()
	if err := ts.templateDao.Update(*template); err != nil {
		return nil, err
	}
	analytics.RecordChange("template", id, id, "status:"+status, userId)
	return template, nil
}

// Delete removes the template with its stages, conditions and bindings.
func (ts *TemplateService) Delete(id string, userId string) error {
	if _, err := ts.templateDao.Get(id); err != nil {
		return err
	}
	stages, err := ts.stageDao.ListByTemplate(id)
	if err != nil {
		return err
	}
	for _, stage := range stages {
		bindings, err := ts.stageFieldDao.ListByStage(stage.Id)
		if err != nil {
			return err
		}
		for _, binding := range bindings {
			if err := ts.stageFieldDao.Delete(stage.Id, binding.Id); err != nil {
				return err
			}
		}
		if err := ts.stageDao.Delete(id, stage.Id); err != nil {
			return err
		}
	}
	conditions, err := ts.conditionDao.ListByTemplate(id)
	if err != nil {
		return err
	}
	for _, condition := range conditions {
		if err := ts.conditionDao.Delete(id, condition.Id); err != nil {
			return err
		}
	}
	if err := ts.templateDao.Delete(id); err != nil {
		return err
	}
	ts.cache.Invalidate(id)
	logger.Info("deleted template", zap.String("template", id))
	analytics.RecordChange("template", id, id, "delete", userId)
	return nil
}

func productEventNames(productCode string, eventCode string) (string, string) {
	for _, pe := range metadata.ProductEvents() {
		if pe.ProductCode == productCode && pe.EventCode == eventCode {
			return pe.ProductName, pe.EventName
		}
	}
	return "", ""
}
