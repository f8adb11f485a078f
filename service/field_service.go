package service

import (
	"github.com/finacore/tradeflow/analytics"
	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/finacore/tradeflow/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fieldRepositoryLimit caps how many repository fields one listing returns.
const fieldRepositoryLimit = 500

// FieldService binds repository fields to stages and manages the per-stage
// UI policy flags.
type FieldService struct {
	templateDao     persistence.TemplateDao
	stageDao        persistence.StageDao
	stageFieldDao   persistence.StageFieldDao
	fieldRepository persistence.FieldRepository
}

func NewFieldService(templateDao persistence.TemplateDao, stageDao persistence.StageDao,
	stageFieldDao persistence.StageFieldDao, fieldRepository persistence.FieldRepository) *FieldService {
	return &FieldService{
		templateDao:     templateDao,
		stageDao:        stageDao,
		stageFieldDao:   stageFieldDao,
		fieldRepository: fieldRepository,
	}
}

// ListAvailable returns the active repository fields for the template's
// product and event.
func (fs *FieldService) ListAvailable(templateId string) ([]model.FieldDescriptor, error) {
	template, err := fs.templateDao.Get(templateId)
	if err != nil {
		return nil, err
	}
	return fs.fieldRepository.ListActive(template.ProductCode, template.EventCode, fieldRepositoryLimit)
}

// ListBound returns the stage's bindings in field order.
func (fs *FieldService) ListBound(stageId string) ([]model.WorkflowStageField, error) {
	return fs.stageFieldDao.ListByStage(stageId)
}

// Bind attaches one repository field to a stage. New bindings start visible
// and editable but not mandatory.
func (fs *FieldService) Bind(templateId string, stageId string, fieldId string, userId string) (*model.WorkflowStageField, error) {
	if _, err := fs.stageDao.Get(templateId, stageId); err != nil {
		return nil, err
	}
	descriptor, err := fs.findDescriptor(templateId, fieldId)
	if err != nil {
		return nil, err
	}
	bound, err := fs.stageFieldDao.ListByStage(stageId)
	if err != nil {
		return nil, err
	}
	for _, binding := range bound {
		if binding.FieldId == fieldId {
			return nil, model.NewValidationError("field %s already added to stage", descriptor.Name)
		}
	}
	binding := newBinding(stageId, *descriptor, len(bound)+1)
	if err := fs.stageFieldDao.Save(binding); err != nil {
		return nil, err
	}
	logger.Info("bound field", zap.String("stage", stageId), zap.String("field", descriptor.Name))
	analytics.RecordChange("stage-field", templateId, binding.Id, "bind", userId)
	return &binding, nil
}

// BindAllUnbound binds every repository field the stage does not carry yet.
// Calling it twice is a no-op the second time.
func (fs *FieldService) BindAllUnbound(templateId string, stageId string, userId string) ([]model.WorkflowStageField, error) {
	if _, err := fs.stageDao.Get(templateId, stageId); err != nil {
		return nil, err
	}
	template, err := fs.templateDao.Get(templateId)
	if err != nil {
		return nil, err
	}
	available, err := fs.fieldRepository.ListActive(template.ProductCode, template.EventCode, fieldRepositoryLimit)
	if err != nil {
		return nil, err
	}
	bound, err := fs.stageFieldDao.ListByStage(stageId)
	if err != nil {
		return nil, err
	}
	boundIds := make(map[string]bool, len(bound))
	for _, binding := range bound {
		boundIds[binding.FieldId] = true
	}
	unbound := util.Diff(available, boundIds, func(fd model.FieldDescriptor) string { return fd.Id })
	bindings := make([]model.WorkflowStageField, 0, len(unbound))
	for i, descriptor := range unbound {
		bindings = append(bindings, newBinding(stageId, descriptor, len(bound)+i+1))
	}
	if err := fs.stageFieldDao.SaveAll(bindings); err != nil {
		return nil, err
	}
	logger.Info("bound unbound fields", zap.String("stage", stageId), zap.Int("count", len(bindings)))
	analytics.RecordChange("stage-field", templateId, stageId, "bind-all", userId)
	return bindings, nil
}

// UpdateFlags sets the three policy flags of one binding.
func (fs *FieldService) UpdateFlags(templateId string, stageId string, bindingId string, visible bool, editable bool, mandatory bool, userId string) (*model.WorkflowStageField, error) {
	bound, err := fs.stageFieldDao.ListByStage(stageId)
	if err != nil {
		return nil, err
	}
	for _, binding := range bound {
		if binding.Id != bindingId {
			continue
		}
		binding.IsVisible = visible
		binding.IsEditable = editable
		binding.IsMandatory = mandatory
		if err := fs.stageFieldDao.Update(binding); err != nil {
			return nil, err
		}
		analytics.RecordChange("stage-field", templateId, bindingId, "update-flags", userId)
		return &binding, nil
	}
	return nil, persistence.NotFoundError{Entity: "stage field", Id: bindingId}
}

// SetAllFlag sets one policy flag across every binding of the stage.
func (fs *FieldService) SetAllFlag(templateId string, stageId string, flag model.FieldFlag, value bool, userId string) error {
	bound, err := fs.stageFieldDao.ListByStage(stageId)
	if err != nil {
		return err
	}
	for _, binding := range bound {
		switch flag {
		case model.FIELD_FLAG_VISIBLE:
			binding.IsVisible = value
		case model.FIELD_FLAG_EDITABLE:
			binding.IsEditable = value
		case model.FIELD_FLAG_MANDATORY:
			binding.IsMandatory = value
		default:
			return model.NewValidationError("unknown field flag %s", flag)
		}
		if err := fs.stageFieldDao.Update(binding); err != nil {
			return err
		}
	}
	analytics.RecordChange("stage-field", templateId, stageId, "set-all:"+string(flag), userId)
	return nil
}

// Unbind removes one binding from the stage.
func (fs *FieldService) Unbind(templateId string, stageId string, bindingId string, userId string) error {
	if err := fs.stageFieldDao.Delete(stageId, bindingId); err != nil {
		return err
	}
	analytics.RecordChange("stage-field", templateId, bindingId, "unbind", userId)
	return nil
}

func (fs *FieldService) findDescriptor(templateId string, fieldId string) (*model.FieldDescriptor, error) {
	template, err := fs.templateDao.Get(templateId)
	if err != nil {
		return nil, err
	}
	available, err := fs.fieldRepository.ListActive(template.ProductCode, template.EventCode, fieldRepositoryLimit)
	if err != nil {
		return nil, err
	}
	for _, descriptor := range available {
		if descriptor.Id == fieldId {
			return &descriptor, nil
		}
	}
	return nil, persistence.NotFoundError{Entity: "field", Id: fieldId}
}

func newBinding(stageId string, descriptor model.FieldDescriptor, order int) model.WorkflowStageField {
	return model.WorkflowStageField{
		Id:          uuid.NewString(),
		StageId:     stageId,
		FieldId:     descriptor.Id,
		FieldName:   descriptor.Name,
		Pane:        descriptor.Pane,
		Section:     descriptor.Section,
		Label:       descriptor.Label,
		DisplayType: descriptor.DisplayType,
		IsVisible:   true,
		IsEditable:  true,
		IsMandatory: false,
		FieldOrder:  order,
	}
}
