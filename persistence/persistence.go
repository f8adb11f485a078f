package persistence

import (
	"fmt"

	"github.com/finacore/tradeflow/model"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

type NotFoundError struct {
	Entity string
	Id     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Id)
}

type TemplateDao interface {
	Save(template model.WorkflowTemplate) error

	Update(template model.WorkflowTemplate) error

	Delete(id string) error

	Get(id string) (*model.WorkflowTemplate, error)

	List() ([]model.WorkflowTemplate, error)
}

type StageDao interface {
	Save(stage model.WorkflowStage) error

	Update(stage model.WorkflowStage) error

	Delete(templateId string, stageId string) error

	Get(templateId string, stageId string) (*model.WorkflowStage, error)

	ListByTemplate(templateId string) ([]model.WorkflowStage, error)
}

type StageFieldDao interface {
	Save(field model.WorkflowStageField) error

	SaveAll(fields []model.WorkflowStageField) error

	Update(field model.WorkflowStageField) error

	Delete(stageId string, bindingId string) error

	ListByStage(stageId string) ([]model.WorkflowStageField, error)
}

type ConditionDao interface {
	Save(condition model.WorkflowCondition) error

	Update(condition model.WorkflowCondition) error

	Delete(templateId string, conditionId string) error

	Get(templateId string, conditionId string) (*model.WorkflowCondition, error)

	ListByTemplate(templateId string) ([]model.WorkflowCondition, error)
}

// FieldRepository is the external catalog of all definable fields, consumed
// read-only.
type FieldRepository interface {
	ListActive(productCode string, eventCode string, limit int) ([]model.FieldDescriptor, error)
}
