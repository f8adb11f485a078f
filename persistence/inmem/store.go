package inmem

import (
	"sync"

	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
)

// Store keeps everything in process memory. It backs local development and
// the test suites, no durability is intended.
type Store struct {
	mu          sync.RWMutex
	templates   map[string]model.WorkflowTemplate
	stages      map[string]map[string]model.WorkflowStage
	conditions  map[string]map[string]model.WorkflowCondition
	stageFields map[string]map[string]model.WorkflowStageField
	repoFields  []model.FieldDescriptor
}

func NewStore() *Store {
	return &Store{
		templates:   make(map[string]model.WorkflowTemplate),
		stages:      make(map[string]map[string]model.WorkflowStage),
		conditions:  make(map[string]map[string]model.WorkflowCondition),
		stageFields: make(map[string]map[string]model.WorkflowStageField),
	}
}

// SeedFieldRepository loads descriptors into the read-only field repository.
func (s *Store) SeedFieldRepository(fields []model.FieldDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repoFields = append(s.repoFields, fields...)
}

func (s *Store) TemplateDao() persistence.TemplateDao       { return &templateDao{store: s} }
func (s *Store) StageDao() persistence.StageDao             { return &stageDao{store: s} }
func (s *Store) ConditionDao() persistence.ConditionDao     { return &conditionDao{store: s} }
func (s *Store) StageFieldDao() persistence.StageFieldDao   { return &stageFieldDao{store: s} }
func (s *Store) FieldRepository() persistence.FieldRepository { return &fieldRepository{store: s} }

type templateDao struct {
	store *Store
}

var _ persistence.TemplateDao = new(templateDao)

func (td *templateDao) Save(template model.WorkflowTemplate) error {
	td.store.mu.Lock()
	defer td.store.mu.Unlock()
	td.store.templates[template.Id] = template
	return nil
}

func (td *templateDao) Update(template model.WorkflowTemplate) error {
	return td.Save(template)
}

func (td *templateDao) Delete(id string) error {
	td.store.mu.Lock()
	defer td.store.mu.Unlock()
	delete(td.store.templates, id)
	return nil
}

func (td *templateDao) Get(id string) (*model.WorkflowTemplate, error) {
	td.store.mu.RLock()
	defer td.store.mu.RUnlock()
	template, ok := td.store.templates[id]
	if !ok {
		return nil, persistence.NotFoundError{Entity: "template", Id: id}
	}
	return &template, nil
}

func (td *templateDao) List() ([]model.WorkflowTemplate, error) {
	td.store.mu.RLock()
	defer td.store.mu.RUnlock()
	templates := make([]model.WorkflowTemplate, 0, len(td.store.templates))
	for _, template := range td.store.templates {
		templates = append(templates, template)
	}
	persistence.SortTemplates(templates)
	return templates, nil
}

type stageDao struct {
	store *Store
}

var _ persistence.StageDao = new(stageDao)

func (sd *stageDao) Save(stage model.WorkflowStage) error {
	sd.store.mu.Lock()
	defer sd.store.mu.Unlock()
	byTemplate, ok := sd.store.stages[stage.TemplateId]
	if !ok {
		byTemplate = make(map[string]model.WorkflowStage)
		sd.store.stages[stage.TemplateId] = byTemplate
	}
	byTemplate[stage.Id] = stage
	return nil
}

func (sd *stageDao) Update(stage model.WorkflowStage) error {
	return sd.Save(stage)
}

func (sd *stageDao) Delete(templateId string, stageId string) error {
	sd.store.mu.Lock()
	defer sd.store.mu.Unlock()
	delete(sd.store.stages[templateId], stageId)
	return nil
}

func (sd *stageDao) Get(templateId string, stageId string) (*model.WorkflowStage, error) {
	sd.store.mu.RLock()
	defer sd.store.mu.RUnlock()
	stage, ok := sd.store.stages[templateId][stageId]
	if !ok {
		return nil, persistence.NotFoundError{Entity: "stage", Id: stageId}
	}
	return &stage, nil
}

func (sd *stageDao) ListByTemplate(templateId string) ([]model.WorkflowStage, error) {
	sd.store.mu.RLock()
	defer sd.store.mu.RUnlock()
	stages := make([]model.WorkflowStage, 0, len(sd.store.stages[templateId]))
	for _, stage := range sd.store.stages[templateId] {
		stages = append(stages, stage)
	}
	persistence.SortStages(stages)
	return stages, nil
}

type conditionDao struct {
	store *Store
}

var _ persistence.ConditionDao = new(conditionDao)

func (cd *conditionDao) Save(condition model.WorkflowCondition) error {
	cd.store.mu.Lock()
	defer cd.store.mu.Unlock()
	byTemplate, ok := cd.store.conditions[condition.TemplateId]
	if !ok {
		byTemplate = make(map[string]model.WorkflowCondition)
		cd.store.conditions[condition.TemplateId] = byTemplate
	}
	byTemplate[condition.Id] = condition
	return nil
}

func (cd *conditionDao) Update(condition model.WorkflowCondition) error {
	return cd.Save(condition)
}

func (cd *conditionDao) Delete(templateId string, conditionId string) error {
	cd.store.mu.Lock()
	defer cd.store.mu.Unlock()
	delete(cd.store.conditions[templateId], conditionId)
	return nil
}

func (cd *conditionDao) Get(templateId string, conditionId string) (*model.WorkflowCondition, error) {
	cd.store.mu.RLock()
	defer cd.store.mu.RUnlock()
	condition, ok := cd.store.conditions[templateId][conditionId]
	if !ok {
		return nil, persistence.NotFoundError{Entity: "condition", Id: conditionId}
	}
	return &condition, nil
}

func (cd *conditionDao) ListByTemplate(templateId string) ([]model.WorkflowCondition, error) {
	cd.store.mu.RLock()
	defer cd.store.mu.RUnlock()
	conditions := make([]model.WorkflowCondition, 0, len(cd.store.conditions[templateId]))
	for _, condition := range cd.store.conditions[templateId] {
		conditions = append(conditions, condition)
	}
	persistence.SortConditions(conditions)
	return conditions, nil
}

type stageFieldDao struct {
	store *Store
}

var _ persistence.StageFieldDao = new(stageFieldDao)

func (fd *stageFieldDao) Save(field model.WorkflowStageField) error {
	fd.store.mu.Lock()
	defer fd.store.mu.Unlock()
	byStage, ok := fd.store.stageFields[field.StageId]
	if !ok {
		byStage = make(map[string]model.WorkflowStageField)
		fd.store.stageFields[field.StageId] = byStage
	}
	byStage[field.Id] = field
	return nil
}

func (fd *stageFieldDao) SaveAll(fields []model.WorkflowStageField) error {
	for _, field := range fields {
		if err := fd.Save(field); err != nil {
			return err
		}
	}
	return nil
}

func (fd *stageFieldDao) Update(field model.WorkflowStageField) error {
	return fd.Save(field)
}

func (fd *stageFieldDao) Delete(stageId string, bindingId string) error {
	fd.store.mu.Lock()
	defer fd.store.mu.Unlock()
	delete(fd.store.stageFields[stageId], bindingId)
	return nil
}

func (fd *stageFieldDao) ListByStage(stageId string) ([]model.WorkflowStageField, error) {
	fd.store.mu.RLock()
	defer fd.store.mu.RUnlock()
	fields := make([]model.WorkflowStageField, 0, len(fd.store.stageFields[stageId]))
	for _, field := range fd.store.stageFields[stageId] {
		fields = append(fields, field)
	}
	persistence.SortStageFields(fields)
	return fields, nil
}

type fieldRepository struct {
	store *Store
}

var _ persistence.FieldRepository = new(fieldRepository)

func (fr *fieldRepository) ListActive(productCode string, eventCode string, limit int) ([]model.FieldDescriptor, error) {
	fr.store.mu.RLock()
	defer fr.store.mu.RUnlock()
	fields := make([]model.FieldDescriptor, 0)
	for _, field := range fr.store.repoFields {
		if !field.IsActive {
			continue
		}
		if field.ProductCode != productCode || field.EventCode != eventCode {
			continue
		}
		fields = append(fields, field)
		if len(fields) >= limit {
			break
		}
	}
	return fields, nil
}
