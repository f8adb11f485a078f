package service

import (
	"fmt"
	"strings"

	"github.com/finacore/tradeflow/analytics"
	"github.com/finacore/tradeflow/cache"
	"github.com/finacore/tradeflow/flow"
	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConditionService owns the condition groups of a template.
type ConditionService struct {
	templateDao  persistence.TemplateDao
	conditionDao persistence.ConditionDao
	cache        *cache.TemplateCache
	evaluator    *flow.Evaluator
}

func NewConditionService(templateDao persistence.TemplateDao, conditionDao persistence.ConditionDao,
	cache *cache.TemplateCache) *ConditionService {
	return &ConditionService{
		templateDao:  templateDao,
		conditionDao: conditionDao,
		cache:        cache,
		evaluator:    flow.NewEvaluator(),
	}
}

type ConditionInput struct {
	FieldName    string `json:"fieldName"`
	Operator     string `json:"operator"`
	CompareType  string `json:"compareType"`
	CompareValue string `json:"compareValue"`
	CompareField string `json:"compareField"`
}

// AddGroup creates a named group with its initial members. Group names are
// unique within a template.
func (cs *ConditionService) AddGroup(templateId string, stageId string, groupName string, operator string, inputs []ConditionInput, userId string) ([]model.WorkflowCondition, error) {
	if _, err := cs.templateDao.Get(templateId); err != nil {
		return nil, err
	}
	if strings.TrimSpace(groupName) == "" {
		return nil, model.NewValidationError("group name can not be empty")
	}
	groupOperator, err := model.ToGroupOperator(operator)
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	if len(inputs) == 0 {
		return nil, model.NewValidationError("group needs at least one condition")
	}
	existing, err := cs.conditionDao.ListByTemplate(templateId)
	if err != nil {
		return nil, err
	}
	for _, condition := range existing {
		if condition.GroupName == groupName {
			return nil, model.NewValidationError("group %s already exists", groupName)
		}
	}
	created := make([]model.WorkflowCondition, 0, len(inputs))
	for i, input := range inputs {
		condition, err := cs.buildCondition(templateId, stageId, groupName, groupOperator, i+1, input)
		if err != nil {
			return nil, err
		}
		if err := cs.conditionDao.Save(*condition); err != nil {
			return nil, err
		}
		created = append(created, *condition)
	}
	cs.cache.Invalidate(templateId)
	logger.Info("added condition group", zap.String("template", templateId), zap.String("group", groupName), zap.Int("conditions", len(created)))
	analytics.RecordChange("condition-group", templateId, groupName, "add", userId)
	return created, nil
}

// AddCondition appends one condition to an existing group. The new member
// inherits the group's operator and takes the next order slot.
func (cs *ConditionService) AddCondition(templateId string, groupName string, input ConditionInput, userId string) (*model.WorkflowCondition, error) {
	members, err := cs.groupMembers(templateId, groupName)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, model.NewValidationError("group %s does not exist", groupName)
	}
	condition, err := cs.buildCondition(templateId, members[0].StageId, groupName, members[0].GroupOperator, len(members)+1, input)
	if err != nil {
		return nil, err
	}
	if err := cs.conditionDao.Save(*condition); err != nil {
		return nil, err
	}
	cs.cache.Invalidate(templateId)
	analytics.RecordChange("condition", templateId, condition.Id, "add", userId)
	return condition, nil
}

// UpdateGroupOperator rewrites every member of the group so the operator
// stays uniform across the group.
func (cs *ConditionService) UpdateGroupOperator(templateId string, groupName string, operator string, userId string) error {
	groupOperator, err := model.ToGroupOperator(operator)
	if err != nil {
		return model.NewValidationError(err.Error())
	}
	members, err := cs.groupMembers(templateId, groupName)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return model.NewValidationError("group %s does not exist", groupName)
	}
	for _, member := range members {
		member.GroupOperator = groupOperator
		if err := cs.conditionDao.Update(member); err != nil {
			return err
		}
	}
	cs.cache.Invalidate(templateId)
	analytics.RecordChange("condition-group", templateId, groupName, "set-operator:"+operator, userId)
	return nil
}

// DeleteCondition removes one condition and renumbers the rest of its group.
func (cs *ConditionService) DeleteCondition(templateId string, conditionId string, userId string) error {
	condition, err := cs.conditionDao.Get(templateId, conditionId)
	if err != nil {
		return err
	}
	if err := cs.conditionDao.Delete(templateId, conditionId); err != nil {
		return err
	}
	members, err := cs.groupMembers(templateId, condition.GroupName)
	if err != nil {
		return err
	}
	for i := range members {
		members[i].ConditionOrder = i + 1
		if err := cs.conditionDao.Update(members[i]); err != nil {
			return err
		}
	}
	cs.cache.Invalidate(templateId)
	analytics.RecordChange("condition", templateId, conditionId, "delete", userId)
	return nil
}

// DeleteGroup removes every member of the group.
func (cs *ConditionService) DeleteGroup(templateId string, groupName string, userId string) error {
	members, err := cs.groupMembers(templateId, groupName)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return model.NewValidationError("group %s does not exist", groupName)
	}
	for _, member := range members {
		if err := cs.conditionDao.Delete(templateId, member.Id); err != nil {
			return err
		}
	}
	cs.cache.Invalidate(templateId)
	analytics.RecordChange("condition-group", templateId, groupName, "delete", userId)
	return nil
}

func (cs *ConditionService) List(templateId string) ([]flow.ConditionGroup, error) {
	conditions, err := cs.cache.GetConditions(templateId)
	if err != nil {
		return nil, err
	}
	return flow.GroupConditions(conditions), nil
}

// Summary renders the template's gating groups as one readable line, each
// group parenthesized and groups joined with AND. Stage scoped groups gate
// entry into their stage and stay out of the template projection.
func (cs *ConditionService) Summary(templateId string) (string, error) {
	conditions, err := cs.cache.GetConditions(templateId)
	if err != nil {
		return "", err
	}
	groups := flow.GroupConditions(scopedTo(conditions, ""))
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		members := make([]string, 0, len(group.Conditions))
		for _, condition := range group.Conditions {
			members = append(members, renderCondition(condition))
		}
		parts = append(parts, "("+strings.Join(members, " "+string(group.Operator)+" ")+")")
	}
	return strings.Join(parts, " AND "), nil
}

// Evaluate runs the template's gating groups against a transaction record.
func (cs *ConditionService) Evaluate(templateId string, record map[string]any) (bool, error) {
	return cs.evaluateScoped(templateId, "", record)
}

// EvaluateStage runs the groups gating entry into one stage.
func (cs *ConditionService) EvaluateStage(templateId string, stageId string, record map[string]any) (bool, error) {
	return cs.evaluateScoped(templateId, stageId, record)
}

func (cs *ConditionService) evaluateScoped(templateId string, stageId string, record map[string]any) (bool, error) {
	conditions, err := cs.cache.GetConditions(templateId)
	if err != nil {
		return false, err
	}
	scoped := scopedTo(conditions, stageId)
	matched, err := cs.evaluator.EvaluateTemplate(scoped, record)
	if err != nil {
		return false, err
	}
	analytics.RecordEvaluation(templateId, matched, len(flow.GroupConditions(scoped)))
	return matched, nil
}

// scopedTo keeps the conditions of one scope, the template itself when
// stageId is empty.
func scopedTo(conditions []model.WorkflowCondition, stageId string) []model.WorkflowCondition {
	scoped := make([]model.WorkflowCondition, 0, len(conditions))
	for _, condition := range conditions {
		if condition.StageId == stageId {
			scoped = append(scoped, condition)
		}
	}
	return scoped
}

func (cs *ConditionService) groupMembers(templateId string, groupName string) ([]model.WorkflowCondition, error) {
	conditions, err := cs.conditionDao.ListByTemplate(templateId)
	if err != nil {
		return nil, err
	}
	for _, group := range flow.GroupConditions(conditions) {
		if group.Name == groupName {
			return group.Conditions, nil
		}
	}
	return nil, nil
}

func (cs *ConditionService) buildCondition(templateId string, stageId string, groupName string,
	groupOperator model.GroupOperator, order int, input ConditionInput) (*model.WorkflowCondition, error) {
	operator, err := model.ToConditionOperator(input.Operator)
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	compareType := model.COMPARE_TYPE_VALUE
	if strings.TrimSpace(input.CompareType) != "" {
		compareType, err = model.ToCompareType(input.CompareType)
		if err != nil {
			return nil, model.NewValidationError(err.Error())
		}
	}
	switch operator {
	case model.OPERATOR_EXPRESSION:
		if strings.TrimSpace(input.CompareValue) == "" {
			return nil, model.NewValidationError("expression can not be empty")
		}
	case model.OPERATOR_IS_EMPTY, model.OPERATOR_IS_NOT_EMPTY:
		if strings.TrimSpace(input.FieldName) == "" {
			return nil, model.NewValidationError("field name can not be empty")
		}
	default:
		if strings.TrimSpace(input.FieldName) == "" {
			return nil, model.NewValidationError("field name can not be empty")
		}
		if compareType == model.COMPARE_TYPE_FIELD && strings.TrimSpace(input.CompareField) == "" {
			return nil, model.NewValidationError("compare field can not be empty")
		}
		if compareType == model.COMPARE_TYPE_VALUE && strings.TrimSpace(input.CompareValue) == "" {
			return nil, model.NewValidationError("compare value can not be empty")
		}
	}
	return &model.WorkflowCondition{
		Id:             uuid.NewString(),
		TemplateId:     templateId,
		StageId:        stageId,
		GroupName:      groupName,
		GroupOperator:  groupOperator,
		ConditionOrder: order,
		FieldName:      input.FieldName,
		Operator:       operator,
		CompareType:    compareType,
		CompareValue:   input.CompareValue,
		CompareField:   input.CompareField,
	}, nil
}

func renderCondition(condition model.WorkflowCondition) string {
	switch condition.Operator {
	case model.OPERATOR_EXPRESSION:
		return fmt.Sprintf("Expression %q", condition.CompareValue)
	case model.OPERATOR_IS_EMPTY, model.OPERATOR_IS_NOT_EMPTY:
		return fmt.Sprintf("%s %s", condition.FieldName, condition.Operator)
	}
	if condition.CompareType == model.COMPARE_TYPE_FIELD {
		return fmt.Sprintf("%s %s %s", condition.FieldName, condition.Operator, condition.CompareField)
	}
	return fmt.Sprintf("%s %s %q", condition.FieldName, condition.Operator, condition.CompareValue)
}
