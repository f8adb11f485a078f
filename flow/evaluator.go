package flow

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/finacore/tradeflow/model"
	"github.com/oliveagle/jsonpath"
	"github.com/spf13/cast"
)

// Evaluator runs condition groups against a transaction record. The record is
// the decoded JSON payload of the transaction under evaluation.
type Evaluator struct {
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// EvaluateTemplate combines every group of the template. Groups are combined
// with AND, a template matches only when all of its groups match.
func (ev *Evaluator) EvaluateTemplate(conditions []model.WorkflowCondition, record map[string]any) (bool, error) {
	for _, group := range GroupConditions(conditions) {
		matched, err := ev.EvaluateGroup(group.Conditions, group.Operator, record)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

// EvaluateGroup combines the members of a single group under its operator.
// An empty group matches.
func (ev *Evaluator) EvaluateGroup(conditions []model.WorkflowCondition, operator model.GroupOperator, record map[string]any) (bool, error) {
	if len(conditions) == 0 {
		return true, nil
	}
	for _, condition := range conditions {
		matched, err := ev.evaluateCondition(condition, record)
		if err != nil {
			return false, err
		}
		if operator == model.GROUP_OPERATOR_AND && !matched {
			return false, nil
		}
		if operator == model.GROUP_OPERATOR_OR && matched {
			return true, nil
		}
	}
	return operator == model.GROUP_OPERATOR_AND, nil
}

func (ev *Evaluator) evaluateCondition(condition model.WorkflowCondition, record map[string]any) (bool, error) {
	if condition.Operator == model.OPERATOR_EXPRESSION {
		return ev.evaluateExpression(condition.CompareValue, record)
	}
	fieldValue := resolveField(record, condition.FieldName)

	switch condition.Operator {
	case model.OPERATOR_IS_EMPTY:
		return isEmpty(fieldValue), nil
	case model.OPERATOR_IS_NOT_EMPTY:
		return !isEmpty(fieldValue), nil
	}

	operand := condition.CompareValue
	if condition.CompareType == model.COMPARE_TYPE_FIELD {
		operand = cast.ToString(resolveField(record, condition.CompareField))
	}
	left := cast.ToString(fieldValue)

	switch condition.Operator {
	case model.OPERATOR_EQUALS:
		return left == operand, nil
	case model.OPERATOR_NOT_EQUALS:
		return left != operand, nil
	case model.OPERATOR_GREATER_THAN:
		return compareOrdered(left, operand) > 0, nil
	case model.OPERATOR_LESS_THAN:
		return compareOrdered(left, operand) < 0, nil
	case model.OPERATOR_GREATER_THAN_OR_EQUAL:
		return compareOrdered(left, operand) >= 0, nil
	case model.OPERATOR_LESS_THAN_OR_EQUAL:
		return compareOrdered(left, operand) <= 0, nil
	case model.OPERATOR_IN_LIST:
		return inList(left, operand), nil
	case model.OPERATOR_NOT_IN_LIST:
		return !inList(left, operand), nil
	case model.OPERATOR_CONTAINS:
		return strings.Contains(left, operand), nil
	case model.OPERATOR_STARTS_WITH:
		return strings.HasPrefix(left, operand), nil
	case model.OPERATOR_ENDS_WITH:
		return strings.HasSuffix(left, operand), nil
	}
	return false, fmt.Errorf("unsupported operator %s", condition.Operator)
}

// evaluateExpression runs a javascript expression with $ bound to the record.
// The expression result is coerced to a boolean.
func (ev *Evaluator) evaluateExpression(expression string, record map[string]any) (bool, error) {
	vm := goja.New()
	data, _ := json.Marshal(record)
	script := fmt.Sprintf("var $ = %s;\n%s", data, expression)
	value, err := vm.RunString(script)
	if err != nil {
		return false, fmt.Errorf("error executing expression %w", err)
	}
	return value.ToBoolean(), nil
}

// resolveField reads a field from the record. Plain names read the top level
// map, names with a path syntax go through jsonpath.
func resolveField(record map[string]any, fieldName string) any {
	if strings.HasPrefix(fieldName, "$") {
		value, err := jsonpath.JsonPathLookup(record, fieldName)
		if err != nil {
			return nil
		}
		return value
	}
	if strings.Contains(fieldName, ".") {
		value, err := jsonpath.JsonPathLookup(record, "$."+fieldName)
		if err != nil {
			return nil
		}
		return value
	}
	return record[fieldName]
}

// compareOrdered ranks two scalar strings for the ordering operators. Both
// sides are compared as numbers when both parse, as dates when both parse,
// as strings otherwise. Equality checks stay exact and never coerce.
func compareOrdered(left string, right string) int {
	leftNum, leftErr := cast.ToFloat64E(left)
	rightNum, rightErr := cast.ToFloat64E(right)
	if leftErr == nil && rightErr == nil {
		if leftNum < rightNum {
			return -1
		}
		if leftNum > rightNum {
			return 1
		}
		return 0
	}
	leftTime, leftOk := parseDate(left)
	rightTime, rightOk := parseDate(right)
	if leftOk && rightOk {
		if leftTime.Before(rightTime) {
			return -1
		}
		if leftTime.After(rightTime) {
			return 1
		}
		return 0
	}
	return strings.Compare(left, right)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// inList matches the value against a comma separated list.
func inList(value string, list string) bool {
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) == value {
			return true
		}
	}
	return false
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	return strings.TrimSpace(cast.ToString(value)) == ""
}

// ConditionGroup is one named group with its members in declaration order.
type ConditionGroup struct {
	Name       string
	Operator   model.GroupOperator
	Conditions []model.WorkflowCondition
}

// GroupConditions splits a template's conditions into ordered groups. Members
// keep their condition order within the group, groups come out sorted by name.
func GroupConditions(conditions []model.WorkflowCondition) []ConditionGroup {
	byName := make(map[string][]model.WorkflowCondition)
	names := make([]string, 0)
	for _, condition := range conditions {
		if _, ok := byName[condition.GroupName]; !ok {
			names = append(names, condition.GroupName)
		}
		byName[condition.GroupName] = append(byName[condition.GroupName], condition)
	}
	sort.Strings(names)
	groups := make([]ConditionGroup, 0, len(names))
	for _, name := range names {
		members := byName[name]
		sort.Slice(members, func(i, j int) bool {
			return members[i].ConditionOrder < members[j].ConditionOrder
		})
		groups = append(groups, ConditionGroup{
			Name:       name,
			Operator:   members[0].GroupOperator,
			Conditions: members,
		})
	}
	return groups
}
