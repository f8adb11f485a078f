package model

import "fmt"

type GroupOperator string

const GROUP_OPERATOR_AND GroupOperator = "AND"
const GROUP_OPERATOR_OR GroupOperator = "OR"

func ToGroupOperator(op string) (GroupOperator, error) {
	switch GroupOperator(op) {
	case GROUP_OPERATOR_AND, GROUP_OPERATOR_OR:
		return GroupOperator(op), nil
	}
	return "", fmt.Errorf("unknown group operator %s", op)
}

type ConditionOperator string

const OPERATOR_EQUALS ConditionOperator = "Equals"
const OPERATOR_NOT_EQUALS ConditionOperator = "Not Equals"
const OPERATOR_GREATER_THAN ConditionOperator = "Greater Than"
const OPERATOR_LESS_THAN ConditionOperator = "Less Than"
const OPERATOR_GREATER_THAN_OR_EQUAL ConditionOperator = "Greater Than or Equal"
const OPERATOR_LESS_THAN_OR_EQUAL ConditionOperator = "Less Than or Equal"
const OPERATOR_IN_LIST ConditionOperator = "In List"
const OPERATOR_NOT_IN_LIST ConditionOperator = "Not In List"
const OPERATOR_CONTAINS ConditionOperator = "Contains"
const OPERATOR_STARTS_WITH ConditionOperator = "Starts With"
const OPERATOR_ENDS_WITH ConditionOperator = "Ends With"
const OPERATOR_IS_EMPTY ConditionOperator = "Is Empty"
const OPERATOR_IS_NOT_EMPTY ConditionOperator = "Is Not Empty"
const OPERATOR_EXPRESSION ConditionOperator = "Expression"

func ToConditionOperator(op string) (ConditionOperator, error) {
	switch ConditionOperator(op) {
	case OPERATOR_EQUALS, OPERATOR_NOT_EQUALS,
		OPERATOR_GREATER_THAN, OPERATOR_LESS_THAN,
		OPERATOR_GREATER_THAN_OR_EQUAL, OPERATOR_LESS_THAN_OR_EQUAL,
		OPERATOR_IN_LIST, OPERATOR_NOT_IN_LIST,
		OPERATOR_CONTAINS, OPERATOR_STARTS_WITH, OPERATOR_ENDS_WITH,
		OPERATOR_IS_EMPTY, OPERATOR_IS_NOT_EMPTY,
		OPERATOR_EXPRESSION:
		return ConditionOperator(op), nil
	}
	return "", fmt.Errorf("unknown condition operator %s", op)
}

type CompareType string

const COMPARE_TYPE_VALUE CompareType = "Value"
const COMPARE_TYPE_FIELD CompareType = "Field"

func ToCompareType(ct string) (CompareType, error) {
	switch CompareType(ct) {
	case COMPARE_TYPE_VALUE, COMPARE_TYPE_FIELD:
		return CompareType(ct), nil
	}
	return "", fmt.Errorf("unknown compare type %s", ct)
}

// WorkflowCondition is one comparison predicate. StageId empty means the
// condition gates the whole template. Conditions sharing a GroupName under
// the same (template, stage) scope form one logical group, combined by the
// group's single operator. GroupOperator must be identical across all
// members of a group.
type WorkflowCondition struct {
	Id             string            `json:"id"`
	TemplateId     string            `json:"templateId"`
	StageId        string            `json:"stageId,omitempty"`
	GroupName      string            `json:"groupName"`
	GroupOperator  GroupOperator     `json:"groupOperator"`
	ConditionOrder int               `json:"conditionOrder"`
	FieldName      string            `json:"fieldName"`
	Operator       ConditionOperator `json:"operator"`
	CompareType    CompareType       `json:"compareType"`
	CompareValue   string            `json:"compareValue,omitempty"`
	CompareField   string            `json:"compareField,omitempty"`
}
