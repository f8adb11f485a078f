package flow

import (
	"testing"

	"github.com/finacore/tradeflow/model"
	"github.com/stretchr/testify/require"
)

func condition(field string, operator model.ConditionOperator, value string) model.WorkflowCondition {
	return model.WorkflowCondition{
		GroupName:     "g1",
		GroupOperator: model.GROUP_OPERATOR_AND,
		FieldName:     field,
		Operator:      operator,
		CompareType:   model.COMPARE_TYPE_VALUE,
		CompareValue:  value,
	}
}

func TestEvaluator(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, ev *Evaluator,
	){
		"test and group":          testAndGroup,
		"test or group":           testOrGroup,
		"test empty group":        testEmptyGroup,
		"test operators":          testOperators,
		"test exact equality":     testExactEquality,
		"test numeric ordering":   testNumericOrdering,
		"test date ordering":      testDateOrdering,
		"test list operators":     testListOperators,
		"test empty operators":    testEmptyOperators,
		"test field compare":      testFieldCompare,
		"test nested field path":  testNestedFieldPath,
		"test expression":         testExpression,
		"test groups combined":    testGroupsCombined,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, NewEvaluator())
		})
	}
}

func testAndGroup(t *testing.T, ev *Evaluator) {
	record := map[string]any{"currency": "USD", "lc_amount": 5000}
	conditions := []model.WorkflowCondition{
		condition("currency", model.OPERATOR_EQUALS, "USD"),
		condition("lc_amount", model.OPERATOR_GREATER_THAN, "1000"),
	}
	matched, err := ev.EvaluateGroup(conditions, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)

	conditions[1].CompareValue = "10000"
	matched, err = ev.EvaluateGroup(conditions, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.False(t, matched)
}

func testOrGroup(t *testing.T, ev *Evaluator) {
	record := map[string]any{"currency": "EUR", "lc_amount": 500}
	conditions := []model.WorkflowCondition{
		condition("currency", model.OPERATOR_EQUALS, "USD"),
		condition("lc_amount", model.OPERATOR_LESS_THAN, "1000"),
	}
	matched, err := ev.EvaluateGroup(conditions, model.GROUP_OPERATOR_OR, record)
	require.NoError(t, err)
	require.True(t, matched)

	conditions[1].Operator = model.OPERATOR_GREATER_THAN
	matched, err = ev.EvaluateGroup(conditions, model.GROUP_OPERATOR_OR, record)
	require.NoError(t, err)
	require.False(t, matched)
}

func testEmptyGroup(t *testing.T, ev *Evaluator) {
	matched, err := ev.EvaluateGroup(nil, model.GROUP_OPERATOR_AND, map[string]any{})
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = ev.EvaluateTemplate(nil, map[string]any{})
	require.NoError(t, err)
	require.True(t, matched)
}

func testOperators(t *testing.T, ev *Evaluator) {
	record := map[string]any{"beneficiary_country": "Germany"}
	cases := []struct {
		operator model.ConditionOperator
		value    string
		expected bool
	}{
		{model.OPERATOR_EQUALS, "Germany", true},
		{model.OPERATOR_NOT_EQUALS, "Germany", false},
		{model.OPERATOR_CONTAINS, "man", true},
		{model.OPERATOR_CONTAINS, "xyz", false},
		{model.OPERATOR_STARTS_WITH, "Ger", true},
		{model.OPERATOR_STARTS_WITH, "man", false},
		{model.OPERATOR_ENDS_WITH, "many", true},
		{model.OPERATOR_ENDS_WITH, "Ger", false},
	}
	for _, c := range cases {
		matched, err := ev.EvaluateGroup([]model.WorkflowCondition{
			condition("beneficiary_country", c.operator, c.value),
		}, model.GROUP_OPERATOR_AND, record)
		require.NoError(t, err)
		require.Equal(t, c.expected, matched, "operator %s value %s", c.operator, c.value)
	}
}

func testExactEquality(t *testing.T, ev *Evaluator) {
	record := map[string]any{"invoice_no": "007"}
	matched, err := ev.EvaluateGroup([]model.WorkflowCondition{
		condition("invoice_no", model.OPERATOR_EQUALS, "7"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.False(t, matched, "007 is not the same value as 7")

	matched, err = ev.EvaluateGroup([]model.WorkflowCondition{
		condition("invoice_no", model.OPERATOR_NOT_EQUALS, "7"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = ev.EvaluateGroup([]model.WorkflowCondition{
		condition("invoice_no", model.OPERATOR_EQUALS, "007"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)
}

func testNumericOrdering(t *testing.T, ev *Evaluator) {
	record := map[string]any{"lc_amount": "9"}
	matched, err := ev.EvaluateGroup([]model.WorkflowCondition{
		condition("lc_amount", model.OPERATOR_GREATER_THAN, "100"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.False(t, matched, "9 must not lexically beat 100")

	matched, err = ev.EvaluateGroup([]model.WorkflowCondition{
		condition("lc_amount", model.OPERATOR_LESS_THAN_OR_EQUAL, "9.0"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)
}

func testDateOrdering(t *testing.T, ev *Evaluator) {
	record := map[string]any{"expiry_date": "2026-03-01"}
	matched, err := ev.EvaluateGroup([]model.WorkflowCondition{
		condition("expiry_date", model.OPERATOR_GREATER_THAN, "2025-12-31"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = ev.EvaluateGroup([]model.WorkflowCondition{
		condition("expiry_date", model.OPERATOR_LESS_THAN, "2025-12-31"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.False(t, matched)
}

func testListOperators(t *testing.T, ev *Evaluator) {
	record := map[string]any{"currency": "EUR"}
	matched, err := ev.EvaluateGroup([]model.WorkflowCondition{
		condition("currency", model.OPERATOR_IN_LIST, "USD, EUR, GBP"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = ev.EvaluateGroup([]model.WorkflowCondition{
		condition("currency", model.OPERATOR_NOT_IN_LIST, "USD, EUR, GBP"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.False(t, matched)
}

func testEmptyOperators(t *testing.T, ev *Evaluator) {
	record := map[string]any{"tenor_days": "", "currency": "USD"}
	matched, err := ev.EvaluateGroup([]model.WorkflowCondition{
		condition("tenor_days", model.OPERATOR_IS_EMPTY, ""),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = ev.EvaluateGroup([]model.WorkflowCondition{
		condition("applicant_country", model.OPERATOR_IS_EMPTY, ""),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched, "missing field counts as empty")

	matched, err = ev.EvaluateGroup([]model.WorkflowCondition{
		condition("currency", model.OPERATOR_IS_NOT_EMPTY, ""),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)
}

func testFieldCompare(t *testing.T, ev *Evaluator) {
	record := map[string]any{"lc_amount": 5000, "limit_amount": 4000}
	fieldCondition := model.WorkflowCondition{
		GroupName:     "g1",
		GroupOperator: model.GROUP_OPERATOR_AND,
		FieldName:     "lc_amount",
		Operator:      model.OPERATOR_GREATER_THAN,
		CompareType:   model.COMPARE_TYPE_FIELD,
		CompareField:  "limit_amount",
	}
	matched, err := ev.EvaluateGroup([]model.WorkflowCondition{fieldCondition}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)
}

func testNestedFieldPath(t *testing.T, ev *Evaluator) {
	record := map[string]any{
		"applicant": map[string]any{"country": "DE"},
	}
	matched, err := ev.EvaluateGroup([]model.WorkflowCondition{
		condition("applicant.country", model.OPERATOR_EQUALS, "DE"),
	}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)
}

func testExpression(t *testing.T, ev *Evaluator) {
	record := map[string]any{"lc_amount": 5000, "is_confirmed": true}
	expr := model.WorkflowCondition{
		GroupName:     "g1",
		GroupOperator: model.GROUP_OPERATOR_AND,
		Operator:      model.OPERATOR_EXPRESSION,
		CompareValue:  "$.lc_amount > 1000 && $.is_confirmed",
	}
	matched, err := ev.EvaluateGroup([]model.WorkflowCondition{expr}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.True(t, matched)

	expr.CompareValue = "$.lc_amount > 10000"
	matched, err = ev.EvaluateGroup([]model.WorkflowCondition{expr}, model.GROUP_OPERATOR_AND, record)
	require.NoError(t, err)
	require.False(t, matched)
}

func testGroupsCombined(t *testing.T, ev *Evaluator) {
	record := map[string]any{"currency": "USD", "lc_amount": 500}
	conditions := []model.WorkflowCondition{
		{GroupName: "g1", GroupOperator: model.GROUP_OPERATOR_AND, ConditionOrder: 1,
			FieldName: "currency", Operator: model.OPERATOR_EQUALS,
			CompareType: model.COMPARE_TYPE_VALUE, CompareValue: "USD"},
		{GroupName: "g2", GroupOperator: model.GROUP_OPERATOR_AND, ConditionOrder: 1,
			FieldName: "lc_amount", Operator: model.OPERATOR_GREATER_THAN,
			CompareType: model.COMPARE_TYPE_VALUE, CompareValue: "1000"},
	}
	matched, err := ev.EvaluateTemplate(conditions, record)
	require.NoError(t, err)
	require.False(t, matched, "every group must match")

	record["lc_amount"] = 2000
	matched, err = ev.EvaluateTemplate(conditions, record)
	require.NoError(t, err)
	require.True(t, matched)
}
