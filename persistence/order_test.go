package persistence

import (
	"testing"
	"time"

	"github.com/finacore/tradeflow/model"
	"github.com/stretchr/testify/require"
)

func TestListOrdering(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T,
	){
		"test template recency": testTemplateRecency,
		"test stage sequence":   testStageSequence,
		"test condition groups": testConditionGroups,
		"test field positions":  testFieldPositions,
	} {
		t.Run(scenario, fn)
	}
}

func testTemplateRecency(t *testing.T) {
	base := time.Now()
	templates := []model.WorkflowTemplate{
		{Id: "t2", CreatedAt: base.Add(-2 * time.Hour)},
		{Id: "t1", CreatedAt: base},
		{Id: "t3", CreatedAt: base.Add(-4 * time.Hour)},
	}
	SortTemplates(templates)
	require.Equal(t, "t1", templates[0].Id)
	require.Equal(t, "t2", templates[1].Id)
	require.Equal(t, "t3", templates[2].Id)
}

func testStageSequence(t *testing.T) {
	stages := []model.WorkflowStage{
		{Id: "release", StageOrder: 4},
		{Id: "input", StageOrder: 1},
		{Id: "authorization", StageOrder: 3},
		{Id: "review", StageOrder: 2},
	}
	SortStages(stages)
	for i, stage := range stages {
		require.Equal(t, i+1, stage.StageOrder, "list position follows stage order")
	}
	require.Equal(t, "input", stages[0].Id)
	require.Equal(t, "release", stages[3].Id)
}

func testConditionGroups(t *testing.T) {
	conditions := []model.WorkflowCondition{
		{Id: "c3", GroupName: "country-check", ConditionOrder: 1},
		{Id: "c2", GroupName: "amount-check", ConditionOrder: 2},
		{Id: "c1", GroupName: "amount-check", ConditionOrder: 1},
	}
	SortConditions(conditions)
	require.Equal(t, "c1", conditions[0].Id)
	require.Equal(t, "c2", conditions[1].Id)
	require.Equal(t, "c3", conditions[2].Id)
}

func testFieldPositions(t *testing.T) {
	fields := []model.WorkflowStageField{
		{Id: "f2", FieldOrder: 2},
		{Id: "f3", FieldOrder: 3},
		{Id: "f1", FieldOrder: 1},
	}
	SortStageFields(fields)
	require.Equal(t, "f1", fields[0].Id)
	require.Equal(t, "f3", fields[2].Id)
}
