package service

import (
	"testing"

	"github.com/finacore/tradeflow/model"
	"github.com/stretchr/testify/require"
)

func TestStageService(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, f *fixture,
	){
		"test add from catalog":     testAddStage,
		"test reorder":              testReorderStage,
		"test reorder out of range": testReorderOutOfRange,
		"test set reject":           testSetReject,
		"test remove renumbers":     testRemoveStage,
		"test remove clears reject": testRemoveClearsReject,
		"test update attributes":    testUpdateStage,
		"test flowchart":            testFlowchart,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, newFixture(t))
		})
	}
}

func (f *fixture) addStages(t *testing.T, templateId string, keys ...string) []model.WorkflowStage {
	t.Helper()
	stages := make([]model.WorkflowStage, 0, len(keys))
	for _, key := range keys {
		stage, err := f.stageService.Add(templateId, key, "maker1")
		require.NoError(t, err)
		stages = append(stages, *stage)
	}
	return stages
}

func testAddStage(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stage, err := f.stageService.Add(template.Id, "transaction-input", "maker1")
	require.NoError(t, err)
	require.Equal(t, 1, stage.StageOrder)
	require.Equal(t, "Transaction Input", stage.Name)
	require.Equal(t, model.ACTOR_TYPE_MAKER, stage.ActorType)
	require.Equal(t, 24, stage.SlaHours)
	require.False(t, stage.IsRejectable)

	second, err := f.stageService.Add(template.Id, "checker-review", "maker1")
	require.NoError(t, err)
	require.Equal(t, 2, second.StageOrder)

	_, err = f.stageService.Add(template.Id, "no-such-stage", "maker1")
	require.True(t, model.IsValidationError(err))
}

func testReorderStage(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input", "checker-review", "final-authorization")

	reordered, err := f.stageService.Reorder(template.Id, stages[2].Id, 1, "maker1")
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	require.Equal(t, stages[2].Id, reordered[0].Id)
	require.Equal(t, stages[0].Id, reordered[1].Id)
	require.Equal(t, stages[1].Id, reordered[2].Id)
	for i, stage := range reordered {
		require.Equal(t, i+1, stage.StageOrder, "orders stay dense")
	}
}

func testReorderOutOfRange(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input", "checker-review")

	_, err := f.stageService.Reorder(template.Id, stages[0].Id, 0, "maker1")
	require.True(t, model.IsValidationError(err))

	_, err = f.stageService.Reorder(template.Id, stages[0].Id, 3, "maker1")
	require.True(t, model.IsValidationError(err))
}

func testSetReject(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input", "checker-review")

	updated, err := f.stageService.SetReject(template.Id, stages[1].Id, stages[0].Id, "checker1")
	require.NoError(t, err)
	require.True(t, updated.IsRejectable)
	require.Equal(t, stages[0].Id, updated.RejectToStageId)

	_, err = f.stageService.SetReject(template.Id, stages[0].Id, stages[1].Id, "checker1")
	require.True(t, model.IsValidationError(err), "reject target must be earlier")

	_, err = f.stageService.SetReject(template.Id, stages[1].Id, stages[1].Id, "checker1")
	require.True(t, model.IsValidationError(err), "stage can not reject to itself")

	cleared, err := f.stageService.SetReject(template.Id, stages[1].Id, "", "checker1")
	require.NoError(t, err)
	require.False(t, cleared.IsRejectable)
	require.Empty(t, cleared.RejectToStageId)
}

func testRemoveStage(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input", "checker-review", "final-authorization")

	err := f.stageService.Remove(template.Id, stages[1].Id, "maker1")
	require.NoError(t, err)

	remaining, err := f.store.StageDao().ListByTemplate(template.Id)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	require.Equal(t, stages[0].Id, remaining[0].Id)
	require.Equal(t, 1, remaining[0].StageOrder)
	require.Equal(t, stages[2].Id, remaining[1].Id)
	require.Equal(t, 2, remaining[1].StageOrder)
}

func testRemoveClearsReject(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input", "checker-review", "final-authorization")

	_, err := f.stageService.SetReject(template.Id, stages[2].Id, stages[1].Id, "checker1")
	require.NoError(t, err)

	err = f.stageService.Remove(template.Id, stages[1].Id, "maker1")
	require.NoError(t, err)

	last, err := f.store.StageDao().Get(template.Id, stages[2].Id)
	require.NoError(t, err)
	require.False(t, last.IsRejectable, "dangling reject edge is cleared")
	require.Empty(t, last.RejectToStageId)
}

func testUpdateStage(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input")

	updated, err := f.stageService.Update(template.Id, stages[0].Id, UpdateStageRequest{
		SlaHours:    48,
		RenderMode:  "static",
		StaticPanes: []string{"main", "parties"},
	}, "maker1")
	require.NoError(t, err)
	require.Equal(t, 48, updated.SlaHours)
	require.Equal(t, model.RENDER_MODE_STATIC, updated.RenderMode)
	require.Equal(t, []string{"main", "parties"}, updated.StaticPanes)

	_, err = f.stageService.Update(template.Id, stages[0].Id, UpdateStageRequest{
		SlaHours: 24, RenderMode: "static",
	}, "maker1")
	require.True(t, model.IsValidationError(err), "static mode needs panes")

	_, err = f.stageService.Update(template.Id, stages[0].Id, UpdateStageRequest{
		SlaHours: 24, RenderMode: "static", StaticPanes: []string{"no-such-pane"},
	}, "maker1")
	require.True(t, model.IsValidationError(err))
}

func testFlowchart(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input", "checker-review")
	_, err := f.stageService.SetReject(template.Id, stages[1].Id, stages[0].Id, "checker1")
	require.NoError(t, err)

	nodes, err := f.stageService.Flowchart(template.Id)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, stages[0].Id, nodes[0].Stage.Id)
	require.NotNil(t, nodes[0].Next)
	require.Equal(t, stages[1].Id, nodes[0].Next.Id)
	require.Nil(t, nodes[1].Next)
	require.NotNil(t, nodes[1].RejectTo)
	require.Equal(t, stages[0].Id, nodes[1].RejectTo.Id)
}
