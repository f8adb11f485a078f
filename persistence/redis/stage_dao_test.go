package redis

import (
	"testing"

	"github.com/finacore/tradeflow/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRedisStageDao(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, dao *redisStageDao,
	){
		"test list follows stage order": testListFollowsStageOrder,
	} {
		t.Run(scenario, func(t *testing.T) {
			conf := &Config{
				Addrs:     []string{"localhost:6379"},
				Namespace: "test",
			}
			fn(t, NewRedisStageDao(*conf))
		})
	}
}

func testListFollowsStageOrder(t *testing.T, dao *redisStageDao) {
	templateId := uuid.NewString()
	names := []string{"Transaction Input", "Checker Review", "Final Authorization"}
	for i := len(names) - 1; i >= 0; i-- {
		err := dao.Save(model.WorkflowStage{
			Id:         uuid.NewString(),
			TemplateId: templateId,
			Name:       names[i],
			StageOrder: i + 1,
		})
		require.NoError(t, err)
	}

	stages, err := dao.ListByTemplate(templateId)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	for i, stage := range stages {
		require.Equal(t, i+1, stage.StageOrder, "list position follows stage order")
		require.Equal(t, names[i], stage.Name)
	}

	for _, stage := range stages {
		require.NoError(t, dao.Delete(templateId, stage.Id))
	}
}
