package redis

import (
	"testing"
	"time"

	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRedisTemplateDao(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, dao *redisTemplateDao,
	){
		"test save and get":      testSaveAndGet,
		"test missing template":  testMissingTemplate,
		"test unreachable store": testUnreachableStore,
	} {
		t.Run(scenario, func(t *testing.T) {
			conf := &Config{
				Addrs:     []string{"localhost:6379"},
				Namespace: "test",
			}
			fn(t, NewRedisTemplateDao(*conf))
		})
	}
}

func testSaveAndGet(t *testing.T, dao *redisTemplateDao) {
	template := model.WorkflowTemplate{
		Id:        uuid.NewString(),
		Name:      "ILC Issuance Flow",
		CreatedAt: time.Now(),
	}
	err := dao.Save(template)
	require.NoError(t, err)

	saved, err := dao.Get(template.Id)
	require.NoError(t, err)
	require.Equal(t, template.Name, saved.Name)

	err = dao.Delete(template.Id)
	require.NoError(t, err)
}

func testMissingTemplate(t *testing.T, dao *redisTemplateDao) {
	_, err := dao.Get(uuid.NewString())
	require.Error(t, err)
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok, "missing field in the hash is not a storage failure")
}

func testUnreachableStore(t *testing.T, dao *redisTemplateDao) {
	broken := NewRedisTemplateDao(Config{
		Addrs:     []string{"localhost:1"},
		Namespace: "test",
	})
	_, err := broken.Get(uuid.NewString())
	require.Error(t, err)
	_, ok := err.(persistence.StorageLayerError)
	require.True(t, ok, "connection failures surface as storage errors")
}
