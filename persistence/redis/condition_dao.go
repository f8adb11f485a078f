package redis

import (
	"context"

	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/finacore/tradeflow/util"
	rd "github.com/go-redis/redis/v9"
	"go.uber.org/zap"
)

const CONDITION_CF string = "CONDITION"

type redisConditionDao struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.WorkflowCondition]
}

var _ persistence.ConditionDao = new(redisConditionDao)

func NewRedisConditionDao(conf Config) *redisConditionDao {
	return &redisConditionDao{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowCondition](),
	}
}

func (cd *redisConditionDao) Save(condition model.WorkflowCondition) error {
	data, err := cd.encoderDecoder.Encode(condition)
	if err != nil {
		return err
	}
	key := cd.baseDao.getNamespaceKey(CONDITION_CF, condition.TemplateId)
	ctx := context.Background()
	if err := cd.redisClient.HSet(ctx, key, []string{condition.Id, string(data)}).Err(); err != nil {
		logger.Error("error in saving condition", zap.String("condition", condition.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (cd *redisConditionDao) Update(condition model.WorkflowCondition) error {
	return cd.Save(condition)
}

func (cd *redisConditionDao) Delete(templateId string, conditionId string) error {
	key := cd.baseDao.getNamespaceKey(CONDITION_CF, templateId)
	ctx := context.Background()
	if err := cd.redisClient.HDel(ctx, key, conditionId).Err(); err != nil {
		logger.Error("error in deleting condition", zap.String("condition", conditionId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (cd *redisConditionDao) Get(templateId string, conditionId string) (*model.WorkflowCondition, error) {
	key := cd.baseDao.getNamespaceKey(CONDITION_CF, templateId)
	ctx := context.Background()
	conditionStr, err := cd.redisClient.HGet(ctx, key, conditionId).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Entity: "condition", Id: conditionId}
	}
	if err != nil {
		logger.Error("error in reading condition", zap.String("condition", conditionId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return cd.encoderDecoder.Decode([]byte(conditionStr))
}

func (cd *redisConditionDao) ListByTemplate(templateId string) ([]model.WorkflowCondition, error) {
	key := cd.baseDao.getNamespaceKey(CONDITION_CF, templateId)
	ctx := context.Background()
	rows, err := cd.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Error("error in listing conditions", zap.String("template", templateId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	conditions := make([]model.WorkflowCondition, 0, len(rows))
	for _, row := range rows {
		condition, err := cd.encoderDecoder.Decode([]byte(row))
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, *condition)
	}
	persistence.SortConditions(conditions)
	return conditions, nil
}
