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

const STAGE_CF string = "STAGE"

type redisStageDao struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.WorkflowStage]
}

var _ persistence.StageDao = new(redisStageDao)

func NewRedisStageDao(conf Config) *redisStageDao {
	return &redisStageDao{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowStage](),
	}
}

func (sd *redisStageDao) Save(stage model.WorkflowStage) error {
	data, err := sd.encoderDecoder.Encode(stage)
	if err != nil {
		return err
	}
	key := sd.baseDao.getNamespaceKey(STAGE_CF, stage.TemplateId)
	ctx := context.Background()
	if err := sd.redisClient.HSet(ctx, key, []string{stage.Id, string(data)}).Err(); err != nil {
		logger.Error("error in saving stage", zap.String("stage", stage.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (sd *redisStageDao) Update(stage model.WorkflowStage) error {
	return sd.Save(stage)
}

func (sd *redisStageDao) Delete(templateId string, stageId string) error {
	key := sd.baseDao.getNamespaceKey(STAGE_CF, templateId)
	ctx := context.Background()
	if err := sd.redisClient.HDel(ctx, key, stageId).Err(); err != nil {
		logger.Error("error in deleting stage", zap.String("stage", stageId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (sd *redisStageDao) Get(templateId string, stageId string) (*model.WorkflowStage, error) {
	key := sd.baseDao.getNamespaceKey(STAGE_CF, templateId)
	ctx := context.Background()
	stageStr, err := sd.redisClient.HGet(ctx, key, stageId).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Entity: "stage", Id: stageId}
	}
	if err != nil {
		logger.Error("error in reading stage", zap.String("stage", stageId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return sd.encoderDecoder.Decode([]byte(stageStr))
}

func (sd *redisStageDao) ListByTemplate(templateId string) ([]model.WorkflowStage, error) {
	key := sd.baseDao.getNamespaceKey(STAGE_CF, templateId)
	ctx := context.Background()
	rows, err := sd.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Error("error in listing stages", zap.String("template", templateId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	stages := make([]model.WorkflowStage, 0, len(rows))
	for _, row := range rows {
		stage, err := sd.encoderDecoder.Decode([]byte(row))
		if err != nil {
			return nil, err
		}
		stages = append(stages, *stage)
	}
	persistence.SortStages(stages)
	return stages, nil
}
