package redis

import (
	"context"

	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/finacore/tradeflow/util"
	"go.uber.org/zap"
)

const STAGE_FIELD_CF string = "STAGE_FIELD"

type redisStageFieldDao struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.WorkflowStageField]
}

var _ persistence.StageFieldDao = new(redisStageFieldDao)

func NewRedisStageFieldDao(conf Config) *redisStageFieldDao {
	return &redisStageFieldDao{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowStageField](),
	}
}

func (fd *redisStageFieldDao) Save(field model.WorkflowStageField) error {
	data, err := fd.encoderDecoder.Encode(field)
	if err != nil {
		return err
	}
	key := fd.baseDao.getNamespaceKey(STAGE_FIELD_CF, field.StageId)
	ctx := context.Background()
	if err := fd.redisClient.HSet(ctx, key, []string{field.Id, string(data)}).Err(); err != nil {
		logger.Error("error in saving stage field", zap.String("field", field.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (fd *redisStageFieldDao) SaveAll(fields []model.WorkflowStageField) error {
	if len(fields) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(fields)*2)
	for _, field := range fields {
		data, err := fd.encoderDecoder.Encode(field)
		if err != nil {
			return err
		}
		pairs = append(pairs, field.Id, string(data))
	}
	key := fd.baseDao.getNamespaceKey(STAGE_FIELD_CF, fields[0].StageId)
	ctx := context.Background()
	if err := fd.redisClient.HSet(ctx, key, pairs).Err(); err != nil {
		logger.Error("error in saving stage fields", zap.String("stage", fields[0].StageId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (fd *redisStageFieldDao) Update(field model.WorkflowStageField) error {
	return fd.Save(field)
}

func (fd *redisStageFieldDao) Delete(stageId string, bindingId string) error {
	key := fd.baseDao.getNamespaceKey(STAGE_FIELD_CF, stageId)
	ctx := context.Background()
	if err := fd.redisClient.HDel(ctx, key, bindingId).Err(); err != nil {
		logger.Error("error in deleting stage field", zap.String("field", bindingId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (fd *redisStageFieldDao) ListByStage(stageId string) ([]model.WorkflowStageField, error) {
	key := fd.baseDao.getNamespaceKey(STAGE_FIELD_CF, stageId)
	ctx := context.Background()
	rows, err := fd.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Error("error in listing stage fields", zap.String("stage", stageId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	fields := make([]model.WorkflowStageField, 0, len(rows))
	for _, row := range rows {
		field, err := fd.encoderDecoder.Decode([]byte(row))
		if err != nil {
			return nil, err
		}
		fields = append(fields, *field)
	}
	persistence.SortStageFields(fields)
	return fields, nil
}
