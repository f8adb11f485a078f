package redis

import (
	"context"

	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/finacore/tradeflow/util"
	"go.uber.org/zap"
)

const FIELD_REPO_CF string = "FIELD_REPO"

// redisFieldRepository reads the externally maintained field repository. The
// portal never writes here.
type redisFieldRepository struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.FieldDescriptor]
}

var _ persistence.FieldRepository = new(redisFieldRepository)

func NewRedisFieldRepository(conf Config) *redisFieldRepository {
	return &redisFieldRepository{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.FieldDescriptor](),
	}
}

func (fr *redisFieldRepository) ListActive(productCode string, eventCode string, limit int) ([]model.FieldDescriptor, error) {
	key := fr.baseDao.getNamespaceKey(FIELD_REPO_CF)
	ctx := context.Background()
	rows, err := fr.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Error("error in listing field repository", zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	fields := make([]model.FieldDescriptor, 0)
	for _, row := range rows {
		field, err := fr.encoderDecoder.Decode([]byte(row))
		if err != nil {
			return nil, err
		}
		if !field.IsActive {
			continue
		}
		if field.ProductCode != productCode || field.EventCode != eventCode {
			continue
		}
		fields = append(fields, *field)
		if len(fields) >= limit {
			break
		}
	}
	return fields, nil
}
