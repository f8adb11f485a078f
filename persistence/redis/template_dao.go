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

const TEMPLATE_CF string = "TEMPLATE"

type redisTemplateDao struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.WorkflowTemplate]
}

var _ persistence.TemplateDao = new(redisTemplateDao)

func NewRedisTemplateDao(conf Config) *redisTemplateDao {
	return &redisTemplateDao{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowTemplate](),
	}
}

func (td *redisTemplateDao) Save(template model.WorkflowTemplate) error {
	data, err := td.encoderDecoder.Encode(template)
	if err != nil {
		return err
	}
	key := td.baseDao.getNamespaceKey(TEMPLATE_CF)
	ctx := context.Background()
	if err := td.redisClient.HSet(ctx, key, []string{template.Id, string(data)}).Err(); err != nil {
		logger.Error("error in saving template", zap.String("template", template.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (td *redisTemplateDao) Update(template model.WorkflowTemplate) error {
	return td.Save(template)
}

func (td *redisTemplateDao) Delete(id string) error {
	key := td.baseDao.getNamespaceKey(TEMPLATE_CF)
	ctx := context.Background()
	if err := td.redisClient.HDel(ctx, key, id).Err(); err != nil {
		logger.Error("error in deleting template", zap.String("template", id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (td *redisTemplateDao) Get(id string) (*model.WorkflowTemplate, error) {
	key := td.baseDao.getNamespaceKey(TEMPLATE_CF)
	ctx := context.Background()
	templateStr, err := td.redisClient.HGet(ctx, key, id).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Entity: "template", Id: id}
	}
	if err != nil {
		logger.Error("error in reading template", zap.String("template", id), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return td.encoderDecoder.Decode([]byte(templateStr))
}

func (td *redisTemplateDao) List() ([]model.WorkflowTemplate, error) {
	key := td.baseDao.getNamespaceKey(TEMPLATE_CF)
	ctx := context.Background()
	rows, err := td.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Error("error in listing templates", zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	templates := make([]model.WorkflowTemplate, 0, len(rows))
	for _, row := range rows {
		template, err := td.encoderDecoder.Decode([]byte(row))
		if err != nil {
			return nil, err
		}
		templates = append(templates, *template)
	}
	persistence.SortTemplates(templates)
	return templates, nil
}
