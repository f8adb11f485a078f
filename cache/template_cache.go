package cache

import (
	"time"

	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	c "github.com/patrickmn/go-cache"
)

// TemplateCache is a read-through cache over the stage and condition stores.
// Entries are keyed by template id and dropped on any mutation to that
// template so readers never observe a stale stage sequence.
type TemplateCache struct {
	stageCache     *c.Cache
	conditionCache *c.Cache
	stageDao       persistence.StageDao
	conditionDao   persistence.ConditionDao
}

func NewTemplateCache(stageDao persistence.StageDao, conditionDao persistence.ConditionDao, ttl time.Duration) *TemplateCache {
	return &TemplateCache{
		stageCache:     c.New(ttl, 10*time.Minute),
		conditionCache: c.New(ttl, 10*time.Minute),
		stageDao:       stageDao,
		conditionDao:   conditionDao,
	}
}

func (tc *TemplateCache) GetStages(templateId string) ([]model.WorkflowStage, error) {
	if cached, found := tc.stageCache.Get(templateId); found {
		return cached.([]model.WorkflowStage), nil
	}
	stages, err := tc.stageDao.ListByTemplate(templateId)
	if err != nil {
		return nil, err
	}
	tc.stageCache.SetDefault(templateId, stages)
	return stages, nil
}

func (tc *TemplateCache) GetConditions(templateId string) ([]model.WorkflowCondition, error) {
	if cached, found := tc.conditionCache.Get(templateId); found {
		return cached.([]model.WorkflowCondition), nil
	}
	conditions, err := tc.conditionDao.ListByTemplate(templateId)
	if err != nil {
		return nil, err
	}
	tc.conditionCache.SetDefault(templateId, conditions)
	return conditions, nil
}

func (tc *TemplateCache) Invalidate(templateId string) {
	tc.stageCache.Delete(templateId)
	tc.conditionCache.Delete(templateId)
}
