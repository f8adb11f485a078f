package container

import (
	"github.com/finacore/tradeflow/config"
	"github.com/finacore/tradeflow/persistence"
	"github.com/finacore/tradeflow/persistence/inmem"
	pg "github.com/finacore/tradeflow/persistence/postgres"
	rd "github.com/finacore/tradeflow/persistence/redis"
)

type DIContiner struct {
	initialized     bool
	templateDao     persistence.TemplateDao
	stageDao        persistence.StageDao
	conditionDao    persistence.ConditionDao
	stageFieldDao   persistence.StageFieldDao
	fieldRepository persistence.FieldRepository
}

func (d *DIContiner) setInitialized() {
	d.initialized = true
}

func NewDiContainer() *DIContiner {
	return &DIContiner{
		initialized: false,
	}
}

func (d *DIContiner) Init(conf config.Config) error {
	defer d.setInitialized()

	switch conf.StorageType {
	case config.STORAGE_TYPE_REDIS:
		rdConf := rd.Config{
			Addrs:     conf.RedisConfig.Addrs,
			Namespace: conf.RedisConfig.Namespace,
		}
		d.templateDao = rd.NewRedisTemplateDao(rdConf)
		d.stageDao = rd.NewRedisStageDao(rdConf)
		d.conditionDao = rd.NewRedisConditionDao(rdConf)
		d.stageFieldDao = rd.NewRedisStageFieldDao(rdConf)
		d.fieldRepository = rd.NewRedisFieldRepository(rdConf)
	case config.STORAGE_TYPE_POSTGRES:
		pool, err := pg.NewPool(pg.Config{DSN: conf.PostgresConfig.DSN})
		if err != nil {
			return err
		}
		d.templateDao = pg.NewPgTemplateDao(pool)
		d.stageDao = pg.NewPgStageDao(pool)
		d.conditionDao = pg.NewPgConditionDao(pool)
		d.stageFieldDao = pg.NewPgStageFieldDao(pool)
		d.fieldRepository = pg.NewPgFieldRepository(pool)
	case config.STORAGE_TYPE_INMEM:
		store := inmem.NewStore()
		d.templateDao = store.TemplateDao()
		d.stageDao = store.StageDao()
		d.conditionDao = store.ConditionDao()
		d.stageFieldDao = store.StageFieldDao()
		d.fieldRepository = store.FieldRepository()
	}
	return nil
}

func (d *DIContiner) GetTemplateDao() persistence.TemplateDao {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.templateDao
}

func (d *DIContiner) GetStageDao() persistence.StageDao {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.stageDao
}

func (d *DIContiner) GetConditionDao() persistence.ConditionDao {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.conditionDao
}

func (d *DIContiner) GetStageFieldDao() persistence.StageFieldDao {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.stageFieldDao
}

func (d *DIContiner) GetFieldRepository() persistence.FieldRepository {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.fieldRepository
}
