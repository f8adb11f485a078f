package agent

import (
	"sync"
	"time"

	"github.com/finacore/tradeflow/analytics"
	"github.com/finacore/tradeflow/cache"
	"github.com/finacore/tradeflow/config"
	"github.com/finacore/tradeflow/container"
	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/rest"
	"github.com/finacore/tradeflow/service"
)

type Agent struct {
	Config           config.Config
	container        *container.DIContiner
	templateCache    *cache.TemplateCache
	templateService  *service.TemplateService
	stageService     *service.StageService
	conditionService *service.ConditionService
	fieldService     *service.FieldService
	httpServer       *rest.Server
	shutdown         bool
	shutdowns        chan struct{}
	shutdownLock     sync.Mutex
}

func New(config config.Config) (*Agent, error) {
	a := &Agent{
		Config:    config,
		shutdowns: make(chan struct{}),
	}
	setup := []func() error{
		a.setupContainer,
		a.setupAuditCollector,
		a.setupServices,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupContainer() error {
	a.container = container.NewDiContainer()
	return a.container.Init(a.Config)
}

func (a *Agent) setupAuditCollector() error {
	return analytics.InitDataCollector(a.Config.AuditConfig)
}

func (a *Agent) setupServices() error {
	ttl := time.Duration(a.Config.CacheTTLMinutes) * time.Minute
	a.templateCache = cache.NewTemplateCache(a.container.GetStageDao(), a.container.GetConditionDao(), ttl)
	a.templateService = service.NewTemplateService(a.container.GetTemplateDao(), a.container.GetStageDao(),
		a.container.GetConditionDao(), a.container.GetStageFieldDao(), a.templateCache)
	a.stageService = service.NewStageService(a.container.GetTemplateDao(), a.container.GetStageDao(),
		a.container.GetConditionDao(), a.container.GetStageFieldDao(), a.templateCache)
	a.conditionService = service.NewConditionService(a.container.GetTemplateDao(), a.container.GetConditionDao(), a.templateCache)
	a.fieldService = service.NewFieldService(a.container.GetTemplateDao(), a.container.GetStageDao(),
		a.container.GetStageFieldDao(), a.container.GetFieldRepository())
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort,
		a.templateService, a.stageService, a.conditionService, a.fieldService)
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) Start() error {
	go func() {
		if err := a.httpServer.Start(); err != nil {
			_ = a.Shutdown()
			panic(err)
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down server")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	close(a.shutdowns)

	shutdown := []func() error{
		a.httpServer.Stop,
	}
	for _, fn := range shutdown {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
