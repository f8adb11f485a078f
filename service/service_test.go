package service

import (
	"testing"
	"time"

	"github.com/finacore/tradeflow/cache"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence/inmem"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store            *inmem.Store
	templateService  *TemplateService
	stageService     *StageService
	conditionService *ConditionService
	fieldService     *FieldService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := inmem.NewStore()
	templateCache := cache.NewTemplateCache(store.StageDao(), store.ConditionDao(), 5*time.Minute)
	return &fixture{
		store: store,
		templateService: NewTemplateService(store.TemplateDao(), store.StageDao(),
			store.ConditionDao(), store.StageFieldDao(), templateCache),
		stageService: NewStageService(store.TemplateDao(), store.StageDao(),
			store.ConditionDao(), store.StageFieldDao(), templateCache),
		conditionService: NewConditionService(store.TemplateDao(), store.ConditionDao(), templateCache),
		fieldService: NewFieldService(store.TemplateDao(), store.StageDao(),
			store.StageFieldDao(), store.FieldRepository()),
	}
}

func (f *fixture) createTemplate(t *testing.T) *model.WorkflowTemplate {
	t.Helper()
	template, err := f.templateService.Create(CreateTemplateRequest{
		UserId:      "maker1",
		Name:        "ILC Issuance Flow",
		ModuleCode:  "TRDF",
		ModuleName:  "Trade Finance",
		ProductCode: "ILC",
		EventCode:   "ISS",
	})
	require.NoError(t, err)
	return template
}

func (f *fixture) seedFields(count int) []model.FieldDescriptor {
	names := []string{"lc_amount", "currency", "tenor_days", "applicant_country", "beneficiary_country"}
	fields := make([]model.FieldDescriptor, 0, count)
	for i := 0; i < count && i < len(names); i++ {
		fields = append(fields, model.FieldDescriptor{
			Id:          names[i],
			Name:        names[i],
			ProductCode: "ILC",
			EventCode:   "ISS",
			Pane:        "main",
			Section:     "amount",
			Label:       names[i],
			DisplayType: "text",
			DataType:    "string",
			IsActive:    true,
		})
	}
	f.store.SeedFieldRepository(fields)
	return fields
}
