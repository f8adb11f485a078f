package service

import (
	"testing"

	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/stretchr/testify/require"
)

func TestTemplateService(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, f *fixture,
	){
		"test create":            testCreateTemplate,
		"test create validation": testCreateTemplateValidation,
		"test copy":              testCopyTemplate,
		"test list filter":       testListTemplatesFilter,
		"test status lifecycle":  testStatusLifecycle,
		"test delete":            testDeleteTemplate,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, newFixture(t))
		})
	}
}

func testCreateTemplate(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	require.NotEmpty(t, template.Id)
	require.Equal(t, model.TEMPLATE_STATUS_DRAFT, template.Status)
	require.Equal(t, "Import Letter of Credit", template.ProductName)
	require.Equal(t, "Issuance", template.EventName)
	require.False(t, template.CreatedAt.IsZero())
}

func testCreateTemplateValidation(t *testing.T, f *fixture) {
	_, err := f.templateService.Create(CreateTemplateRequest{
		ProductCode: "ILC", EventCode: "ISS", ModuleCode: "TRDF",
	})
	require.True(t, model.IsValidationError(err))

	_, err = f.templateService.Create(CreateTemplateRequest{
		Name: "x", ModuleCode: "TRDF", ProductCode: "ILC", EventCode: "NOPE",
	})
	require.True(t, model.IsValidationError(err))

	_, err = f.templateService.Create(CreateTemplateRequest{
		Name: "x", ModuleCode: "TRDF", ProductCode: "ILC", EventCode: "ISS",
		TriggerTypes: []string{"Carrier Pigeon"},
	})
	require.True(t, model.IsValidationError(err))
}

func testCopyTemplate(t *testing.T, f *fixture) {
	source := f.createTemplate(t)
	_, err := f.stageService.Add(source.Id, "transaction-input", "maker1")
	require.NoError(t, err)

	copy, err := f.templateService.Copy(source.Id, "maker2")
	require.NoError(t, err)
	require.NotEqual(t, source.Id, copy.Id)
	require.Equal(t, "ILC Issuance Flow (Copy)", copy.Name)
	require.Equal(t, model.TEMPLATE_STATUS_DRAFT, copy.Status)
	require.Equal(t, "maker2", copy.UserId)

	copied, err := f.store.StageDao().ListByTemplate(copy.Id)
	require.NoError(t, err)
	require.Empty(t, copied, "copy carries the header only")
}

func testListTemplatesFilter(t *testing.T, f *fixture) {
	f.createTemplate(t)
	_, err := f.templateService.Create(CreateTemplateRequest{
		UserId: "maker1", Name: "Guarantee Claims", ModuleCode: "TRDF",
		ProductCode: "OBG", EventCode: "CLM",
	})
	require.NoError(t, err)

	all, err := f.templateService.List("")
	require.NoError(t, err)
	require.Len(t, all, 2)

	matched, err := f.templateService.List("guarantee")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "Guarantee Claims", matched[0].Name)

	matched, err = f.templateService.List("issuance")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "ILC Issuance Flow", matched[0].Name)
}

func testStatusLifecycle(t *testing.T, f *fixture) {
	template := f.createTemplate(t)

	_, err := f.templateService.UpdateStatus(template.Id, "active", "checker1")
	require.True(t, model.IsValidationError(err), "draft can not jump to active")

	updated, err := f.templateService.UpdateStatus(template.Id, "submitted", "maker1")
	require.NoError(t, err)
	require.Equal(t, model.TEMPLATE_STATUS_SUBMITTED, updated.Status)

	updated, err = f.templateService.UpdateStatus(template.Id, "active", "checker1")
	require.NoError(t, err)
	require.Equal(t, model.TEMPLATE_STATUS_ACTIVE, updated.Status)

	_, err = f.templateService.UpdateStatus(template.Id, "draft", "checker1")
	require.True(t, model.IsValidationError(err), "lifecycle is one directional")
}

func testDeleteTemplate(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	_, err := f.stageService.Add(template.Id, "transaction-input", "maker1")
	require.NoError(t, err)

	err = f.templateService.Delete(template.Id, "maker1")
	require.NoError(t, err)

	_, err = f.templateService.Get(template.Id)
	var notFound persistence.NotFoundError
	require.ErrorAs(t, err, &notFound)

	stages, err := f.store.StageDao().ListByTemplate(template.Id)
	require.NoError(t, err)
	require.Empty(t, stages)
}
