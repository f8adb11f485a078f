package service

import (
	"testing"

	"github.com/finacore/tradeflow/model"
	"github.com/stretchr/testify/require"
)

func TestFieldService(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, f *fixture,
	){
		"test list available":      testListAvailableFields,
		"test bind":                testBindField,
		"test duplicate bind":      testDuplicateBind,
		"test bind all unbound":    testBindAllUnbound,
		"test update flags":        testUpdateFlags,
		"test set all flag":        testSetAllFlag,
		"test unbind":              testUnbindField,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, newFixture(t))
		})
	}
}

func testListAvailableFields(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	f.seedFields(3)
	f.store.SeedFieldRepository([]model.FieldDescriptor{
		{Id: "other", Name: "other", ProductCode: "OBG", EventCode: "ISS", IsActive: true},
		{Id: "inactive", Name: "inactive", ProductCode: "ILC", EventCode: "ISS", IsActive: false},
	})
	fields, err := f.fieldService.ListAvailable(template.Id)
	require.NoError(t, err)
	require.Len(t, fields, 3, "only active fields of the template's product and event")
}

func testBindField(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input")
	f.seedFields(2)

	binding, err := f.fieldService.Bind(template.Id, stages[0].Id, "lc_amount", "maker1")
	require.NoError(t, err)
	require.Equal(t, "lc_amount", binding.FieldName)
	require.Equal(t, 1, binding.FieldOrder)
	require.True(t, binding.IsVisible)
	require.True(t, binding.IsEditable)
	require.False(t, binding.IsMandatory)

	second, err := f.fieldService.Bind(template.Id, stages[0].Id, "currency", "maker1")
	require.NoError(t, err)
	require.Equal(t, 2, second.FieldOrder)
}

func testDuplicateBind(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input")
	f.seedFields(1)

	_, err := f.fieldService.Bind(template.Id, stages[0].Id, "lc_amount", "maker1")
	require.NoError(t, err)

	_, err = f.fieldService.Bind(template.Id, stages[0].Id, "lc_amount", "maker1")
	require.True(t, model.IsValidationError(err))
	require.Contains(t, err.Error(), "already added")

	bound, err := f.fieldService.ListBound(stages[0].Id)
	require.NoError(t, err)
	require.Len(t, bound, 1, "binding count unchanged after rejected duplicate")
}

func testBindAllUnbound(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input")
	f.seedFields(4)

	_, err := f.fieldService.Bind(template.Id, stages[0].Id, "lc_amount", "maker1")
	require.NoError(t, err)

	added, err := f.fieldService.BindAllUnbound(template.Id, stages[0].Id, "maker1")
	require.NoError(t, err)
	require.Len(t, added, 3)

	bound, err := f.fieldService.ListBound(stages[0].Id)
	require.NoError(t, err)
	require.Len(t, bound, 4)
	for i, binding := range bound {
		require.Equal(t, i+1, binding.FieldOrder)
	}

	again, err := f.fieldService.BindAllUnbound(template.Id, stages[0].Id, "maker1")
	require.NoError(t, err)
	require.Empty(t, again, "second run is a no-op")
}

func testUpdateFlags(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input")
	f.seedFields(1)

	binding, err := f.fieldService.Bind(template.Id, stages[0].Id, "lc_amount", "maker1")
	require.NoError(t, err)

	updated, err := f.fieldService.UpdateFlags(template.Id, stages[0].Id, binding.Id, true, false, true, "maker1")
	require.NoError(t, err)
	require.True(t, updated.IsVisible)
	require.False(t, updated.IsEditable)
	require.True(t, updated.IsMandatory)

	_, err = f.fieldService.UpdateFlags(template.Id, stages[0].Id, "no-such-binding", true, true, true, "maker1")
	require.Error(t, err)
}

func testSetAllFlag(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input")
	f.seedFields(3)

	_, err := f.fieldService.BindAllUnbound(template.Id, stages[0].Id, "maker1")
	require.NoError(t, err)

	err = f.fieldService.SetAllFlag(template.Id, stages[0].Id, model.FIELD_FLAG_MANDATORY, true, "maker1")
	require.NoError(t, err)

	bound, err := f.fieldService.ListBound(stages[0].Id)
	require.NoError(t, err)
	for _, binding := range bound {
		require.True(t, binding.IsMandatory)
	}

	err = f.fieldService.SetAllFlag(template.Id, stages[0].Id, "sparkly", true, "maker1")
	require.True(t, model.IsValidationError(err))
}

func testUnbindField(t *testing.T, f *fixture) {
	template := f.createTemplate(t)
	stages := f.addStages(t, template.Id, "transaction-input")
	f.seedFields(1)

	binding, err := f.fieldService.Bind(template.Id, stages[0].Id, "lc_amount", "maker1")
	require.NoError(t, err)

	err = f.fieldService.Unbind(template.Id, stages[0].Id, binding.Id, "maker1")
	require.NoError(t, err)

	bound, err := f.fieldService.ListBound(stages[0].Id)
	require.NoError(t, err)
	require.Empty(t, bound)
}
