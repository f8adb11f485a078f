package persistence

import (
	"sort"

	"github.com/finacore/tradeflow/model"
)

// Canonical list orderings shared by every storage backend. Backends reading
// from unordered structures (redis hashes, in memory maps) sort through these
// before returning, so callers can rely on list position.

// SortTemplates orders templates newest first.
func SortTemplates(templates []model.WorkflowTemplate) {
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].CreatedAt.After(templates[j].CreatedAt)
	})
}

// SortStages orders stages by their pipeline position.
func SortStages(stages []model.WorkflowStage) {
	sort.Slice(stages, func(i, j int) bool {
		return stages[i].StageOrder < stages[j].StageOrder
	})
}

// SortConditions orders conditions by group name, then by their position
// within the group.
func SortConditions(conditions []model.WorkflowCondition) {
	sort.Slice(conditions, func(i, j int) bool {
		if conditions[i].GroupName != conditions[j].GroupName {
			return conditions[i].GroupName < conditions[j].GroupName
		}
		return conditions[i].ConditionOrder < conditions[j].ConditionOrder
	})
}

// SortStageFields orders bindings by their display position.
func SortStageFields(fields []model.WorkflowStageField) {
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].FieldOrder < fields[j].FieldOrder
	})
}
