package model

import (
	"fmt"
	"time"
)

type TemplateStatus string

const TEMPLATE_STATUS_DRAFT TemplateStatus = "draft"
const TEMPLATE_STATUS_SUBMITTED TemplateStatus = "submitted"
const TEMPLATE_STATUS_ACTIVE TemplateStatus = "active"
const TEMPLATE_STATUS_INACTIVE TemplateStatus = "inactive"

func ToTemplateStatus(status string) (TemplateStatus, error) {
	switch TemplateStatus(status) {
	case TEMPLATE_STATUS_DRAFT, TEMPLATE_STATUS_SUBMITTED, TEMPLATE_STATUS_ACTIVE, TEMPLATE_STATUS_INACTIVE:
		return TemplateStatus(status), nil
	}
	return "", fmt.Errorf("unknown template status %s", status)
}

// CanTransitionTo reports whether the one-directional lifecycle
// draft -> submitted -> (active|inactive) allows the move. The store does
// not enforce this, callers must.
func (s TemplateStatus) CanTransitionTo(next TemplateStatus) bool {
	switch s {
	case TEMPLATE_STATUS_DRAFT:
		return next == TEMPLATE_STATUS_SUBMITTED
	case TEMPLATE_STATUS_SUBMITTED:
		return next == TEMPLATE_STATUS_ACTIVE || next == TEMPLATE_STATUS_INACTIVE
	}
	return false
}

// WorkflowTemplate identifies one configurable workflow for a
// (module, product, event) triple.
type WorkflowTemplate struct {
	Id           string         `json:"id"`
	UserId       string         `json:"userId"`
	Name         string         `json:"templateName"`
	ModuleCode   string         `json:"moduleCode"`
	ModuleName   string         `json:"moduleName"`
	ProductCode  string         `json:"productCode"`
	ProductName  string         `json:"productName"`
	EventCode    string         `json:"eventCode"`
	EventName    string         `json:"eventName"`
	TriggerTypes []string       `json:"triggerTypes"`
	Status       TemplateStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
