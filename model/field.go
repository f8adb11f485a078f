package model

// FieldDescriptor is one entry of the external field repository, the global
// catalog of all definable fields across products and events. Consumed
// read-only.
type FieldDescriptor struct {
	Id          string `json:"id"`
	Name        string `json:"fieldName"`
	ProductCode string `json:"productCode"`
	EventCode   string `json:"eventCode"`
	Pane        string `json:"pane"`
	Section     string `json:"section"`
	Label       string `json:"uiLabel"`
	DisplayType string `json:"uiDisplayType"`
	DataType    string `json:"dataType"`
	IsActive    bool   `json:"isActive"`
}

// WorkflowStageField binds one repository field to one stage with the
// per-stage UI policy. The three booleans are independent, no cross-field
// consistency is enforced.
type WorkflowStageField struct {
	Id          string `json:"id"`
	StageId     string `json:"stageId"`
	FieldId     string `json:"fieldId"`
	FieldName   string `json:"fieldName"`
	Pane        string `json:"pane"`
	Section     string `json:"section"`
	Label       string `json:"uiLabel"`
	DisplayType string `json:"uiDisplayType"`
	IsVisible   bool   `json:"isVisible"`
	IsEditable  bool   `json:"isEditable"`
	IsMandatory bool   `json:"isMandatory"`
	FieldOrder  int    `json:"fieldOrder"`
}

type FieldFlag string

const FIELD_FLAG_VISIBLE FieldFlag = "visible"
const FIELD_FLAG_EDITABLE FieldFlag = "editable"
const FIELD_FLAG_MANDATORY FieldFlag = "mandatory"
