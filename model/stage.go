package model

import "fmt"

type ActorType string

const ACTOR_TYPE_MAKER ActorType = "Maker"
const ACTOR_TYPE_CHECKER ActorType = "Checker"
const ACTOR_TYPE_SYSTEM ActorType = "System"
const ACTOR_TYPE_AUTHORIZATION ActorType = "Authorization"
const ACTOR_TYPE_EXCEPTION_HANDLER ActorType = "Exception Handler"

func ToActorType(actor string) (ActorType, error) {
	switch ActorType(actor) {
	case ACTOR_TYPE_MAKER, ACTOR_TYPE_CHECKER, ACTOR_TYPE_SYSTEM, ACTOR_TYPE_AUTHORIZATION, ACTOR_TYPE_EXCEPTION_HANDLER:
		return ActorType(actor), nil
	}
	return "", fmt.Errorf("unknown actor type %s", actor)
}

type StageType string

const STAGE_TYPE_INPUT StageType = "Input"
const STAGE_TYPE_PREINPUT StageType = "Preinput"
const STAGE_TYPE_COMPLIANCE StageType = "Compliance"
const STAGE_TYPE_LIMIT_CHECK StageType = "LimitCheck"
const STAGE_TYPE_AUTHORIZATION StageType = "Authorization"
const STAGE_TYPE_SYSTEM StageType = "System"

func ToStageType(stage string) (StageType, error) {
	switch StageType(stage) {
	case STAGE_TYPE_INPUT, STAGE_TYPE_PREINPUT, STAGE_TYPE_COMPLIANCE, STAGE_TYPE_LIMIT_CHECK, STAGE_TYPE_AUTHORIZATION, STAGE_TYPE_SYSTEM:
		return StageType(stage), nil
	}
	return "", fmt.Errorf("unknown stage type %s", stage)
}

type RenderMode string

const RENDER_MODE_STATIC RenderMode = "static"
const RENDER_MODE_DYNAMIC RenderMode = "dynamic"

func ToRenderMode(mode string) (RenderMode, error) {
	switch RenderMode(mode) {
	case RENDER_MODE_STATIC, RENDER_MODE_DYNAMIC:
		return RenderMode(mode), nil
	}
	return "", fmt.Errorf("unknown render mode %s", mode)
}

// WorkflowStage is one step in a template's ordered pipeline. StageOrder is
// 1-based and kept dense by the stage service.
type WorkflowStage struct {
	Id              string     `json:"id"`
	TemplateId      string     `json:"templateId"`
	Name            string     `json:"stageName"`
	StageOrder      int        `json:"stageOrder"`
	ActorType       ActorType  `json:"actorType"`
	StageType       StageType  `json:"stageType"`
	SlaHours        int        `json:"slaHours"`
	IsRejectable    bool       `json:"isRejectable"`
	RejectToStageId string     `json:"rejectToStageId,omitempty"`
	RenderMode      RenderMode `json:"uiRenderMode"`
	StaticPanes     []string   `json:"staticPanes,omitempty"`
}
