package flow

import (
	"sort"

	"github.com/finacore/tradeflow/model"
)

// FlowNode is one node of the rendered stage graph. Next points at the stage
// that follows in approval order, RejectTo at the rework target when the
// stage can reject.
type FlowNode struct {
	Stage    model.WorkflowStage  `json:"stage"`
	Next     *model.WorkflowStage `json:"next,omitempty"`
	RejectTo *model.WorkflowStage `json:"rejectTo,omitempty"`
}

// BuildFlowchart projects the stage sequence into a linear graph with reject
// back edges resolved to their target stages.
func BuildFlowchart(stages []model.WorkflowStage) []FlowNode {
	ordered := make([]model.WorkflowStage, len(stages))
	copy(ordered, stages)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StageOrder < ordered[j].StageOrder
	})
	byId := make(map[string]model.WorkflowStage, len(ordered))
	for _, stage := range ordered {
		byId[stage.Id] = stage
	}
	nodes := make([]FlowNode, 0, len(ordered))
	for i, stage := range ordered {
		node := FlowNode{Stage: stage}
		if i+1 < len(ordered) {
			next := ordered[i+1]
			node.Next = &next
		}
		if stage.IsRejectable && stage.RejectToStageId != "" {
			if target, ok := byId[stage.RejectToStageId]; ok {
				node.RejectTo = &target
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}
