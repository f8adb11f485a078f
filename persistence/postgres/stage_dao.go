package postgres

import (
	"context"
	"encoding/json"

	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type pgStageDao struct {
	baseDao
}

var _ persistence.StageDao = new(pgStageDao)

func NewPgStageDao(pool *pgxpool.Pool) *pgStageDao {
	return &pgStageDao{baseDao{pool: pool}}
}

func (sd *pgStageDao) Save(stage model.WorkflowStage) error {
	staticPanes, _ := json.Marshal(stage.StaticPanes)
	query := `
		INSERT INTO workflow_stages (id, template_id, stage_name, stage_order, actor_type, stage_type, sla_hours, is_rejectable, reject_to_stage_id, ui_render_mode, static_panes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)
	`
	_, err := sd.pool.Exec(context.Background(), query,
		stage.Id, stage.TemplateId, stage.Name, stage.StageOrder,
		string(stage.ActorType), string(stage.StageType),
		stage.SlaHours, stage.IsRejectable, stage.RejectToStageId,
		string(stage.RenderMode), staticPanes)
	if err != nil {
		logger.Error("error in saving stage", zap.String("stage", stage.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (sd *pgStageDao) Update(stage model.WorkflowStage) error {
	staticPanes, _ := json.Marshal(stage.StaticPanes)
	query := `
		UPDATE workflow_stages
		SET stage_name = $2, stage_order = $3, actor_type = $4, stage_type = $5, sla_hours = $6, is_rejectable = $7, reject_to_stage_id = NULLIF($8, ''), ui_render_mode = $9, static_panes = $10
		WHERE id = $1
	`
	_, err := sd.pool.Exec(context.Background(), query,
		stage.Id, stage.Name, stage.StageOrder,
		string(stage.ActorType), string(stage.StageType),
		stage.SlaHours, stage.IsRejectable, stage.RejectToStageId,
		string(stage.RenderMode), staticPanes)
	if err != nil {
		logger.Error("error in updating stage", zap.String("stage", stage.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (sd *pgStageDao) Delete(templateId string, stageId string) error {
	_, err := sd.pool.Exec(context.Background(),
		`DELETE FROM workflow_stages WHERE id = $1 AND template_id = $2`, stageId, templateId)
	if err != nil {
		logger.Error("error in deleting stage", zap.String("stage", stageId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (sd *pgStageDao) Get(templateId string, stageId string) (*model.WorkflowStage, error) {
	query := `
		SELECT id, template_id, stage_name, stage_order, actor_type, stage_type, sla_hours, is_rejectable, COALESCE(reject_to_stage_id, ''), ui_render_mode, static_panes
		FROM workflow_stages
		WHERE id = $1 AND template_id = $2
	`
	stage, err := scanStage(sd.pool.QueryRow(context.Background(), query, stageId, templateId))
	if err == pgx.ErrNoRows {
		return nil, persistence.NotFoundError{Entity: "stage", Id: stageId}
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return stage, nil
}

func (sd *pgStageDao) ListByTemplate(templateId string) ([]model.WorkflowStage, error) {
	query := `
		SELECT id, template_id, stage_name, stage_order, actor_type, stage_type, sla_hours, is_rejectable, COALESCE(reject_to_stage_id, ''), ui_render_mode, static_panes
		FROM workflow_stages
		WHERE template_id = $1
		ORDER BY stage_order ASC
	`
	rows, err := sd.pool.Query(context.Background(), query, templateId)
	if err != nil {
		logger.Error("error in listing stages", zap.String("template", templateId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()

	var stages []model.WorkflowStage
	for rows.Next() {
		stage, err := scanStage(rows)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		stages = append(stages, *stage)
	}
	return stages, rows.Err()
}

func scanStage(row pgx.Row) (*model.WorkflowStage, error) {
	var stage model.WorkflowStage
	var actorType, stageType, renderMode string
	var staticPanes []byte
	err := row.Scan(&stage.Id, &stage.TemplateId, &stage.Name, &stage.StageOrder,
		&actorType, &stageType, &stage.SlaHours, &stage.IsRejectable,
		&stage.RejectToStageId, &renderMode, &staticPanes)
	if err != nil {
		return nil, err
	}
	stage.ActorType = model.ActorType(actorType)
	stage.StageType = model.StageType(stageType)
	stage.RenderMode = model.RenderMode(renderMode)
	if len(staticPanes) > 0 {
		json.Unmarshal(staticPanes, &stage.StaticPanes)
	}
	return &stage, nil
}
