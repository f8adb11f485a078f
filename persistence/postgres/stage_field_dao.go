package postgres

import (
	"context"

	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type pgStageFieldDao struct {
	baseDao
}

var _ persistence.StageFieldDao = new(pgStageFieldDao)

func NewPgStageFieldDao(pool *pgxpool.Pool) *pgStageFieldDao {
	return &pgStageFieldDao{baseDao{pool: pool}}
}

const insertStageFieldQuery = `
	INSERT INTO workflow_stage_fields (id, stage_id, field_id, field_name, pane, section, label, display_type, is_visible, is_editable, is_mandatory, field_order)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

func (fd *pgStageFieldDao) Save(field model.WorkflowStageField) error {
	_, err := fd.pool.Exec(context.Background(), insertStageFieldQuery,
		field.Id, field.StageId, field.FieldId, field.FieldName,
		field.Pane, field.Section, field.Label, field.DisplayType,
		field.IsVisible, field.IsEditable, field.IsMandatory, field.FieldOrder)
	if err != nil {
		logger.Error("error in saving stage field", zap.String("field", field.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (fd *pgStageFieldDao) SaveAll(fields []model.WorkflowStageField) error {
	if len(fields) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, field := range fields {
		batch.Queue(insertStageFieldQuery,
			field.Id, field.StageId, field.FieldId, field.FieldName,
			field.Pane, field.Section, field.Label, field.DisplayType,
			field.IsVisible, field.IsEditable, field.IsMandatory, field.FieldOrder)
	}
	results := fd.pool.SendBatch(context.Background(), batch)
	defer results.Close()
	for range fields {
		if _, err := results.Exec(); err != nil {
			logger.Error("error in saving stage fields", zap.String("stage", fields[0].StageId), zap.Error(err))
			return persistence.StorageLayerError{Message: err.Error()}
		}
	}
	return nil
}

func (fd *pgStageFieldDao) Update(field model.WorkflowStageField) error {
	query := `
		UPDATE workflow_stage_fields
		SET is_visible = $2, is_editable = $3, is_mandatory = $4, field_order = $5
		WHERE id = $1
	`
	_, err := fd.pool.Exec(context.Background(), query,
		field.Id, field.IsVisible, field.IsEditable, field.IsMandatory, field.FieldOrder)
	if err != nil {
		logger.Error("error in updating stage field", zap.String("field", field.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (fd *pgStageFieldDao) Delete(stageId string, bindingId string) error {
	_, err := fd.pool.Exec(context.Background(),
		`DELETE FROM workflow_stage_fields WHERE id = $1 AND stage_id = $2`, bindingId, stageId)
	if err != nil {
		logger.Error("error in deleting stage field", zap.String("field", bindingId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (fd *pgStageFieldDao) ListByStage(stageId string) ([]model.WorkflowStageField, error) {
	query := `
		SELECT id, stage_id, field_id, field_name, pane, section, label, display_type, is_visible, is_editable, is_mandatory, field_order
		FROM workflow_stage_fields
		WHERE stage_id = $1
		ORDER BY field_order ASC
	`
	rows, err := fd.pool.Query(context.Background(), query, stageId)
	if err != nil {
		logger.Error("error in listing stage fields", zap.String("stage", stageId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()

	var fields []model.WorkflowStageField
	for rows.Next() {
		var field model.WorkflowStageField
		err := rows.Scan(&field.Id, &field.StageId, &field.FieldId, &field.FieldName,
			&field.Pane, &field.Section, &field.Label, &field.DisplayType,
			&field.IsVisible, &field.IsEditable, &field.IsMandatory, &field.FieldOrder)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		fields = append(fields, field)
	}
	return fields, rows.Err()
}
