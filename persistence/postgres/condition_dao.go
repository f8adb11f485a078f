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

type pgConditionDao struct {
	baseDao
}

var _ persistence.ConditionDao = new(pgConditionDao)

func NewPgConditionDao(pool *pgxpool.Pool) *pgConditionDao {
	return &pgConditionDao{baseDao{pool: pool}}
}

func (cd *pgConditionDao) Save(condition model.WorkflowCondition) error {
	query := `
		INSERT INTO workflow_conditions (id, template_id, stage_id, group_name, group_operator, condition_order, field_name, operator, compare_type, compare_value, compare_field)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := cd.pool.Exec(context.Background(), query,
		condition.Id, condition.TemplateId, condition.StageId,
		condition.GroupName, string(condition.GroupOperator), condition.ConditionOrder,
		condition.FieldName, string(condition.Operator), string(condition.CompareType),
		condition.CompareValue, condition.CompareField)
	if err != nil {
		logger.Error("error in saving condition", zap.String("condition", condition.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (cd *pgConditionDao) Update(condition model.WorkflowCondition) error {
	query := `
		UPDATE workflow_conditions
		SET stage_id = NULLIF($2, ''), group_name = $3, group_operator = $4, condition_order = $5, field_name = $6, operator = $7, compare_type = $8, compare_value = $9, compare_field = $10
		WHERE id = $1
	`
	_, err := cd.pool.Exec(context.Background(), query,
		condition.Id, condition.StageId,
		condition.GroupName, string(condition.GroupOperator), condition.ConditionOrder,
		condition.FieldName, string(condition.Operator), string(condition.CompareType),
		condition.CompareValue, condition.CompareField)
	if err != nil {
		logger.Error("error in updating condition", zap.String("condition", condition.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (cd *pgConditionDao) Delete(templateId string, conditionId string) error {
	_, err := cd.pool.Exec(context.Background(),
		`DELETE FROM workflow_conditions WHERE id = $1 AND template_id = $2`, conditionId, templateId)
	if err != nil {
		logger.Error("error in deleting condition", zap.String("condition", conditionId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (cd *pgConditionDao) Get(templateId string, conditionId string) (*model.WorkflowCondition, error) {
	query := `
		SELECT id, template_id, COALESCE(stage_id, ''), group_name, group_operator, condition_order, field_name, operator, compare_type, compare_value, compare_field
		FROM workflow_conditions
		WHERE id = $1 AND template_id = $2
	`
	condition, err := scanCondition(cd.pool.QueryRow(context.Background(), query, conditionId, templateId))
	if err == pgx.ErrNoRows {
		return nil, persistence.NotFoundError{Entity: "condition", Id: conditionId}
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return condition, nil
}

func (cd *pgConditionDao) ListByTemplate(templateId string) ([]model.WorkflowCondition, error) {
	query := `
		SELECT id, template_id, COALESCE(stage_id, ''), group_name, group_operator, condition_order, field_name, operator, compare_type, compare_value, compare_field
		FROM workflow_conditions
		WHERE template_id = $1
		ORDER BY group_name ASC, condition_order ASC
	`
	rows, err := cd.pool.Query(context.Background(), query, templateId)
	if err != nil {
		logger.Error("error in listing conditions", zap.String("template", templateId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()

	var conditions []model.WorkflowCondition
	for rows.Next() {
		condition, err := scanCondition(rows)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		conditions = append(conditions, *condition)
	}
	return conditions, rows.Err()
}

func scanCondition(row pgx.Row) (*model.WorkflowCondition, error) {
	var condition model.WorkflowCondition
	var groupOperator, operator, compareType string
	err := row.Scan(&condition.Id, &condition.TemplateId, &condition.StageId,
		&condition.GroupName, &groupOperator, &condition.ConditionOrder,
		&condition.FieldName, &operator, &compareType,
		&condition.CompareValue, &condition.CompareField)
	if err != nil {
		return nil, err
	}
	condition.GroupOperator = model.GroupOperator(groupOperator)
	condition.Operator = model.ConditionOperator(operator)
	condition.CompareType = model.CompareType(compareType)
	return &condition, nil
}
