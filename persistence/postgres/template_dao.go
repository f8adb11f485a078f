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

type pgTemplateDao struct {
	baseDao
}

var _ persistence.TemplateDao = new(pgTemplateDao)

func NewPgTemplateDao(pool *pgxpool.Pool) *pgTemplateDao {
	return &pgTemplateDao{baseDao{pool: pool}}
}

func (td *pgTemplateDao) Save(template model.WorkflowTemplate) error {
	triggerTypes, _ := json.Marshal(template.TriggerTypes)
	query := `
		INSERT INTO workflow_templates (id, user_id, template_name, module_code, module_name, product_code, product_name, event_code, event_name, trigger_types, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := td.pool.Exec(context.Background(), query,
		template.Id, template.UserId, template.Name,
		template.ModuleCode, template.ModuleName,
		template.ProductCode, template.ProductName,
		template.EventCode, template.EventName,
		triggerTypes, string(template.Status),
		template.CreatedAt, template.UpdatedAt)
	if err != nil {
		logger.Error("error in saving template", zap.String("template", template.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (td *pgTemplateDao) Update(template model.WorkflowTemplate) error {
	triggerTypes, _ := json.Marshal(template.TriggerTypes)
	query := `
		UPDATE workflow_templates
		SET template_name = $2, module_code = $3, module_name = $4, product_code = $5, product_name = $6, event_code = $7, event_name = $8, trigger_types = $9, status = $10, updated_at = $11
		WHERE id = $1
	`
	_, err := td.pool.Exec(context.Background(), query,
		template.Id, template.Name,
		template.ModuleCode, template.ModuleName,
		template.ProductCode, template.ProductName,
		template.EventCode, template.EventName,
		triggerTypes, string(template.Status), template.UpdatedAt)
	if err != nil {
		logger.Error("error in updating template", zap.String("template", template.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (td *pgTemplateDao) Delete(id string) error {
	_, err := td.pool.Exec(context.Background(), `DELETE FROM workflow_templates WHERE id = $1`, id)
	if err != nil {
		logger.Error("error in deleting template", zap.String("template", id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (td *pgTemplateDao) Get(id string) (*model.WorkflowTemplate, error) {
	query := `
		SELECT id, user_id, template_name, module_code, module_name, product_code, product_name, event_code, event_name, trigger_types, status, created_at, updated_at
		FROM workflow_templates
		WHERE id = $1
	`
	template, err := scanTemplate(td.pool.QueryRow(context.Background(), query, id))
	if err == pgx.ErrNoRows {
		return nil, persistence.NotFoundError{Entity: "template", Id: id}
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return template, nil
}

func (td *pgTemplateDao) List() ([]model.WorkflowTemplate, error) {
	query := `
		SELECT id, user_id, template_name, module_code, module_name, product_code, product_name, event_code, event_name, trigger_types, status, created_at, updated_at
		FROM workflow_templates
		ORDER BY created_at DESC
	`
	rows, err := td.pool.Query(context.Background(), query)
	if err != nil {
		logger.Error("error in listing templates", zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()

	var templates []model.WorkflowTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		templates = append(templates, *template)
	}
	return templates, rows.Err()
}

func scanTemplate(row pgx.Row) (*model.WorkflowTemplate, error) {
	var template model.WorkflowTemplate
	var triggerTypes []byte
	var status string
	err := row.Scan(&template.Id, &template.UserId, &template.Name,
		&template.ModuleCode, &template.ModuleName,
		&template.ProductCode, &template.ProductName,
		&template.EventCode, &template.EventName,
		&triggerTypes, &status, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return nil, err
	}
	template.Status = model.TemplateStatus(status)
	if len(triggerTypes) > 0 {
		json.Unmarshal(triggerTypes, &template.TriggerTypes)
	}
	return &template, nil
}
