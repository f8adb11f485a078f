package postgres

import (
	"context"

	"github.com/finacore/tradeflow/logger"
	"github.com/finacore/tradeflow/model"
	"github.com/finacore/tradeflow/persistence"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// pgFieldRepository reads the externally maintained field repository. The
// portal never writes here.
type pgFieldRepository struct {
	baseDao
}

var _ persistence.FieldRepository = new(pgFieldRepository)

func NewPgFieldRepository(pool *pgxpool.Pool) *pgFieldRepository {
	return &pgFieldRepository{baseDao{pool: pool}}
}

func (fr *pgFieldRepository) ListActive(productCode string, eventCode string, limit int) ([]model.FieldDescriptor, error) {
	query := `
		SELECT id, field_name, product_code, event_code, pane, section, label, display_type, data_type, is_active
		FROM field_repository
		WHERE product_code = $1 AND event_code = $2 AND is_active = true
		ORDER BY field_name ASC
		LIMIT $3
	`
	rows, err := fr.pool.Query(context.Background(), query, productCode, eventCode, limit)
	if err != nil {
		logger.Error("error in listing field repository", zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()

	fields := make([]model.FieldDescriptor, 0)
	for rows.Next() {
		var field model.FieldDescriptor
		err := rows.Scan(&field.Id, &field.Name, &field.ProductCode, &field.EventCode,
			&field.Pane, &field.Section, &field.Label, &field.DisplayType,
			&field.DataType, &field.IsActive)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		fields = append(fields, field)
	}
	return fields, rows.Err()
}
