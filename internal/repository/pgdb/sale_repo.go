package pgdb

import (
	"context"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/internal/repository/pgdb/converter"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// SaleRepo реализует журнал продаж поверх PostgreSQL.
// Записи неизменяемы: только вставка и чтение.
type SaleRepo struct {
	pool *pgxpool.Pool
	conv converter.SaleConverter
}

func NewSaleRepo(pool *pgxpool.Pool, conv converter.SaleConverter) *SaleRepo {
	return &SaleRepo{
		pool: pool,
		conv: conv,
	}
}

// Insert добавляет запись о продаже со снимком имени и цены товара.
// Уведомляет слушателей канала inventory_changed в той же транзакции.
func (s *SaleRepo) Insert(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := s.conv.ToModel(sale)
	query := `
		INSERT INTO sales (product_id, product_name, price, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	if err := tx.QueryRow(ctx, query,
		model.ProductID,
		model.ProductName,
		model.Price,
		model.Timestamp,
	).Scan(&model.ID); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err = tx.Exec(ctx, "SELECT pg_notify('inventory_changed', 'sales');"); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(model), nil
}

// GetAll возвращает продажи от новых к старым.
func (s *SaleRepo) GetAll(ctx context.Context) ([]domain.Sale, error) {
	query := `
		SELECT id, product_id, product_name, price, timestamp
		FROM sales
		ORDER BY timestamp DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.SaleModel
	for rows.Next() {
		var model converter.SaleModel
		if err := rows.Scan(
			&model.ID, &model.ProductID, &model.ProductName, &model.Price, &model.Timestamp,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToArrEntity(models), nil
}

// TotalRevenue возвращает суммарную выручку журнала в центах.
func (s *SaleRepo) TotalRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := s.pool.QueryRow(ctx, "SELECT COALESCE(SUM(price), 0) FROM sales").Scan(&total)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return total, nil
}
