package pgdb

import (
	"context"
	"errors"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/internal/repository/pgdb/converter"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Insert создает товар и возвращает запись с присвоенным id.
// Уведомляет слушателей канала inventory_changed в той же транзакции.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (name, qty, description, price, image_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.Name,
		model.Qty,
		model.Description,
		model.Price,
		model.ImagePath,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err = tx.Exec(ctx, "SELECT pg_notify('inventory_changed', 'products');"); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Update перезаписывает все изменяемые поля товара.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		UPDATE products
		SET name = $1, qty = $2, description = $3, price = $4, image_path = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := tx.Exec(ctx, query,
		model.Name,
		model.Qty,
		model.Description,
		model.Price,
		model.ImagePath,
		model.ID,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	if _, err = tx.Exec(ctx, "SELECT pg_notify('inventory_changed', 'products');"); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет товар. Отсутствующий id не считается ошибкой.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err = tx.Exec(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err = tx.Exec(ctx, "SELECT pg_notify('inventory_changed', 'products');"); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetByID возвращает товар или nil, если записи нет.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, qty, description, price, image_path, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Qty, &model.Description,
		&model.Price, &model.ImagePath, &model.CreatedAt, &model.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetForUpdate читает товар внутри транзакции с блокировкой строки.
// Возвращает nil, если записи нет.
func (p *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, name, qty, description, price, image_path, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Qty, &model.Description,
		&model.Price, &model.ImagePath, &model.CreatedAt, &model.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetAll возвращает все товары, отсортированные по имени.
func (p *ProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, qty, description, price, image_path, created_at, updated_at
		FROM products
		ORDER BY name ASC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.scanProducts(rows)
}

// Search возвращает товары, имя которых содержит подстроку query.
// Поиск чувствителен к регистру.
func (p *ProductRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	sqlQuery := `
		SELECT id, name, qty, description, price, image_path, created_at, updated_at
		FROM products
		WHERE name LIKE '%' || $1 || '%'
	`

	rows, err := p.pool.Query(ctx, sqlQuery, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.scanProducts(rows)
}

// GetLowStock возвращает товары с остатком не выше порога.
func (p *ProductRepo) GetLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	query := `
		SELECT id, name, qty, description, price, image_path, created_at, updated_at
		FROM products
		WHERE qty <= $1
		ORDER BY qty ASC
	`

	rows, err := p.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.scanProducts(rows)
}

func (p *ProductRepo) scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var models []*converter.ProductModel
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Qty, &model.Description,
			&model.Price, &model.ImagePath, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}
