package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	domproduct "example.com/exam-crud/internal/domain/product"
	"example.com/exam-crud/internal/infra/persistence/sqlquery"
)

type productRow struct {
	ID           int64   `db:"id"`
	Code         string  `db:"codigo"`
	Name         string  `db:"nombre"`
	Size         string  `db:"talla"`
	Price        float64 `db:"precio"`
	CreatorEmail string  `db:"email_creador"`
}

func (r productRow) domain() *domproduct.Product {
	return &domproduct.Product{
		ID:           r.ID,
		Code:         r.Code,
		Name:         r.Name,
		Size:         domproduct.Size(r.Size),
		Price:        r.Price,
		CreatorEmail: r.CreatorEmail,
	}
}

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	query, args, err := sqlquery.Postgres.Builder.
		Insert("productos").
		Columns("codigo", "nombre", "talla", "precio", "email_creador").
		Values(p.Code, p.Name, string(p.Size), p.Price, p.CreatorEmail).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		if isDuplicate(err) {
			return nil, domproduct.ErrCodeTaken
		}
		return nil, errors.Wrap(err, "insert product")
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE productos
        SET codigo = $1, nombre = $2, talla = $3, precio = $4, email_creador = $5
        WHERE id = $6
    `, p.Code, p.Name, string(p.Size), p.Price, p.CreatorEmail, p.ID)
	if err != nil {
		if isDuplicate(err) {
			return nil, domproduct.ErrCodeTaken
		}
		return nil, errors.Wrap(err, "update product")
	}
	if tag.RowsAffected() == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	return r.getOne(ctx, "id", id)
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*domproduct.Product, error) {
	return r.getOne(ctx, "codigo", code)
}

func (r *ProductRepository) getOne(ctx context.Context, column string, value any) (*domproduct.Product, error) {
	query, args, err := sqlquery.Postgres.ProductByColumn(column, value).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "scan product")
	}
	return row.domain(), nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	query, args, err := sqlquery.Postgres.ProductList(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, errors.Wrap(err, "scan products")
	}

	products := make([]*domproduct.Product, 0, len(collected))
	for _, row := range collected {
		products = append(products, row.domain())
	}
	return products, nil
}
