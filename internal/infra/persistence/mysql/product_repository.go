package mysql

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
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

func toProductRow(p *domproduct.Product) productRow {
	return productRow{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Size:         string(p.Size),
		Price:        p.Price,
		CreatorEmail: p.CreatorEmail,
	}
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
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	res, err := r.db.NamedExecContext(ctx, `
        INSERT INTO productos (codigo, nombre, talla, precio, email_creador)
        VALUES (:codigo, :nombre, :talla, :precio, :email_creador)
    `, toProductRow(p))
	if err != nil {
		if isDuplicate(err) {
			return nil, domproduct.ErrCodeTaken
		}
		return nil, errors.Wrap(err, "insert product")
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "read product id")
	}
	return p, nil
}

// Update does not look at affected rows: MySQL reports zero for an update
// that changes nothing. Existence is checked by the caller.
func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	_, err := r.db.NamedExecContext(ctx, `
        UPDATE productos
        SET codigo = :codigo, nombre = :nombre, talla = :talla, precio = :precio, email_creador = :email_creador
        WHERE id = :id
    `, toProductRow(p))
	if err != nil {
		if isDuplicate(err) {
			return nil, domproduct.ErrCodeTaken
		}
		return nil, errors.Wrap(err, "update product")
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM productos WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
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
	query, args, err := sqlquery.MySQL.ProductByColumn(column, value).ToSql()
	if err != nil {
		return nil, err
	}

	var row productRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "get product")
	}
	return row.domain(), nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	query, args, err := sqlquery.MySQL.ProductList(filter).ToSql()
	if err != nil {
		return nil, err
	}

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	products := make([]*domproduct.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.domain())
	}
	return products, nil
}
