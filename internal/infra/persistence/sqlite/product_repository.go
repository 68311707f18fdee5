package sqlite

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	domproduct "example.com/exam-crud/internal/domain/product"
	"example.com/exam-crud/internal/infra/persistence/sqlquery"
)

type productModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Code         string  `gorm:"column:codigo;size:9;not null;uniqueIndex"`
	Name         string  `gorm:"column:nombre;size:100;not null"`
	Size         string  `gorm:"column:talla;size:3;not null"`
	Price        float64 `gorm:"column:precio;not null"`
	CreatorEmail string  `gorm:"column:email_creador;size:255;not null"`
}

func (productModel) TableName() string {
	return "productos"
}

func (m productModel) domain() *domproduct.Product {
	return &domproduct.Product{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Size:         domproduct.Size(m.Size),
		Price:        m.Price,
		CreatorEmail: m.CreatorEmail,
	}
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	m := productModel{
		Code:         p.Code,
		Name:         p.Name,
		Size:         string(p.Size),
		Price:        p.Price,
		CreatorEmail: p.CreatorEmail,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return nil, domproduct.ErrCodeTaken
		}
		return nil, errors.Wrap(err, "insert product")
	}
	p.ID = m.ID
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"codigo":        p.Code,
		"nombre":        p.Name,
		"talla":         string(p.Size),
		"precio":        p.Price,
		"email_creador": p.CreatorEmail,
	})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return nil, domproduct.ErrCodeTaken
		}
		return nil, errors.Wrap(res.Error, "update product")
	}
	if res.RowsAffected == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&productModel{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*domproduct.Product, error) {
	return r.first(ctx, "codigo = ?", code)
}

func (r *ProductRepository) first(ctx context.Context, cond string, arg any) (*domproduct.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "get product")
	}
	return m.domain(), nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	q := r.db.WithContext(ctx).Model(&productModel{})
	if filter.Size != "" {
		q = q.Where("talla = ?", string(filter.Size))
	}
	if like, ok := sqlquery.LikePattern(filter.Search); ok {
		q = q.Where(`(CAST(id AS TEXT) LIKE ? ESCAPE '\' OR LOWER(codigo) LIKE ? ESCAPE '\' OR LOWER(nombre) LIKE ? ESCAPE '\')`, like, like, like)
	}
	switch filter.Order {
	case domproduct.OrderIDDesc:
		q = q.Order("id DESC")
	case domproduct.OrderPriceAsc:
		q = q.Order("precio ASC").Order("id ASC")
	case domproduct.OrderPriceDesc:
		q = q.Order("precio DESC").Order("id ASC")
	default:
		q = q.Order("id ASC")
	}

	var models []productModel
	if err := q.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	products := make([]*domproduct.Product, 0, len(models))
	for _, m := range models {
		products = append(products, m.domain())
	}
	return products, nil
}
