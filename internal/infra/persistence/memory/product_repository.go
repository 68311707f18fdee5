// Package memory keeps records in process memory. It backs the "memory"
// storage driver and the HTTP tests.
package memory

import (
	"context"
	"sync"

	domproduct "example.com/exam-crud/internal/domain/product"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]domproduct.Product
	nextID   int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[int64]domproduct.Product),
		nextID:   1,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.codeOwner(p.Code) != 0 {
		return nil, domproduct.ErrCodeTaken
	}
	p.ID = r.nextID
	r.nextID++
	r.products[p.ID] = *p
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	if owner := r.codeOwner(p.Code); owner != 0 && owner != p.ID {
		return nil, domproduct.ErrCodeTaken
	}
	r.products[p.ID] = *p
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*domproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := r.codeOwner(code)
	if id == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	p := r.products[id]
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domproduct.Product, 0, len(r.products))
	for _, p := range r.products {
		if !filter.Match(&p) {
			continue
		}
		cloned := p
		products = append(products, &cloned)
	}
	domproduct.Sort(products, filter.Order)
	return products, nil
}

// codeOwner must be called with the lock held.
func (r *ProductRepository) codeOwner(code string) int64 {
	for id, p := range r.products {
		if p.Code == code {
			return id
		}
	}
	return 0
}
