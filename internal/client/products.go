package client

import (
	"context"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	domproduct "example.com/exam-crud/internal/domain/product"
)

const productsPath = "/api/v1/products"

type productWire struct {
	ID           int64   `json:"id"`
	Code         string  `json:"codigo"`
	Name         string  `json:"nombre"`
	Size         string  `json:"talla"`
	Price        float64 `json:"precio"`
	CreatorEmail string  `json:"email_creador"`
}

func (p productWire) domain() *domproduct.Product {
	return &domproduct.Product{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Size:         domproduct.Size(p.Size),
		Price:        p.Price,
		CreatorEmail: p.CreatorEmail,
	}
}

type productForm struct {
	Code         string `json:"codigo"`
	Name         string `json:"nombre"`
	Size         string `json:"talla"`
	Price        string `json:"precio"`
	CreatorEmail string `json:"email_creador"`
}

func formOf(d domproduct.Draft) productForm {
	n := d.Normalize()
	return productForm{Code: n.Code, Name: n.Name, Size: n.Size, Price: n.Price, CreatorEmail: n.CreatorEmail}
}

func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]*domproduct.Product, error) {
	var wire []productWire
	if err := c.do(ctx, http.MethodGet, productsPath, opts.values(), nil, &wire); err != nil {
		return nil, err
	}
	products := make([]*domproduct.Product, 0, len(wire))
	for _, p := range wire {
		products = append(products, p.domain())
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domproduct.Product, error) {
	var wire productWire
	if err := c.do(ctx, http.MethodGet, idPath(productsPath, id), nil, nil, &wire); err != nil {
		return nil, err
	}
	return wire.domain(), nil
}

// CreateProduct checks the draft with the same rules as the server and
// only sends it when they pass.
func (c *Client) CreateProduct(ctx context.Context, d domproduct.Draft) (*domproduct.Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var out successBody[productWire]
	if err := c.do(ctx, http.MethodPost, productsPath, nil, formOf(d), &out); err != nil {
		return nil, err
	}
	return out.Data.domain(), nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, d domproduct.Draft) (*domproduct.Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var out successBody[productWire]
	if err := c.do(ctx, http.MethodPut, idPath(productsPath, id), nil, formOf(d), &out); err != nil {
		return nil, err
	}
	return out.Data.domain(), nil
}

// DeleteProduct returns the server's confirmation message.
func (c *Client) DeleteProduct(ctx context.Context, id int64) (string, error) {
	var out successBody[struct{}]
	if err := c.do(ctx, http.MethodDelete, idPath(productsPath, id), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

type Summary struct {
	Count int             `json:"cantidad"`
	Total decimal.Decimal `json:"total"`
}

func (c *Client) ProductSummary(ctx context.Context, opts ListOptions) (Summary, error) {
	var out Summary
	err := c.do(ctx, http.MethodGet, productsPath+"/summary", opts.values(), nil, &out)
	return out, err
}

// ExportProducts copies the export download to w.
func (c *Client) ExportProducts(ctx context.Context, opts ListOptions, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, productsPath+"/export", opts.values(), nil)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(w, resp.Body)
	return err
}

type ImportFailure struct {
	Code    string `json:"codigo"`
	Message string `json:"mensaje"`
}

type ImportResult struct {
	Inserted int             `json:"insertados"`
	Failed   []ImportFailure `json:"fallidos"`
}

// ImportProducts sends every draft as is; the server reports the rows it
// skipped.
func (c *Client) ImportProducts(ctx context.Context, drafts []domproduct.Draft) (ImportResult, error) {
	forms := make([]productForm, 0, len(drafts))
	for _, d := range drafts {
		forms = append(forms, formOf(d))
	}
	var out ImportResult
	err := c.do(ctx, http.MethodPost, productsPath+"/import", nil, forms, &out)
	return out, err
}
