package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/storefront-client/internal/domain/product"
)

// productDTO is the wire shape of a product. The backend still serves legacy
// spellings next to the current ones (category vs categories, countInStock vs
// stockQuantity), so the DTO carries both and normalize picks the canonical
// value.
type productDTO struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	StockQuantity *int     `json:"stockQuantity,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	CreatedAt     string   `json:"createdAt"`

	// Legacy fallbacks.
	Category     string `json:"category,omitempty"`
	CountInStock *int   `json:"countInStock,omitempty"`
}

func (d productDTO) normalize() product.Product {
	stock := 0
	switch {
	case d.StockQuantity != nil:
		stock = *d.StockQuantity
	case d.CountInStock != nil:
		stock = *d.CountInStock
	}

	categories := d.Categories
	if len(categories) == 0 && d.Category != "" {
		categories = []string{d.Category}
	}

	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)

	return product.Product{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		Price:          decimal.NewFromFloat(d.Price),
		AvailableStock: stock,
		Categories:     categories,
		CreatedAt:      createdAt,
	}
}

// ProductPage is one page of the product catalog.
type ProductPage struct {
	Products []product.Product
	Page     int
	Pages    int
	Total    int
}

// ProductQuery narrows a catalog listing.
type ProductQuery struct {
	Keyword  string
	Category string
	Page     int
	PageSize int
}

// Products is the typed gateway for the products resource.
type Products struct {
	c *Client
}

// List fetches one catalog page.
func (g *Products) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}

	params := url.Values{}
	params.Set("keyword", q.Keyword)
	params.Set("pageNumber", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	params.Set("category", q.Category)

	var resp struct {
		Products []productDTO `json:"products"`
		Page     int          `json:"page"`
		Pages    int          `json:"pages"`
		Total    int          `json:"total"`
	}
	if err := g.c.get(ctx, "/products", params, &resp); err != nil {
		return nil, err
	}

	page := &ProductPage{Page: resp.Page, Pages: resp.Pages, Total: resp.Total}
	for _, dto := range resp.Products {
		page.Products = append(page.Products, dto.normalize())
	}
	return page, nil
}

// Get fetches one product.
func (g *Products) Get(ctx context.Context, id string) (*product.Product, error) {
	var dto productDTO
	if err := g.c.get(ctx, "/products/"+url.PathEscape(id), nil, &dto); err != nil {
		return nil, err
	}
	p := dto.normalize()
	return &p, nil
}

// Top fetches the top-rated products.
func (g *Products) Top(ctx context.Context) ([]product.Product, error) {
	var dtos []productDTO
	if err := g.c.get(ctx, "/products/top", nil, &dtos); err != nil {
		return nil, err
	}
	return normalizeAll(dtos), nil
}

// ByCategory fetches the products of one category.
func (g *Products) ByCategory(ctx context.Context, category string) ([]product.Product, error) {
	var dtos []productDTO
	if err := g.c.get(ctx, "/products/category/"+url.PathEscape(category), nil, &dtos); err != nil {
		return nil, err
	}
	return normalizeAll(dtos), nil
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price,omitempty"`
	StockQuantity int      `json:"stockQuantity,omitempty"`
	Categories    []string `json:"categories,omitempty"`
}

// Create creates a product (admin).
func (g *Products) Create(ctx context.Context, in ProductInput) (*product.Product, error) {
	var dto productDTO
	if err := g.c.post(ctx, "/products", in, &dto); err != nil {
		return nil, err
	}
	p := dto.normalize()
	return &p, nil
}

// Update updates a product (admin).
func (g *Products) Update(ctx context.Context, id string, in ProductInput) (*product.Product, error) {
	var dto productDTO
	if err := g.c.put(ctx, "/products/"+url.PathEscape(id), in, &dto); err != nil {
		return nil, err
	}
	p := dto.normalize()
	return &p, nil
}

// Delete removes a product (admin).
func (g *Products) Delete(ctx context.Context, id string) error {
	if err := g.c.delete(ctx, "/products/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func normalizeAll(dtos []productDTO) []product.Product {
	out := make([]product.Product, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.normalize())
	}
	return out
}
