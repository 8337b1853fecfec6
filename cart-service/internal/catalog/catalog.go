package catalog

import (
	"errors"
	"fmt"

	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

// MemoryCatalog is a read-only product list keyed by ID. Products keep the
// order they were registered in.
type MemoryCatalog struct {
	products map[string]domain.Product
	order    []string
}

// NewMemoryCatalog registers products, rejecting repeated IDs.
func NewMemoryCatalog(products ...domain.Product) (*MemoryCatalog, error) {
	c := &MemoryCatalog{products: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		if _, exists := c.products[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		c.products[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// GetAllProducts returns every product in registration order
func (c *MemoryCatalog) GetAllProducts() []domain.Product {
	out := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out
}

func (c *MemoryCatalog) GetProduct(id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}
