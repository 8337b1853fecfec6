package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fjod/go_cart/pricing/cart-service/internal/catalog"
	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
)

// MapScenario converts a validated DTO into domain steps.
// An add step without quantity adds one unit.
func MapScenario(path string, ys YAMLScenario) (domain.Scenario, error) {
	products, err := mapCatalog(path, ys.Products)
	if err != nil {
		return domain.Scenario{}, err
	}

	sc := domain.Scenario{
		Name:     ys.Name,
		Currency: strings.ToUpper(ys.Currency),
		Region:   ys.Region,
		Products: products.GetAllProducts(),
		Steps:    make([]domain.Step, 0, len(ys.Steps)),
	}

	for i, s := range ys.Steps {
		fieldPrefix := fmt.Sprintf("steps[%d]", i)
		step := domain.Step{Op: domain.Op(s.Op)}

		switch step.Op {
		case domain.OpAdd:
			product, err := mapProduct(path, fieldPrefix, s, products)
			if err != nil {
				return domain.Scenario{}, err
			}
			step.Product = product
			step.Quantity = 1
			if s.Quantity != nil {
				step.Quantity = *s.Quantity
			}
		case domain.OpUpdate:
			if s.Quantity == nil {
				return domain.Scenario{}, invalidField(path, fieldPrefix+".quantity", "quantity is required")
			}
			step.ProductID = s.ID
			step.Quantity = *s.Quantity
		case domain.OpRemove:
			step.ProductID = s.ID
		case domain.OpDiscount:
			value, err := decimal.NewFromString(s.Value)
			if err != nil {
				return domain.Scenario{}, invalidField(path, fieldPrefix+".value", err.Error())
			}
			step.Discount = domain.Discount{Code: s.Code, Type: domain.DiscountType(s.Type), Value: value}
		case domain.OpRegion:
			step.Region = s.Region
		}

		sc.Steps = append(sc.Steps, step)
	}

	return sc, nil
}

func mapCatalog(path string, yps []YAMLProduct) (*catalog.MemoryCatalog, error) {
	products := make([]domain.Product, 0, len(yps))
	for i, yp := range yps {
		price, err := decimal.NewFromString(yp.Price)
		if err != nil {
			return nil, invalidField(path, fmt.Sprintf("products[%d].price", i), err.Error())
		}
		products = append(products, domain.Product{ID: yp.ID, Name: nameOr(yp.Name, yp.ID), Price: price})
	}

	cat, err := catalog.NewMemoryCatalog(products...)
	if err != nil {
		return nil, invalidField(path, "products", err.Error())
	}
	return cat, nil
}

// mapProduct prefers an inline price and falls back to the catalog.
func mapProduct(path, fieldPrefix string, s YAMLStep, products *catalog.MemoryCatalog) (domain.Product, error) {
	if s.Price == "" {
		p, err := products.GetProduct(s.ID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			return domain.Product{}, invalidField(path, fieldPrefix+".price",
				fmt.Sprintf("price is required, %q is not in the catalog", s.ID))
		}
		if s.Name != "" {
			p.Name = s.Name
		}
		return p, err
	}

	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return domain.Product{}, invalidField(path, fieldPrefix+".price", err.Error())
	}
	return domain.Product{ID: s.ID, Name: nameOr(s.Name, s.ID), Price: price}, nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
