// Package cart holds the in-memory shopping cart and its pricing rules.
//
// All amounts are kept in the base currency and are exact; rounding only
// happens in Totals, after conversion to the reporting currency.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
	"github.com/fjod/go_cart/pricing/cart-service/internal/pricing"
)

// Cart is not safe for concurrent use.
type Cart struct {
	id       string
	items    []domain.CartItem
	discount *domain.Discount
	region   string
}

// New returns an empty cart with a fresh ID.
func New() *Cart {
	return &Cart{id: uuid.New().String()}
}

func (c *Cart) ID() string {
	return c.id
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount returns the total number of units across all items.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// AddItem puts quantity units of product into the cart, merging with an
// existing line for the same product ID. The cart is unchanged on error.
func (c *Cart) AddItem(product domain.Product, quantity int) error {
	if !product.Price.IsPositive() {
		return invalid("price", product.Price, ErrNonPositivePrice)
	}
	if err := checkQuantity(quantity); err != nil {
		return err
	}

	if i := c.indexOf(product.ID); i >= 0 {
		merged := c.items[i].Quantity + quantity
		if merged > pricing.MaxQuantityPerItem {
			return invalid("quantity", merged, ErrQuantityExceedsMax)
		}
		c.items[i].Quantity = merged
		return nil
	}

	c.items = append(c.items, domain.CartItem{Product: product, Quantity: quantity})
	return nil
}

// RemoveItem drops the line for productID. Missing IDs are ignored.
func (c *Cart) RemoveItem(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// UpdateQuantity sets the quantity of an existing line. Missing IDs are
// ignored; the quantity is validated either way.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if err := checkQuantity(quantity); err != nil {
		return err
	}
	if i := c.indexOf(productID); i >= 0 {
		c.items[i].Quantity = quantity
	}
	return nil
}

// Clear removes every item. The discount and tax region are kept.
func (c *Cart) Clear() {
	c.items = nil
}

// ApplyDiscount replaces the active discount.
func (c *Cart) ApplyDiscount(code string, typ domain.DiscountType, value decimal.Decimal) error {
	if !typ.Valid() {
		return invalid("discount type", typ, ErrInvalidDiscount)
	}
	if value.IsNegative() {
		return invalid("discount value", value, ErrInvalidDiscount)
	}
	if typ == domain.DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return invalid("discount value", value, ErrInvalidDiscount)
	}

	c.discount = &domain.Discount{Code: code, Type: typ, Value: value}
	return nil
}

// ActiveDiscount returns the stored discount, if any.
func (c *Cart) ActiveDiscount() (domain.Discount, bool) {
	if c.discount == nil {
		return domain.Discount{}, false
	}
	return *c.discount, true
}

func (c *Cart) SetTaxRegion(region string) {
	c.region = region
}

func (c *Cart) TaxRegion() string {
	return c.region
}

// Subtotal is the sum of price * quantity over all items.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Discount returns the discount amount for the current subtotal.
// A fixed discount never exceeds the subtotal.
func (c *Cart) Discount() decimal.Decimal {
	if c.discount == nil {
		return decimal.Zero
	}
	subtotal := c.Subtotal()
	switch c.discount.Type {
	case domain.DiscountPercentage:
		return subtotal.Mul(c.discount.Value).Div(decimal.NewFromInt(100))
	case domain.DiscountFixed:
		return decimal.Min(c.discount.Value, subtotal)
	}
	return decimal.Zero
}

// Tax is charged on the discounted subtotal.
func (c *Cart) Tax() decimal.Decimal {
	return c.discounted().Mul(pricing.TaxRate(c.region))
}

// Total is subtotal - discount + tax in the base currency.
func (c *Cart) Total() decimal.Decimal {
	return c.discounted().Add(c.Tax())
}

// TotalInCurrency converts Total without rounding. Unsupported currencies
// get the base currency amount.
func (c *Cart) TotalInCurrency(currency string) decimal.Decimal {
	rate, ok := pricing.ExchangeRate(currency)
	if !ok {
		return c.Total()
	}
	return c.Total().Mul(rate)
}

// Totals prices the cart in currency, rounding each amount to cents after
// conversion. An empty or unsupported currency reports base currency amounts.
func (c *Cart) Totals(currency string) domain.Totals {
	rate, ok := pricing.ExchangeRate(currency)
	if !ok {
		currency = pricing.BaseCurrency
		rate = decimal.NewFromInt(1)
	}

	convert := func(d decimal.Decimal) decimal.Decimal {
		return d.Mul(rate).Round(2)
	}

	return domain.Totals{
		Subtotal: convert(c.Subtotal()),
		Discount: convert(c.Discount()),
		Tax:      convert(c.Tax()),
		Total:    convert(c.Total()),
		Currency: currency,
	}
}

// IsValidForCheckout reports whether the discounted subtotal reaches the
// minimum order value.
func (c *Cart) IsValidForCheckout() bool {
	return c.discounted().GreaterThanOrEqual(pricing.MinCheckoutValue)
}

func (c *Cart) discounted() decimal.Decimal {
	return c.Subtotal().Sub(c.Discount())
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].ID == productID {
			return i
		}
	}
	return -1
}

func checkQuantity(quantity int) error {
	if quantity < 1 {
		return invalid("quantity", quantity, ErrQuantityBelowMin)
	}
	if quantity > pricing.MaxQuantityPerItem {
		return invalid("quantity", quantity, ErrQuantityExceedsMax)
	}
	return nil
}
