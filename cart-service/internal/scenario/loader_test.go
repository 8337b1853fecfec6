package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
)

func TestLoad_Success(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "order.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "books and notebooks", sc.Name)
	assert.Equal(t, "EUR", sc.Currency)
	assert.Equal(t, "California", sc.Region)
	require.Len(t, sc.Steps, 7)

	add := sc.Steps[0]
	assert.Equal(t, domain.OpAdd, add.Op)
	assert.Equal(t, "book-1", add.Product.ID)
	assert.Equal(t, "Go Handbook", add.Product.Name)
	assert.Equal(t, "29.99", add.Product.Price.String())
	assert.Equal(t, 3, add.Quantity)

	assert.Equal(t, "12.5", sc.Steps[1].Product.Price.String())

	discount := sc.Steps[2]
	assert.Equal(t, domain.OpDiscount, discount.Op)
	assert.Equal(t, "SAVE20", discount.Discount.Code)
	assert.Equal(t, domain.DiscountPercentage, discount.Discount.Type)
	assert.Equal(t, "20", discount.Discount.Value.String())

	assert.Equal(t, domain.Step{Op: domain.OpUpdate, ProductID: "book-1", Quantity: 4}, sc.Steps[3])
	assert.Equal(t, domain.Step{Op: domain.OpRemove, ProductID: "ghost"}, sc.Steps[4])
	assert.Equal(t, domain.Step{Op: domain.OpRegion, Region: "Texas"}, sc.Steps[5])

	pen := sc.Steps[6]
	assert.Equal(t, 1, pen.Quantity, "quantity defaults to one")
	assert.Equal(t, "pen", pen.Product.Name, "name defaults to the id")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(nil)

	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalid))
	assert.Contains(t, err.Error(), "file is empty")
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - op: clear\n    colour: red\n"))

	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalid))
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"no steps", "name: empty\n", "steps: failed required"},
		{"unknown op", "steps:\n  - op: explode\n", "steps[0].op: failed oneof"},
		{"add without id", "steps:\n  - op: add\n    price: 1\n", "steps[0].id: failed required_if"},
		{"add without price", "steps:\n  - op: add\n    id: a\n", "steps[0].price: price is required"},
		{"product without price", "products:\n  - id: a\nsteps:\n  - op: clear\n", "products[0].price: failed required"},
		{"duplicate product", "products:\n  - {id: a, price: 1}\n  - {id: a, price: 2}\nsteps:\n  - op: clear\n", "duplicate product id"},
		{"non numeric price", "steps:\n  - op: add\n    id: a\n    price: cheap\n", "steps[0].price: failed numeric"},
		{"update without quantity", "steps:\n  - op: update\n    id: a\n", "steps[0].quantity: failed required_if"},
		{"remove without id", "steps:\n  - op: remove\n", "steps[0].id: failed required_if"},
		{"bad discount type", "steps:\n  - op: discount\n    type: bogo\n    value: 1\n", "steps[0].type: failed oneof"},
		{"discount without value", "steps:\n  - op: discount\n    type: fixed\n", "steps[0].value: failed required_if"},
		{"region without name", "steps:\n  - op: region\n", "steps[0].region: failed required_if"},
		{"bad currency", "currency: euro\nsteps:\n  - op: clear\n", "currency: failed len"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))

			require.Error(t, err)
			assert.True(t, IsKind(err, KindInvalid))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_NegativeValuesReachTheCart(t *testing.T) {
	sc, err := Parse([]byte("steps:\n  - op: add\n    id: a\n    price: -10\n    quantity: 200\n"))
	require.NoError(t, err)

	assert.Equal(t, "-10", sc.Steps[0].Product.Price.String())
	assert.Equal(t, 200, sc.Steps[0].Quantity)
}

func TestMapScenario_UpdateWithoutQuantity(t *testing.T) {
	_, err := MapScenario("x.yaml", YAMLScenario{Steps: []YAMLStep{{Op: "update", ID: "a"}}})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalid))
	assert.Contains(t, err.Error(), "steps[0].quantity")
}

func TestParse_CatalogProducts(t *testing.T) {
	doc := `products:
  - id: book-1
    name: Go Handbook
    price: 29.99
  - id: pen
    price: 1.25
steps:
  - op: add
    id: book-1
    quantity: 2
  - op: add
    id: pen
    name: Blue Pen
  - op: add
    id: book-1
    price: 19.99
`
	sc, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 3)

	assert.Equal(t, "Go Handbook", sc.Steps[0].Product.Name)
	assert.Equal(t, "29.99", sc.Steps[0].Product.Price.String())
	assert.Equal(t, 2, sc.Steps[0].Quantity)

	assert.Equal(t, "Blue Pen", sc.Steps[1].Product.Name, "step name overrides the catalog name")
	assert.Equal(t, "1.25", sc.Steps[1].Product.Price.String())

	assert.Equal(t, "19.99", sc.Steps[2].Product.Price.String(), "inline price wins over the catalog")

	require.Len(t, sc.Products, 2)
	assert.Equal(t, "book-1", sc.Products[0].ID)
	assert.Equal(t, "pen", sc.Products[1].ID)
	assert.Equal(t, "pen", sc.Products[1].Name, "catalog name defaults to the id")
}
