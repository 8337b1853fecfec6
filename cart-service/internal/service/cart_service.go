package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fjod/go_cart/pricing/cart-service/internal/cart"
	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
	"github.com/fjod/go_cart/pricing/pkg/logger"
)

const tracerName = "github.com/fjod/go_cart/pricing/cart-service"

// CartService drives a single cart and logs every change to it.
type CartService struct {
	cart   *cart.Cart
	log    *zap.Logger
	tracer trace.Tracer
}

func NewCartService(log *zap.Logger) *CartService {
	if log == nil {
		log = zap.NewNop()
	}
	c := cart.New()
	return &CartService{
		cart:   c,
		log:    log.With(zap.String("cart_id", c.ID())),
		tracer: otel.Tracer(tracerName),
	}
}

// Cart exposes the underlying cart for read access.
func (s *CartService) Cart() *cart.Cart {
	return s.cart
}

func (s *CartService) AddItem(ctx context.Context, product domain.Product, quantity int) error {
	ctx, span := s.start(ctx, "cart.AddItem",
		attribute.String("product_id", product.ID),
		attribute.Int("quantity", quantity))
	defer span.End()

	if err := s.cart.AddItem(product, quantity); err != nil {
		s.fail(ctx, span, "add item error", err, zap.String("product_id", product.ID))
		return err
	}

	logger.WithContext(ctx, s.log).Info("item added",
		zap.String("product_id", product.ID),
		zap.Int("quantity", quantity),
		zap.Int("item_count", s.cart.ItemCount()))
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	ctx, span := s.start(ctx, "cart.UpdateQuantity",
		attribute.String("product_id", productID),
		attribute.Int("quantity", quantity))
	defer span.End()

	if err := s.cart.UpdateQuantity(productID, quantity); err != nil {
		s.fail(ctx, span, "update item quantity error", err, zap.String("product_id", productID))
		return err
	}

	logger.WithContext(ctx, s.log).Info("quantity updated",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, productID string) error {
	ctx, span := s.start(ctx, "cart.RemoveItem", attribute.String("product_id", productID))
	defer span.End()

	s.cart.RemoveItem(productID)

	logger.WithContext(ctx, s.log).Info("item removed", zap.String("product_id", productID))
	return nil
}

func (s *CartService) ClearCart(ctx context.Context) error {
	ctx, span := s.start(ctx, "cart.Clear")
	defer span.End()

	s.cart.Clear()

	logger.WithContext(ctx, s.log).Info("cart cleared")
	return nil
}

func (s *CartService) ApplyDiscount(ctx context.Context, code string, typ domain.DiscountType, value decimal.Decimal) error {
	ctx, span := s.start(ctx, "cart.ApplyDiscount",
		attribute.String("code", code),
		attribute.String("type", string(typ)))
	defer span.End()

	if err := s.cart.ApplyDiscount(code, typ, value); err != nil {
		s.fail(ctx, span, "apply discount error", err, zap.String("code", code))
		return err
	}

	logger.WithContext(ctx, s.log).Info("discount applied",
		zap.String("code", code),
		zap.String("type", string(typ)),
		zap.Stringer("value", value))
	return nil
}

func (s *CartService) SetTaxRegion(ctx context.Context, region string) error {
	ctx, span := s.start(ctx, "cart.SetTaxRegion", attribute.String("region", region))
	defer span.End()

	s.cart.SetTaxRegion(region)

	logger.WithContext(ctx, s.log).Info("tax region set", zap.String("region", region))
	return nil
}

// Totals prices the cart in currency.
func (s *CartService) Totals(ctx context.Context, currency string) domain.Totals {
	ctx, span := s.start(ctx, "cart.Totals", attribute.String("currency", currency))
	defer span.End()

	totals := s.cart.Totals(currency)

	logger.WithContext(ctx, s.log).Debug("totals computed",
		zap.String("currency", totals.Currency),
		zap.Stringer("total", totals.Total))
	return totals
}

// Checkout verifies the cart could be handed to checkout. It does not
// change the cart.
func (s *CartService) Checkout(ctx context.Context) error {
	ctx, span := s.start(ctx, "cart.Checkout")
	defer span.End()

	var err error
	switch {
	case len(s.cart.Items()) == 0:
		err = ErrEmptyCart
	case !s.cart.IsValidForCheckout():
		err = ErrBelowMinimumOrder
	}
	if err != nil {
		s.fail(ctx, span, "checkout rejected", err)
		return err
	}

	logger.WithContext(ctx, s.log).Info("cart ready for checkout")
	return nil
}

// Apply executes one scenario step.
func (s *CartService) Apply(ctx context.Context, step domain.Step) error {
	switch step.Op {
	case domain.OpAdd:
		return s.AddItem(ctx, step.Product, step.Quantity)
	case domain.OpUpdate:
		return s.UpdateQuantity(ctx, step.ProductID, step.Quantity)
	case domain.OpRemove:
		return s.RemoveItem(ctx, step.ProductID)
	case domain.OpClear:
		return s.ClearCart(ctx)
	case domain.OpDiscount:
		return s.ApplyDiscount(ctx, step.Discount.Code, step.Discount.Type, step.Discount.Value)
	case domain.OpRegion:
		return s.SetTaxRegion(ctx, step.Region)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
}

func (s *CartService) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("cart_id", s.cart.ID()))
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *CartService) fail(ctx context.Context, span trace.Span, msg string, err error, fields ...zap.Field) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var vErr *cart.ValidationError
	if errors.As(err, &vErr) {
		fields = append(fields, zap.String("field", vErr.Field))
	}
	fields = append(fields, zap.Error(err))
	logger.WithContext(ctx, s.log).Warn(msg, fields...)
}
