package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fjod/go_cart/pricing/cart-service/internal/cart"
	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
	"github.com/fjod/go_cart/pricing/cart-service/internal/pricing"
)

func orderScenario() domain.Scenario {
	return domain.Scenario{
		Name:     "order",
		Currency: "EUR",
		Region:   pricing.RegionCalifornia,
		Steps: []domain.Step{
			{Op: domain.OpAdd, Product: book("100"), Quantity: 1},
			{Op: domain.OpDiscount, Discount: domain.Discount{
				Code: "10OFF", Type: domain.DiscountFixed, Value: decimal.NewFromInt(10),
			}},
		},
	}
}

func TestRunner_Run_Success(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := NewRunner(zap.New(core))

	rep, err := r.Run(context.Background(), orderScenario(), "")
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.NotEmpty(t, rep.CartID)
	assert.Equal(t, "order", rep.Scenario)
	assert.Equal(t, pricing.RegionCalifornia, rep.Region)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "EUR", rep.Totals.Currency)
	assert.Equal(t, "88.8", rep.Totals.Total.String())
	assert.True(t, rep.ValidForCheckout)
	assert.NoError(t, rep.CheckoutErr)
	assert.Empty(t, rep.Failures)
	assert.NoError(t, rep.FailureErr())

	entries := logs.FilterMessage("scenario completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, rep.RunID, entries[0].ContextMap()["run_id"])
}

func TestRunner_Run_CurrencyOverride(t *testing.T) {
	rep, err := NewRunner(nil).Run(context.Background(), orderScenario(), "USD")
	require.NoError(t, err)

	assert.Equal(t, "USD", rep.Totals.Currency)
	assert.Equal(t, "96.53", rep.Totals.Total.String())
}

func TestRunner_Run_StopsAtFirstFailure(t *testing.T) {
	sc := orderScenario()
	sc.Steps = append([]domain.Step{{Op: domain.OpAdd, Product: book("1"), Quantity: 120}}, sc.Steps...)

	rep, err := NewRunner(nil).Run(context.Background(), sc, "")
	require.Error(t, err)
	assert.Nil(t, rep)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 0, stepErr.Index)
	assert.Equal(t, domain.OpAdd, stepErr.Op)
	assert.ErrorIs(t, err, cart.ErrQuantityExceedsMax)
	assert.Contains(t, err.Error(), "step 1 (add)")
}

func TestRunner_Run_ContinueOnError(t *testing.T) {
	sc := orderScenario()
	sc.Steps = append(sc.Steps,
		domain.Step{Op: domain.OpUpdate, ProductID: "book-1", Quantity: 0},
		domain.Step{Op: domain.OpAdd, Product: book("0"), Quantity: 1},
	)
	r := NewRunner(nil)
	r.ContinueOnError = true

	rep, err := r.Run(context.Background(), sc, "")
	require.NoError(t, err)

	require.Len(t, rep.Failures, 2)
	assert.Equal(t, 2, rep.Failures[0].Index)
	assert.Equal(t, 3, rep.Failures[1].Index)
	assert.ErrorIs(t, rep.FailureErr(), cart.ErrQuantityBelowMin)
	assert.ErrorIs(t, rep.FailureErr(), cart.ErrNonPositivePrice)
	assert.Equal(t, "88.8", rep.Totals.Total.String())
}

func TestRunner_Run_EmptyScenario(t *testing.T) {
	rep, err := NewRunner(nil).Run(context.Background(), domain.Scenario{}, "")
	require.NoError(t, err)

	assert.Empty(t, rep.Items)
	assert.Equal(t, pricing.BaseCurrency, rep.Totals.Currency)
	assert.False(t, rep.ValidForCheckout)
	assert.ErrorIs(t, rep.CheckoutErr, ErrEmptyCart)
}

func TestRunner_Run_TraceFieldsLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36},
		SpanID:     trace.SpanID{0x00, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	_, err := NewRunner(zap.New(core)).Run(ctx, orderScenario(), "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var sawItemAdded bool
	for _, line := range lines {
		assert.Equal(t, 1, strings.Count(line, `"trace_id"`), line)
		assert.Equal(t, 1, strings.Count(line, `"span_id"`), line)
		assert.Equal(t, 1, strings.Count(line, `"run_id"`), line)
		assert.Contains(t, line, sc.TraceID().String())
		if strings.Contains(line, `"msg":"item added"`) {
			sawItemAdded = true
		}
	}
	assert.True(t, sawItemAdded)
}
