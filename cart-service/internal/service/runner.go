package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
	"github.com/fjod/go_cart/pricing/pkg/logger"
)

// Report is the outcome of running a scenario against a fresh cart.
type Report struct {
	RunID            string            `json:"run_id"`
	Scenario         string            `json:"scenario,omitempty"`
	CartID           string            `json:"cart_id"`
	Region           string            `json:"region,omitempty"`
	Catalog          []domain.Product  `json:"catalog,omitempty"`
	Items            []domain.CartItem `json:"items"`
	Totals           domain.Totals     `json:"totals"`
	ValidForCheckout bool              `json:"valid_for_checkout"`
	Failures         []*StepError      `json:"-"`
	CheckoutErr      error             `json:"-"`
}

type Runner struct {
	log    *zap.Logger
	tracer trace.Tracer

	// ContinueOnError records failing steps in the report instead of
	// stopping at the first one.
	ContinueOnError bool
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log, tracer: otel.Tracer(tracerName)}
}

// Run applies sc to a new cart and prices it. currency overrides the
// scenario's own currency when set.
func (r *Runner) Run(ctx context.Context, sc domain.Scenario, currency string) (*Report, error) {
	runID := uuid.New().String()
	ctx, span := r.tracer.Start(ctx, "scenario.Run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("scenario", sc.Name),
		attribute.Int("steps", len(sc.Steps)),
	))
	defer span.End()

	base := r.log.With(zap.String("run_id", runID))
	log := logger.WithContext(ctx, base)
	svc := NewCartService(base)

	if sc.Region != "" {
		if err := svc.SetTaxRegion(ctx, sc.Region); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	var failures []*StepError
	for i, step := range sc.Steps {
		err := svc.Apply(ctx, step)
		if err == nil {
			continue
		}
		stepErr := &StepError{Index: i, Op: step.Op, Err: err}
		if !r.ContinueOnError {
			span.SetStatus(codes.Error, stepErr.Error())
			log.Error("scenario aborted", zap.Int("step", i+1), zap.Error(err))
			return nil, stepErr
		}
		failures = append(failures, stepErr)
	}

	if currency == "" {
		currency = sc.Currency
	}
	totals := svc.Totals(ctx, currency)
	checkoutErr := svc.Checkout(ctx)
	c := svc.Cart()

	log.Info("scenario completed",
		zap.String("scenario", sc.Name),
		zap.Int("failures", len(failures)),
		zap.Stringer("total", totals.Total),
		zap.String("currency", totals.Currency))

	return &Report{
		RunID:            runID,
		Scenario:         sc.Name,
		CartID:           c.ID(),
		Region:           c.TaxRegion(),
		Catalog:          sc.Products,
		Items:            c.Items(),
		Totals:           totals,
		ValidForCheckout: checkoutErr == nil,
		Failures:         failures,
		CheckoutErr:      checkoutErr,
	}, nil
}

// FailureErr joins the recorded step failures, or returns nil.
func (rep *Report) FailureErr() error {
	errs := make([]error, len(rep.Failures))
	for i, f := range rep.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
