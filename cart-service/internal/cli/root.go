package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fjod/go_cart/pricing/cart-service/internal/config"
	"github.com/fjod/go_cart/pricing/pkg/logger"
)

// Execute runs the cart command line and returns the process exit code.
func Execute(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	log, err := logger.New(logger.Options{Service: "cart-service", Env: cfg.Env, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := NewRootCmd(cfg, log).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func NewRootCmd(cfg config.Config, log *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cart",
		Short:        "Price shopping cart scenarios: discounts, regional tax and currency conversion",
		SilenceUsage: true,
	}

	cmd.AddCommand(totalsCmd(cfg, log))
	cmd.AddCommand(checkCmd(cfg, log))
	cmd.AddCommand(ratesCmd(cfg))
	return cmd
}
