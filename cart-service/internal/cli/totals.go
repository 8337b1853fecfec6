package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fjod/go_cart/pricing/cart-service/internal/config"
	"github.com/fjod/go_cart/pricing/cart-service/internal/scenario"
	"github.com/fjod/go_cart/pricing/cart-service/internal/service"
)

type runFlags struct {
	file            string
	currency        string
	continueOnError bool
}

func (f *runFlags) bind(c *cobra.Command, cfg config.Config) {
	c.Flags().StringVarP(&f.file, "file", "f", "", "Scenario file (required)")
	c.Flags().StringVar(&f.currency, "currency", cfg.Currency, "Reporting currency (USD, EUR, GBP); overrides the scenario")
	c.Flags().BoolVar(&f.continueOnError, "continue-on-error", false, "Keep applying steps after a failing one")
	_ = c.MarkFlagRequired("file")
}

// run loads and executes the scenario. Currency precedence is flag,
// then scenario file, then config. Codes are case-insensitive.
func (f *runFlags) run(c *cobra.Command, cfg config.Config, log *zap.Logger) (*service.Report, error) {
	sc, err := scenario.Load(f.file)
	if err != nil {
		return nil, err
	}

	currency := ""
	if c.Flags().Changed("currency") {
		currency = strings.ToUpper(strings.TrimSpace(f.currency))
	} else if sc.Currency == "" {
		currency = cfg.Currency
	}

	r := service.NewRunner(log)
	r.ContinueOnError = f.continueOnError
	return r.Run(c.Context(), sc, currency)
}

func totalsCmd(cfg config.Config, log *zap.Logger) *cobra.Command {
	var flags runFlags
	var output string

	c := &cobra.Command{
		Use:   "totals",
		Short: "Run a scenario file and print the cart totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			rep, err := flags.run(cmd, cfg, log)
			if err != nil {
				return err
			}

			if err := printReport(cmd.OutOrStdout(), rep, output); err != nil {
				return err
			}
			return rep.FailureErr()
		},
	}

	flags.bind(c, cfg)
	c.Flags().StringVarP(&output, "output", "o", cfg.Output, "Output format: text|json")
	return c
}
