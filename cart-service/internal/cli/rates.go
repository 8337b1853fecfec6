package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_cart/pricing/cart-service/internal/config"
	"github.com/fjod/go_cart/pricing/cart-service/internal/pricing"
)

func ratesCmd(cfg config.Config) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   "rates",
		Short: "Print the regional tax rates and exchange rates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == config.OutputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string][]pricing.Rate{
					"tax":      pricing.TaxRates(),
					"exchange": pricing.ExchangeRates(),
				})
			}

			st := styles()
			fmt.Fprintln(out, st.title.Render("Tax rates"))
			for _, r := range pricing.TaxRates() {
				fmt.Fprintf(out, "  %s %s%%\n", st.label.Render(r.Key), r.Rate.Shift(2).String())
			}
			fmt.Fprintln(out, st.faint.Render("  other regions are not taxed"))
			fmt.Fprintln(out, st.title.Render("Exchange rates from "+pricing.BaseCurrency))
			for _, r := range pricing.ExchangeRates() {
				fmt.Fprintf(out, "  %s %s\n", st.label.Render(r.Key), r.Rate.String())
			}
			return nil
		},
	}

	c.Flags().StringVarP(&output, "output", "o", cfg.Output, "Output format: text|json")
	return c
}
