package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fjod/go_cart/pricing/cart-service/internal/config"
)

func checkCmd(cfg config.Config, log *zap.Logger) *cobra.Command {
	var flags runFlags

	c := &cobra.Command{
		Use:   "check",
		Short: "Report whether a scenario's cart meets the checkout minimum",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := flags.run(cmd, cfg, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := styles()
			if rep.CheckoutErr != nil {
				fmt.Fprintf(out, "%s %v\n", st.bad.Render("NOT READY"), rep.CheckoutErr)
			} else {
				fmt.Fprintf(out, "%s total %s %s\n",
					st.good.Render("READY"), rep.Totals.Total.StringFixed(2), rep.Totals.Currency)
			}
			for _, f := range rep.Failures {
				fmt.Fprintln(out, st.bad.Render("failed "+f.Error()))
			}
			return errors.Join(rep.CheckoutErr, rep.FailureErr())
		},
	}

	flags.bind(c, cfg)
	return c
}
