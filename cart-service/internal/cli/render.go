package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/fjod/go_cart/pricing/cart-service/internal/config"
	"github.com/fjod/go_cart/pricing/cart-service/internal/pricing"
	"github.com/fjod/go_cart/pricing/cart-service/internal/service"
)

type theme struct {
	title lipgloss.Style
	label lipgloss.Style
	faint lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
}

func styles() theme {
	return theme{
		title: lipgloss.NewStyle().Bold(true),
		label: lipgloss.NewStyle().Width(14),
		faint: lipgloss.NewStyle().Faint(true),
		good:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		bad:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

func checkOutput(output string) error {
	if output != config.OutputText && output != config.OutputJSON {
		return fmt.Errorf("unsupported output %q (want %s or %s)", output, config.OutputText, config.OutputJSON)
	}
	return nil
}

type jsonReport struct {
	*service.Report
	Failures      []string `json:"failures,omitempty"`
	CheckoutError string   `json:"checkout_error,omitempty"`
}

func printReport(w io.Writer, rep *service.Report, output string) error {
	if output == config.OutputJSON {
		jr := jsonReport{Report: rep}
		for _, f := range rep.Failures {
			jr.Failures = append(jr.Failures, f.Error())
		}
		if rep.CheckoutErr != nil {
			jr.CheckoutError = rep.CheckoutErr.Error()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jr)
	}

	st := styles()
	if rep.Scenario != "" {
		fmt.Fprintln(w, st.title.Render(rep.Scenario))
	}
	fmt.Fprintln(w, st.faint.Render("cart "+rep.CartID))

	fmt.Fprintln(w, st.title.Render("Items ("+pricing.BaseCurrency+")"))
	if len(rep.Items) == 0 {
		fmt.Fprintln(w, st.faint.Render("  (empty)"))
	}
	for _, item := range rep.Items {
		fmt.Fprintf(w, "  %s %-24s %2d x %10s = %10s\n",
			st.label.Render(item.ID), item.Name, item.Quantity,
			item.Price.StringFixed(2), item.LineTotal().StringFixed(2))
	}

	if len(rep.Catalog) > 0 {
		fmt.Fprintln(w, st.title.Render("Catalog ("+pricing.BaseCurrency+")"))
		for _, p := range rep.Catalog {
			fmt.Fprintf(w, "  %s %-24s %10s\n", st.label.Render(p.ID), p.Name, p.Price.StringFixed(2))
		}
	}

	t := rep.Totals
	fmt.Fprintln(w, st.title.Render("Totals ("+t.Currency+")"))
	fmt.Fprintf(w, "  %s %10s\n", st.label.Render("Subtotal"), t.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "  %s %10s\n", st.label.Render("Discount"), t.Discount.Neg().StringFixed(2))
	fmt.Fprintf(w, "  %s %10s\n", st.label.Render("Tax"), t.Tax.StringFixed(2))
	fmt.Fprintf(w, "  %s %10s\n", st.label.Render("Total"), t.Total.StringFixed(2))

	if rep.CheckoutErr == nil {
		fmt.Fprintln(w, st.good.Render("ready for checkout"))
	} else {
		fmt.Fprintln(w, st.bad.Render("not ready for checkout: "+rep.CheckoutErr.Error()))
	}
	for _, f := range rep.Failures {
		fmt.Fprintln(w, st.bad.Render("failed "+f.Error()))
	}
	return nil
}
