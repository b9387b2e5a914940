// Package renderer turns the ledger's tabular views into markdown for
// terminal display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/yhlin/divtrack"
)

// HoldingMarkdown renders the purchase-history view.
func HoldingMarkdown(rows []divtrack.HoldingRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Purchase History\n\n")
	if len(rows) == 0 {
		fmt.Fprintln(&b, "No purchase lots recorded.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Security | Name | Date | Quantity | Avg Price |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s |\n",
			row.SecurityID,
			row.SecurityName,
			row.Date,
			row.Quantity,
			row.AvgPrice.Fixed2(),
		)
	}
	return b.String()
}

// EarningMarkdown renders the per-security earning summary.
func EarningMarkdown(rows []divtrack.EarningRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Earning Summary\n\n")
	if len(rows) == 0 {
		fmt.Fprintln(&b, "No securities recorded.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Security | Name | Shares | Price | Total Earning | Cash Dividend | Stock Dividend |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %d |\n",
			row.SecurityID,
			row.SecurityName,
			row.Quantity,
			row.CurrentPrice.Fixed2(),
			row.TotalEarning.Fixed2(),
			row.CashEarning.Fixed2(),
			row.StockDividend,
		)
	}
	return b.String()
}

// StatisticsMarkdown renders the portfolio statistics board.
func StatisticsMarkdown(row divtrack.StatisticsRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio Statistics\n\n")
	fmt.Fprintln(&b, "| Total Value | Total Earning | Total Cash Dividend | Earning Rate |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|")
	fmt.Fprintf(&b, "| %s | %s | %s | %s%% |\n",
		row.TotalValue.Fixed2(),
		row.TotalEarning.Fixed2(),
		row.TotalCashDividend.Fixed2(),
		row.EarningRate.StringFixed(2),
	)
	return b.String()
}

// EventTreeMarkdown renders the dividend-event drill-down as a nested
// list, one top-level item per security.
func EventTreeMarkdown(tree []divtrack.EventNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dividend Events\n\n")
	if len(tree) == 0 {
		fmt.Fprintln(&b, "No securities recorded.")
		return b.String()
	}
	for _, node := range tree {
		fmt.Fprintf(&b, "- %s\n", node.Label)
		for _, event := range node.Events {
			fmt.Fprintf(&b, "  - %s\n", event)
		}
	}
	return b.String()
}
