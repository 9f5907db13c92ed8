/*
metrics.go - Dashboard metrics summary

Revenue is the sum of all sale totals. "Expenses" is the cost value of the
current inventory plus the cost value of everything ever sold (joined to a
still-existing product by name); profit is revenue minus that. Counting
both unsold stock and sold stock at cost arguably double-counts the cost
basis relative to a cost-of-goods-sold definition; the figure is kept as
the application has always computed it.
*/
package report

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Metric is one dashboard card, display fields included.
type Metric struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// MetricsSummary computes the four dashboard cards: total revenue, product
// count, total expense and profit.
func (e *Engine) MetricsSummary(ctx context.Context) ([]Metric, error) {
	products, err := e.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := e.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	costByName := make(map[string]decimal.Decimal, len(products))
	inventoryCost := decimal.Zero
	for _, p := range products {
		costByName[p.Name] = p.CostPrice
		inventoryCost = inventoryCost.Add(p.CostPrice.Mul(decimal.NewFromInt(p.Quantity)))
	}

	revenue := decimal.Zero
	soldCost := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.TotalAmount)
		if cost, ok := costByName[s.ProductName]; ok {
			soldCost = soldCost.Add(cost.Mul(decimal.NewFromInt(s.Quantity)))
		}
	}

	expenses := inventoryCost.Add(soldCost)
	profit := revenue.Sub(expenses)

	return []Metric{
		{
			Title: "Gains Total",
			Value: formatAmount(revenue) + " TND",
			Icon:  "💰",
			Color: "bg-green-100 dark:bg-gray-800 text-gray-800 dark:text-gray-200",
		},
		{
			Title: "Produits Total",
			Value: formatAmount(decimal.NewFromInt(int64(len(products)))),
			Icon:  "📦",
			Color: "bg-blue-100 dark:bg-gray-800 text-gray-800 dark:text-gray-200",
		},
		{
			Title: "Dépenses Total",
			Value: formatAmount(expenses) + " TND",
			Icon:  "💸",
			Color: "bg-red-100 dark:bg-gray-800 text-gray-800 dark:text-gray-200",
		},
		{
			Title: "Bénéfice Total",
			Value: formatAmount(profit) + " TND",
			Icon:  "📈",
			Color: "bg-purple-100 dark:bg-gray-800 text-gray-800 dark:text-gray-200",
		},
	}, nil
}

// formatAmount renders an amount rounded to whole units with space-grouped
// thousands, the display convention of the invoice paperwork.
func formatAmount(d decimal.Decimal) string {
	s := d.Round(0).String()

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return b.String()
}
