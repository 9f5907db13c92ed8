package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ahmed775c6/Stock/ledger"
	"github.com/Ahmed775c6/Stock/report"
)

func saleAt(created time.Time, qty int64) ledger.Sale {
	return ledger.Sale{ProductName: "Chair", Quantity: qty, CreatedAt: created}
}

func TestReconstructedQuantity_CreatedInPeriod_AddsCurrentStock(t *testing.T) {
	// GIVEN: A product created in March with 7 left in stock, 3 sold in March
	// WHEN: Reconstructing for March
	// THEN: The product was stocked with 7 + 3 = 10 units that period

	created := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	sales := []ledger.Sale{
		saleAt(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC), 3),
	}

	qty := report.ReconstructedQuantity(created, 7, sales, report.Month(2025, time.March))
	assert.Equal(t, int64(10), qty)
}

func TestReconstructedQuantity_CreatedEarlier_OnlyInPeriodSales(t *testing.T) {
	// GIVEN: A product created in January, sales of 3 in March and 2 in April
	// WHEN: Reconstructing for March
	// THEN: Only the March sale counts; current stock does not

	created := time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC)
	sales := []ledger.Sale{
		saleAt(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC), 3),
		saleAt(time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC), 2),
	}

	qty := report.ReconstructedQuantity(created, 7, sales, report.Month(2025, time.March))
	assert.Equal(t, int64(3), qty)
}

func TestReconstructedQuantity_NoActivity_Zero(t *testing.T) {
	created := time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC)

	qty := report.ReconstructedQuantity(created, 7, nil, report.Month(2025, time.March))
	assert.Equal(t, int64(0), qty)
}

func TestReconstructedQuantity_YearPeriod_SpansMonths(t *testing.T) {
	// GIVEN: A product created in 2024, sales in March and April 2025,
	//        and one back in 2024
	// WHEN: Reconstructing for the year 2025
	// THEN: Both 2025 sales count, the 2024 one does not

	created := time.Date(2024, time.November, 5, 10, 0, 0, 0, time.UTC)
	sales := []ledger.Sale{
		saleAt(time.Date(2024, time.December, 20, 9, 0, 0, 0, time.UTC), 4),
		saleAt(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC), 3),
		saleAt(time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC), 2),
	}

	qty := report.ReconstructedQuantity(created, 7, sales, report.Year(2025))
	assert.Equal(t, int64(5), qty)
}

func TestReconstructedQuantity_DayPeriod(t *testing.T) {
	// GIVEN: A product created on March 10 with 7 left, one sale that day
	//        and one the day after
	// WHEN: Reconstructing for March 10
	// THEN: Current stock plus the same-day sale

	created := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	sales := []ledger.Sale{
		saleAt(time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC), 3),
		saleAt(time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC), 2),
	}

	qty := report.ReconstructedQuantity(created, 7, sales, report.Day("2025-03-10"))
	assert.Equal(t, int64(10), qty)
}

func TestPeriodLabel_Localized(t *testing.T) {
	assert.Equal(t, "2025", report.Year(2025).Label("fr"))
	assert.Equal(t, "Janvier 2025", report.Month(2025, time.January).Label("fr"))
	assert.Equal(t, "January 2025", report.Month(2025, time.January).Label("en"))
	assert.Equal(t, "2025-03-10", report.Day("2025-03-10").Label("fr"))

	// Unknown languages fall back to French.
	assert.Equal(t, "Janvier 2025", report.Month(2025, time.January).Label("de"))
}
