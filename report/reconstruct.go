/*
reconstruct.go - Historical quantity reconstruction

The pure core of the expense aggregates, kept free of storage so it can be
tested directly against hand-built rows.
*/
package report

import (
	"time"

	"github.com/Ahmed775c6/Stock/ledger"
)

// ReconstructedQuantity derives a product's purchased-quantity contribution
// for a period from its creation time, its current remaining stock, and its
// sales (already filtered to this product's name).
//
// A product created inside the period contributes its current stock plus
// everything sold in-period: together those are the units it was stocked
// with. A product created earlier contributes only its in-period sales.
// Sales are attributed to periods by their system creation time, not the
// user-supplied transaction date.
func ReconstructedQuantity(createdAt time.Time, currentQuantity int64, sales []ledger.Sale, p Period) int64 {
	var sold int64
	for _, s := range sales {
		if p.Contains(s.CreatedAt) {
			sold += s.Quantity
		}
	}
	if p.Contains(createdAt) {
		return currentQuantity + sold
	}
	return sold
}
