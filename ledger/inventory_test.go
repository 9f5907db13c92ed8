package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed775c6/Stock/ledger"
)

func TestInventoryLedger_AddAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	inventory := ledger.NewInventoryLedger(store)

	id := addProduct(t, store, "Chair", 50, 20, 10)

	product, err := inventory.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Chair", product.Name)
	assert.Equal(t, int64(10), product.Quantity)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(50)))
	assert.True(t, product.CostPrice.Equal(decimal.NewFromInt(20)))
	assert.False(t, product.CreatedAt.IsZero(), "creation time is stamped")
}

func TestInventoryLedger_DuplicateName_Rejected(t *testing.T) {
	// GIVEN: A product "Chair" already exists
	// WHEN: Another product with the same name is added
	// THEN: The add fails with ErrDuplicateProductName

	store := newTestStore(t)
	addProduct(t, store, "Chair", 50, 20, 10)

	_, err := ledger.NewInventoryLedger(store).Add(context.Background(), ledger.Product{
		Name:      "Chair",
		Price:     decimal.NewFromInt(60),
		Quantity:  5,
		CostPrice: decimal.NewFromInt(25),
		Brand:     "Other",
		Material:  "metal",
	})
	assert.ErrorIs(t, err, ledger.ErrDuplicateProductName)
}

func TestInventoryLedger_Update_RenameToExistingName_Rejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	addProduct(t, store, "Chair", 50, 20, 10)
	tableID := addProduct(t, store, "Table", 120, 60, 4)

	err := ledger.NewInventoryLedger(store).Update(ctx, tableID, ledger.Product{
		Name:      "Chair",
		Price:     decimal.NewFromInt(120),
		Quantity:  4,
		CostPrice: decimal.NewFromInt(60),
		Brand:     "Acme",
		Material:  "wood",
	})
	assert.ErrorIs(t, err, ledger.ErrDuplicateProductName)
}

func TestInventoryLedger_Update_ReplacesFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := addProduct(t, store, "Chair", 50, 20, 10)
	inventory := ledger.NewInventoryLedger(store)

	err := inventory.Update(ctx, id, ledger.Product{
		Name:      "Armchair",
		Price:     decimal.NewFromInt(75),
		Quantity:  8,
		CostPrice: decimal.NewFromInt(30),
		Brand:     "Acme",
		Material:  "leather",
	})
	require.NoError(t, err)

	product, err := inventory.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Armchair", product.Name)
	assert.Equal(t, int64(8), product.Quantity)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "leather", product.Material)
}

func TestInventoryLedger_Delete_LeavesSalesIntact(t *testing.T) {
	// GIVEN: A Chair with a recorded sale
	// WHEN: The product is deleted
	// THEN: The sale survives with its snapshots

	store := newTestStore(t)
	ctx := context.Background()
	id := addProduct(t, store, "Chair", 50, 20, 10)
	saleID := placeOrder(t, store, "Chair", 3)

	require.NoError(t, ledger.NewInventoryLedger(store).Delete(ctx, id))

	sale, err := ledger.NewSalesLedger(store).Get(ctx, saleID)
	require.NoError(t, err)
	assert.Equal(t, "Chair", sale.ProductName, "snapshot survives the product")
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(150)))
}

func TestInventoryLedger_GetUnknown(t *testing.T) {
	store := newTestStore(t)

	_, err := ledger.NewInventoryLedger(store).Get(context.Background(), 42)
	assert.ErrorIs(t, err, ledger.ErrProductNotFound)
}

func TestInventoryLedger_List_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	addProduct(t, store, "Chair", 50, 20, 10)
	addProduct(t, store, "Table", 120, 60, 4)

	products, err := ledger.NewInventoryLedger(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	// Same-second inserts fall back to id ordering, newest id first.
	assert.Equal(t, "Table", products[0].Name)
	assert.Equal(t, "Chair", products[1].Name)
}
