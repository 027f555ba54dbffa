package billing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturapy/facturapy-api/internal/application/billing"
	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/application/inventory"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/money"
)

type billingFixture struct {
	store    *memStore
	uc       *billing.UseCase
	userID   string
	clientID string
}

func newBillingFixture(t *testing.T, rates money.RateProvider) *billingFixture {
	t.Helper()
	s := newMemStore()
	userID := uuid.New().String()
	clientID := uuid.New().String()
	s.clients[clientID] = &entity.Client{
		ID:     clientID,
		UserID: userID,
		Name:   "Comercial Asunción SA",
		Email:  "compras@comercialasu.com.py",
	}
	if rates == nil {
		rates = stubRates{rate: decimal.NewFromInt(1)}
	}
	uc := billing.NewUseCase(
		&fakeTxRunner{s: s},
		inventory.NewStockLedger(),
		&fakeClientRepo{s: s},
		&fakeProductRepo{s: s},
		&fakeBillRepo{s: s},
		&fakePaymentRepo{s: s},
		rates,
	)
	return &billingFixture{store: s, uc: uc, userID: userID, clientID: clientID}
}

func (f *billingFixture) addProduct(name string, price, taxRate, stock int64) string {
	id := uuid.New().String()
	f.store.products[id] = &entity.Product{
		ID:        id,
		UserID:    f.userID,
		SKU:       "SKU-" + id[:8],
		Name:      name,
		SellPrice: decimal.NewFromInt(price),
		TaxRate:   decimal.NewFromInt(taxRate),
		StockQty:  decimal.NewFromInt(stock),
	}
	return id
}

func TestCreateBill_TotalsAndStockDeduction(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Yerba mate 1kg", 10, 10, 10)

	resp, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "PYG",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items: []dto.BillItemRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	// 3 x 10 + IVA 10% = 33.00
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("33.00")),
		"total = %s", resp.TotalAmount)
	assert.Equal(t, entity.BillStatusUnpaid, resp.Status)
	assert.Equal(t, "INV-1", resp.Number)
	assert.True(t, resp.BalanceDue.Equal(resp.TotalAmount))

	// Stock descontado y movimiento "sale" con delta negativo.
	assert.True(t, f.store.products[productID].StockQty.Equal(decimal.NewFromInt(7)))
	require.Len(t, f.store.movements, 1)
	mov := f.store.movements[0]
	assert.Equal(t, entity.MovementTypeSale, mov.Type)
	assert.Equal(t, entity.SourceTypeBill, mov.SourceType)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(-3)))

	// Consistencia libro vs cantidad: suma de deltas = stock actual - inicial.
	sum, _ := (&fakeMovementRepo{s: f.store}).SumByProduct(productID)
	assert.True(t, sum.Equal(decimal.NewFromInt(-3)))
}

func TestCreateBill_CapturesProductPriceAndTax(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Harina 1kg", 5000, 5, 100)

	resp, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-15",
		Items: []dto.BillItemRequest{
			// Sin precio ni tasa: se toman del producto.
			{ProductID: productID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Price.Equal(decimal.NewFromInt(5000)))
	assert.True(t, resp.Items[0].TaxRate.Equal(decimal.NewFromInt(5)))
	// Moneda por defecto cuando el request no la trae.
	assert.Equal(t, "PYG", resp.Currency)
}

func TestCreateBill_InsufficientStockRollsBackEverything(t *testing.T) {
	f := newBillingFixture(t, nil)
	okID := f.addProduct("Azúcar 1kg", 8000, 10, 50)
	shortID := f.addProduct("Aceite 1lt", 15000, 10, 2)

	_, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items: []dto.BillItemRequest{
			{ProductID: okID, Quantity: decimal.NewFromInt(5)},
			{ProductID: shortID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo o nada: ni factura, ni movimientos, ni deducción del primer ítem.
	assert.Empty(t, f.store.bills)
	assert.Empty(t, f.store.movements)
	assert.True(t, f.store.products[okID].StockQty.Equal(decimal.NewFromInt(50)))
	assert.True(t, f.store.products[shortID].StockQty.Equal(decimal.NewFromInt(2)))
}

func TestCreateBill_ConcurrentSalesDoNotOversell(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Yerba mate 1kg", 10000, 10, 5)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Cada goroutine arma su propio request: las líneas se
			// completan in situ con los defaults del producto.
			_, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
				ClientID:  f.clientID,
				IssueDate: "2026-08-01",
				DueDate:   "2026-08-31",
				Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(3)}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// Stock 5, dos ventas de 3: gana exactamente una, la otra rebota.
	var oks, shorts int
	for err := range errs {
		switch {
		case err == nil:
			oks++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			shorts++
		}
	}
	assert.Equal(t, 1, oks)
	assert.Equal(t, 1, shorts)

	assert.True(t, f.store.products[productID].StockQty.Equal(decimal.NewFromInt(2)))
	assert.Len(t, f.store.bills, 1)
	require.Len(t, f.store.movements, 1)
	assert.True(t, f.store.movements[0].Quantity.Equal(decimal.NewFromInt(-3)))

	sum, _ := (&fakeMovementRepo{s: f.store}).SumByProduct(productID)
	assert.True(t, sum.Equal(decimal.NewFromInt(-3)))
}

func TestCreateBill_SequentialNumbers(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Fideos 500g", 4000, 10, 100)

	req := dto.CreateBillRequest{
		ClientID:  f.clientID,
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	}
	first, err := f.uc.CreateBill(context.Background(), f.userID, req)
	require.NoError(t, err)
	second, err := f.uc.CreateBill(context.Background(), f.userID, req)
	require.NoError(t, err)

	assert.Equal(t, "INV-1", first.Number)
	assert.Equal(t, "INV-2", second.Number)
}

func TestApplyPayment_FullPaymentMarksPaidAndRecordsIncome(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Yerba mate 1kg", 10, 10, 10)

	bill, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "PYG",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	resp, err := f.uc.ApplyPayment(context.Background(), f.userID, bill.ID, dto.ApplyPaymentRequest{
		Amount:   decimal.RequireFromString("33.00"),
		Currency: "PYG",
		Method:   "efectivo",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BillStatusPaid, resp.Status)
	assert.True(t, resp.BalanceDue.IsZero())
	assert.NotEmpty(t, resp.PaidDate)

	require.Len(t, f.store.payments, 1)
	require.Len(t, f.store.txns, 1)
	txn := f.store.txns[0]
	assert.Equal(t, entity.TransactionTypeIncome, txn.Type)
	assert.Equal(t, entity.SourceTypeBill, txn.SourceModule)
	assert.Equal(t, bill.ID, txn.SourceID)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("33.00")))
}

func TestApplyPayment_PartialThenFullIsMonotonic(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Azúcar 1kg", 10, 0, 10)

	bill, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "PYG",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err) // total 100.00

	partial, err := f.uc.ApplyPayment(context.Background(), f.userID, bill.ID, dto.ApplyPaymentRequest{
		Amount:   decimal.NewFromInt(40),
		Currency: "PYG",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPartiallyPaid, partial.Status)
	assert.True(t, partial.BalanceDue.Equal(decimal.NewFromInt(60)))
	assert.Empty(t, partial.PaidDate)

	full, err := f.uc.ApplyPayment(context.Background(), f.userID, bill.ID, dto.ApplyPaymentRequest{
		Amount:   decimal.NewFromInt(60),
		Currency: "PYG",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPaid, full.Status)
	assert.True(t, full.PaidAmount.Equal(decimal.NewFromInt(100)))
	assert.Len(t, f.store.payments, 2)
	assert.Len(t, f.store.txns, 2)
}

func TestApplyPayment_CrossCurrencyConvertsAndKeepsOriginal(t *testing.T) {
	// 1 PYG = 1/7250 USD; 2000 PYG → 0.2758... → 0.28 USD redondeado.
	rate := decimal.NewFromInt(1).Div(decimal.NewFromInt(7250))
	f := newBillingFixture(t, stubRates{rate: rate})
	productID := f.addProduct("Repuesto importado", 50, 0, 10)

	bill, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "USD",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err) // total 50.00 USD

	resp, err := f.uc.ApplyPayment(context.Background(), f.userID, bill.ID, dto.ApplyPaymentRequest{
		Amount:   decimal.NewFromInt(2000),
		Currency: "PYG",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BillStatusPartiallyPaid, resp.Status)
	assert.True(t, resp.PaidAmount.Equal(decimal.RequireFromString("0.28")),
		"paid = %s", resp.PaidAmount)

	require.Len(t, f.store.payments, 1)
	p := f.store.payments[0]
	assert.Equal(t, "USD", p.Currency)
	require.NotNil(t, p.OriginalAmount)
	assert.True(t, p.OriginalAmount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "PYG", p.OriginalCurrency)
}

func TestApplyPayment_DegradedRateIsFlagged(t *testing.T) {
	rate := decimal.NewFromInt(1).Div(decimal.NewFromInt(7250))
	f := newBillingFixture(t, stubRates{rate: rate, degraded: true})
	productID := f.addProduct("Repuesto importado", 50, 0, 10)

	bill, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "USD",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	resp, err := f.uc.ApplyPayment(context.Background(), f.userID, bill.ID, dto.ApplyPaymentRequest{
		Amount:   decimal.NewFromInt(2000),
		Currency: "PYG",
	})
	require.NoError(t, err)
	assert.True(t, resp.RateDegraded)
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Yerba mate 1kg", 10, 10, 10)

	bill, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "PYG",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err) // total 33.00

	_, err = f.uc.ApplyPayment(context.Background(), f.userID, bill.ID, dto.ApplyPaymentRequest{
		Amount:   decimal.NewFromInt(50),
		Currency: "PYG",
	})
	require.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	// Sin mutación: ni pago, ni asiento, ni cambio de estado.
	assert.Empty(t, f.store.payments)
	assert.Empty(t, f.store.txns)
	stored := f.store.bills[bill.ID]
	assert.Equal(t, entity.BillStatusUnpaid, stored.Status)
	assert.True(t, stored.PaidAmount.IsZero())
}

func TestDeleteBill_ReversesStockWithReturnMovements(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Yerba mate 1kg", 10, 10, 10)

	bill, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "PYG",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)
	require.True(t, f.store.products[productID].StockQty.Equal(decimal.NewFromInt(6)))

	err = f.uc.DeleteBill(context.Background(), f.userID, bill.ID)
	require.NoError(t, err)

	// Stock restaurado; el historial conserva venta y devolución.
	assert.True(t, f.store.products[productID].StockQty.Equal(decimal.NewFromInt(10)))
	require.Len(t, f.store.movements, 2)
	assert.Equal(t, entity.MovementTypeSale, f.store.movements[0].Type)
	assert.Equal(t, entity.MovementTypeReturn, f.store.movements[1].Type)
	assert.True(t, f.store.movements[1].Quantity.Equal(decimal.NewFromInt(4)))
	assert.Empty(t, f.store.bills)
	assert.Empty(t, f.store.billItems)
}

func TestDeleteBill_WithPaymentsIsRejected(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Yerba mate 1kg", 10, 10, 10)

	bill, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "PYG",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	_, err = f.uc.ApplyPayment(context.Background(), f.userID, bill.ID, dto.ApplyPaymentRequest{
		Amount:   decimal.NewFromInt(10),
		Currency: "PYG",
	})
	require.NoError(t, err)

	err = f.uc.DeleteBill(context.Background(), f.userID, bill.ID)
	require.ErrorIs(t, err, domain.ErrHasPayments)
	assert.Contains(t, f.store.bills, bill.ID)
}

func TestGetBill_OtherUsersBillIsForbidden(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Yerba mate 1kg", 10, 10, 10)

	bill, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "PYG",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = f.uc.GetBill(context.Background(), uuid.New().String(), bill.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateBill_UnknownCurrencyIsRejected(t *testing.T) {
	f := newBillingFixture(t, nil)
	productID := f.addProduct("Yerba mate 1kg", 10, 10, 10)

	_, err := f.uc.CreateBill(context.Background(), f.userID, dto.CreateBillRequest{
		ClientID:  f.clientID,
		Currency:  "XXZ",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Items:     []dto.BillItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}
