package purchasing_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/application/purchasing"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// memStore estado compartido de los repos en memoria para los tests.
type memStore struct {
	products  map[string]*entity.Product
	invoices  map[string]*entity.PurchaseInvoice
	invItems  map[string][]*entity.PurchaseInvoiceItem
	payments  []*entity.Payment
	movements []*entity.StockMovement
	txns      []*entity.Transaction
	vendors   map[string]*entity.Vendor
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		invoices: make(map[string]*entity.PurchaseInvoice),
		invItems: make(map[string][]*entity.PurchaseInvoiceItem),
		vendors:  make(map[string]*entity.Vendor),
	}
}

func (s *memStore) snapshot() memStore {
	cp := memStore{
		products:  make(map[string]*entity.Product, len(s.products)),
		invoices:  make(map[string]*entity.PurchaseInvoice, len(s.invoices)),
		invItems:  make(map[string][]*entity.PurchaseInvoiceItem, len(s.invItems)),
		vendors:   s.vendors,
		payments:  append([]*entity.Payment(nil), s.payments...),
		movements: append([]*entity.StockMovement(nil), s.movements...),
		txns:      append([]*entity.Transaction(nil), s.txns...),
	}
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, inv := range s.invoices {
		c := *inv
		cp.invoices[id] = &c
	}
	for id, items := range s.invItems {
		cp.invItems[id] = append([]*entity.PurchaseInvoiceItem(nil), items...)
	}
	return cp
}

func (s *memStore) restore(snap memStore) {
	s.products = snap.products
	s.invoices = snap.invoices
	s.invItems = snap.invItems
	s.payments = snap.payments
	s.movements = snap.movements
	s.txns = snap.txns
}

type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) RunPurchasing(ctx context.Context, fn func(
	repository.PurchaseInvoiceRepository,
	repository.PaymentRepository,
	repository.StockMovementRepository,
	repository.ProductRepository,
	repository.TransactionRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(
		&fakeInvoiceRepo{s: r.s},
		&fakePaymentRepo{s: r.s},
		&fakeMovementRepo{s: r.s},
		&fakeProductRepo{s: r.s},
		&fakeTxnRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

type fakeInvoiceRepo struct {
	s *memStore
	// itemsErr fuerza la falla de GetItemsByInvoiceID para simular una
	// lectura caída fuera de la transacción.
	itemsErr error
}

func (r *fakeInvoiceRepo) Create(inv *entity.PurchaseInvoice) error {
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(it *entity.PurchaseInvoiceItem) error {
	r.s.invItems[it.InvoiceID] = append(r.s.invItems[it.InvoiceID], it)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.PurchaseInvoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *inv
	return &c, nil
}

func (r *fakeInvoiceRepo) GetForUpdate(id string) (*entity.PurchaseInvoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.PurchaseInvoiceItem, error) {
	if r.itemsErr != nil {
		return nil, r.itemsErr
	}
	return append([]*entity.PurchaseInvoiceItem(nil), r.s.invItems[invoiceID]...), nil
}

func (r *fakeInvoiceRepo) List(userID string, f repository.PurchaseInvoiceFilter) ([]*entity.PurchaseInvoice, error) {
	var out []*entity.PurchaseInvoice
	for _, inv := range r.s.invoices {
		if inv.UserID != userID {
			continue
		}
		if f.VendorID != "" && inv.VendorID != f.VendorID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.PurchaseInvoice) error {
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) UpdatePayment(inv *entity.PurchaseInvoice) error {
	cur, ok := r.s.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.PaidAmount = inv.PaidAmount
	cur.Status = inv.Status
	cur.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *fakeInvoiceRepo) DeleteItems(invoiceID string) error {
	delete(r.s.invItems, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	delete(r.s.invoices, id)
	return nil
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) GetBySKU(userID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.UserID == userID && p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List(userID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(userID string) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(id string, qty decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQty = qty
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fakePaymentRepo struct{ s *memStore }

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	r.s.payments = append(r.s.payments, p)
	return nil
}

func (r *fakePaymentRepo) ListByTarget(target entity.PaymentTarget) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.Target == target {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ExistsForTarget(target entity.PaymentTarget) (bool, error) {
	for _, p := range r.s.payments {
		if p.Target == target {
			return true, nil
		}
	}
	return false, nil
}

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListBySource(sourceType, sourceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.SourceType == sourceType && m.SourceID == sourceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

type fakeTxnRepo struct{ s *memStore }

func (r *fakeTxnRepo) Create(t *entity.Transaction) error {
	r.s.txns = append(r.s.txns, t)
	return nil
}

func (r *fakeTxnRepo) List(userID string, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.s.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) Summary(userID string, from, to time.Time) (*repository.TransactionSummary, error) {
	return &repository.TransactionSummary{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}, nil
}

type fakeVendorRepo struct{ s *memStore }

func (r *fakeVendorRepo) Create(v *entity.Vendor) error {
	r.s.vendors[v.ID] = v
	return nil
}

func (r *fakeVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	v, ok := r.s.vendors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (r *fakeVendorRepo) GetByEmail(email string) (*entity.Vendor, error) {
	for _, v := range r.s.vendors {
		if v.Email == email {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeVendorRepo) List(userID string, limit, offset int) ([]*entity.Vendor, error) {
	var out []*entity.Vendor
	for _, v := range r.s.vendors {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVendorRepo) Update(v *entity.Vendor) error {
	r.s.vendors[v.ID] = v
	return nil
}

func (r *fakeVendorRepo) Delete(id string) error {
	delete(r.s.vendors, id)
	return nil
}

// stubRates proveedor de tasas fijo para los tests.
type stubRates struct {
	rate     decimal.Decimal
	degraded bool
}

func (s stubRates) Rate(ctx context.Context, from, to string) (decimal.Decimal, bool) {
	return s.rate, s.degraded
}

var _ purchasing.PurchasingTxRunner = (*fakeTxRunner)(nil)
