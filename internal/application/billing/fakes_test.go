package billing_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/application/billing"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// memStore estado compartido de los repos en memoria para los tests.
// mu cumple el papel de los locks de fila: el runner lo sostiene durante
// toda la transacción, así dos transacciones en conflicto se serializan
// igual que con SELECT ... FOR UPDATE.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	bills     map[string]*entity.Bill
	billItems map[string][]*entity.BillItem
	payments  []*entity.Payment
	movements []*entity.StockMovement
	txns      []*entity.Transaction
	clients   map[string]*entity.Client
	billSeq   int64
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		bills:     make(map[string]*entity.Bill),
		billItems: make(map[string][]*entity.BillItem),
		clients:   make(map[string]*entity.Client),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		products:  make(map[string]*entity.Product, len(s.products)),
		bills:     make(map[string]*entity.Bill, len(s.bills)),
		billItems: make(map[string][]*entity.BillItem, len(s.billItems)),
		clients:   s.clients,
		payments:  append([]*entity.Payment(nil), s.payments...),
		movements: append([]*entity.StockMovement(nil), s.movements...),
		txns:      append([]*entity.Transaction(nil), s.txns...),
		billSeq:   s.billSeq,
	}
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, b := range s.bills {
		c := *b
		cp.bills[id] = &c
	}
	for id, items := range s.billItems {
		cp.billItems[id] = append([]*entity.BillItem(nil), items...)
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.bills = snap.bills
	s.billItems = snap.billItems
	s.payments = snap.payments
	s.movements = snap.movements
	s.txns = snap.txns
	s.billSeq = snap.billSeq
}

// fakeTxRunner simula la transacción: snapshot antes, restore si fn falla.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	repository.BillRepository,
	repository.PaymentRepository,
	repository.StockMovementRepository,
	repository.ProductRepository,
	repository.TransactionRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(
		&fakeBillRepo{s: r.s},
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

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

// GetByID se usa fuera de la transacción, así que toma el lock; las
// lecturas dentro de la transacción van por GetForUpdate, con el lock ya
// en manos del runner.
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.getByID(id)
}

func (r *fakeProductRepo) getByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) GetBySKU(userID, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.UserID == userID && p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getByID(id)
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
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.UserID == userID && p.StockQty.LessThanOrEqual(p.MinStock) {
			out = append(out, p)
		}
	}
	return out, nil
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

type fakeBillRepo struct{ s *memStore }

func (r *fakeBillRepo) Create(b *entity.Bill) error {
	r.s.bills[b.ID] = b
	return nil
}

func (r *fakeBillRepo) CreateItem(it *entity.BillItem) error {
	r.s.billItems[it.BillID] = append(r.s.billItems[it.BillID], it)
	return nil
}

func (r *fakeBillRepo) GetByID(id string) (*entity.Bill, error) {
	b, ok := r.s.bills[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (r *fakeBillRepo) GetForUpdate(id string) (*entity.Bill, error) {
	return r.GetByID(id)
}

func (r *fakeBillRepo) GetItemsByBillID(billID string) ([]*entity.BillItem, error) {
	return append([]*entity.BillItem(nil), r.s.billItems[billID]...), nil
}

func (r *fakeBillRepo) List(userID string, f repository.BillFilter) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.s.bills {
		if b.UserID != userID {
			continue
		}
		if f.ClientID != "" && b.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && !strings.EqualFold(b.Status, f.Status) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBillRepo) NextNumberSeq() (int64, error) {
	r.s.billSeq++
	return r.s.billSeq, nil
}

func (r *fakeBillRepo) UpdatePayment(b *entity.Bill) error {
	cur, ok := r.s.bills[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.PaidAmount = b.PaidAmount
	cur.Status = b.Status
	cur.PaidDate = b.PaidDate
	cur.UpdatedAt = b.UpdatedAt
	return nil
}

func (r *fakeBillRepo) DeleteItems(billID string) error {
	delete(r.s.billItems, billID)
	return nil
}

func (r *fakeBillRepo) Delete(id string) error {
	delete(r.s.bills, id)
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
	sum := &repository.TransactionSummary{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, t := range r.s.txns {
		if t.UserID != userID {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			sum.IncomeTotal = sum.IncomeTotal.Add(t.Amount)
		case entity.TransactionTypeExpense:
			sum.ExpenseTotal = sum.ExpenseTotal.Add(t.Amount)
		}
	}
	return sum, nil
}

type fakeClientRepo struct{ s *memStore }

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.s.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) GetByEmail(email string) (*entity.Client, error) {
	for _, c := range r.s.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeClientRepo) List(userID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.s.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.s.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.s.clients, id)
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

var _ billing.BillingTxRunner = (*fakeTxRunner)(nil)
