package rates

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Cache es la caché en memoria de tasas por par (from,to), con TTL fijo.
// Se construye una sola vez al arrancar el proceso y se inyecta al
// Service (nunca un singleton a nivel de paquete, para poder testear el
// motor de facturación con un proveedor falso). Poblado perezoso, las
// entradas expiran tras el TTL, sin teardown explícito.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[pairKey]cacheEntry
}

type pairKey struct {
	from, to string
}

type cacheEntry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

// NewCache construye la caché con el TTL indicado (1h en producción).
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[pairKey]cacheEntry),
	}
}

// Get devuelve la tasa cacheada si existe y no expiró.
func (c *Cache) Get(from, to string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[pairKey{from, to}]
	if !ok || c.now().After(e.expiresAt) {
		return decimal.Decimal{}, false
	}
	return e.rate, true
}

// Put guarda la tasa del par con expiración now+TTL.
func (c *Cache) Put(from, to string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[pairKey{from, to}] = cacheEntry{rate: rate, expiresAt: c.now().Add(c.ttl)}
}
