package entity

import "github.com/shopspring/decimal"

// BillItem representa una línea de una factura de venta.
// Price y TaxRate se capturan al momento de la venta y no cambian aunque
// el producto se edite después.
type BillItem struct {
	ID        string
	BillID    string
	ProductID string
	Quantity  decimal.Decimal
	Price     decimal.Decimal // precio unitario capturado
	TaxRate   decimal.Decimal // porcentaje capturado
	Subtotal  decimal.Decimal // Quantity * Price
	TaxAmount decimal.Decimal // Subtotal * TaxRate/100
	Total     decimal.Decimal // Subtotal + TaxAmount
}
