package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo. El stock no vive aquí:
// se deriva de stock_balances por bodega.
type Item struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Unit        string          // unidad de medida (und, kg, lt, ...)
	MinStock    decimal.Decimal // umbral para el reporte de stock bajo
	Cost        decimal.Decimal
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
