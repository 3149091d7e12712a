package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// DeliveryLineForPDF línea de venta enriquecida con datos del ítem,
// lista para pintar en la remisión.
type DeliveryLineForPDF struct {
	SKU          string
	ItemName     string
	Unit         string
	QtyRequested decimal.Decimal
	QtyFulfilled decimal.Decimal
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}

// DeliveryNotePDFGenerator puerto de generación del PDF de remisión de venta.
// La implementación vive en infrastructure/pdf.
type DeliveryNotePDFGenerator interface {
	GenerateDeliveryNotePDF(
		ctx context.Context,
		sale *entity.Sale,
		customer *entity.Customer,
		warehouse *entity.Warehouse,
		lines []DeliveryLineForPDF,
	) ([]byte, error)
}

// KardexXMLExporter puerto de exportación del kardex de un ítem a XML.
// La implementación vive en infrastructure/xmlexport.
type KardexXMLExporter interface {
	ExportKardexXML(item *entity.Item, entries []repository.ActivityResult) ([]byte, error)
}
