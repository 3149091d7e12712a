// Package xmlexport genera el kardex de un ítem como documento XML
// descargable, construido con etree.
package xmlexport

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/forddyce/stock-ac-sub001/internal/application/reports"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

var _ reports.KardexXMLExporter = (*KardexExporter)(nil)

// KardexExporter implementa reports.KardexXMLExporter usando etree.
type KardexExporter struct{}

// NewKardexExporter construye el exportador.
func NewKardexExporter() *KardexExporter {
	return &KardexExporter{}
}

// ExportKardexXML serializa el historial de movimientos del ítem.
//
// Estructura del documento:
//
//	<Kardex generado="...">
//	  <Item id="..." sku="..." nombre="..." unidad="..."/>
//	  <Movimientos total="N">
//	    <Movimiento id="..." batch="..." tipo="...">
//	      <Bodega>...</Bodega>
//	      <CantidadAntes>...</CantidadAntes>
//	      <Cambio>...</Cambio>
//	      <CantidadDespues>...</CantidadDespues>
//	      <Usuario>...</Usuario>
//	      <Fecha>...</Fecha>
//	    </Movimiento>
//	  </Movimientos>
//	</Kardex>
func (e *KardexExporter) ExportKardexXML(item *entity.Item, entries []repository.ActivityResult) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Kardex")
	root.CreateAttr("generado", time.Now().UTC().Format(time.RFC3339))

	itemEl := root.CreateElement("Item")
	itemEl.CreateAttr("id", item.ID)
	itemEl.CreateAttr("sku", item.SKU)
	itemEl.CreateAttr("nombre", item.Name)
	itemEl.CreateAttr("unidad", item.Unit)

	movs := root.CreateElement("Movimientos")
	movs.CreateAttr("total", fmt.Sprintf("%d", len(entries)))

	for _, entry := range entries {
		mov := movs.CreateElement("Movimiento")
		mov.CreateAttr("id", entry.EntryID)
		mov.CreateAttr("batch", entry.BatchID)
		mov.CreateAttr("tipo", entry.Type)

		mov.CreateElement("Bodega").SetText(entry.Warehouse)
		mov.CreateElement("CantidadAntes").SetText(entry.QtyBefore.String())
		mov.CreateElement("Cambio").SetText(entry.QtyChange.String())
		mov.CreateElement("CantidadDespues").SetText(entry.QtyAfter.String())
		if entry.UserName != "" {
			mov.CreateElement("Usuario").SetText(entry.UserName)
		}
		mov.CreateElement("Fecha").SetText(entry.CreatedAt.UTC().Format(time.RFC3339))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar kardex: %w", err)
	}
	return out, nil
}
