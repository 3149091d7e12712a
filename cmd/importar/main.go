// importar carga saldos iniciales de stock desde un CSV legado (ISO-8859-1,
// separado por ';'): una fila por ítem con formato SKU;CANTIDAD.
//
// Uso: go run ./cmd/importar -archivo saldos.csv -bodega <warehouse-id>
//
// La bodega destino es un flag obligatorio: no existe bodega implícita.
// Los saldos se escriben a través del procesador de ajustes con llave de
// idempotencia por (bodega, SKU), así el comando puede reejecutarse sin
// duplicar stock y la cadena del ledger arranca correctamente.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/infrastructure/postgres"
	"github.com/forddyce/stock-ac-sub001/pkg/config"
)

func main() {
	archivo := flag.String("archivo", "", "ruta del CSV legado (SKU;CANTIDAD, ISO-8859-1)")
	bodega := flag.String("bodega", "", "ID de la bodega destino (obligatorio)")
	flag.Parse()

	if *archivo == "" || *bodega == "" {
		fmt.Fprintln(os.Stderr, "uso: importar -archivo saldos.csv -bodega <warehouse-id>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	keyRepo := postgres.NewTransactionKeyRepository(pool)
	guard := transactions.NewGuard(keyRepo)
	adjustUC := transactions.NewAdjustUseCase(
		postgres.NewTxRunner(pool), guard, warehouseRepo, itemRepo, adjustmentRepo,
	)

	// La bodega debe existir antes de tocar nada.
	warehouse, err := warehouseRepo.GetByID(*bodega)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Consultar bodega: %v\n", err)
		os.Exit(1)
	}
	if warehouse == nil {
		fmt.Fprintf(os.Stderr, "La bodega %q no existe\n", *bodega)
		os.Exit(1)
	}

	f, err := os.Open(*archivo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	var imported, skipped int
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: %v\n", line, err)
			os.Exit(1)
		}
		if len(record) < 2 {
			fmt.Fprintf(os.Stderr, "Línea %d: se esperan 2 columnas (SKU;CANTIDAD)\n", line)
			skipped++
			continue
		}
		sku := strings.TrimSpace(record[0])
		rawQty := strings.TrimSpace(record[1])
		if sku == "" || strings.EqualFold(sku, "sku") {
			// Encabezado o fila vacía
			continue
		}
		qty, err := decimal.NewFromString(strings.ReplaceAll(rawQty, ",", "."))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: cantidad inválida %q\n", line, rawQty)
			skipped++
			continue
		}
		if !qty.GreaterThan(decimal.Zero) {
			skipped++
			continue
		}

		item, err := itemRepo.GetBySKU(sku)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: consultar SKU %q: %v\n", line, sku, err)
			os.Exit(1)
		}
		if item == nil {
			fmt.Fprintf(os.Stderr, "Línea %d: SKU %q no existe, fila omitida\n", line, sku)
			skipped++
			continue
		}

		result, err := adjustUC.Adjust(ctx, transactions.AdjustmentInput{
			ItemID:         item.ID,
			WarehouseID:    warehouse.ID,
			Type:           entity.AdjustmentAdd,
			Qty:            qty,
			IdempotencyKey: fmt.Sprintf("importar:%s:%s", warehouse.ID, sku),
			Notes:          "saldo inicial importado",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: ajustar %q: %v\n", line, sku, err)
			os.Exit(1)
		}
		if result.AlreadyProcessed {
			skipped++
			continue
		}
		imported++
	}

	fmt.Printf("Importación a bodega %s (%s): %d saldos creados, %d filas omitidas\n",
		warehouse.Name, warehouse.ID, imported, skipped)
}
