package transactions_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
	"github.com/forddyce/stock-ac-sub001/internal/domain"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un store en memoria con ítem X, bodegas W1/W2, un proveedor y un
// cliente, más los cuatro procesadores cableados contra el mismo store.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memStore
	purchase *transactions.ReceivePurchaseUseCase
	sale     *transactions.FulfillSaleUseCase
	transfer *transactions.TransferUseCase
	adjust   *transactions.AdjustUseCase
	cancel   *transactions.CancelUseCase
}

const (
	itemX      = "item-x"
	bodegaW1   = "bodega-w1"
	bodegaW2   = "bodega-w2"
	proveedor1 = "proveedor-1"
	cliente1   = "cliente-1"
	usuario1   = "usuario-1"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newMemStore()
	now := time.Now()
	s.items[itemX] = entity.Item{ID: itemX, SKU: "X-001", Name: "Ítem X", Unit: "und", CreatedAt: now}
	s.warehouses[bodegaW1] = entity.Warehouse{ID: bodegaW1, Name: "Bodega W1", CreatedAt: now}
	s.warehouses[bodegaW2] = entity.Warehouse{ID: bodegaW2, Name: "Bodega W2", CreatedAt: now}
	s.suppliers[proveedor1] = entity.Supplier{ID: proveedor1, Name: "Proveedor Uno", CreatedAt: now}
	s.customers[cliente1] = entity.Customer{ID: cliente1, Name: "Cliente Uno", CreatedAt: now}

	runner := &memTxRunner{s}
	guard := transactions.NewGuard(&memKeyRepo{s})
	return &fixture{
		store: s,
		purchase: transactions.NewReceivePurchaseUseCase(runner, guard,
			&memSupplierRepo{s}, &memWarehouseRepo{s}, &memItemRepo{s}, &memPurchaseRepo{s}),
		sale: transactions.NewFulfillSaleUseCase(runner, guard,
			&memCustomerRepo{s}, &memWarehouseRepo{s}, &memItemRepo{s}, &memSaleRepo{s}),
		transfer: transactions.NewTransferUseCase(runner, guard,
			&memWarehouseRepo{s}, &memItemRepo{s}, &memTransferRepo{s}),
		adjust: transactions.NewAdjustUseCase(runner, guard,
			&memWarehouseRepo{s}, &memItemRepo{s}, &memAdjustmentRepo{s}),
		cancel: transactions.NewCancelUseCase(
			&memPurchaseRepo{s}, &memSaleRepo{s}, &memTransferRepo{s}, &memAdjustmentRepo{s}),
	}
}

func (f *fixture) saldo(t *testing.T, itemID, warehouseID string) decimal.Decimal {
	t.Helper()
	b, err := (&memStockRepo{f.store}).Get(itemID, warehouseID)
	require.NoError(t, err)
	return b.Quantity
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// recibir10 deja 10 unidades de X en W1 (escenario base de §los tests de abajo).
func (f *fixture) recibir10(t *testing.T) *transactions.PurchaseResult {
	t.Helper()
	res, err := f.purchase.Receive(context.Background(), transactions.PurchaseInput{
		SupplierID:  proveedor1,
		WarehouseID: bodegaW1,
		UserID:      usuario1,
		Lines: []transactions.PurchaseLineInput{
			{ItemID: itemX, QtyOrdered: qty(10), QtyReceived: qty(10), UnitCost: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestCompra_RecepcionInicial(t *testing.T) {
	f := newFixture(t)

	res := f.recibir10(t)

	assert.False(t, res.AlreadyProcessed)
	assert.Equal(t, entity.StatusComplete, res.Purchase.Status)
	require.NotNil(t, res.Purchase.ProcessedAt)
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(10)))

	// Una sola entrada: purchase, 0 → +10 → 10.
	require.Len(t, f.store.ledger, 1)
	e := f.store.ledger[0]
	assert.Equal(t, entity.LedgerTypePurchase, e.Type)
	assert.Equal(t, res.Purchase.ID, e.ReferenceID)
	assert.Equal(t, res.BatchID, e.BatchID)
	assert.Equal(t, usuario1, e.UserID)
	assert.True(t, e.QtyBefore.IsZero())
	assert.True(t, e.QtyChange.Equal(qty(10)))
	assert.True(t, e.QtyAfter.Equal(qty(10)))
}

func TestCompra_RecepcionParcial(t *testing.T) {
	f := newFixture(t)

	res, err := f.purchase.Receive(context.Background(), transactions.PurchaseInput{
		SupplierID:  proveedor1,
		WarehouseID: bodegaW1,
		Lines: []transactions.PurchaseLineInput{
			{ItemID: itemX, QtyOrdered: qty(10), QtyReceived: qty(4), UnitCost: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPartial, res.Purchase.Status)
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(4)))
	assert.True(t, res.Purchase.Total.Equal(qty(20)), "total sobre lo recibido, no lo pedido")
}

func TestCompra_PedidoSinRecibirQuedaPending(t *testing.T) {
	f := newFixture(t)

	res, err := f.purchase.Receive(context.Background(), transactions.PurchaseInput{
		SupplierID:  proveedor1,
		WarehouseID: bodegaW1,
		Lines: []transactions.PurchaseLineInput{
			{ItemID: itemX, QtyOrdered: qty(10), QtyReceived: decimal.Zero, UnitCost: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, res.Purchase.Status)
	assert.True(t, f.saldo(t, itemX, bodegaW1).IsZero(), "nada recibido, nada sumado")
	assert.Empty(t, f.store.ledger)
}

func TestCompra_ProveedorInexistenteNoMutaNada(t *testing.T) {
	f := newFixture(t)

	_, err := f.purchase.Receive(context.Background(), transactions.PurchaseInput{
		SupplierID:  "proveedor-fantasma",
		WarehouseID: bodegaW1,
		Lines: []transactions.PurchaseLineInput{
			{ItemID: itemX, QtyOrdered: qty(10), QtyReceived: qty(10)},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.purchases)
	assert.Empty(t, f.store.ledger)
	assert.True(t, f.saldo(t, itemX, bodegaW1).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestVenta_DespachaDesdeSaldo(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	res, err := f.sale.Fulfill(context.Background(), transactions.SaleInput{
		CustomerID:  cliente1,
		WarehouseID: bodegaW1,
		UserID:      usuario1,
		Lines: []transactions.SaleLineInput{
			{ItemID: itemX, QtyRequested: qty(4), QtyFulfilled: qty(4), UnitPrice: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusComplete, res.Sale.Status)
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(6)))

	// Entrada de venta: 10 → -4 → 6.
	require.Len(t, f.store.ledger, 2)
	e := f.store.ledger[1]
	assert.Equal(t, entity.LedgerTypeSale, e.Type)
	assert.True(t, e.QtyBefore.Equal(qty(10)))
	assert.True(t, e.QtyChange.Equal(qty(-4)))
	assert.True(t, e.QtyAfter.Equal(qty(6)))
}

func TestVenta_SinSaldoSuficienteSeRechazaCompleta(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	_, err := f.sale.Fulfill(context.Background(), transactions.SaleInput{
		CustomerID:  cliente1,
		WarehouseID: bodegaW1,
		Lines: []transactions.SaleLineInput{
			{ItemID: itemX, QtyRequested: qty(11), QtyFulfilled: qty(11), UnitPrice: decimal.NewFromInt(9)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback total: ni cabecera, ni ledger extra, ni saldo tocado.
	assert.Empty(t, f.store.sales)
	assert.Len(t, f.store.ledger, 1)
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de traslado
// ──────────────────────────────────────────────────────────────────────────────

func TestTraslado_MueveYAgrupaEnUnBatch(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)
	// Venta de 4 deja 6 en W1.
	_, err := f.sale.Fulfill(context.Background(), transactions.SaleInput{
		CustomerID:  cliente1,
		WarehouseID: bodegaW1,
		Lines: []transactions.SaleLineInput{
			{ItemID: itemX, QtyRequested: qty(4), QtyFulfilled: qty(4), UnitPrice: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)

	res, err := f.transfer.Transfer(context.Background(), transactions.TransferInput{
		ItemID:          itemX,
		FromWarehouseID: bodegaW1,
		ToWarehouseID:   bodegaW2,
		Qty:             qty(6),
		UserID:          usuario1,
	})
	require.NoError(t, err)

	assert.True(t, f.saldo(t, itemX, bodegaW1).IsZero())
	assert.True(t, f.saldo(t, itemX, bodegaW2).Equal(qty(6)))
	assert.Equal(t, entity.StatusComplete, res.Transfer.Status)

	// Exactamente un transfer_out y un transfer_in con el mismo batch y
	// el mismo |qty_change|.
	batch, err := (&memLedgerRepo{f.store}).ListByBatch(res.BatchID)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	var out, in *entity.LedgerEntry
	for _, e := range batch {
		switch e.Type {
		case entity.LedgerTypeTransferOut:
			out = e
		case entity.LedgerTypeTransferIn:
			in = e
		}
	}
	require.NotNil(t, out)
	require.NotNil(t, in)
	assert.True(t, out.QtyChange.Equal(qty(-6)))
	assert.True(t, in.QtyChange.Equal(qty(6)))
	assert.True(t, out.QtyChange.Abs().Equal(in.QtyChange.Abs()))
	assert.Equal(t, res.Transfer.ID, out.ReferenceID)
	assert.Equal(t, res.Transfer.ID, in.ReferenceID)
}

func TestTraslado_DestinoInexistenteDejaOrigenIntacto(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	_, err := f.transfer.Transfer(context.Background(), transactions.TransferInput{
		ItemID:          itemX,
		FromWarehouseID: bodegaW1,
		ToWarehouseID:   "bodega-fantasma",
		Qty:             qty(6),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Sin transfer_out huérfano: el origen no se tocó.
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(10)))
	assert.Len(t, f.store.ledger, 1)
	assert.Empty(t, f.store.transfers)
}

func TestTraslado_SinSaldoHaceRollbackCompleto(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	_, err := f.transfer.Transfer(context.Background(), transactions.TransferInput{
		ItemID:          itemX,
		FromWarehouseID: bodegaW1,
		ToWarehouseID:   bodegaW2,
		Qty:             qty(11),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(10)))
	assert.True(t, f.saldo(t, itemX, bodegaW2).IsZero())
	assert.Len(t, f.store.ledger, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestAjuste_SubtractPuedeLlegarACeroPeroNoNegativo(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	// Hasta cero: permitido.
	_, err := f.adjust.Adjust(context.Background(), transactions.AdjustmentInput{
		ItemID:      itemX,
		WarehouseID: bodegaW1,
		Type:        entity.AdjustmentSubtract,
		Qty:         qty(10),
	})
	require.NoError(t, err)
	assert.True(t, f.saldo(t, itemX, bodegaW1).IsZero())

	// Por debajo de cero: rechazado.
	_, err = f.adjust.Adjust(context.Background(), transactions.AdjustmentInput{
		ItemID:      itemX,
		WarehouseID: bodegaW1,
		Type:        entity.AdjustmentSubtract,
		Qty:         qty(1),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAjuste_AddCreaSaldoImplicitamente(t *testing.T) {
	f := newFixture(t)

	res, err := f.adjust.Adjust(context.Background(), transactions.AdjustmentInput{
		ItemID:      itemX,
		WarehouseID: bodegaW2,
		Type:        entity.AdjustmentAdd,
		Qty:         qty(3),
		Notes:       "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, f.saldo(t, itemX, bodegaW2).Equal(qty(3)))
	assert.Equal(t, entity.StatusComplete, res.Adjustment.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

func TestIdempotencia_ReplayDeVentaNoDescuentaDosVeces(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	input := transactions.SaleInput{
		CustomerID:     cliente1,
		WarehouseID:    bodegaW1,
		IdempotencyKey: "venta-abc",
		Lines: []transactions.SaleLineInput{
			{ItemID: itemX, QtyRequested: qty(4), QtyFulfilled: qty(4), UnitPrice: decimal.NewFromInt(9)},
		},
	}
	first, err := f.sale.Fulfill(context.Background(), input)
	require.NoError(t, err)
	require.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(6)))

	second, err := f.sale.Fulfill(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.Sale.ID, second.Sale.ID, "misma cabecera, no una nueva")
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(6)), "el saldo no se descuenta otra vez")
	assert.Len(t, f.store.sales, 1)
	assert.Len(t, f.store.ledger, 2, "sin entradas de ledger nuevas")

	// La respuesta del replay trae la cabecera completa con líneas y cliente.
	require.Len(t, second.Items, 1)
	require.NotNil(t, second.Customer)
	assert.Equal(t, cliente1, second.Customer.ID)
}

func TestIdempotencia_LlavesScopeadasPorKind(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	// Una compra y un ajuste pueden reusar el mismo valor literal de llave.
	_, err := f.purchase.Receive(context.Background(), transactions.PurchaseInput{
		SupplierID:     proveedor1,
		WarehouseID:    bodegaW1,
		IdempotencyKey: "llave-compartida",
		Lines: []transactions.PurchaseLineInput{
			{ItemID: itemX, QtyOrdered: qty(2), QtyReceived: qty(2), UnitCost: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	res, err := f.adjust.Adjust(context.Background(), transactions.AdjustmentInput{
		ItemID:         itemX,
		WarehouseID:    bodegaW1,
		Type:           entity.AdjustmentAdd,
		Qty:            qty(1),
		IdempotencyKey: "llave-compartida",
	})
	require.NoError(t, err)
	assert.False(t, res.AlreadyProcessed, "kinds distintos no colisionan")
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(13)))
}

func TestIdempotencia_SinLlaveNoHayDeduplicacion(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	input := transactions.SaleInput{
		CustomerID:  cliente1,
		WarehouseID: bodegaW1,
		Lines: []transactions.SaleLineInput{
			{ItemID: itemX, QtyRequested: qty(2), QtyFulfilled: qty(2), UnitPrice: decimal.NewFromInt(9)},
		},
	}
	_, err := f.sale.Fulfill(context.Background(), input)
	require.NoError(t, err)
	_, err = f.sale.Fulfill(context.Background(), input)
	require.NoError(t, err)

	// Limitación documentada: sin llave, dos envíos son dos ventas.
	assert.Len(t, f.store.sales, 2)
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(qty(6)))
}

func TestIdempotencia_ReplayConservaBatchID(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	input := transactions.SaleInput{
		CustomerID:     cliente1,
		WarehouseID:    bodegaW1,
		IdempotencyKey: "venta-batch",
		Lines: []transactions.SaleLineInput{
			{ItemID: itemX, QtyRequested: qty(4), QtyFulfilled: qty(4), UnitPrice: decimal.NewFromInt(9)},
		},
	}
	first, err := f.sale.Fulfill(context.Background(), input)
	require.NoError(t, err)
	require.NotEmpty(t, first.BatchID)

	second, err := f.sale.Fulfill(context.Background(), input)
	require.NoError(t, err)

	// La respuesta del replay es idéntica a la primera, batch incluido.
	require.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.BatchID, second.BatchID)
	assert.Equal(t, first.BatchID, second.Sale.BatchID)

	// Y el batch de la cabecera apunta a las entradas reales del ledger.
	batch, err := (&memLedgerRepo{f.store}).ListByBatch(second.BatchID)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, first.Sale.ID, batch[0].ReferenceID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Disciplina de locks sobre los saldos
// ──────────────────────────────────────────────────────────────────────────────

func TestTraslado_BloqueaOrigenYDestino(t *testing.T) {
	f := newFixture(t)
	f.recibir10(t)

	_, err := f.transfer.Transfer(context.Background(), transactions.TransferInput{
		ItemID:          itemX,
		FromWarehouseID: bodegaW1,
		ToWarehouseID:   bodegaW2,
		Qty:             qty(6),
	})
	require.NoError(t, err)

	// Ambas filas de saldo se leyeron con lock antes de escribirlas; el doble
	// en memoria rechaza cualquier Upsert sin lock previo, así que el traslado
	// solo pudo completarse bloqueando las dos.
	assert.Contains(t, f.store.lockLog, stockKey(itemX, bodegaW1))
	assert.Contains(t, f.store.lockLog, stockKey(itemX, bodegaW2),
		"el destino también se lee con lock aunque su fila no existiera aún")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de cadena del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_CadenaEncadenadaYSumaIgualASaldo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.recibir10(t)
	_, err := f.sale.Fulfill(ctx, transactions.SaleInput{
		CustomerID:  cliente1,
		WarehouseID: bodegaW1,
		Lines: []transactions.SaleLineInput{
			{ItemID: itemX, QtyRequested: qty(3), QtyFulfilled: qty(3), UnitPrice: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)
	_, err = f.adjust.Adjust(ctx, transactions.AdjustmentInput{
		ItemID: itemX, WarehouseID: bodegaW1, Type: entity.AdjustmentAdd, Qty: qty(5),
	})
	require.NoError(t, err)
	_, err = f.transfer.Transfer(ctx, transactions.TransferInput{
		ItemID: itemX, FromWarehouseID: bodegaW1, ToWarehouseID: bodegaW2, Qty: qty(2),
	})
	require.NoError(t, err)

	entries, err := (&memLedgerRepo{f.store}).ListByItemWarehouse(itemX, bodegaW1, nil, nil, 100, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4) // compra, venta, ajuste, transfer_out

	sum := decimal.Zero
	for i, e := range entries {
		assert.True(t, e.QtyAfter.Equal(e.QtyBefore.Add(e.QtyChange)), "entrada %d", i)
		if i > 0 {
			assert.True(t, e.QtyBefore.Equal(entries[i-1].QtyAfter),
				"qty_before de la entrada %d debe encadenar con la anterior", i)
		}
		sum = sum.Add(e.QtyChange)
	}
	assert.True(t, f.saldo(t, itemX, bodegaW1).Equal(sum),
		"el saldo final es la suma de los qty_change del ledger")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelacion_SoloDesdeEstadosNoTerminales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pendiente, err := f.purchase.Receive(ctx, transactions.PurchaseInput{
		SupplierID:  proveedor1,
		WarehouseID: bodegaW1,
		Lines: []transactions.PurchaseLineInput{
			{ItemID: itemX, QtyOrdered: qty(5), QtyReceived: decimal.Zero, UnitCost: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	completa := f.recibir10(t)

	require.NoError(t, f.cancel.CancelPurchase(pendiente.Purchase.ID))
	cancelada, err := (&memPurchaseRepo{f.store}).GetByID(pendiente.Purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelada.Status)

	// complete es terminal.
	err = f.cancel.CancelPurchase(completa.Purchase.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = f.cancel.CancelPurchase("compra-fantasma")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelacion_CancelacionesConcurrentesSoloUnaAplica(t *testing.T) {
	f := newFixture(t)

	pendiente, err := f.purchase.Receive(context.Background(), transactions.PurchaseInput{
		SupplierID:  proveedor1,
		WarehouseID: bodegaW1,
		Lines: []transactions.PurchaseLineInput{
			{ItemID: itemX, QtyOrdered: qty(5), QtyReceived: decimal.Zero, UnitCost: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	// Dos cancelaciones que pasaron la lectura de validación al mismo tiempo:
	// el UPDATE condicionado a los estados de origen deja aplicar solo a una.
	repo := &memPurchaseRepo{f.store}
	require.NoError(t, repo.UpdateStatus(pendiente.Purchase.ID, entity.StatusCancelled))
	err = repo.UpdateStatus(pendiente.Purchase.ID, entity.StatusCancelled)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	cancelada, err := repo.GetByID(pendiente.Purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelada.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestValidaciones_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.purchase.Receive(ctx, transactions.PurchaseInput{SupplierID: proveedor1, WarehouseID: bodegaW1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "compra sin líneas")

	_, err = f.sale.Fulfill(ctx, transactions.SaleInput{
		CustomerID: cliente1, WarehouseID: bodegaW1,
		Lines: []transactions.SaleLineInput{{ItemID: itemX, QtyRequested: qty(2), QtyFulfilled: qty(3)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "despachado > solicitado")

	_, err = f.transfer.Transfer(ctx, transactions.TransferInput{
		ItemID: itemX, FromWarehouseID: bodegaW1, ToWarehouseID: bodegaW1, Qty: qty(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen = destino")

	_, err = f.adjust.Adjust(ctx, transactions.AdjustmentInput{
		ItemID: itemX, WarehouseID: bodegaW1, Type: "recount", Qty: qty(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de ajuste desconocido")

	_, err = f.adjust.Adjust(ctx, transactions.AdjustmentInput{
		ItemID: itemX, WarehouseID: bodegaW1, Type: entity.AdjustmentAdd, Qty: qty(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}
