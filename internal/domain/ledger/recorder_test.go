package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/ledger"
)

// fakeLedgerRepo acumula las entradas en memoria.
type fakeLedgerRepo struct {
	entries []*entity.LedgerEntry
}

func (f *fakeLedgerRepo) Create(e *entity.LedgerEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeLedgerRepo) ListByItemWarehouse(_, _ string, _, _ *time.Time, _, _ int) ([]*entity.LedgerEntry, error) {
	return nil, nil
}
func (f *fakeLedgerRepo) ListByBatch(_ string) ([]*entity.LedgerEntry, error) { return nil, nil }
func (f *fakeLedgerRepo) ListRecent(_ int) ([]*entity.LedgerEntry, error)    { return nil, nil }

func TestRecorder_CalculaQtyAfter(t *testing.T) {
	repo := &fakeLedgerRepo{}
	rec := ledger.NewRecorder(repo, "user-1")

	entry, err := rec.Record("item-1", "bodega-1", entity.LedgerTypePurchase, "compra-1",
		decimal.NewFromInt(3), decimal.NewFromInt(10), "recepción")
	require.NoError(t, err)

	assert.True(t, entry.QtyAfter.Equal(decimal.NewFromInt(13)), "qty_after = qty_before + qty_change")
	assert.True(t, entry.QtyBefore.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, "compra-1", entry.ReferenceID)
	require.Len(t, repo.entries, 1)
}

func TestRecorder_BatchCompartidoEntreEntradas(t *testing.T) {
	repo := &fakeLedgerRepo{}
	rec := ledger.NewRecorder(repo, "")

	out, err := rec.Record("item-1", "origen", entity.LedgerTypeTransferOut, "tr-1",
		decimal.NewFromInt(6), decimal.NewFromInt(-6), "")
	require.NoError(t, err)
	in, err := rec.Record("item-1", "destino", entity.LedgerTypeTransferIn, "tr-1",
		decimal.Zero, decimal.NewFromInt(6), "")
	require.NoError(t, err)

	assert.Equal(t, rec.BatchID(), out.BatchID)
	assert.Equal(t, out.BatchID, in.BatchID, "las dos patas del traslado comparten batch")
	assert.NotEqual(t, out.ID, in.ID)
}

func TestRecorder_BatchDistintoPorEvento(t *testing.T) {
	repo := &fakeLedgerRepo{}
	a := ledger.NewRecorder(repo, "")
	b := ledger.NewRecorder(repo, "")
	assert.NotEqual(t, a.BatchID(), b.BatchID())
}

func TestRecorder_CambioNegativo(t *testing.T) {
	repo := &fakeLedgerRepo{}
	rec := ledger.NewRecorder(repo, "user-2")

	entry, err := rec.Record("item-1", "bodega-1", entity.LedgerTypeSale, "venta-1",
		decimal.NewFromInt(10), decimal.NewFromInt(-4), "")
	require.NoError(t, err)
	assert.True(t, entry.QtyAfter.Equal(decimal.NewFromInt(6)))
}
