package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
)

func TestTransactionStatus_Transiciones(t *testing.T) {
	cases := []struct {
		from, to entity.TransactionStatus
		ok       bool
	}{
		{entity.StatusPending, entity.StatusPartial, true},
		{entity.StatusPending, entity.StatusComplete, true},
		{entity.StatusPending, entity.StatusCancelled, true},
		{entity.StatusPartial, entity.StatusComplete, true},
		{entity.StatusPartial, entity.StatusCancelled, true},
		// complete y cancelled son terminales
		{entity.StatusComplete, entity.StatusCancelled, false},
		{entity.StatusComplete, entity.StatusPartial, false},
		{entity.StatusCancelled, entity.StatusPending, false},
		{entity.StatusCancelled, entity.StatusComplete, false},
		// no hay marcha atrás
		{entity.StatusPartial, entity.StatusPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransition(c.to), "%s → %s", c.from, c.to)
	}
}

func TestTransactionStatus_TransitionSources(t *testing.T) {
	// Los orígenes son el espejo exacto de CanTransition: cada estado listado
	// puede llegar al destino, y ningún otro.
	for _, to := range []entity.TransactionStatus{
		entity.StatusPartial, entity.StatusComplete, entity.StatusCancelled,
	} {
		sources := entity.TransitionSources(to)
		assert.NotEmpty(t, sources, "a %s se llega desde algún estado", to)
		for _, from := range sources {
			assert.True(t, from.CanTransition(to), "%s → %s", from, to)
		}
	}
	assert.ElementsMatch(t,
		[]entity.TransactionStatus{entity.StatusPending, entity.StatusPartial},
		entity.TransitionSources(entity.StatusCancelled))
	assert.Empty(t, entity.TransitionSources(entity.StatusPending), "a pending no se vuelve")
}

func TestTransactionStatus_Terminal(t *testing.T) {
	assert.False(t, entity.StatusPending.Terminal())
	assert.False(t, entity.StatusPartial.Terminal())
	assert.True(t, entity.StatusComplete.Terminal())
	assert.True(t, entity.StatusCancelled.Terminal())
}

func TestTransactionKind_Valid(t *testing.T) {
	assert.True(t, entity.KindPurchase.Valid())
	assert.True(t, entity.KindSale.Valid())
	assert.True(t, entity.KindTransfer.Valid())
	assert.True(t, entity.KindAdjustment.Valid())
	assert.False(t, entity.TransactionKind("factura").Valid())
}
