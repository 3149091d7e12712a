package entity

// TransactionKind discrimina los cuatro tipos de transacción que mueven stock.
// Es la dimensión con la que se scopean las llaves de idempotencia.
type TransactionKind string

const (
	KindPurchase   TransactionKind = "purchase"
	KindSale       TransactionKind = "sale"
	KindTransfer   TransactionKind = "transfer"
	KindAdjustment TransactionKind = "adjustment"
)

// Valid indica si el kind es uno de los cuatro conocidos.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindPurchase, KindSale, KindTransfer, KindAdjustment:
		return true
	}
	return false
}

// TransactionStatus máquina de estados compartida por todas las cabeceras
// de transacción (compra, venta, traslado, ajuste).
//
//	pending ──► partial ──► complete
//	   │            │
//	   └────────────┴─────► cancelled
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusPartial   TransactionStatus = "partial"
	StatusComplete  TransactionStatus = "complete"
	StatusCancelled TransactionStatus = "cancelled"
)

// transiciones permitidas; complete y cancelled son terminales.
var transitions = map[TransactionStatus][]TransactionStatus{
	StatusPending: {StatusPartial, StatusComplete, StatusCancelled},
	StatusPartial: {StatusComplete, StatusCancelled},
}

// CanTransition indica si el cambio de estado from → to está permitido.
func (s TransactionStatus) CanTransition(to TransactionStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal indica si el estado no admite más transiciones.
func (s TransactionStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// TransitionSources devuelve los estados desde los que se puede llegar a `to`.
// Sirve para que la capa de persistencia condicione el UPDATE de estado a los
// orígenes válidos y dos escritores concurrentes no apliquen la misma
// transición dos veces.
func TransitionSources(to TransactionStatus) []TransactionStatus {
	var from []TransactionStatus
	for src, nexts := range transitions {
		for _, next := range nexts {
			if next == to {
				from = append(from, src)
				break
			}
		}
	}
	return from
}
