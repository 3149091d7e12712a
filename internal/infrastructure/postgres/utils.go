package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}

// nullIfEmpty mapea "" a NULL para columnas opcionales con UNIQUE o FK.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// transitionSources estados de origen válidos para llegar a `to`, como slice
// de strings listo para un `status = ANY($n)`.
func transitionSources(to entity.TransactionStatus) []string {
	sources := entity.TransitionSources(to)
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = string(s)
	}
	return out
}
