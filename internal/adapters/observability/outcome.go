package observability

import (
	"errors"

	"hotel_finder/internal/domain"
)

// Outcome maps a store error onto the store_operations_total outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidID):
		return "invalid"
	default:
		return "error"
	}
}
