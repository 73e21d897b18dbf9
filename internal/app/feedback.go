package app

import (
	"errors"

	"tu-inventario/internal/services"
)

// Feedback is the uniform outcome of a mutation: whether it applied and a
// human-readable message for the toast.
type Feedback struct {
	OK      bool
	Message string
}

func ok(msg string) Feedback {
	return Feedback{OK: true, Message: msg}
}

func fail(err error) Feedback {
	return Feedback{Message: UserMessage(err)}
}

// UserMessage maps a service error to the wording the UI shows.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		return "La cantidad debe ser mayor que 0."
	case errors.Is(err, services.ErrInvalidUnit):
		return "Unidad de medida no válida."
	case errors.Is(err, services.ErrEmptyName):
		return "El nombre del producto es obligatorio."
	case errors.Is(err, services.ErrProductNotFound):
		return "No se encontró el producto."
	case errors.Is(err, services.ErrBatchNotFound):
		return "No se encontró el lote."
	case errors.Is(err, services.ErrInsufficientStock):
		return "No puedes consumir más de lo que queda en el lote."
	case errors.Is(err, services.ErrProductHasStock):
		return "No se puede eliminar: el producto tiene lotes activos."
	case errors.Is(err, services.ErrDuplicateProduct):
		return "Ya existe un producto con ese nombre."
	default:
		return "Se produjo un error inesperado."
	}
}
