package stock

import "github.com/stockpilot/inventory-admin/internal/httperr"

// ===============================
// Movement types
// ===============================

type Type string

const (
	TypeIn       Type = "in"
	TypeOut      Type = "out"
	TypeTransfer Type = "transfer"
)

func IsValidType(t string) bool {
	switch Type(t) {
	case TypeIn, TypeOut, TypeTransfer:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

func ValidateQuantity(q int) error {
	if q <= 0 {
		return httperr.ErrBusiness("invalid_quantity")
	}
	return nil
}

// CanIssue checks there is enough stock to take quantity out.
func CanIssue(available, quantity int) error {
	if quantity > available {
		return httperr.ErrBusiness("insufficient_stock")
	}
	return nil
}
