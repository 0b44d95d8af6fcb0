package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/stockpilot/inventory-admin/internal/domain/stock"
)

// RegisterBindings installs custom binding rules into gin's validator.
// "stocktype" accepts the known stock movement types only.
func RegisterBindings() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("stocktype", func(fl validator.FieldLevel) bool {
		return stock.IsValidType(fl.Field().String())
	})
}
