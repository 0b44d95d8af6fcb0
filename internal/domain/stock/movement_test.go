package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockpilot/inventory-admin/internal/httperr"
)

func TestIsValidType(t *testing.T) {
	assert.True(t, IsValidType("in"))
	assert.True(t, IsValidType("out"))
	assert.True(t, IsValidType("transfer"))
	assert.False(t, IsValidType("adjust"))
	assert.False(t, IsValidType(""))
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(1))
	assert.True(t, httperr.IsBusiness(ValidateQuantity(0), "invalid_quantity"))
	assert.True(t, httperr.IsBusiness(ValidateQuantity(-5), "invalid_quantity"))
}

func TestCanIssue(t *testing.T) {
	assert.NoError(t, CanIssue(10, 10))
	assert.NoError(t, CanIssue(10, 3))
	assert.True(t, httperr.IsBusiness(CanIssue(2, 3), "insufficient_stock"))
}
