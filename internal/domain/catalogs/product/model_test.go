package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consignkeep/internal/core/apperror"
	"consignkeep/internal/core/types"
)

func TestValidate(t *testing.T) {
	p := New("Dates 500g", "Food", types.MustMoney("5.500"), "box")
	require.NoError(t, p.Validate(context.Background()))

	p.Name = ""
	err := p.Validate(context.Background())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	p.Name = "Dates 500g"
	p.Price = types.MustMoney("-1.000")
	require.Error(t, p.Validate(context.Background()))
}

func TestIsLowStock(t *testing.T) {
	p := New("Halwa Tin", "Food", types.MustMoney("3.250"), "tin")
	p.MinLevel = 10

	p.Stock = 25
	assert.False(t, p.IsLowStock())

	p.Stock = 10
	assert.True(t, p.IsLowStock())

	p.Stock = 0
	assert.True(t, p.IsLowStock())
}
