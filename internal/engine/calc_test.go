package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellpanel/internal/models"
)

func TestCalcOrderQuantityZeroPercentage(t *testing.T) {
	// Нулевой процент не требует ни цены, ни балансов.
	qty, krw, err := CalcOrderQuantity(models.OrderSideSell, 0, 0, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, qty)
	assert.Equal(t, 0.0, krw)
}

func TestCalcOrderQuantitySell(t *testing.T) {
	qty, krw, err := CalcOrderQuantity(models.OrderSideSell, 50, 1350, 0, 1000, 1)
	require.NoError(t, err)
	assert.Equal(t, 500.0, qty)
	assert.Equal(t, 675000.0, krw)
}

func TestCalcOrderQuantityBuy(t *testing.T) {
	qty, krw, err := CalcOrderQuantity(models.OrderSideBuy, 10, 1350, 2000000, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 148.0, qty)
	assert.Equal(t, 200000.0, krw)
}

func TestCalcOrderQuantityFloorsWithStep(t *testing.T) {
	qty, krw, err := CalcOrderQuantity(models.OrderSideSell, 100, 1350, 0, 123.4567, 0.0001)
	require.NoError(t, err)
	assert.InDelta(t, 123.4567, qty, 1e-9)
	assert.InDelta(t, qty*1350, krw, 1e-6)

	qty, _, err = CalcOrderQuantity(models.OrderSideSell, 100, 1350, 0, 123.9999, 1)
	require.NoError(t, err)
	assert.Equal(t, 123.0, qty)
}

func TestCalcOrderQuantityZeroPriceIsInputError(t *testing.T) {
	// Нулевая цена при ненулевом проценте — ошибка ввода, а не деление на ноль.
	_, _, err := CalcOrderQuantity(models.OrderSideSell, 50, 0, 0, 1000, 1)
	assert.ErrorIs(t, err, ErrPriceRequired)

	_, _, err = CalcOrderQuantity(models.OrderSideBuy, 50, -1, 2000000, 0, 1)
	assert.ErrorIs(t, err, ErrPriceRequired)
}

func TestCalcOrderQuantityPercentageRange(t *testing.T) {
	_, _, err := CalcOrderQuantity(models.OrderSideSell, 101, 1350, 0, 1000, 1)
	assert.Error(t, err)

	_, _, err = CalcOrderQuantity(models.OrderSideSell, -1, 1350, 0, 1000, 1)
	assert.Error(t, err)
}

func TestRoundDownNeverRoundsUp(t *testing.T) {
	assert.Equal(t, 499.0, RoundDown(499.9999, 1))
	assert.Equal(t, 0.123, RoundDown(0.12399, 0.001))
	assert.Equal(t, 42.0, RoundDown(42, 0))
}
