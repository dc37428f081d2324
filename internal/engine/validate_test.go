package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sellpanel/internal/exchange"
)

func pairRules() exchange.PairRules {
	return exchange.PairRules{
		QuoteCurrency:  "KRW",
		TargetCurrency: "USDT",
		MinNotional:    1000,
		MinQty:         0.001,
		QtyStep:        1,
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		qty     float64
		wantErr error
	}{
		{"валидная заявка", 1350, 500, nil},
		{"ровно на минимальной стоимости", 1000, 1, nil},
		{"ровно на минимальном объёме", 1200000, 0.001, nil},
		{"нулевая цена", 0, 500, ErrNonPositiveValue},
		{"нулевой объём", 1350, 0, ErrNonPositiveValue},
		{"отрицательная цена", -1, 500, ErrNonPositiveValue},
		{"стоимость ниже минимума", 100, 5, ErrBelowMinNotional},
		{"объём ниже минимума", 2000000, 0.0005, ErrBelowMinQty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrder(tt.price, tt.qty, pairRules())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateOrderFirstFailureWins(t *testing.T) {
	// Нарушены все правила сразу, но возвращается первое по порядку.
	err := ValidateOrder(0, 0, pairRules())
	assert.ErrorIs(t, err, ErrNonPositiveValue)
}
