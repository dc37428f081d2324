package engine

import (
	"errors"
	"fmt"

	"sellpanel/internal/exchange"
)

var (
	ErrNonPositiveValue = errors.New("Цена и объём должны быть больше нуля")
	ErrBelowMinNotional = errors.New("Стоимость заявки меньше минимальной")
	ErrBelowMinQty      = errors.New("Объём заявки меньше минимального")
)

// ValidateOrder проверяет заявку перед отправкой. Правила применяются
// по порядку, возвращается первое нарушение: при невалидном вводе до
// биржи запрос не доходит.
func ValidateOrder(price, qty float64, rules exchange.PairRules) error {
	if price <= 0 || qty <= 0 {
		return ErrNonPositiveValue
	}
	if price*qty < rules.MinNotional {
		return fmt.Errorf("%w: %s < %s %s", ErrBelowMinNotional,
			formatFloatPlain(price*qty), formatFloatPlain(rules.MinNotional), rules.QuoteCurrency)
	}
	if qty < rules.MinQty {
		return fmt.Errorf("%w: %s < %s %s", ErrBelowMinQty,
			formatFloatPlain(qty), formatFloatPlain(rules.MinQty), rules.TargetCurrency)
	}
	return nil
}
