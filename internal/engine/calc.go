package engine

import (
	"errors"
	"fmt"
	"math"

	"sellpanel/internal/models"
)

var ErrPriceRequired = errors.New("Для расчёта объёма нужна положительная цена")

func RoundDown(value, step float64) float64 {
	if step == 0 {
		return value
	}
	return math.Floor(value/step) * step
}

// CalcOrderQuantity переводит процент доступного баланса в объём заявки
// и его стоимость в валюте котировки. Округление всегда вниз с шагом
// qtyStep, чтобы не запросить больше, чем позволяет баланс.
func CalcOrderQuantity(side models.OrderSide, percentage int, price, availableKRW, availableUSDT, qtyStep float64) (qty, krwEquivalent float64, err error) {
	if percentage < 0 || percentage > 100 {
		return 0, 0, fmt.Errorf("Недопустимый процент: %d", percentage)
	}
	if percentage == 0 {
		return 0, 0, nil
	}
	if price <= 0 {
		return 0, 0, ErrPriceRequired
	}
	if qtyStep <= 0 {
		qtyStep = 1
	}

	if side == models.OrderSideBuy {
		amountKRW := availableKRW * float64(percentage) / 100
		qty = RoundDown(amountKRW/price, qtyStep)
		return qty, amountKRW, nil
	}

	amountUSDT := availableUSDT * float64(percentage) / 100
	qty = RoundDown(amountUSDT, qtyStep)
	return qty, qty * price, nil
}
