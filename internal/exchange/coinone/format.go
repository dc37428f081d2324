package coinone

import "strconv"

// Формат значений на проводе фиксированный: цена с двумя знаками (KRW),
// объём с четырьмя (USDT).
const (
	priceDecimals = 2
	qtyDecimals   = 4
)

func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', priceDecimals, 64)
}

func formatQty(value float64) string {
	return strconv.FormatFloat(value, 'f', qtyDecimals, 64)
}

func parseFloatOrZero(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}
