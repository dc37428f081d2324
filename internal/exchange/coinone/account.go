package coinone

import (
	"context"
	"strings"

	"sellpanel/internal/models"
)

// GetBalances возвращает балансы только по валютам торгуемой пары.
// Фильтрация живёт здесь, а не в doRequest: общий путь запросов не
// должен знать про конкретную пару.
func (c *Client) GetBalances(ctx context.Context) (map[string]models.Balance, error) {
	var resp struct {
		Balances []struct {
			Currency  string `json:"currency"`
			Available string `json:"available"`
			Limit     string `json:"limit"`
		} `json:"balances"`
	}

	if _, err := c.doRequest(ctx, "/v2.1/account/balance/all", map[string]any{}, &resp); err != nil {
		return nil, err
	}

	balances := map[string]models.Balance{}
	for _, item := range resp.Balances {
		currency := strings.ToUpper(item.Currency)
		if currency != strings.ToUpper(c.quoteCurrency) && currency != strings.ToUpper(c.targetCurrency) {
			continue
		}

		available, _ := parseFloatOrZero(item.Available)
		limit, _ := parseFloatOrZero(item.Limit)

		balances[strings.ToLower(currency)] = models.Balance{
			Currency:  currency,
			Available: available,
			Limit:     limit,
			Total:     available + limit,
		}
	}
	return balances, nil
}
