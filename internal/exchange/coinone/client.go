package coinone

import (
	"net/http"
	"time"

	"sellpanel/internal/logger"
)

type Client struct {
	baseURL        string
	accessToken    string
	secretKey      string
	quoteCurrency  string
	targetCurrency string

	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL, accessToken, secretKey, quoteCurrency, targetCurrency string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:        baseURL,
		accessToken:    accessToken,
		secretKey:      secretKey,
		quoteCurrency:  quoteCurrency,
		targetCurrency: targetCurrency,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}
