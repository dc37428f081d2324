package ws

import (
	"context"
)

func (w *Client) SubscribeToChannels(ctx context.Context, quoteCurrency, targetCurrency string, channels []string) error {
	w.quoteCurrency = quoteCurrency
	w.targetCurrency = targetCurrency
	w.channels = channels

	for _, channel := range channels {
		msg := RequestMessage{
			RequestType: "SUBSCRIBE",
			Channel:     channel,
			Topic: &Topic{
				QuoteCurrency:  quoteCurrency,
				TargetCurrency: targetCurrency,
			},
		}
		if err := w.writeJSON(msg); err != nil {
			return err
		}
	}
	return nil
}
