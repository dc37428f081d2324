package coinone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrMalformedResponse — биржа вернула тело, которое не разбирается как JSON
// или не содержит ожидаемых полей. Никогда не считается успехом.
var ErrMalformedResponse = errors.New("Некорректный ответ биржи")

type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Ошибка coinone: %s (code=%s)", e.Message, e.Code)
}

type apiStatus struct {
	Result    string          `json:"result"`
	ErrorCode json.RawMessage `json:"error_code"`
	ErrorMsg  string          `json:"error_msg"`
}

// doRequest — единственный путь для подписанных действий: кодирует тело,
// подписывает, отправляет POST и разбирает ответ. Успех определяется по
// result == "success" в теле, а не по HTTP-статусу.
func (c *Client) doRequest(ctx context.Context, action string, payload map[string]any, out any) (json.RawMessage, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["access_token"] = c.accessToken

	encodedPayload, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+action, strings.NewReader(encodedPayload))
	if err != nil {
		return nil, fmt.Errorf("Не удалось создать запрос: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-COINONE-PAYLOAD", encodedPayload)
	req.Header.Set("X-COINONE-SIGNATURE", sign(c.secretKey, encodedPayload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Ошибка запроса: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Не удалось прочитать ответ: %w", err)
	}

	var status apiStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if status.Result != "success" {
		return nil, &APIError{
			Code:    rawString(status.ErrorCode, "unknown"),
			Message: firstNonEmpty(status.ErrorMsg, "Unknown error message"),
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	return json.RawMessage(data), nil
}

// rawString приводит error_code к строке: биржа отдаёт его то числом,
// то строкой в зависимости от версии API.
func rawString(raw json.RawMessage, fallback string) string {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if text == "" || text == "null" {
		return fallback
	}
	return text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
