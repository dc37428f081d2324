package coinone

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// encodePayload сериализует тело запроса в JSON и кодирует в base64.
// Если вызывающий не задал nonce, подставляется свежий uuid v4: биржа
// отклоняет повторно использованные nonce.
func encodePayload(payload map[string]any) (string, error) {
	if _, ok := payload["nonce"]; !ok {
		payload["nonce"] = uuid.New().String()
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("Не удалось подготовить тело запроса: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// sign считает HMAC-SHA512 от закодированного тела, hex в нижнем регистре.
func sign(secretKey, encodedPayload string) string {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write([]byte(encodedPayload))
	return hex.EncodeToString(mac.Sum(nil))
}
