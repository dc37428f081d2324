package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldHelpers(t *testing.T) {
	log := New(Config{Level: "error"})

	entry := log.WithNonce("11111111-2222-4333-8444-555555555555")
	assert.Equal(t, "11111111-2222-4333-8444-555555555555", entry.Data["nonce"])

	entry = log.WithOrderID("ord-1")
	assert.Equal(t, "ord-1", entry.Data["order_id"])

	entry = log.WithComponent("engine")
	assert.Equal(t, "engine", entry.Data["component"])
}
