package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfit(t *testing.T) {
	assert.Equal(t, 0.0, Profit(0, 150), "zero buying price must not divide")
	assert.Equal(t, 0.0, Profit(0, 0))
	assert.Equal(t, 50.0, Profit(100, 150))
	assert.Equal(t, -20.0, Profit(100, 80))
	assert.Equal(t, 0.0, Profit(100, 100))
}
