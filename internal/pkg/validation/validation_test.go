package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPositiveAmount(t *testing.T) {
	assert.True(t, IsPositiveAmount(0.0001))
	assert.True(t, IsPositiveAmount(150))
	assert.False(t, IsPositiveAmount(0))
	assert.False(t, IsPositiveAmount(-1))
	assert.False(t, IsPositiveAmount(math.NaN()))
	assert.False(t, IsPositiveAmount(math.Inf(1)))
}

func TestIsNonNegativeAmount(t *testing.T) {
	assert.True(t, IsNonNegativeAmount(0))
	assert.True(t, IsNonNegativeAmount(185.92))
	assert.False(t, IsNonNegativeAmount(-0.01))
	assert.False(t, IsNonNegativeAmount(math.NaN()))
}

func TestIsValidSymbol(t *testing.T) {
	assert.True(t, IsValidSymbol("AAPL"))
	assert.True(t, IsValidSymbol("BRK.B"))
	assert.True(t, IsValidSymbol("BTC-USD"))
	assert.True(t, IsValidSymbol(" eth "))
	assert.False(t, IsValidSymbol(""))
	assert.False(t, IsValidSymbol("WAY TOO LONG SYMBOL"))
	assert.False(t, IsValidSymbol("bad$char"))
}
