package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatMoney(decimal.NewFromFloat(1234.5), "USD"))
	assert.Equal(t, "¥1,000", FormatMoney(decimal.NewFromInt(1000), "JPY"))
	assert.Equal(t, "12.5 XYZ", FormatMoney(decimal.NewFromFloat(12.5), "XYZ"))
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12.35", FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
	assert.Equal(t, "12", FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}
