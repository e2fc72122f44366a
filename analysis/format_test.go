package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1.0K", FormatNumber(1000))
	assert.Equal(t, "1.2K", FormatNumber(1234))
	assert.Equal(t, "3.4M", FormatNumber(3_400_000))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "2.5%", FormatPercent(0.025))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(1))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "900 PLN", FormatCurrency(900))
	assert.Equal(t, "1.5K PLN", FormatCurrency(1500))
	assert.Equal(t, "2.0M PLN", FormatCurrency(2_000_000))
}

func TestFormatPosition(t *testing.T) {
	assert.Equal(t, "4.5", FormatPosition(4.52))
	assert.Equal(t, "12.0", FormatPosition(12))
}
