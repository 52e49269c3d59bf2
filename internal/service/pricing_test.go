package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitPriceWithoutMemberCard(t *testing.T) {
	unit, applied := UnitPrice(decimal.RequireFromString("50.00"), false)
	assert.False(t, applied)
	assert.Equal(t, "50.00", unit.StringFixed(2))
}

func TestUnitPriceWithMemberCard(t *testing.T) {
	unit, applied := UnitPrice(decimal.RequireFromString("50.00"), true)
	assert.True(t, applied)
	assert.Equal(t, "45.00", unit.StringFixed(2))
}

func TestUnitPriceRoundsToCents(t *testing.T) {
	// 10% off 33.33 is 29.997, which must round to a money amount.
	unit, applied := UnitPrice(decimal.RequireFromString("33.33"), true)
	assert.True(t, applied)
	assert.Equal(t, "30.00", unit.StringFixed(2))
}

func TestTotalPrice(t *testing.T) {
	unit := decimal.RequireFromString("45.00")
	assert.Equal(t, "135.00", TotalPrice(unit, 3).StringFixed(2))
	assert.Equal(t, "45.00", TotalPrice(unit, 1).StringFixed(2))
}

func TestTotalPriceFullFlow(t *testing.T) {
	listed := decimal.RequireFromString("50.00")

	unit, applied := UnitPrice(listed, false)
	assert.False(t, applied)
	assert.Equal(t, "150.00", TotalPrice(unit, 3).StringFixed(2))

	unit, applied = UnitPrice(listed, true)
	assert.True(t, applied)
	assert.Equal(t, "135.00", TotalPrice(unit, 3).StringFixed(2))
}
