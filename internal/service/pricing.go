// Package service holds the decision logic of the application: per-user
// ticket pricing, inventory-guarded order placement and payment status
// updates.  Repositories stay rule-free; handlers stay projection-only.
package service

import "github.com/shopspring/decimal"

// Purchase quantity bounds enforced on the order form.
const (
	MinTicketsPerOrder = 1
	MaxTicketsPerOrder = 10
)

// memberCardDiscount is the fixed member discount fraction (10%).
var memberCardDiscount = decimal.RequireFromString("0.10")

// UnitPrice returns the effective per-ticket price for a buyer and
// whether the member discount was applied.  Holders of a member card
// get 10% off the listed price; everyone else pays list.
func UnitPrice(listed decimal.Decimal, hasMemberCard bool) (decimal.Decimal, bool) {
	if !hasMemberCard {
		return listed, false
	}
	return listed.Sub(listed.Mul(memberCardDiscount)).Round(2), true
}

// TotalPrice is the server-derived order total: unit price times
// quantity.  Client-submitted totals are never trusted.
func TotalPrice(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
