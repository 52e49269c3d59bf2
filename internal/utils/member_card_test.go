package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMemberCardNumber(t *testing.T) {
	cases := []struct {
		card  string
		valid bool
	}{
		{"", true},
		{"   ", true},
		{"ODI1234567890", true},
		{"ODI0000000000", true},
		{"ODI123456789", false},    // nine digits
		{"ODI12345678901", false},  // eleven digits
		{"odi1234567890", false},   // lowercase prefix
		{"ABC1234567890", false},   // wrong prefix
		{"ODI12345678X0", false},   // letter among digits
		{"1234567890ODI", false},   // prefix at the end
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidMemberCardNumber(tc.card), "card %q", tc.card)
	}
}
