package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	def := decimal.RequireFromString("9.99")

	tests := []struct {
		name        string
		input       string
		want        string
		usedDefault bool
	}{
		{name: "plain value", input: "12.34", want: "12.34"},
		{name: "thousands separator", input: "1,234.50", want: "1234.50"},
		{name: "multiple separators", input: "1,234,567.89", want: "1234567.89"},
		{name: "surrounding whitespace", input: "  42.00  ", want: "42.00"},
		{name: "negative value", input: "-3.25", want: "-3.25"},
		{name: "integer text", input: "100", want: "100"},
		{name: "empty", input: "", want: "9.99", usedDefault: true},
		{name: "whitespace only", input: "   ", want: "9.99", usedDefault: true},
		{name: "non-numeric", input: "abc", want: "9.99", usedDefault: true},
		{name: "partially numeric", input: "12.3x", want: "9.99", usedDefault: true},
		{name: "lone comma", input: ",", want: "9.99", usedDefault: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ParseDecimal(tt.input, def)
			assert.True(t, outcome.Value.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", outcome.Value, tt.want)
			assert.Equal(t, tt.usedDefault, outcome.UsedDefault)
		})
	}
}

func TestParse_ReturnsValueOnly(t *testing.T) {
	got := Parse("1,234.50", decimal.Zero)
	assert.True(t, got.Equal(decimal.RequireFromString("1234.50")))

	got = Parse("garbage", decimal.Zero)
	assert.True(t, got.IsZero())
}
