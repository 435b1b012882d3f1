package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret_PricePhrases(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
		wantMax  float64
	}{
		{"under", "shoes under 2000", "shoes", 2000},
		{"below", "laptop below 50000", "laptop", 50000},
		{"less than", "headphones less than 1500", "headphones", 1500},
		{"upto", "watch upto 3000", "watch", 3000},
		{"up to", "watch up to 3000", "watch", 3000},
		{"or less", "shirt 999 or less", "shirt", 999},
		{"and less", "shirt 999 and less", "shirt", 999},
		{"decimal amount", "tea under 199.50", "tea", 199.50},
		{"mixed case phrase", "Shoes UNDER 2000", "Shoes", 2000},
		{"phrase mid-query", "under 500 kitchen knives", "kitchen knives", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.raw)
			assert.Equal(t, tt.wantText, got.TextQuery)
			require.NotNil(t, got.MaxPrice)
			assert.Equal(t, tt.wantMax, *got.MaxPrice)
		})
	}
}

func TestInterpret_NoPricePhrase(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
	}{
		{"plain query", "red running shoes", "red running shoes"},
		{"number without phrase", "iphone 15 pro", "iphone 15 pro"},
		{"underwear is not under", "thermal underwear", "thermal underwear"},
		{"whitespace trimmed", "  blue jeans  ", "blue jeans"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.raw)
			assert.Equal(t, tt.wantText, got.TextQuery)
			assert.Nil(t, got.MaxPrice)
		})
	}
}

func TestInterpret_ZeroAmountKeepsPhrase(t *testing.T) {
	got := Interpret("shoes under 0")
	assert.Equal(t, "shoes under 0", got.TextQuery)
	assert.Nil(t, got.MaxPrice)
}

func TestInterpret_FirstPatternWins(t *testing.T) {
	// Both phrase forms present; only the leading-keyword form is stripped.
	got := Interpret("bag under 700 or less")
	require.NotNil(t, got.MaxPrice)
	assert.Equal(t, 700.0, *got.MaxPrice)
	assert.Equal(t, "bag or less", got.TextQuery)
}

func TestInterpret_CollapsesWhitespace(t *testing.T) {
	got := Interpret("wool   socks under 300 for   winter")
	require.NotNil(t, got.MaxPrice)
	assert.Equal(t, 300.0, *got.MaxPrice)
	assert.Equal(t, "wool socks for winter", got.TextQuery)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercases", "Red SHIRT", []string{"red", "shirt"}},
		{"drops stop words", "shoes for the gym", []string{"shoes", "gym"}},
		{"only stop words", "for the of and", nil},
		{"empty", "", nil},
		{
			"caps at six",
			"one two three four five six seven eight",
			[]string{"one", "two", "three", "four", "five", "six"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}
