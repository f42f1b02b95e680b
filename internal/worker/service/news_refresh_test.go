package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSymbols(t *testing.T) {
	symbols := []string{"RELIANCE.NS", "TCS.NS", "AAPL"}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "matches on the base ticker without suffix",
			text: "Reliance Industries posts record quarterly profit",
			want: []string{"RELIANCE.NS"},
		},
		{
			name: "matching is case insensitive",
			text: "aapl hits a new all-time high",
			want: []string{"AAPL"},
		},
		{
			name: "multiple mentions match multiple symbols",
			text: "TCS and Reliance lead the index higher",
			want: []string{"RELIANCE.NS", "TCS.NS"},
		},
		{
			name: "no mention matches nothing",
			text: "Gold prices steady ahead of Fed decision",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchSymbols(tt.text, symbols))
		})
	}

	t.Run("substring inside a longer word does not tag", func(t *testing.T) {
		watching := []string{"LT.NS"}

		assert.Nil(t, matchSymbols("Quarterly results were anything but difficult", watching))
		assert.Equal(t, []string{"LT.NS"}, matchSymbols("LT wins infrastructure order", watching))
	})
}

func TestHashLink(t *testing.T) {
	a := hashLink("https://example.com/article-1")
	b := hashLink("https://example.com/article-2")

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, hashLink("https://example.com/article-1"))
}
