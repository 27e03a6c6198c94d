package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0 cp"},
		{1.5, "1 gp 5 sp"},
		{0.75, "7 sp 5 cp"},
		{0.01, "1 cp"},
		{2, "2 gp"},
		{15, "1 pp 5 gp"},
		{1234.56, "123 pp 4 gp 5 sp 6 cp"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.amount))
		})
	}
}

func TestFormatPurse(t *testing.T) {
	assert.Equal(t, "0 cp", FormatPurse(domain.CoinPurse{}))
	assert.Equal(t, "2 pp 1 ep 4 cp", FormatPurse(domain.CoinPurse{PP: 2, EP: 1, CP: 4}))
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "950", FormatCompact(950))
	assert.Equal(t, "1K", FormatCompact(1000))
	assert.Equal(t, "1.5K", FormatCompact(1500))
	assert.Equal(t, "12.3K", FormatCompact(12345))
}

func TestFormatFull(t *testing.T) {
	assert.Equal(t, "950", FormatFull(950))
	assert.Equal(t, "12,500", FormatFull(12500))
}
