package currency

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

var groupedPrinter = message.NewPrinter(language.English)

// FormatPrice renders amountGP as its largest-first coin breakdown, skipping zero
// denominations, e.g. 1.5 -> "1 gp 5 sp". Electrum is never used in the breakdown.
// Zero renders as "0 cp".
func FormatPrice(amountGP float64) string {
	copper := ToCopper(amountGP)
	if copper <= 0 {
		return "0 " + DenomCopper
	}

	parts := make([]string, 0, 4)
	for _, d := range displayDenominations {
		n := copper / d.copper
		if n == 0 {
			continue
		}
		copper -= n * d.copper
		parts = append(parts, strconv.Itoa(n)+" "+d.label)
	}
	return strings.Join(parts, " ")
}

// FormatPurse renders a purse as "2 pp 3 gp 1 ep" with empty denominations left out
func FormatPurse(p domain.CoinPurse) string {
	counts := []struct {
		n     int
		label string
	}{
		{p.PP, DenomPlatinum}, {p.GP, DenomGold}, {p.EP, DenomElectrum}, {p.SP, DenomSilver}, {p.CP, DenomCopper},
	}
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, strconv.Itoa(c.n)+" "+c.label)
		}
	}
	if len(parts) == 0 {
		return "0 " + DenomCopper
	}
	return strings.Join(parts, " ")
}

// FormatCompact renders whole-gold list prices the way the shop shelf shows them:
// 950 -> "950", 1000 -> "1K", 1500 -> "1.5K".
func FormatCompact(price int) string {
	if price < compactThreshold {
		return strconv.Itoa(price)
	}
	if price%compactThreshold == 0 {
		return fmt.Sprintf("%dK", price/compactThreshold)
	}
	return fmt.Sprintf("%.1fK", float64(price)/compactThreshold)
}

// FormatFull renders a price with digit grouping, e.g. 12500 -> "12,500"
func FormatFull(price int) string {
	return groupedPrinter.Sprintf("%d", price)
}
