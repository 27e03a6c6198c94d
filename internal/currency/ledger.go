package currency

import (
	"math"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/utils"
)

// ToCopper converts a gold amount to whole copper, rounding half away from zero
func ToCopper(gp float64) int {
	return int(math.Round(gp * CopperPerGold))
}

// TotalCopper returns the copper-equivalent value of the purse
func TotalCopper(p domain.CoinPurse) int {
	return p.PP*CopperPerPlatinum + p.GP*CopperPerGold + p.EP*CopperPerElectrum + p.SP*CopperPerSilver + p.CP
}

// CanAfford reports whether the purse covers costGP. It never mutates p.
func CanAfford(p domain.CoinPurse, costGP float64) bool {
	return TotalCopper(p) >= ToCopper(costGP)
}

// Deduct pays costGP out of p and reports whether it succeeded.
// On failure p is left untouched.
//
// Coins are spent from the smallest denomination up. When a larger coin has to be
// broken, the overpayment comes back as gold, silver and copper only: change never
// contains electrum and never adds platinum.
func Deduct(p *domain.CoinPurse, costGP float64) bool {
	cost := ToCopper(costGP)
	if cost < 0 || TotalCopper(*p) < cost {
		return false
	}

	remaining := cost
	remaining -= spend(&p.CP, 1, remaining, p)
	remaining -= spend(&p.SP, CopperPerSilver, remaining, p)
	remaining -= spend(&p.EP, CopperPerElectrum, remaining, p)
	remaining -= spend(&p.GP, CopperPerGold, remaining, p)
	spend(&p.PP, CopperPerPlatinum, remaining, p)
	return true
}

// spend takes up to ceil(remaining/unit) coins from *count, returns the copper value
// applied to the debt and credits any overpayment back to p as change.
func spend(count *int, unit, remaining int, p *domain.CoinPurse) int {
	if remaining <= 0 || *count == 0 {
		return 0
	}
	coins := utils.MinInt(*count, utils.CeilDiv(remaining, unit))
	*count -= coins
	paid := coins * unit
	if paid <= remaining {
		return paid
	}
	giveChange(p, paid-remaining)
	return remaining
}

// giveChange credits copper as gold/silver/copper
func giveChange(p *domain.CoinPurse, copper int) {
	p.GP += copper / CopperPerGold
	copper %= CopperPerGold
	p.SP += copper / CopperPerSilver
	p.CP += copper % CopperPerSilver
}

// Add credits amountGP to p as gold, silver and copper. Negative amounts are ignored.
func Add(p *domain.CoinPurse, amountGP float64) {
	copper := ToCopper(amountGP)
	if copper <= 0 {
		return
	}
	giveChange(p, copper)
}
