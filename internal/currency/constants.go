package currency

// Copper value of each coin
const (
	CopperPerPlatinum = 1000
	CopperPerGold     = 100
	CopperPerElectrum = 50
	CopperPerSilver   = 10
)

// Denomination labels
const (
	DenomPlatinum = "pp"
	DenomGold     = "gp"
	DenomElectrum = "ep"
	DenomSilver   = "sp"
	DenomCopper   = "cp"
)

const compactThreshold = 1000

type denomination struct {
	copper int
	label  string
}

var displayDenominations = []denomination{
	{CopperPerPlatinum, DenomPlatinum},
	{CopperPerGold, DenomGold},
	{CopperPerSilver, DenomSilver},
	{1, DenomCopper},
}
