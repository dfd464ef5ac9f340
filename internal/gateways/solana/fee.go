package solana

import (
	"math"
	"strconv"
)

const (
	LamportsPerSOL = 1_000_000_000
	USDCDecimals   = 6
	usdcBaseUnits  = 1_000_000

	// TreasuryFeeBasisPoints is the protocol cut of native payments (2%).
	TreasuryFeeBasisPoints = 200
	basisPointsDenominator = 10_000
)

// SplitTreasuryFee floors the treasury share so that treasury+recipient == total.
func SplitTreasuryFee(total uint64) (treasury, recipient uint64) {
	treasury = total/basisPointsDenominator*TreasuryFeeBasisPoints +
		total%basisPointsDenominator*TreasuryFeeBasisPoints/basisPointsDenominator
	return treasury, total - treasury
}

// ToLamports converts a SOL amount, rounding to the nearest lamport.
func ToLamports(sol float64) uint64 {
	return toBaseUnits(sol, LamportsPerSOL)
}

// ToUSDCUnits converts a USDC amount to its 6-decimal base units.
func ToUSDCUnits(usdc float64) uint64 {
	return toBaseUnits(usdc, usdcBaseUnits)
}

func toBaseUnits(amount float64, scale float64) uint64 {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return uint64(math.Round(amount * scale))
}

func FormatSOL(lamports uint64) string {
	return strconv.FormatFloat(float64(lamports)/LamportsPerSOL, 'f', -1, 64)
}
