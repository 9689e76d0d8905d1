package httpapi

import (
	"math/big"
	"sort"

	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
)

// simulateBuyUpTo greedily consumes candidates, best ratio (lowest
// input-per-output) first, until targetOutput is met or candidates run
// out, per spec §4.6 "Swap quote". A partial fill (liquidity insufficient)
// is a valid result, not an error.
func simulateBuyUpTo(candidates []engine.TakeCandidate, targetOutput *big.Float) engine.SimulationResult {
	sorted := make([]engine.TakeCandidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Ratio.Cmp(sorted[j].Ratio) < 0
	})

	remaining := new(big.Float).Copy(targetOutput)
	totalInput := big.NewFloat(0)
	totalOutput := big.NewFloat(0)
	var legs []engine.SimulationLeg

	for _, c := range sorted {
		if remaining.Sign() <= 0 {
			break
		}
		takeOutput := new(big.Float).Copy(c.MaxOutput)
		if takeOutput.Cmp(remaining) > 0 {
			takeOutput = new(big.Float).Copy(remaining)
		}
		takeInput := new(big.Float).Mul(takeOutput, c.Ratio)

		legs = append(legs, engine.SimulationLeg{Input: takeInput, Output: takeOutput})
		totalInput.Add(totalInput, takeInput)
		totalOutput.Add(totalOutput, takeOutput)
		remaining.Sub(remaining, takeOutput)
	}

	return engine.SimulationResult{Legs: legs, TotalInput: totalInput, TotalOutput: totalOutput}
}

// blendedRatio returns totalInput/totalOutput formatted as a decimal
// string, or "-" if totalOutput is zero (no liquidity consumed at all).
func blendedRatio(totalInput, totalOutput *big.Float) string {
	if totalOutput.Sign() == 0 {
		return "-"
	}
	return new(big.Float).Quo(totalInput, totalOutput).Text('f', -1)
}
