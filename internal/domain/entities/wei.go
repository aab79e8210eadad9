package entities

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// WeiToEther converts an integer wei string to floating ether. The
// conversion happens once at the boundary; malformed input yields 0.
func WeiToEther(wei string) float64 {
	if wei == "" {
		return 0
	}
	f, ok := new(big.Float).SetString(wei)
	if !ok {
		return 0
	}
	eth, _ := new(big.Float).Quo(f, big.NewFloat(params.Ether)).Float64()
	return eth
}
