package services

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/wallet-insights/internal/domain/entities"
)

// keywordGroup is one row of an ordered classification table. Groups are
// consulted in declaration order; the first group with a matching term
// wins.
type keywordGroup struct {
	Label string
	Terms []string
}

var dappCategories = []keywordGroup{
	{Label: "DEX", Terms: []string{"uniswap", "sushiswap", "curve", "1inch", "balancer", "swap", "dex"}},
	{Label: "Bridge", Terms: []string{"bridge", "hop", "across", "stargate", "wormhole"}},
	{Label: "Lending", Terms: []string{"aave", "compound", "morpho", "spark", "maker", "lend"}},
	{Label: "NFT Market", Terms: []string{"opensea", "seaport", "blur", "rarible", "looksrare", "zora"}},
}

// stablecoinSymbols is the recognized stablecoin allow-list; matching is
// case-insensitive and the canonical spelling here is what gets reported.
var stablecoinSymbols = []string{"USDT", "USDC", "DAI", "BUSD", "TUSD", "USDP", "FRAX", "LUSD", "GUSD", "USDD"}

// matchKeywordGroup returns the label of the first group containing a term
// that occurs in s (case-insensitive substring).
func matchKeywordGroup(groups []keywordGroup, s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, g := range groups {
		for _, term := range g.Terms {
			if strings.Contains(lower, term) {
				return g.Label, true
			}
		}
	}
	return "", false
}

// categoryFor maps a resolved destination name to a dapp category
func categoryFor(name string) string {
	if label, ok := matchKeywordGroup(dappCategories, name); ok {
		return label
	}
	return "Other"
}

// stablecoinFor returns the canonical allow-list symbol when the given
// token symbol is a recognized stablecoin.
func stablecoinFor(symbol string) (string, bool) {
	for _, s := range stablecoinSymbols {
		if strings.EqualFold(symbol, s) {
			return s, true
		}
	}
	return "", false
}

// isMint reports whether an NFT transfer originates from the zero address,
// i.e. new-token creation rather than a transfer between holders.
func isMint(t entities.TokenTransfer) bool {
	if t.From.Hash == "" {
		return false
	}
	return common.HexToAddress(t.From.Hash) == (common.Address{})
}

// destinationCandidates builds the ordered candidate-name list for a
// transaction destination: tags first, then explorer metadata, then the
// plain name, then the raw hash. Empty fields are dropped.
func destinationCandidates(to entities.AddressParty) []string {
	var candidates []string
	add := func(s string) {
		if s != "" {
			candidates = append(candidates, s)
		}
	}

	for _, tag := range to.PublicTags {
		add(tag.DisplayName)
		add(tag.Name)
	}
	for _, tag := range to.WatchlistNames {
		add(tag.DisplayName)
		add(tag.Name)
	}
	if to.Metadata != nil {
		add(to.Metadata.Name)
		add(to.Metadata.Slug)
	}
	add(to.Name)
	add(to.Hash)

	return candidates
}

// isBridgeDestination reports whether any candidate name of the
// destination textually indicates a cross-chain bridge.
func isBridgeDestination(to entities.AddressParty) bool {
	for _, candidate := range destinationCandidates(to) {
		if strings.Contains(strings.ToLower(candidate), "bridge") {
			return true
		}
	}
	return false
}

// resolveDestination picks a display name for a transaction destination.
// Short all-caps tokens look like ticker symbols, so the first candidate
// that is not one is preferred; with nothing better the first candidate
// wins, and an unnamed destination resolves to "Unknown".
func resolveDestination(to entities.AddressParty) string {
	candidates := destinationCandidates(to)
	if len(candidates) == 0 {
		return "Unknown"
	}
	for _, candidate := range candidates {
		if !isTickerLike(candidate) {
			return candidate
		}
	}
	return candidates[0]
}

// isTickerLike reports whether s is a 2-8 character all-caps alphanumeric
// token such as "USDC" or "WETH9".
func isTickerLike(s string) bool {
	if len(s) < 2 || len(s) > 8 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return hasLetter
}
