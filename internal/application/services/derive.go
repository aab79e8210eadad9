package services

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bimakw/wallet-insights/internal/domain/entities"
)

const (
	dayKeyLayout     = "2006-01-02"
	dayLabelLayout   = "January 2"
	firstTouchLayout = "January 2, 2006"

	// noActivitySentinel is reported as firstTouch for addresses with
	// zero transactions in the target year.
	noActivitySentinel = "No activity yet"
)

// deriveVolume folds transactions into the total count, total ether moved
// and the busiest calendar day. Ties between days go to the day seen
// first. The minutes figure is txCount*2, an engagement heuristic rather
// than measured time.
func deriveVolume(txs []entities.Transaction, year int) (int, float64, entities.BiggestDay) {
	var volume float64
	counts := make(map[string]int)
	var order []string

	for _, tx := range txs {
		volume += entities.WeiToEther(tx.Value)

		ts, ok := tx.Time()
		if !ok {
			continue
		}
		key := ts.UTC().Format(dayKeyLayout)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	biggest := entities.BiggestDay{Label: fmt.Sprintf("No %d activity yet", year)}
	for _, key := range order {
		if counts[key] <= biggest.Txs {
			continue
		}
		day, _ := time.Parse(dayKeyLayout, key)
		biggest = entities.BiggestDay{
			Label:   day.Format(dayLabelLayout),
			Txs:     counts[key],
			Minutes: counts[key] * 2,
		}
	}

	return len(txs), volume, biggest
}

// deriveStreaks computes the number of distinct active days and the
// longest run of consecutive calendar days with at least one transaction.
func deriveStreaks(txs []entities.Transaction) (activeDays, longest int) {
	seen := make(map[string]struct{})
	var days []time.Time

	for _, tx := range txs {
		ts, ok := tx.Time()
		if !ok {
			continue
		}
		utc := ts.UTC()
		day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
		key := day.Format(dayKeyLayout)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 0
	for i := range days {
		if i > 0 && days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return len(days), longest
}

// hourBuckets are the four 6-hour UTC windows of a day, in declaration
// order. Ties between buckets go to the earlier bucket.
var hourBuckets = []struct {
	Label string
	From  int
	To    int
}{
	{"00-05", 0, 5},
	{"06-11", 6, 11},
	{"12-17", 12, 17},
	{"18-23", 18, 23},
}

// deriveDominantHours returns the label of the 6-hour UTC bucket holding
// the most transactions. This is a tx-count proxy, not a measured
// schedule.
func deriveDominantHours(txs []entities.Transaction) string {
	counts := make([]int, len(hourBuckets))
	for _, tx := range txs {
		ts, ok := tx.Time()
		if !ok {
			continue
		}
		hour := ts.UTC().Hour()
		for i, b := range hourBuckets {
			if hour >= b.From && hour <= b.To {
				counts[i]++
				break
			}
		}
	}

	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return hourBuckets[best].Label
}

// deriveFirstTouch returns the date of the earliest transaction, or the
// no-activity sentinel.
func deriveFirstTouch(txs []entities.Transaction) string {
	var earliest time.Time
	found := false
	for _, tx := range txs {
		ts, ok := tx.Time()
		if !ok {
			continue
		}
		if !found || ts.Before(earliest) {
			earliest = ts
			found = true
		}
	}
	if !found {
		return noActivitySentinel
	}
	return earliest.UTC().Format(firstTouchLayout)
}

// deriveBridgeCount counts transactions whose destination looks like a
// cross-chain bridge.
func deriveBridgeCount(txs []entities.Transaction) int {
	count := 0
	for _, tx := range txs {
		if isBridgeDestination(tx.To) {
			count++
		}
	}
	return count
}

// deriveNFTMints counts zero-address-origin NFT transfers and names the
// most minted collection. Collections are keyed by token name, falling
// back to the contract address; ties go to the collection seen first.
func deriveNFTMints(transfers []entities.TokenTransfer) (int, string) {
	counts := make(map[string]int)
	var order []string
	total := 0

	for _, tr := range transfers {
		if !isMint(tr) {
			continue
		}
		total++

		name := tr.Token.Name
		if name == "" {
			name = tr.Token.AddressHash
		}
		if name == "" {
			name = "Unknown collection"
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	top := "None"
	best := 0
	for _, name := range order {
		if counts[name] > best {
			best = counts[name]
			top = name
		}
	}

	return total, top
}

// deriveTokenHabits folds ERC-20 transfers into per-symbol volume and
// count leaders plus the first recognized stablecoin. Amounts are
// normalized by the token's declared decimals (default 18); a transfer
// where sender equals receiver increments counts only.
func deriveTokenHabits(transfers []entities.TokenTransfer) entities.TokenHabits {
	type tokenAgg struct {
		volume float64
		count  int
	}

	habits := entities.TokenHabits{
		TopTokenByVolume: "None",
		TopTokenByCount:  "None",
		StablePreference: "None",
	}

	aggs := make(map[string]*tokenAgg)
	var order []string

	for _, tr := range transfers {
		symbol := tr.Token.Symbol
		if symbol == "" {
			symbol = "UNKNOWN"
		}

		agg := aggs[symbol]
		if agg == nil {
			agg = &tokenAgg{}
			aggs[symbol] = agg
			order = append(order, symbol)
		}
		agg.count++
		habits.TransferCount++

		if habits.StablePreference == "None" {
			if canonical, ok := stablecoinFor(tr.Token.Symbol); ok {
				habits.StablePreference = canonical
			}
		}

		if strings.EqualFold(tr.From.Hash, tr.To.Hash) {
			// self-transfer: counted, no volume, no direction
			continue
		}

		switch {
		case strings.EqualFold(tr.From.Hash, tr.AddressHash):
			habits.TransfersSent++
		case strings.EqualFold(tr.To.Hash, tr.AddressHash):
			habits.TransfersReceived++
		}

		agg.volume += tokenAmount(tr)
	}

	bestVolume := 0.0
	bestCount := 0
	for _, symbol := range order {
		agg := aggs[symbol]
		if agg.volume > bestVolume {
			bestVolume = agg.volume
			habits.TopTokenByVolume = symbol
		}
		if agg.count > bestCount {
			bestCount = agg.count
			habits.TopTokenByCount = symbol
		}
	}

	return habits
}

// tokenAmount converts a transfer's raw value by the token's declared
// decimals, defaulting to 18 when the field is absent or malformed.
func tokenAmount(tr entities.TokenTransfer) float64 {
	raw, ok := new(big.Float).SetString(tr.Total.Value)
	if !ok {
		return 0
	}

	decimals, err := strconv.Atoi(tr.Token.Decimals)
	if err != nil || decimals < 0 || decimals > 77 {
		decimals = 18
	}

	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	amount, _ := new(big.Float).Quo(raw, scale).Float64()
	return amount
}

// deriveEthJourney summarizes the daily balance trajectory: start, end and
// peak balances, percent change and the largest single-day signed swing.
// Points are sorted ascending by date before any delta is computed.
func deriveEthJourney(points []entities.BalancePoint) entities.EthJourney {
	var journey entities.EthJourney
	if len(points) == 0 {
		return journey
	}

	sorted := make([]entities.BalancePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	journey.StartBalance = entities.WeiToEther(sorted[0].Value)
	journey.EndBalance = entities.WeiToEther(sorted[len(sorted)-1].Value)

	prev := journey.StartBalance
	journey.PeakBalance = prev
	for _, point := range sorted[1:] {
		balance := entities.WeiToEther(point.Value)
		if balance > journey.PeakBalance {
			journey.PeakBalance = balance
		}
		if swing := balance - prev; math.Abs(swing) > math.Abs(journey.BiggestSwing) {
			journey.BiggestSwing = swing
		}
		prev = balance
	}

	if journey.StartBalance != 0 {
		journey.ChangePercent = (journey.EndBalance - journey.StartBalance) / journey.StartBalance * 100
	}

	return journey
}

// deriveNFTSnapshot summarizes current collection holdings: collections
// with a positive held amount, the first discovered "city" trait, the
// earliest "year" trait and the number of event/POAP-tagged instances.
func deriveNFTSnapshot(collections []entities.NFTCollection) entities.NFTSnapshot {
	snapshot := entities.NFTSnapshot{City: "None", EarliestYear: "None"}

	earliest := 0
	for _, collection := range collections {
		if amount, err := strconv.ParseFloat(collection.Amount, 64); err == nil && amount > 0 {
			snapshot.CollectionsHeld++
		}

		for _, instance := range collection.TokenInstances {
			meta := instance.Metadata
			if meta == nil {
				continue
			}

			for _, tag := range meta.Tags {
				lower := strings.ToLower(tag)
				if strings.Contains(lower, "poap") || strings.Contains(lower, "event") {
					snapshot.EventBadges++
					break
				}
			}

			for _, attr := range meta.Attributes {
				switch {
				case strings.EqualFold(attr.TraitType, "city"):
					if snapshot.City == "None" {
						if city := attributeString(attr.Value); city != "" {
							snapshot.City = city
						}
					}
				case strings.EqualFold(attr.TraitType, "year"):
					if year, ok := attributeInt(attr.Value); ok {
						if earliest == 0 || year < earliest {
							earliest = year
						}
					}
				}
			}
		}
	}

	if earliest != 0 {
		snapshot.EarliestYear = strconv.Itoa(earliest)
	}

	return snapshot
}

// attributeString renders an untyped attribute value as text
func attributeString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

// attributeInt extracts an integer from an untyped attribute value
func attributeInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}

// deriveDappDiversity counts distinct resolved destinations and picks the
// most common dapp category among them. Each distinct destination is
// categorized once; category ties go to the category seen first.
func deriveDappDiversity(txs []entities.Transaction) entities.DappDiversity {
	diversity := entities.DappDiversity{TopCategory: "None"}

	seen := make(map[string]struct{})
	catCounts := make(map[string]int)
	var catOrder []string

	for _, tx := range txs {
		name := resolveDestination(tx.To)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		category := categoryFor(name)
		if _, known := catCounts[category]; !known {
			catOrder = append(catOrder, category)
		}
		catCounts[category]++
	}

	diversity.UniqueDapps = len(seen)

	best := 0
	for _, category := range catOrder {
		if catCounts[category] > best {
			best = catCounts[category]
			diversity.TopCategory = category
		}
	}

	return diversity
}
