package services

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/bimakw/wallet-insights/internal/domain/entities"
	"github.com/bimakw/wallet-insights/internal/testutil"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestDeriveVolume_Empty(t *testing.T) {
	total, volume, biggest := deriveVolume(nil, 2025)

	if total != 0 {
		t.Errorf("expected 0 transactions, got %d", total)
	}
	if volume != 0 {
		t.Errorf("expected 0 volume, got %f", volume)
	}
	want := entities.BiggestDay{Label: "No 2025 activity yet", Txs: 0, Minutes: 0}
	if biggest != want {
		t.Errorf("expected %+v, got %+v", want, biggest)
	}
}

func TestDeriveVolume_BiggestDayAndTotals(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.March, 14, 9))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.March, 14, 15))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.March, 14, 20))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.June, 1, 12))),
		testutil.CreateTestTransaction(
			testutil.TxWithTimestamp(day(2025, time.June, 2, 12)),
			testutil.TxWithValueWei("500000000000000000"), // 0.5 ETH
		),
	}

	total, volume, biggest := deriveVolume(txs, 2025)

	if total != 5 {
		t.Errorf("expected 5 transactions, got %d", total)
	}
	if math.Abs(volume-4.5) > 1e-9 {
		t.Errorf("expected 4.5 ETH volume, got %f", volume)
	}
	if biggest.Label != "March 14" {
		t.Errorf("expected biggest day 'March 14', got %q", biggest.Label)
	}
	if biggest.Txs != 3 {
		t.Errorf("expected 3 txs on biggest day, got %d", biggest.Txs)
	}
	if biggest.Minutes != 6 {
		t.Errorf("expected 6 heuristic minutes, got %d", biggest.Minutes)
	}
}

func TestDeriveVolume_TieGoesToFirstSeenDay(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.May, 10, 9))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.May, 20, 9))),
	}

	_, _, biggest := deriveVolume(txs, 2025)

	if biggest.Label != "May 10" {
		t.Errorf("expected first-seen day to win the tie, got %q", biggest.Label)
	}
}

func TestDeriveStreaks(t *testing.T) {
	// Active days D, D+1, D+2, D+5: longest run 3, active days 4
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 1, 10))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 2, 11))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 2, 23))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 3, 1))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 6, 18))),
	}

	activeDays, longest := deriveStreaks(txs)

	if activeDays != 4 {
		t.Errorf("expected 4 active days, got %d", activeDays)
	}
	if longest != 3 {
		t.Errorf("expected longest streak 3, got %d", longest)
	}
}

func TestDeriveStreaks_Empty(t *testing.T) {
	activeDays, longest := deriveStreaks(nil)
	if activeDays != 0 || longest != 0 {
		t.Errorf("expected zero streaks, got %d/%d", activeDays, longest)
	}
}

func TestDeriveStreaks_UnorderedInput(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 3, 1))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 1, 10))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 2, 11))),
	}

	activeDays, longest := deriveStreaks(txs)

	if activeDays != 3 || longest != 3 {
		t.Errorf("expected 3/3, got %d/%d", activeDays, longest)
	}
}

func TestDeriveDominantHours(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 1, 19))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 2, 22))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 3, 9))),
	}

	if got := deriveDominantHours(txs); got != "18-23" {
		t.Errorf("expected 18-23, got %q", got)
	}
}

func TestDeriveDominantHours_TieGoesToEarlierBucket(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 1, 3))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.April, 1, 21))),
	}

	if got := deriveDominantHours(txs); got != "00-05" {
		t.Errorf("expected earlier bucket on tie, got %q", got)
	}
}

func TestDeriveFirstTouch(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.July, 4, 12))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.February, 3, 8))),
	}

	if got := deriveFirstTouch(txs); got != "February 3, 2025" {
		t.Errorf("expected 'February 3, 2025', got %q", got)
	}

	if got := deriveFirstTouch(nil); got != noActivitySentinel {
		t.Errorf("expected no-activity sentinel, got %q", got)
	}
}

func TestDeriveBridgeCount(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithDestination(
			testutil.TaggedDestination("Arbitrum Bridge", testutil.CounterpartyAddr))),
		testutil.CreateTestTransaction(testutil.TxWithDestination(
			testutil.NamedDestination("Uniswap V3 Router", testutil.CounterpartyAddr))),
		testutil.CreateTestTransaction(testutil.TxWithDestination(
			testutil.NamedDestination("Hop Bridge", testutil.CounterpartyAddr))),
	}

	if got := deriveBridgeCount(txs); got != 2 {
		t.Errorf("expected 2 bridge transactions, got %d", got)
	}
}

func TestDeriveNFTMints(t *testing.T) {
	transfers := []entities.TokenTransfer{
		testutil.CreateTestTokenTransfer(
			testutil.TransferWithFrom(testutil.ZeroAddress),
			testutil.TransferWithTokenName("Cool Cats"),
		),
		testutil.CreateTestTokenTransfer(
			testutil.TransferWithFrom(testutil.ZeroAddress),
			testutil.TransferWithTokenName("Cool Cats"),
		),
		testutil.CreateTestTokenTransfer(
			testutil.TransferWithFrom(testutil.ZeroAddress),
			testutil.TransferWithTokenName("Doodles"),
		),
		// not a mint
		testutil.CreateTestTokenTransfer(testutil.TransferWithTokenName("Doodles")),
	}

	count, top := deriveNFTMints(transfers)

	if count != 3 {
		t.Errorf("expected 3 mints, got %d", count)
	}
	if top != "Cool Cats" {
		t.Errorf("expected top collection 'Cool Cats', got %q", top)
	}
}

func TestDeriveNFTMints_FallbackKeys(t *testing.T) {
	transfers := []entities.TokenTransfer{
		testutil.CreateTestTokenTransfer(
			testutil.TransferWithFrom(testutil.ZeroAddress),
			testutil.TransferWithTokenName(""),
		),
	}

	count, top := deriveNFTMints(transfers)

	if count != 1 {
		t.Errorf("expected 1 mint, got %d", count)
	}
	// token name empty, falls back to the contract address
	if top != testutil.USDCAddress {
		t.Errorf("expected contract address fallback, got %q", top)
	}

	none, topNone := deriveNFTMints(nil)
	if none != 0 || topNone != "None" {
		t.Errorf("expected 0/None for no mints, got %d/%q", none, topNone)
	}
}

func TestDeriveTokenHabits(t *testing.T) {
	transfers := []entities.TokenTransfer{
		// 3 USDC received, 1 each
		testutil.CreateTestTokenTransfer(),
		testutil.CreateTestTokenTransfer(),
		testutil.CreateTestTokenTransfer(),
		// one big WETH send: 5 WETH at 18 decimals
		testutil.CreateTestTokenTransfer(
			testutil.TransferWithSymbol("WETH"),
			testutil.TransferWithDecimals("18"),
			testutil.TransferWithValue("5000000000000000000"),
			testutil.TransferWithFrom(testutil.WalletAddress),
			testutil.TransferWithTo(testutil.CounterpartyAddr),
		),
	}

	habits := deriveTokenHabits(transfers)

	if habits.TopTokenByVolume != "WETH" {
		t.Errorf("expected WETH top by volume, got %q", habits.TopTokenByVolume)
	}
	if habits.TopTokenByCount != "USDC" {
		t.Errorf("expected USDC top by count, got %q", habits.TopTokenByCount)
	}
	if habits.StablePreference != "USDC" {
		t.Errorf("expected USDC stable preference, got %q", habits.StablePreference)
	}
	if habits.TransferCount != 4 {
		t.Errorf("expected 4 transfers, got %d", habits.TransferCount)
	}
	if habits.TransfersSent != 1 {
		t.Errorf("expected 1 sent, got %d", habits.TransfersSent)
	}
	if habits.TransfersReceived != 3 {
		t.Errorf("expected 3 received, got %d", habits.TransfersReceived)
	}
}

func TestDeriveTokenHabits_StablecoinAnyCase(t *testing.T) {
	transfers := []entities.TokenTransfer{
		testutil.CreateTestTokenTransfer(testutil.TransferWithSymbol("usdc")),
	}

	habits := deriveTokenHabits(transfers)

	if habits.StablePreference != "USDC" {
		t.Errorf("expected canonical USDC, got %q", habits.StablePreference)
	}
}

func TestDeriveTokenHabits_SelfTransferCountsOnly(t *testing.T) {
	transfers := []entities.TokenTransfer{
		testutil.CreateTestTokenTransfer(
			testutil.TransferWithSymbol("WETH"),
			testutil.TransferWithDecimals("18"),
			testutil.TransferWithValue("9000000000000000000"),
			testutil.TransferWithFrom(testutil.WalletAddress),
			testutil.TransferWithTo(testutil.WalletAddress),
		),
		testutil.CreateTestTokenTransfer(
			testutil.TransferWithSymbol("DAI"),
			testutil.TransferWithDecimals("18"),
			testutil.TransferWithValue("1000000000000000000"),
		),
	}

	habits := deriveTokenHabits(transfers)

	// The self-transfer contributes no volume, so DAI's 1 token beats
	// WETH's 0.
	if habits.TopTokenByVolume != "DAI" {
		t.Errorf("expected DAI top by volume, got %q", habits.TopTokenByVolume)
	}
	if habits.TransferCount != 2 {
		t.Errorf("expected 2 transfers, got %d", habits.TransferCount)
	}
	if habits.TransfersSent != 0 || habits.TransfersReceived != 1 {
		t.Errorf("expected 0 sent/1 received, got %d/%d", habits.TransfersSent, habits.TransfersReceived)
	}
}

func TestDeriveTokenHabits_DefaultDecimals(t *testing.T) {
	transfers := []entities.TokenTransfer{
		testutil.CreateTestTokenTransfer(
			testutil.TransferWithSymbol("MYSTERY"),
			testutil.TransferWithDecimals(""),
			testutil.TransferWithValue("2000000000000000000"), // 2 at 18 decimals
		),
	}

	habits := deriveTokenHabits(transfers)

	if habits.TopTokenByVolume != "MYSTERY" {
		t.Errorf("expected MYSTERY top by volume, got %q", habits.TopTokenByVolume)
	}
}

func TestDeriveTokenHabits_Empty(t *testing.T) {
	habits := deriveTokenHabits(nil)

	want := entities.TokenHabits{
		TopTokenByVolume: "None",
		TopTokenByCount:  "None",
		StablePreference: "None",
	}
	if habits != want {
		t.Errorf("expected %+v, got %+v", want, habits)
	}
}

func TestDeriveEthJourney(t *testing.T) {
	points := []entities.BalancePoint{
		// deliberately unordered
		testutil.CreateTestBalancePoint("2025-01-03", "4000000000000000000"),
		testutil.CreateTestBalancePoint("2025-01-01", "1000000000000000000"),
		testutil.CreateTestBalancePoint("2025-01-02", "5000000000000000000"),
		testutil.CreateTestBalancePoint("2025-01-04", "2000000000000000000"),
	}

	journey := deriveEthJourney(points)

	if math.Abs(journey.StartBalance-1) > 1e-9 {
		t.Errorf("expected start 1, got %f", journey.StartBalance)
	}
	if math.Abs(journey.EndBalance-2) > 1e-9 {
		t.Errorf("expected end 2, got %f", journey.EndBalance)
	}
	if math.Abs(journey.PeakBalance-5) > 1e-9 {
		t.Errorf("expected peak 5, got %f", journey.PeakBalance)
	}
	if math.Abs(journey.ChangePercent-100) > 1e-9 {
		t.Errorf("expected +100%%, got %f", journey.ChangePercent)
	}
	// Largest swing is +4 on Jan 2 (1 -> 5), bigger than -2 on Jan 4
	if math.Abs(journey.BiggestSwing-4) > 1e-9 {
		t.Errorf("expected swing +4, got %f", journey.BiggestSwing)
	}
}

func TestDeriveEthJourney_ZeroStartBalance(t *testing.T) {
	points := []entities.BalancePoint{
		testutil.CreateTestBalancePoint("2025-01-01", "0"),
		testutil.CreateTestBalancePoint("2025-01-02", "3000000000000000000"),
	}

	journey := deriveEthJourney(points)

	if journey.ChangePercent != 0 {
		t.Errorf("expected 0 change percent on zero start, got %f", journey.ChangePercent)
	}
	if math.IsNaN(journey.ChangePercent) || math.IsInf(journey.ChangePercent, 0) {
		t.Error("change percent must be finite")
	}
}

func TestDeriveEthJourney_Empty(t *testing.T) {
	journey := deriveEthJourney(nil)
	if journey != (entities.EthJourney{}) {
		t.Errorf("expected zero journey, got %+v", journey)
	}
}

func TestDeriveNFTSnapshot(t *testing.T) {
	collections := []entities.NFTCollection{
		testutil.CreateTestCollection("2",
			testutil.InstanceWithAttributes(
				[]string{"POAP"},
				entities.Attribute{TraitType: "city", Value: "Denver"},
				entities.Attribute{TraitType: "year", Value: "2023"},
			),
			testutil.InstanceWithAttributes(
				[]string{"event"},
				entities.Attribute{TraitType: "City", Value: "Lisbon"},
				entities.Attribute{TraitType: "Year", Value: float64(2021)},
			),
		),
		testutil.CreateTestCollection("0"),
		testutil.CreateTestCollection("1"),
	}

	snapshot := deriveNFTSnapshot(collections)

	if snapshot.CollectionsHeld != 2 {
		t.Errorf("expected 2 held collections, got %d", snapshot.CollectionsHeld)
	}
	// First discovered city wins and is never overwritten
	if snapshot.City != "Denver" {
		t.Errorf("expected Denver, got %q", snapshot.City)
	}
	if snapshot.EarliestYear != "2021" {
		t.Errorf("expected earliest year 2021, got %q", snapshot.EarliestYear)
	}
	if snapshot.EventBadges != 2 {
		t.Errorf("expected 2 event badges, got %d", snapshot.EventBadges)
	}
}

func TestDeriveNFTSnapshot_Empty(t *testing.T) {
	snapshot := deriveNFTSnapshot(nil)

	want := entities.NFTSnapshot{City: "None", EarliestYear: "None"}
	if snapshot != want {
		t.Errorf("expected %+v, got %+v", want, snapshot)
	}
}

func TestDeriveDappDiversity(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithDestination(
			testutil.NamedDestination("Uniswap V3 Router", testutil.CounterpartyAddr))),
		testutil.CreateTestTransaction(testutil.TxWithDestination(
			testutil.NamedDestination("Uniswap V3 Router", testutil.CounterpartyAddr))),
		testutil.CreateTestTransaction(testutil.TxWithDestination(
			testutil.NamedDestination("SushiSwap Router", "0x3333333333333333333333333333333333333333"))),
		testutil.CreateTestTransaction(testutil.TxWithDestination(
			testutil.NamedDestination("Aave Pool V3", "0x4444444444444444444444444444444444444444"))),
	}

	diversity := deriveDappDiversity(txs)

	if diversity.UniqueDapps != 3 {
		t.Errorf("expected 3 unique dapps, got %d", diversity.UniqueDapps)
	}
	if diversity.TopCategory != "DEX" {
		t.Errorf("expected DEX top category, got %q", diversity.TopCategory)
	}
}

func TestDeriveDappDiversity_Empty(t *testing.T) {
	diversity := deriveDappDiversity(nil)
	if diversity.UniqueDapps != 0 || diversity.TopCategory != "None" {
		t.Errorf("expected 0/None, got %d/%q", diversity.UniqueDapps, diversity.TopCategory)
	}
}

func TestDerivers_Idempotent(t *testing.T) {
	txs := []entities.Transaction{
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.March, 14, 9))),
		testutil.CreateTestTransaction(testutil.TxWithTimestamp(day(2025, time.March, 15, 9))),
	}
	transfers := []entities.TokenTransfer{testutil.CreateTestTokenTransfer()}
	points := []entities.BalancePoint{
		testutil.CreateTestBalancePoint("2025-01-01", "1000000000000000000"),
		testutil.CreateTestBalancePoint("2025-01-02", "2000000000000000000"),
	}

	run := func() []interface{} {
		total, volume, biggest := deriveVolume(txs, 2025)
		active, longest := deriveStreaks(txs)
		return []interface{}{
			total, volume, biggest, active, longest,
			deriveDominantHours(txs),
			deriveFirstTouch(txs),
			deriveTokenHabits(transfers),
			deriveEthJourney(points),
			deriveDappDiversity(txs),
		}
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Error("expected derivers to be pure, outputs differ between runs")
	}
}
