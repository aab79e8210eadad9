package entities

// Insights is the computed yearly activity summary for an address. It is
// assembled once per request from the five explorer streams and never
// persisted.
type Insights struct {
	Address string `json:"address"`
	Year    int    `json:"year"`

	TotalTransactions int     `json:"totalTransactions"`
	TotalVolumeEth    float64 `json:"totalVolumeEth"`

	BiggestDay    BiggestDay `json:"biggestDay"`
	NFTsMinted    int        `json:"nftsMinted"`
	TopCollection string     `json:"topCollection"`
	BridgeCount   int        `json:"bridgeCount"`
	GmStreak      int        `json:"gmStreak"`
	FirstTouch    string     `json:"firstTouch"`
	MintStory     string     `json:"mintStory"`

	TokenHabits   TokenHabits   `json:"tokenHabits"`
	EthJourney    EthJourney    `json:"ethJourney"`
	NFTSnapshot   NFTSnapshot   `json:"nftSnapshot"`
	Streaks       Streaks       `json:"streaks"`
	DappDiversity DappDiversity `json:"dappDiversity"`
}

// BiggestDay is the most active calendar day of the year. Minutes is a
// coarse engagement heuristic (two minutes per transaction), not measured
// time.
type BiggestDay struct {
	Label   string `json:"label"`
	Txs     int    `json:"txs"`
	Minutes int    `json:"minutes"`
}

// TokenHabits summarizes ERC-20 transfer behavior
type TokenHabits struct {
	TopTokenByVolume  string `json:"topTokenByVolume"`
	TopTokenByCount   string `json:"topTokenByCount"`
	StablePreference  string `json:"stablePreference"`
	TransfersSent     int    `json:"transfersSent"`
	TransfersReceived int    `json:"transfersReceived"`
	TransferCount     int    `json:"transferCount"`
}

// EthJourney summarizes the daily balance trajectory over the year. All
// values are in ether.
type EthJourney struct {
	StartBalance  float64 `json:"startBalance"`
	EndBalance    float64 `json:"endBalance"`
	PeakBalance   float64 `json:"peakBalance"`
	ChangePercent float64 `json:"changePercent"`
	BiggestSwing  float64 `json:"biggestSwing"`
}

// NFTSnapshot summarizes currently held NFT collections
type NFTSnapshot struct {
	CollectionsHeld int    `json:"collectionsHeld"`
	City            string `json:"city"`
	EarliestYear    string `json:"earliestYear"`
	EventBadges     int    `json:"eventBadges"`
}

// Streaks summarizes activity cadence. DominantHours is the 6-hour UTC
// bucket with the most transactions, a tx-count proxy rather than a
// measured schedule.
type Streaks struct {
	ActiveDays    int    `json:"activeDays"`
	LongestStreak int    `json:"longestStreak"`
	DominantHours string `json:"dominantHours"`
}

// DappDiversity summarizes counterparty spread
type DappDiversity struct {
	UniqueDapps int    `json:"uniqueDapps"`
	TopCategory string `json:"topCategory"`
}
