package entities

import "time"

// TokenInfo describes the token a transfer moved. Decimals arrives as a
// string and may be empty or malformed for exotic tokens.
type TokenInfo struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Decimals    string `json:"decimals"`
	AddressHash string `json:"address_hash"`
}

// TransferTotal is the amount side of a token transfer
type TransferTotal struct {
	Value    string `json:"value"`
	Decimals string `json:"decimals"`
}

// TokenTransfer is one record from the explorer's token-transfers endpoint.
// AddressHash is the queried address, i.e. the perspective this transfer was
// returned for; comparing it against From/To gives the direction.
type TokenTransfer struct {
	Timestamp   string        `json:"timestamp"`
	From        AddressParty  `json:"from"`
	To          AddressParty  `json:"to"`
	Token       TokenInfo     `json:"token"`
	Total       TransferTotal `json:"total"`
	AddressHash string        `json:"address_hash"`
}

// Time parses the record's timestamp; false when missing or malformed.
func (t TokenTransfer) Time() (time.Time, bool) {
	return parseTimestamp(t.Timestamp)
}
