package entities

import "time"

// TagInfo is a human-assigned label on an address, either public or from a
// watchlist. Both variants carry the same shape on the wire.
type TagInfo struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
}

// AddressMetadata holds optional descriptive metadata the explorer attaches
// to known contracts and apps.
type AddressMetadata struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AddressParty describes one side of a transaction or transfer as returned
// by the explorer. Every field except Hash is best-effort.
type AddressParty struct {
	Hash           string           `json:"hash"`
	Name           string           `json:"name"`
	Metadata       *AddressMetadata `json:"metadata"`
	PublicTags     []TagInfo        `json:"public_tags"`
	WatchlistNames []TagInfo        `json:"watchlist_names"`
}

// Transaction is a native-coin transaction from the explorer's
// addresses/{hash}/transactions endpoint. Value is an integer wei string.
type Transaction struct {
	Timestamp string       `json:"timestamp"`
	Value     string       `json:"value"`
	To        AddressParty `json:"to"`
}

// Time parses the record's timestamp. The second return is false when the
// timestamp is missing or malformed; such records are skipped upstream.
func (t Transaction) Time() (time.Time, bool) {
	return parseTimestamp(t.Timestamp)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
