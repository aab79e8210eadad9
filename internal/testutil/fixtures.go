package testutil

import (
	"time"

	"github.com/bimakw/wallet-insights/internal/domain/entities"
)

// Common test addresses
const (
	WalletAddress    = "0x1111111111111111111111111111111111111111"
	CounterpartyAddr = "0x2222222222222222222222222222222222222222"
	ZeroAddress      = "0x0000000000000000000000000000000000000000"
	USDCAddress      = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
)

// CreateTestTransaction creates a test transaction with default values
func CreateTestTransaction(opts ...TxOption) entities.Transaction {
	tx := entities.Transaction{
		Timestamp: "2025-03-14T10:30:00Z",
		Value:     "1000000000000000000", // 1 ETH
		To: entities.AddressParty{
			Hash: CounterpartyAddr,
		},
	}

	for _, opt := range opts {
		opt(&tx)
	}

	return tx
}

type TxOption func(*entities.Transaction)

func TxWithTimestamp(ts time.Time) TxOption {
	return func(tx *entities.Transaction) {
		tx.Timestamp = ts.UTC().Format(time.RFC3339)
	}
}

func TxWithRawTimestamp(ts string) TxOption {
	return func(tx *entities.Transaction) {
		tx.Timestamp = ts
	}
}

func TxWithValueWei(wei string) TxOption {
	return func(tx *entities.Transaction) {
		tx.Value = wei
	}
}

func TxWithDestination(to entities.AddressParty) TxOption {
	return func(tx *entities.Transaction) {
		tx.To = to
	}
}

func TxWithDestinationName(name string) TxOption {
	return func(tx *entities.Transaction) {
		tx.To.Name = name
	}
}

// NamedDestination builds a destination with a plain name and hash
func NamedDestination(name, hash string) entities.AddressParty {
	return entities.AddressParty{Hash: hash, Name: name}
}

// TaggedDestination builds a destination carrying one public tag
func TaggedDestination(displayName, hash string) entities.AddressParty {
	return entities.AddressParty{
		Hash:       hash,
		PublicTags: []entities.TagInfo{{DisplayName: displayName}},
	}
}

// CreateTestTokenTransfer creates a test ERC-20 transfer received by the
// default wallet address
func CreateTestTokenTransfer(opts ...TransferOption) entities.TokenTransfer {
	tr := entities.TokenTransfer{
		Timestamp: "2025-03-14T10:30:00Z",
		From:      entities.AddressParty{Hash: CounterpartyAddr},
		To:        entities.AddressParty{Hash: WalletAddress},
		Token: entities.TokenInfo{
			Symbol:      "USDC",
			Name:        "USD Coin",
			Decimals:    "6",
			AddressHash: USDCAddress,
		},
		Total:       entities.TransferTotal{Value: "1000000"}, // 1 USDC
		AddressHash: WalletAddress,
	}

	for _, opt := range opts {
		opt(&tr)
	}

	return tr
}

type TransferOption func(*entities.TokenTransfer)

func TransferWithTimestamp(ts time.Time) TransferOption {
	return func(tr *entities.TokenTransfer) {
		tr.Timestamp = ts.UTC().Format(time.RFC3339)
	}
}

func TransferWithSymbol(symbol string) TransferOption {
	return func(tr *entities.TokenTransfer) {
		tr.Token.Symbol = symbol
	}
}

func TransferWithTokenName(name string) TransferOption {
	return func(tr *entities.TokenTransfer) {
		tr.Token.Name = name
	}
}

func TransferWithDecimals(decimals string) TransferOption {
	return func(tr *entities.TokenTransfer) {
		tr.Token.Decimals = decimals
	}
}

func TransferWithValue(value string) TransferOption {
	return func(tr *entities.TokenTransfer) {
		tr.Total.Value = value
	}
}

func TransferWithFrom(hash string) TransferOption {
	return func(tr *entities.TokenTransfer) {
		tr.From = entities.AddressParty{Hash: hash}
	}
}

func TransferWithTo(hash string) TransferOption {
	return func(tr *entities.TokenTransfer) {
		tr.To = entities.AddressParty{Hash: hash}
	}
}

// CreateTestBalancePoint creates one day of balance history
func CreateTestBalancePoint(date, wei string) entities.BalancePoint {
	return entities.BalancePoint{Date: date, Value: wei}
}

// CreateTestCollection creates an NFT collection holding
func CreateTestCollection(amount string, instances ...entities.TokenInstance) entities.NFTCollection {
	return entities.NFTCollection{
		Amount:         amount,
		TokenInstances: instances,
	}
}

// InstanceWithAttributes builds an NFT instance carrying metadata
// attributes and optional tags
func InstanceWithAttributes(tags []string, attrs ...entities.Attribute) entities.TokenInstance {
	return entities.TokenInstance{
		Metadata: &entities.InstanceMetadata{
			Tags:       tags,
			Attributes: attrs,
		},
	}
}

// PointerTo returns a pointer to the given value
func PointerTo[T any](v T) *T {
	return &v
}
