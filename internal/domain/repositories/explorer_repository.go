package repositories

import (
	"context"

	"github.com/bimakw/wallet-insights/internal/domain/entities"
)

// ExplorerRepository retrieves the five raw data streams for an address
// from the upstream block-explorer API. The three paginated streams return
// only records belonging to the given calendar year (UTC), newest first.
type ExplorerRepository interface {
	// Transactions returns native-coin transactions for the year
	Transactions(ctx context.Context, address string, year int) ([]entities.Transaction, error)

	// NFTTransfers returns ERC-721/ERC-1155 transfers for the year
	NFTTransfers(ctx context.Context, address string, year int) ([]entities.TokenTransfer, error)

	// TokenTransfers returns ERC-20 transfers for the year
	TokenTransfers(ctx context.Context, address string, year int) ([]entities.TokenTransfer, error)

	// BalanceHistory returns the full daily coin balance history
	BalanceHistory(ctx context.Context, address string) ([]entities.BalancePoint, error)

	// NFTCollections returns current ERC-721/ERC-1155 collection holdings
	NFTCollections(ctx context.Context, address string) ([]entities.NFTCollection, error)
}
