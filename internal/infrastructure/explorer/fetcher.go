package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-insights/internal/domain/entities"
)

// page is the explorer's paginated response envelope. NextPageParams is
// nil on the last page; its fields are opaque and echoed back verbatim.
type page[T any] struct {
	Items          []T                    `json:"items"`
	NextPageParams map[string]interface{} `json:"next_page_params"`
}

// fetchYearItems follows the explorer's cursor pagination and collects the
// items belonging to the target calendar year (UTC). Items arrive newest
// first, so the first item from an older year stops the whole fetch. The
// loop is bounded by maxPages regardless of how many cursors the upstream
// keeps handing out. Items without a usable timestamp are skipped.
func fetchYearItems[T any](ctx context.Context, c *Client, stream, path string, base url.Values, year, maxPages int, timeOf func(T) (time.Time, bool)) ([]T, error) {
	items := make([]T, 0)
	cursor := url.Values{}
	stop := false

	for pageNum := 0; pageNum < maxPages && !stop; pageNum++ {
		query := mergeQuery(base, cursor)

		var p page[T]
		if err := c.getJSON(ctx, stream, path, query, &p); err != nil {
			return nil, err
		}

		for _, item := range p.Items {
			ts, ok := timeOf(item)
			if !ok {
				continue
			}
			switch y := ts.UTC().Year(); {
			case y == year:
				items = append(items, item)
			case y < year:
				stop = true
			}
			if stop {
				break
			}
		}

		if len(p.NextPageParams) == 0 {
			break
		}
		cursor = cursorQuery(p.NextPageParams)
	}

	c.logger.Debug("Fetched year items",
		zap.String("stream", stream),
		zap.Int("year", year),
		zap.Int("count", len(items)),
	)

	return items, nil
}

// cursorQuery turns the opaque next_page_params object into query
// parameters for the following request, coercing values to their plain
// numeric or string form.
func cursorQuery(params map[string]interface{}) url.Values {
	q := url.Values{}
	for key, value := range params {
		switch v := value.(type) {
		case json.Number:
			q.Set(key, v.String())
		case string:
			q.Set(key, v)
		case bool:
			q.Set(key, fmt.Sprintf("%t", v))
		case nil:
			// absent cursor fields are not echoed
		default:
			q.Set(key, fmt.Sprintf("%v", v))
		}
	}
	return q
}

func mergeQuery(base, cursor url.Values) url.Values {
	merged := url.Values{}
	for k, vs := range base {
		merged[k] = vs
	}
	for k, vs := range cursor {
		merged[k] = vs
	}
	return merged
}

const nftTypeFilter = "ERC-721,ERC-1155"

// Transactions retrieves native-coin transactions for the year
func (c *Client) Transactions(ctx context.Context, address string, year int) ([]entities.Transaction, error) {
	path := fmt.Sprintf("addresses/%s/transactions", address)
	return fetchYearItems(ctx, c, "transactions", path, nil, year, c.cfg.TransactionPages, entities.Transaction.Time)
}

// NFTTransfers retrieves ERC-721/ERC-1155 transfers for the year
func (c *Client) NFTTransfers(ctx context.Context, address string, year int) ([]entities.TokenTransfer, error) {
	path := fmt.Sprintf("addresses/%s/token-transfers", address)
	base := url.Values{"type": {nftTypeFilter}}
	return fetchYearItems(ctx, c, "nft_transfers", path, base, year, c.cfg.NFTTransferPages, entities.TokenTransfer.Time)
}

// TokenTransfers retrieves ERC-20 transfers for the year
func (c *Client) TokenTransfers(ctx context.Context, address string, year int) ([]entities.TokenTransfer, error) {
	path := fmt.Sprintf("addresses/%s/token-transfers", address)
	base := url.Values{"type": {"ERC-20"}}
	return fetchYearItems(ctx, c, "token_transfers", path, base, year, c.cfg.TokenTransferPages, entities.TokenTransfer.Time)
}

// BalanceHistory retrieves the daily coin balance history in one request;
// the endpoint is not paginated.
func (c *Client) BalanceHistory(ctx context.Context, address string) ([]entities.BalancePoint, error) {
	path := fmt.Sprintf("addresses/%s/coin-balance-history-by-day", address)
	var points []entities.BalancePoint
	if err := c.getJSON(ctx, "balance_history", path, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// NFTCollections retrieves current NFT collection holdings in one request,
// filtered server-side to the two NFT token standards.
func (c *Client) NFTCollections(ctx context.Context, address string) ([]entities.NFTCollection, error) {
	path := fmt.Sprintf("addresses/%s/nft/collections", address)
	query := url.Values{"type": {nftTypeFilter}}
	var p page[entities.NFTCollection]
	if err := c.getJSON(ctx, "nft_collections", path, query, &p); err != nil {
		return nil, err
	}
	return p.Items, nil
}
