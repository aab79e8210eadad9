package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bimakw/wallet-insights/internal/domain/entities"
	"github.com/bimakw/wallet-insights/internal/domain/repositories"
	"github.com/bimakw/wallet-insights/internal/infrastructure/cache"
)

// InsightsService computes yearly activity insights for an address by
// fanning out to the five explorer streams and folding the results through
// the metric derivers. A failed stream fails the whole computation; there
// are no partial insights.
type InsightsService struct {
	explorer repositories.ExplorerRepository
	cache    *cache.RedisCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewInsightsService creates a new insights service
func NewInsightsService(
	explorer repositories.ExplorerRepository,
	redisCache *cache.RedisCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *InsightsService {
	return &InsightsService{
		explorer: explorer,
		cache:    redisCache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// GetInsights computes the insights snapshot for an address and year
func (s *InsightsService) GetInsights(ctx context.Context, address string, year int) (*entities.Insights, error) {
	address = strings.ToLower(address)

	cacheKey := fmt.Sprintf("insights:%s:%d", address, year)

	// Try cache first
	if s.cache != nil {
		var cached entities.Insights
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.logger.Debug("Cache hit", zap.String("key", cacheKey))
			return &cached, nil
		}
	}

	var (
		txs            []entities.Transaction
		nftTransfers   []entities.TokenTransfer
		tokenTransfers []entities.TokenTransfer
		balances       []entities.BalancePoint
		collections    []entities.NFTCollection
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if txs, err = s.explorer.Transactions(gctx, address, year); err != nil {
			return fmt.Errorf("transactions stream: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if nftTransfers, err = s.explorer.NFTTransfers(gctx, address, year); err != nil {
			return fmt.Errorf("nft transfers stream: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if tokenTransfers, err = s.explorer.TokenTransfers(gctx, address, year); err != nil {
			return fmt.Errorf("token transfers stream: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if balances, err = s.explorer.BalanceHistory(gctx, address); err != nil {
			return fmt.Errorf("balance history stream: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if collections, err = s.explorer.NFTCollections(gctx, address); err != nil {
			return fmt.Errorf("nft collections stream: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalTxs, volumeEth, biggestDay := deriveVolume(txs, year)
	activeDays, longestStreak := deriveStreaks(txs)
	nftsMinted, topCollection := deriveNFTMints(nftTransfers)

	insights := &entities.Insights{
		Address:           address,
		Year:              year,
		TotalTransactions: totalTxs,
		TotalVolumeEth:    volumeEth,
		BiggestDay:        biggestDay,
		NFTsMinted:        nftsMinted,
		TopCollection:     topCollection,
		BridgeCount:       deriveBridgeCount(txs),
		GmStreak:          activeDays,
		FirstTouch:        deriveFirstTouch(txs),
		TokenHabits:       deriveTokenHabits(tokenTransfers),
		EthJourney:        deriveEthJourney(filterBalancesToYear(balances, year)),
		NFTSnapshot:       deriveNFTSnapshot(collections),
		Streaks: entities.Streaks{
			ActiveDays:    activeDays,
			LongestStreak: longestStreak,
			DominantHours: deriveDominantHours(txs),
		},
		DappDiversity: deriveDappDiversity(txs),
	}
	insights.MintStory = buildStory(totalTxs, volumeEth, biggestDay.Label)

	s.logger.Info("Computed insights",
		zap.String("address", address),
		zap.Int("year", year),
		zap.Int("transactions", totalTxs),
		zap.Duration("duration", time.Since(start)),
	)

	// Cache the snapshot
	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, insights, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache insights", zap.Error(err))
		}
	}

	return insights, nil
}

// buildStory renders the one-line summary shown on the final slide
func buildStory(totalTxs int, volumeEth float64, biggestDayLabel string) string {
	return fmt.Sprintf("%d transactions, %.2f ETH moved, biggest day: %s", totalTxs, volumeEth, biggestDayLabel)
}

// filterBalancesToYear keeps only the balance points of the target
// calendar year; points with malformed dates are dropped.
func filterBalancesToYear(points []entities.BalancePoint, year int) []entities.BalancePoint {
	filtered := make([]entities.BalancePoint, 0, len(points))
	for _, point := range points {
		day, ok := point.Day()
		if !ok {
			continue
		}
		if day.UTC().Year() == year {
			filtered = append(filtered, point)
		}
	}
	return filtered
}
