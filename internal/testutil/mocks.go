package testutil

import (
	"context"
	"sync"

	"github.com/bimakw/wallet-insights/internal/domain/entities"
	"github.com/bimakw/wallet-insights/internal/domain/repositories"
)

// MockExplorer is a mock implementation of ExplorerRepository. Each stream
// has a function hook; a nil hook yields an empty result.
type MockExplorer struct {
	mu sync.Mutex

	// Function hooks for custom behavior
	TransactionsFunc   func(ctx context.Context, address string, year int) ([]entities.Transaction, error)
	NFTTransfersFunc   func(ctx context.Context, address string, year int) ([]entities.TokenTransfer, error)
	TokenTransfersFunc func(ctx context.Context, address string, year int) ([]entities.TokenTransfer, error)
	BalanceHistoryFunc func(ctx context.Context, address string) ([]entities.BalancePoint, error)
	NFTCollectionsFunc func(ctx context.Context, address string) ([]entities.NFTCollection, error)

	// Call tracking
	Calls []MockCall
}

type MockCall struct {
	Method string
	Args   []interface{}
}

var _ repositories.ExplorerRepository = (*MockExplorer)(nil)

func NewMockExplorer() *MockExplorer {
	return &MockExplorer{
		Calls: make([]MockCall, 0),
	}
}

func (m *MockExplorer) record(method string, args ...interface{}) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
	m.mu.Unlock()
}

// CallCount returns how many times the given method was invoked
func (m *MockExplorer) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, call := range m.Calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

func (m *MockExplorer) Transactions(ctx context.Context, address string, year int) ([]entities.Transaction, error) {
	m.record("Transactions", address, year)
	if m.TransactionsFunc != nil {
		return m.TransactionsFunc(ctx, address, year)
	}
	return []entities.Transaction{}, nil
}

func (m *MockExplorer) NFTTransfers(ctx context.Context, address string, year int) ([]entities.TokenTransfer, error) {
	m.record("NFTTransfers", address, year)
	if m.NFTTransfersFunc != nil {
		return m.NFTTransfersFunc(ctx, address, year)
	}
	return []entities.TokenTransfer{}, nil
}

func (m *MockExplorer) TokenTransfers(ctx context.Context, address string, year int) ([]entities.TokenTransfer, error) {
	m.record("TokenTransfers", address, year)
	if m.TokenTransfersFunc != nil {
		return m.TokenTransfersFunc(ctx, address, year)
	}
	return []entities.TokenTransfer{}, nil
}

func (m *MockExplorer) BalanceHistory(ctx context.Context, address string) ([]entities.BalancePoint, error) {
	m.record("BalanceHistory", address)
	if m.BalanceHistoryFunc != nil {
		return m.BalanceHistoryFunc(ctx, address)
	}
	return []entities.BalancePoint{}, nil
}

func (m *MockExplorer) NFTCollections(ctx context.Context, address string) ([]entities.NFTCollection, error) {
	m.record("NFTCollections", address)
	if m.NFTCollectionsFunc != nil {
		return m.NFTCollectionsFunc(ctx, address)
	}
	return []entities.NFTCollection{}, nil
}
