package trade

import (
	"context"

	"github.com/marketloop/backend/internal/domain/catalog"
	"github.com/marketloop/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the order and product
// repositories. Order creation and cancellation mutate both an order row and
// the product's stock; running both writes in one scope keeps stock consistent
// when either write fails.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade repositories within a
// transaction. Repositories returned share the same underlying transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope executes the function without a real transaction.
// Useful for tests with mocked repositories.
type NoOpTransactionScope struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(orderRepo trade.OrderRepository, productRepo catalog.ProductRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Execute runs the function against the wrapped repositories without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(noOpRepositories{scope: s})
}

type noOpRepositories struct {
	scope *NoOpTransactionScope
}

func (r noOpRepositories) OrderRepo() trade.OrderRepository {
	return r.scope.orderRepo
}

func (r noOpRepositories) ProductRepo() catalog.ProductRepository {
	return r.scope.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (noOpRepositories{})
