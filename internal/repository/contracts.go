package repository

import (
	"context"

	"github.com/maxviazov/customer-pages-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
	// WithinReadTx runs fn in a read-only snapshot so several reads agree with each other.
	WithinReadTx(ctx context.Context, fn TxFunc) error
}

// CustomerRepository declares read and seed operations over the customers table.
// Count and List take the same filter so a page and its total describe the same rows.
type CustomerRepository interface {
	Count(ctx context.Context, f model.CustomerFilter) (int, error)
	List(ctx context.Context, f model.CustomerFilter, p Page) ([]model.Customer, error)
	GetByID(ctx context.Context, id string) (model.Customer, error)
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
}
