// Package contract holds behavior suites any repository implementation must pass.
// Concrete backends wire their factories in and get the same assertions.
package contract

import (
	"context"
	"fmt"
	"testing"

	"github.com/maxviazov/customer-pages-service/internal/model"
	"github.com/maxviazov/customer-pages-service/internal/repository"
)

type CustomerFactory func(t *testing.T) (repository.CustomerRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, customers repository.CustomerRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func strPtr(s string) *string { return &s }

func seedCustomers(t *testing.T, ctx context.Context, repo repository.CustomerRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c := model.Customer{
			ID:          fmt.Sprintf("C%04d", i),
			CompanyName: fmt.Sprintf("Company %02d", i),
			ContactName: strPtr(fmt.Sprintf("Contact %02d", i)),
			Country:     strPtr("Germany"),
		}
		if _, err := repo.Create(ctx, c); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
}

func RunCustomerRepositoryContract(t *testing.T, makeRepo CustomerFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Customer{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", City: strPtr("Berlin")})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != "ALFKI" || got.CompanyName != "Alfreds Futterkiste" {
			t.Fatalf("mismatch: %+v", got)
		}
		if got.City == nil || *got.City != "Berlin" || got.Fax != nil {
			t.Fatalf("nullable columns not preserved: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), "NOPE")
		if err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_duplicate_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, model.Customer{ID: "DUPE", CompanyName: "One"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, model.Customer{ID: "DUPE", CompanyName: "Two"})
		if err == nil || err != repository.ErrAlreadyExists {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("count_empty", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		total, err := repo.Count(context.Background(), model.CustomerFilter{})
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if total != 0 {
			t.Fatalf("expected 0, got %d", total)
		}
	})

	t.Run("list_pages_in_key_order", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seedCustomers(t, ctx, repo, 7)

		total, err := repo.Count(ctx, model.CustomerFilter{})
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if total != 7 {
			t.Fatalf("expected total 7, got %d", total)
		}

		first, err := repo.List(ctx, model.CustomerFilter{}, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(first) != 3 || first[0].ID != "C0000" || first[2].ID != "C0002" {
			t.Fatalf("unexpected first page: %+v", first)
		}
		last, err := repo.List(ctx, model.CustomerFilter{}, repository.Page{Limit: 3, Offset: 6})
		if err != nil {
			t.Fatalf("list last: %v", err)
		}
		if len(last) != 1 || last[0].ID != "C0006" {
			t.Fatalf("unexpected last page: %+v", last)
		}
		beyond, err := repo.List(ctx, model.CustomerFilter{}, repository.Page{Limit: 3, Offset: 30})
		if err != nil {
			t.Fatalf("list beyond: %v", err)
		}
		if len(beyond) != 0 {
			t.Fatalf("expected empty page, got %d rows", len(beyond))
		}
	})

	t.Run("search_filters_count_and_list", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seedCustomers(t, ctx, repo, 12)
		if _, err := repo.Create(ctx, model.Customer{ID: "PCT", CompanyName: "100% Organic"}); err != nil {
			t.Fatalf("seed: %v", err)
		}

		f := model.CustomerFilter{Search: "company 1"}
		total, err := repo.Count(ctx, f)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if total != 2 { // Company 10, Company 11
			t.Fatalf("expected 2 matches, got %d", total)
		}
		items, err := repo.List(ctx, f, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(items))
		}

		// % must match literally, not as a wildcard
		pct, err := repo.Count(ctx, model.CustomerFilter{Search: "0%"})
		if err != nil {
			t.Fatalf("count pct: %v", err)
		}
		if pct != 1 {
			t.Fatalf("expected literal %% match only, got %d", pct)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_success", func(t *testing.T) {
		tx, customers, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := customers.Create(ctx, model.Customer{ID: "TXOK", CompanyName: "Committed"})
			return err
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}
		if _, err := customers.GetByID(ctx, "TXOK"); err != nil {
			t.Fatalf("expected committed row, got %v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, customers, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		errMarker := assertErr("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := customers.Create(ctx, model.Customer{ID: "TXRB", CompanyName: "Rolled back"}); err != nil {
				return err
			}
			return errMarker
		})
		if err == nil || err.Error() != errMarker.Error() {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := customers.GetByID(ctx, "TXRB"); err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("read_tx_sees_one_snapshot", func(t *testing.T) {
		tx, customers, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seedCustomers(t, ctx, customers, 4)

		var total int
		var items []model.Customer
		err := tx.WithinReadTx(ctx, func(ctx context.Context) error {
			var err error
			if total, err = customers.Count(ctx, model.CustomerFilter{}); err != nil {
				return err
			}
			items, err = customers.List(ctx, model.CustomerFilter{}, repository.Page{Limit: 10})
			return err
		})
		if err != nil {
			t.Fatalf("read tx: %v", err)
		}
		if total != 4 || len(items) != 4 {
			t.Fatalf("expected 4/4, got total=%d items=%d", total, len(items))
		}
	})

	t.Run("read_tx_rejects_writes", func(t *testing.T) {
		tx, customers, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		err := tx.WithinReadTx(context.Background(), func(ctx context.Context) error {
			_, err := customers.Create(ctx, model.Customer{ID: "RO", CompanyName: "Read only"})
			return err
		})
		if err == nil {
			t.Fatalf("expected write inside read-only tx to fail")
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}

// assertErr builds a sentinel error without importing errors to keep helpers local.
func assertErr(msg string) error { return &sentinel{msg} }

type sentinel struct{ s string }

func (e *sentinel) Error() string { return e.s }
