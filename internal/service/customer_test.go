package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/customer-pages-service/internal/model"
	"github.com/maxviazov/customer-pages-service/internal/repository"
	"github.com/maxviazov/customer-pages-service/internal/service"
)

type fakeCustomerRepo struct {
	items      []model.Customer
	countErr   error
	listErr    error
	listCalls  int
	lastPage   repository.Page
	lastFilter model.CustomerFilter
}

func newFakeCustomerRepo(n int) *fakeCustomerRepo {
	f := &fakeCustomerRepo{}
	for i := 0; i < n; i++ {
		f.items = append(f.items, model.Customer{ID: fmt.Sprintf("C%04d", i), CompanyName: fmt.Sprintf("Company %d", i)})
	}
	return f
}

func (f *fakeCustomerRepo) Count(_ context.Context, flt model.CustomerFilter) (int, error) {
	f.lastFilter = flt
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.items), nil
}

func (f *fakeCustomerRepo) List(_ context.Context, flt model.CustomerFilter, p repository.Page) ([]model.Customer, error) {
	f.listCalls++
	f.lastFilter = flt
	f.lastPage = p
	if f.listErr != nil {
		return nil, f.listErr
	}
	if p.Offset >= len(f.items) {
		return []model.Customer{}, nil
	}
	end := min(p.Offset+p.Limit, len(f.items))
	return f.items[p.Offset:end], nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (model.Customer, error) {
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Customer{}, repository.ErrNotFound
}

func (f *fakeCustomerRepo) Create(_ context.Context, c model.Customer) (model.Customer, error) {
	f.items = append(f.items, c)
	return c, nil
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

// fakeTx runs the unit of work inline and records which boundary was used.
type fakeTx struct{ reads, writes int }

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.writes++
	return fn(ctx)
}

func (f *fakeTx) WithinReadTx(ctx context.Context, fn repository.TxFunc) error {
	f.reads++
	return fn(ctx)
}

func newSvc(repo repository.CustomerRepository, tx repository.TxManager) service.CustomerService {
	return service.NewCustomerService(repo, tx, service.DefaultPageDefaults, zerolog.New(io.Discard))
}

func TestCustomerService_ListCustomers_Defaults(t *testing.T) {
	repo := newFakeCustomerRepo(95)
	tx := &fakeTx{}
	res, err := newSvc(repo, tx).ListCustomers(context.Background(), service.CustomerQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.reads, "count and page must share one read transaction")
	assert.Equal(t, repository.Page{Limit: 10, Offset: 0}, repo.lastPage)
	assert.Equal(t, 1, res.Window.PageNumber())
	assert.Equal(t, 10, res.Window.PageSize())
	assert.Equal(t, 10, res.Window.TotalPages())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.Window.PageNumbers())
	require.Len(t, res.Items, 10)
	assert.Equal(t, "C0000", res.Items[0].ID)
}

func TestCustomerService_ListCustomers_MiddlePage(t *testing.T) {
	repo := newFakeCustomerRepo(95)
	res, err := newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), service.CustomerQuery{Page: 5})
	require.NoError(t, err)
	assert.Equal(t, repository.Page{Limit: 10, Offset: 40}, repo.lastPage)
	assert.Equal(t, 3, res.Window.StartPage())
	assert.Equal(t, 7, res.Window.EndPage())
	require.Len(t, res.Items, 10)
	assert.Equal(t, "C0040", res.Items[0].ID)
}

func TestCustomerService_ListCustomers_LastPartialPage(t *testing.T) {
	repo := newFakeCustomerRepo(95)
	res, err := newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), service.CustomerQuery{Page: 10})
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, res.Window.PageNumbers())
	assert.Len(t, res.Items, 5)
}

func TestCustomerService_ListCustomers_OverRequestFetchesClampedPage(t *testing.T) {
	repo := newFakeCustomerRepo(30)
	res, err := newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), service.CustomerQuery{Page: 999})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Window.PageNumber())
	assert.Equal(t, []int{1, 2, 3}, res.Window.PageNumbers())
	assert.Equal(t, repository.Page{Limit: 10, Offset: 20}, repo.lastPage)
	require.Len(t, res.Items, 10)
	assert.Equal(t, "C0020", res.Items[0].ID)
}

func TestCustomerService_ListCustomers_NegativePageClamped(t *testing.T) {
	repo := newFakeCustomerRepo(30)
	res, err := newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), service.CustomerQuery{Page: -4})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Window.PageNumber())
	assert.Equal(t, 0, repo.lastPage.Offset)
}

func TestCustomerService_ListCustomers_EmptySkipsPageQuery(t *testing.T) {
	repo := newFakeCustomerRepo(0)
	res, err := newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), service.CustomerQuery{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.listCalls)
	assert.Equal(t, 1, res.Window.PageNumber())
	assert.Equal(t, 0, res.Window.TotalPages())
	assert.Empty(t, res.Window.PageNumbers())
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestCustomerService_ListCustomers_CustomPageSizeAndSearch(t *testing.T) {
	repo := newFakeCustomerRepo(95)
	res, err := newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), service.CustomerQuery{Page: 2, PageSize: 25, Search: "  futter  "})
	require.NoError(t, err)
	assert.Equal(t, "futter", repo.lastFilter.Search)
	assert.Equal(t, repository.Page{Limit: 25, Offset: 25}, repo.lastPage)
	assert.Equal(t, 4, res.Window.TotalPages())
	assert.Equal(t, []int{1, 2, 3, 4}, res.Window.PageNumbers())
}

func TestCustomerService_ListCustomers_Validation(t *testing.T) {
	cases := []struct {
		name      string
		q         service.CustomerQuery
		wantField string
	}{
		{"negative page size", service.CustomerQuery{PageSize: -1}, "page_size"},
		{"page size above max", service.CustomerQuery{PageSize: 101}, "page_size"},
		{"search too long", service.CustomerQuery{Search: string(make([]byte, 101))}, "search"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeCustomerRepo(10)
			_, err := newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), tc.q)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
			fields := service.FieldErrors(err)
			require.NotEmpty(t, fields)
			assert.Equal(t, tc.wantField, fields[0].Field)
			assert.Equal(t, 0, repo.listCalls)
		})
	}
}

func TestCustomerService_ListCustomers_RepositoryErrorsPropagate(t *testing.T) {
	boom := errors.New("db down")

	repo := newFakeCustomerRepo(10)
	repo.countErr = boom
	_, err := newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), service.CustomerQuery{})
	assert.Same(t, boom, err)

	repo = newFakeCustomerRepo(10)
	repo.listErr = boom
	_, err = newSvc(repo, &fakeTx{}).ListCustomers(context.Background(), service.CustomerQuery{})
	assert.Same(t, boom, err)
}

func TestCustomerService_CustomDefaults(t *testing.T) {
	repo := newFakeCustomerRepo(100)
	svc := service.NewCustomerService(repo, &fakeTx{}, service.PageDefaults{PageSize: 20, MaxPageSize: 50, MaxNavigationPages: 3}, zerolog.Nop())
	res, err := svc.ListCustomers(context.Background(), service.CustomerQuery{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Window.PageSize())
	assert.Equal(t, []int{2, 3, 4}, res.Window.PageNumbers())

	_, err = svc.ListCustomers(context.Background(), service.CustomerQuery{PageSize: 60})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCustomerService_GetCustomer(t *testing.T) {
	repo := newFakeCustomerRepo(3)
	svc := newSvc(repo, &fakeTx{})

	c, err := svc.GetCustomer(context.Background(), " c0001 ")
	require.NoError(t, err)
	assert.Equal(t, "C0001", c.ID)

	_, err = svc.GetCustomer(context.Background(), "C9999")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.GetCustomer(context.Background(), "TOO-LONG")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, "id", service.FieldErrors(err)[0].Field)
}
