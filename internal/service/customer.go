package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/customer-pages-service/internal/model"
	"github.com/maxviazov/customer-pages-service/internal/pagination"
	"github.com/maxviazov/customer-pages-service/internal/repository"
)

// PageDefaults are the listing parameters used when a request leaves them out.
type PageDefaults struct {
	PageSize           int
	MaxPageSize        int
	MaxNavigationPages int
}

// DefaultPageDefaults mirrors the historical API: page 1, ten rows, five links.
var DefaultPageDefaults = PageDefaults{PageSize: 10, MaxPageSize: 100, MaxNavigationPages: 5}

// customerService assembles paged customer results: validation, count, window, fetch.
type customerService struct {
	repo     repository.CustomerRepository
	tx       repository.TxManager
	defaults PageDefaults
	log      zerolog.Logger
}

func NewCustomerService(repo repository.CustomerRepository, tx repository.TxManager, defaults PageDefaults, logger zerolog.Logger) CustomerService {
	if defaults.PageSize <= 0 {
		defaults.PageSize = DefaultPageDefaults.PageSize
	}
	if defaults.MaxPageSize <= 0 {
		defaults.MaxPageSize = DefaultPageDefaults.MaxPageSize
	}
	if defaults.MaxNavigationPages <= 0 {
		defaults.MaxNavigationPages = DefaultPageDefaults.MaxNavigationPages
	}
	l := logger.With().Str("module", "service").Str("component", "customer").Logger()
	return &customerService{repo: repo, tx: tx, defaults: defaults, log: l}
}

func (s *customerService) validate(q CustomerQuery) error {
	var ferrs []FieldError
	if err := validate.Struct(q); err != nil {
		ferrs = append(ferrs, fieldErrorsFrom(err)...)
	}
	if q.PageSize > s.defaults.MaxPageSize {
		ferrs = append(ferrs, FieldError{Field: "page_size", Message: fmt.Sprintf("must be <= %d", s.defaults.MaxPageSize)})
	}
	return NewInvalidInputError(ferrs)
}

func (s *customerService) ListCustomers(ctx context.Context, q CustomerQuery) (pagination.Paged[model.Customer], error) {
	start := time.Now()
	if err := s.validate(q); err != nil {
		s.log.Debug().Int("page", q.Page).Int("page_size", q.PageSize).Interface("field_errors", FieldErrors(err)).Msg("customer query validation failed")
		return pagination.Paged[model.Customer]{}, err
	}

	requested := q.Page
	if requested == 0 {
		requested = 1
	}
	size := q.PageSize
	if size == 0 {
		size = s.defaults.PageSize
	}
	filter := model.CustomerFilter{Search: strings.TrimSpace(q.Search)}

	var (
		window pagination.PageWindow
		items  []model.Customer
	)
	err := s.tx.WithinReadTx(ctx, func(ctx context.Context) error {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			return err
		}
		window, err = pagination.BuildPageWindow(total, requested, size, s.defaults.MaxNavigationPages)
		if err != nil {
			return err
		}
		if window.TotalPages() == 0 {
			return nil
		}
		// fetch the clamped page so an over-request returns the last page's rows
		items, err = s.repo.List(ctx, filter, repository.Page{Limit: window.Limit(), Offset: window.Offset()})
		return err
	})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Int("page", requested).Int("page_size", size).Msg("list customers failed")
		return pagination.Paged[model.Customer]{}, err
	}

	s.log.Debug().
		Dur("took", time.Since(start)).
		Int("requested_page", q.Page).
		Int("page", window.PageNumber()).
		Int("total_items", window.TotalItems()).
		Int("rows", len(items)).
		Msg("customers listed")
	return pagination.NewPaged(window, items), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if !IsValidCustomerID(id) {
		return model.Customer{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be 1-5 letters or digits"}})
	}
	return s.repo.GetByID(ctx, id)
}
