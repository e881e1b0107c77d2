package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/customer-pages-service/internal/model"
	"github.com/maxviazov/customer-pages-service/internal/repository"
)

const customerColumns = `customer_id, company_name, contact_name, contact_title, address,
	city, region, postal_code, country, phone, fax`

type customerRepository struct{ pool *pgxpool.Pool }

func NewCustomerRepository(pool *pgxpool.Pool) repository.CustomerRepository {
	return &customerRepository{pool: pool}
}

// whereClause renders the filter as a WHERE clause whose placeholders start at $1.
func whereClause(f model.CustomerFilter) (string, []any) {
	search := strings.TrimSpace(f.Search)
	if search == "" {
		return "", nil
	}
	return ` WHERE company_name ILIKE $1 OR contact_name ILIKE $1`, []any{"%" + escapeLike(search) + "%"}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func scanCustomer(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.CompanyName, &c.ContactName, &c.ContactTitle, &c.Address,
		&c.City, &c.Region, &c.PostalCode, &c.Country, &c.Phone, &c.Fax)
	return c, err
}

func (r *customerRepository) Count(ctx context.Context, f model.CustomerFilter) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	where, args := whereClause(f)
	var total int64
	if err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return 0, repository.MapPgError(err)
	}
	return int(total), nil
}

func (r *customerRepository) List(ctx context.Context, f model.CustomerFilter, p repository.Page) ([]model.Customer, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	where, args := whereClause(f)
	n := len(args)
	sql := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY customer_id LIMIT $%d OFFSET $%d`,
		customerColumns, where, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Customer, 0, limit)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (model.Customer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Customer{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, repository.ErrNotFound
		}
		return model.Customer{}, repository.MapPgError(err)
	}
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Customer{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+customerColumns,
		c.ID, c.CompanyName, c.ContactName, c.ContactTitle, c.Address,
		c.City, c.Region, c.PostalCode, c.Country, c.Phone, c.Fax,
	)
	out, err := scanCustomer(row)
	if err != nil {
		return model.Customer{}, repository.MapPgError(err)
	}
	return out, nil
}

const defaultPageLimit = 10

func sanitizeLimitOffset(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ repository.CustomerRepository = (*customerRepository)(nil)
