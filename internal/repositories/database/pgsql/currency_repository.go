package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/models"
	"github.com/ntsmobil/freight_pricing_app/internal/utils/mapping"
)

const currencyColumns = `currency_code, symbol, name, created_at, created_by, last_updated_at, last_updated_by`

// PgxCurrencyRepository implements the currency catalog ports using pgxpool.
type PgxCurrencyRepository struct {
	BaseRepository
}

// NewPgxCurrencyRepository creates a new PgxCurrencyRepository.
func NewPgxCurrencyRepository(db *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanCurrency(row pgx.Row) (*domain.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyCode, &m.Symbol, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// SaveCurrency persists a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currencies (`+currencyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.CurrencyCode, m.Symbol, m.Name,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "currency already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert currency", err)
	}
	return nil
}

// FindCurrencyByCode retrieves a specific currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := scanCurrency(r.Pool.QueryRow(ctx,
		`SELECT `+currencyColumns+` FROM currencies WHERE currency_code = $1`, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency " + currencyCode + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query currency", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all tracked currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+currencyColumns+` FROM currencies ORDER BY currency_code`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		currency, err := scanCurrency(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency", err)
		}
		currencies = append(currencies, *currency)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate currencies", err)
	}
	return currencies, nil
}
