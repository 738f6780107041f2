package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/muyuda/khaya/internal/domain/model"
	pgutil "github.com/muyuda/khaya/pkg/postgres"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pgutil.Querier
	pgutil.TxStarter
}

// BankCatalogRepo implements port.BankCatalogRepository.
type BankCatalogRepo struct {
	db DB
}

// NewBankCatalogRepo creates a new PostgreSQL-backed catalog repository.
func NewBankCatalogRepo(db DB) *BankCatalogRepo {
	return &BankCatalogRepo{db: db}
}

// Save replaces a bank together with its products and requirements. New
// banks are appended to the end of the catalog.
func (r *BankCatalogRepo) Save(ctx context.Context, bank model.Bank) error {
	return pgutil.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		bankQuery := `
			INSERT INTO banks (id, name, logo_url, position, updated_at)
			VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position) + 1, 0) FROM banks), now())
			ON CONFLICT (id) DO UPDATE SET
				name       = EXCLUDED.name,
				logo_url   = EXCLUDED.logo_url,
				updated_at = EXCLUDED.updated_at
		`
		if _, err := tx.Exec(ctx, bankQuery, bank.ID(), bank.Name(), bank.LogoURL()); err != nil {
			return fmt.Errorf("save bank: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM bank_products WHERE bank_id = $1`, bank.ID()); err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM bank_requirements WHERE bank_id = $1`, bank.ID()); err != nil {
			return fmt.Errorf("clear requirements: %w", err)
		}

		for i, p := range bank.Products() {
			productQuery := `
				INSERT INTO bank_products (bank_id, id, name, rate, fixed_years, position)
				VALUES ($1, $2, $3, $4, $5, $6)
			`
			_, err := tx.Exec(ctx, productQuery,
				bank.ID(), p.ID, p.Name, decimal.NewFromFloat(p.Rate), p.FixedYears, i,
			)
			if err != nil {
				return fmt.Errorf("save product %s: %w", p.ID, err)
			}
		}

		for i, doc := range bank.Requirements() {
			requirementQuery := `
				INSERT INTO bank_requirements (bank_id, position, document)
				VALUES ($1, $2, $3)
			`
			if _, err := tx.Exec(ctx, requirementQuery, bank.ID(), i, doc); err != nil {
				return fmt.Errorf("save requirement %d: %w", i, err)
			}
		}

		return nil
	})
}

// FindByID retrieves one bank with its products and requirements.
func (r *BankCatalogRepo) FindByID(ctx context.Context, id string) (model.Bank, error) {
	var name, logoURL string
	err := r.db.QueryRow(ctx, `SELECT name, logo_url FROM banks WHERE id = $1`, id).Scan(&name, &logoURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bank{}, fmt.Errorf("%w: %s", model.ErrBankNotFound, id)
	}
	if err != nil {
		return model.Bank{}, fmt.Errorf("query bank: %w", err)
	}

	products, err := r.loadProducts(ctx, `WHERE bank_id = $1`, id)
	if err != nil {
		return model.Bank{}, err
	}
	requirements, err := r.loadRequirements(ctx, `WHERE bank_id = $1`, id)
	if err != nil {
		return model.Bank{}, err
	}

	return model.NewBank(id, name, logoURL, requirements[id], products[id])
}

// List retrieves the whole catalog in catalog order.
func (r *BankCatalogRepo) List(ctx context.Context) ([]model.Bank, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, logo_url FROM banks ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query banks: %w", err)
	}

	type bankRow struct{ id, name, logoURL string }
	var bankRows []bankRow
	for rows.Next() {
		var b bankRow
		if err := rows.Scan(&b.id, &b.name, &b.logoURL); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		bankRows = append(bankRows, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banks: %w", err)
	}

	products, err := r.loadProducts(ctx, "")
	if err != nil {
		return nil, err
	}
	requirements, err := r.loadRequirements(ctx, "")
	if err != nil {
		return nil, err
	}

	banks := make([]model.Bank, 0, len(bankRows))
	for _, b := range bankRows {
		bank, err := model.NewBank(b.id, b.name, b.logoURL, requirements[b.id], products[b.id])
		if err != nil {
			return nil, fmt.Errorf("reconstruct bank %s: %w", b.id, err)
		}
		banks = append(banks, bank)
	}
	return banks, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func (r *BankCatalogRepo) loadProducts(ctx context.Context, where string, args ...any) (map[string][]model.Product, error) {
	query := `SELECT bank_id, id, name, rate, fixed_years FROM bank_products ` + where + ` ORDER BY bank_id, position`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]model.Product)
	for rows.Next() {
		var (
			bankID string
			p      model.Product
			rate   decimal.Decimal
		)
		if err := rows.Scan(&bankID, &p.ID, &p.Name, &rate, &p.FixedYears); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Rate = rate.InexactFloat64()
		out[bankID] = append(out[bankID], p)
	}
	return out, rows.Err()
}

func (r *BankCatalogRepo) loadRequirements(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	query := `SELECT bank_id, document FROM bank_requirements ` + where + ` ORDER BY bank_id, position`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requirements: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var bankID, doc string
		if err := rows.Scan(&bankID, &doc); err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		out[bankID] = append(out[bankID], doc)
	}
	return out, rows.Err()
}
