package database

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/rudra-dhamecha/groww-financial-tracker/internal/models"
)

// ErrEmailTaken is returned by CreateUser when the email is already
// registered.
var ErrEmailTaken = errors.New("email already registered")

type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

// ReplaceStockHoldings makes holdings the authoritative stock set for the
// owner: all prior rows are deleted and the new ones inserted in file order,
// inside one transaction. Readers never observe a partial set, and on any
// failure the prior set stays untouched.
func (r *Repo) ReplaceStockHoldings(ctx context.Context, ownerID int, holdings []models.StockHolding) ([]models.StockHolding, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stock_holdings WHERE owner_id = $1`, ownerID); err != nil {
		return nil, err
	}

	q := `INSERT INTO stock_holdings
		(name, isin, ticker, sector, quantity, avg_buy_price, buy_value, closing_price, closing_value, unrealized_pnl, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8::numeric, $9::numeric, $10::numeric, $11, now())
		RETURNING id, created_at`
	out := make([]models.StockHolding, 0, len(holdings))
	for _, h := range holdings {
		h.OwnerID = ownerID
		err := tx.QueryRowContext(ctx, q,
			h.Name, h.ISIN, h.Ticker, h.Sector,
			h.Quantity.String(), h.AvgBuyPrice.String(), h.BuyValue.String(),
			h.ClosingPrice.String(), h.ClosingValue.String(), h.UnrealizedPnL.String(),
			ownerID,
		).Scan(&h.ID, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceMutualFundHoldings is the mutual fund counterpart of
// ReplaceStockHoldings, with the same delete-then-insert contract.
func (r *Repo) ReplaceMutualFundHoldings(ctx context.Context, ownerID int, holdings []models.MutualFundHolding) ([]models.MutualFundHolding, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mutual_fund_holdings WHERE owner_id = $1`, ownerID); err != nil {
		return nil, err
	}

	q := `INSERT INTO mutual_fund_holdings
		(scheme_name, amc, category, sub_category, folio_no, source, units, invested_value, current_value, returns, xirr, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9::numeric, $10::numeric, $11, $12, now())
		RETURNING id, created_at`
	out := make([]models.MutualFundHolding, 0, len(holdings))
	for _, h := range holdings {
		h.OwnerID = ownerID
		err := tx.QueryRowContext(ctx, q,
			h.SchemeName, h.AMC, h.Category, h.SubCategory, h.FolioNo, h.Source,
			h.Units.String(), h.InvestedValue.String(), h.CurrentValue.String(), h.Returns.String(),
			h.XIRR, ownerID,
		).Scan(&h.ID, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListStockHoldings(ctx context.Context, ownerID int) ([]models.StockHolding, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT * FROM stock_holdings WHERE owner_id = $1 ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.StockHolding{}
	for rows.Next() {
		var h models.StockHolding
		if err := rows.StructScan(&h); err != nil {
			r.log.Warnf("scan stock holding failed: %v", err)
			continue
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

func (r *Repo) ListMutualFundHoldings(ctx context.Context, ownerID int) ([]models.MutualFundHolding, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT * FROM mutual_fund_holdings WHERE owner_id = $1 ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.MutualFundHolding{}
	for rows.Next() {
		var h models.MutualFundHolding
		if err := rows.StructScan(&h); err != nil {
			r.log.Warnf("scan mutual fund holding failed: %v", err)
			continue
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

func (r *Repo) CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	var u models.User
	q := `INSERT INTO users (email, hashed_password, is_active, created_at) VALUES ($1, $2, TRUE, now())
		RETURNING id, email, hashed_password, is_active, created_at, updated_at`
	if err := r.db.QueryRowxContext(ctx, q, email, hashedPassword).StructScan(&u); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}
