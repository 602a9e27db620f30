package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID             int        `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	HashedPassword string     `db:"hashed_password" json:"-"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at"`
}

// StockHolding is one stock line item from the most recent report upload.
// Ticker and Sector are filled by enrichment; when the market lookup cannot
// resolve them they hold the "Not Found" / "Others" placeholders.
type StockHolding struct {
	ID            int             `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	ISIN          string          `db:"isin" json:"isin"`
	Ticker        string          `db:"ticker" json:"ticker"`
	Sector        string          `db:"sector" json:"sector"`
	Quantity      decimal.Decimal `db:"quantity" json:"quantity"`
	AvgBuyPrice   decimal.Decimal `db:"avg_buy_price" json:"avg_buy_price"`
	BuyValue      decimal.Decimal `db:"buy_value" json:"buy_value"`
	ClosingPrice  decimal.Decimal `db:"closing_price" json:"closing_price"`
	ClosingValue  decimal.Decimal `db:"closing_value" json:"closing_value"`
	UnrealizedPnL decimal.Decimal `db:"unrealized_pnl" json:"unrealized_pnl"`
	OwnerID       int             `db:"owner_id" json:"owner_id"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time      `db:"updated_at" json:"updated_at"`
}

// MutualFundHolding is one scheme line item from the most recent report
// upload. XIRR stays text because Groww reports put placeholders like "-"
// in that column.
type MutualFundHolding struct {
	ID            int             `db:"id" json:"id"`
	SchemeName    string          `db:"scheme_name" json:"scheme_name"`
	AMC           string          `db:"amc" json:"amc"`
	Category      string          `db:"category" json:"category"`
	SubCategory   string          `db:"sub_category" json:"sub_category"`
	FolioNo       string          `db:"folio_no" json:"folio_no"`
	Source        string          `db:"source" json:"source"`
	Units         decimal.Decimal `db:"units" json:"units"`
	InvestedValue decimal.Decimal `db:"invested_value" json:"invested_value"`
	CurrentValue  decimal.Decimal `db:"current_value" json:"current_value"`
	Returns       decimal.Decimal `db:"returns" json:"returns"`
	XIRR          string          `db:"xirr" json:"xirr"`
	OwnerID       int             `db:"owner_id" json:"owner_id"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time      `db:"updated_at" json:"updated_at"`
}
