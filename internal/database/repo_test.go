package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudra-dhamecha/groww-financial-tracker/internal/models"
)

func setupMock(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(sqlx.NewDb(sqlDB, "sqlmock"), log), mock
}

func sampleStockHoldings() []models.StockHolding {
	return []models.StockHolding{
		{
			Name: "Reliance Industries", ISIN: "INE002A01018",
			Ticker: "RELIANCE.NS", Sector: "Energy",
			Quantity:     decimal.NewFromInt(10),
			AvgBuyPrice:  decimal.NewFromFloat(2400.5),
			BuyValue:     decimal.NewFromInt(24005),
			ClosingPrice: decimal.NewFromInt(2500),
			ClosingValue: decimal.NewFromInt(25000), UnrealizedPnL: decimal.NewFromInt(995),
		},
		{
			Name: "Infosys", ISIN: "INE009A01021",
			Ticker: "Not Found", Sector: "Others",
			Quantity:     decimal.NewFromInt(5),
			AvgBuyPrice:  decimal.NewFromInt(1400),
			BuyValue:     decimal.NewFromInt(7000),
			ClosingPrice: decimal.NewFromFloat(1500.25),
			ClosingValue: decimal.NewFromFloat(7501.25), UnrealizedPnL: decimal.NewFromFloat(501.25),
		},
	}
}

func TestReplaceStockHoldings_DeletesThenInsertsInOneTx(t *testing.T) {
	r, mock := setupMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM stock_holdings").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("INSERT INTO stock_holdings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(101, now))
	mock.ExpectQuery("INSERT INTO stock_holdings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(102, now))
	mock.ExpectCommit()

	stored, err := r.ReplaceStockHoldings(context.Background(), 7, sampleStockHoldings())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 101, stored[0].ID)
	assert.Equal(t, 102, stored[1].ID)
	assert.Equal(t, 7, stored[0].OwnerID)
	assert.Equal(t, "Reliance Industries", stored[0].Name)
	assert.Equal(t, "Not Found", stored[1].Ticker)
	assert.False(t, stored[0].CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceStockHoldings_RollsBackOnInsertFailure(t *testing.T) {
	r, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM stock_holdings").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("INSERT INTO stock_holdings").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	stored, err := r.ReplaceStockHoldings(context.Background(), 7, sampleStockHoldings())
	require.Error(t, err)
	assert.Nil(t, stored)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceStockHoldings_RollsBackOnDeleteFailure(t *testing.T) {
	r, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM stock_holdings").
		WillReturnError(errors.New("delete failed"))
	mock.ExpectRollback()

	_, err := r.ReplaceStockHoldings(context.Background(), 7, sampleStockHoldings())
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceStockHoldings_EmptySetStillClearsPriorHoldings(t *testing.T) {
	r, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM stock_holdings").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	stored, err := r.ReplaceStockHoldings(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Empty(t, stored)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceMutualFundHoldings_DeletesThenInserts(t *testing.T) {
	r, mock := setupMock(t)
	now := time.Now()

	holdings := []models.MutualFundHolding{
		{
			SchemeName: "Parag Parikh Flexi Cap Fund", AMC: "PPFAS",
			Category: "Equity", SubCategory: "Flexi Cap",
			FolioNo: "1234567/89", Source: "Groww",
			Units:         decimal.NewFromFloat(120.5),
			InvestedValue: decimal.NewFromInt(10000),
			CurrentValue:  decimal.NewFromInt(12500),
			Returns:       decimal.NewFromInt(2500),
			XIRR:          "14.2%",
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM mutual_fund_holdings").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO mutual_fund_holdings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))
	mock.ExpectCommit()

	stored, err := r.ReplaceMutualFundHoldings(context.Background(), 3, holdings)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 11, stored[0].ID)
	assert.Equal(t, 3, stored[0].OwnerID)
	assert.Equal(t, "14.2%", stored[0].XIRR)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStockHoldings(t *testing.T) {
	r, mock := setupMock(t)
	now := time.Now()

	cols := []string{"id", "name", "isin", "ticker", "sector", "quantity", "avg_buy_price", "buy_value", "closing_price", "closing_value", "unrealized_pnl", "owner_id", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT \\* FROM stock_holdings").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "Reliance Industries", "INE002A01018", "RELIANCE.NS", "Energy", "10", "2400.5", "24005", "2500", "25000", "995", 7, now, nil))

	holdings, err := r.ListStockHoldings(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "RELIANCE.NS", holdings[0].Ticker)
	assert.True(t, holdings[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.Nil(t, holdings[0].UpdatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMutualFundHoldings_Empty(t *testing.T) {
	r, mock := setupMock(t)

	cols := []string{"id", "scheme_name", "amc", "category", "sub_category", "folio_no", "source", "units", "invested_value", "current_value", "returns", "xirr", "owner_id", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT \\* FROM mutual_fund_holdings").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(cols))

	holdings, err := r.ListMutualFundHoldings(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, holdings)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	r, mock := setupMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := r.CreateUser(context.Background(), "dup@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmailTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	r, mock := setupMock(t)
	now := time.Now()

	cols := []string{"id", "email", "hashed_password", "is_active", "created_at", "updated_at"}
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("new@example.com", "hash").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "new@example.com", "hash", true, now, nil))

	u, err := r.CreateUser(context.Background(), "new@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.True(t, u.IsActive)

	require.NoError(t, mock.ExpectationsWereMet())
}
