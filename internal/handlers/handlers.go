package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rudra-dhamecha/groww-financial-tracker/internal/auth"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/database"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/ingest"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/market"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/models"
)

type Handler struct {
	repo   *database.Repo
	market market.Resolver
	auth   *auth.Service
	log    *logrus.Logger
}

func NewHandler(r *database.Repo, m market.Resolver, a *auth.Service, log *logrus.Logger) *Handler {
	return &Handler{repo: r, market: m, auth: a, log: log}
}

// readUpload pulls the single uploaded file out of the multipart form and
// rejects non-xlsx filenames before reading the body.
func (h *Handler) readUpload(c *gin.Context) ([]byte, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, false
	}
	if err := ingest.CheckFileType(fh.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		h.log.Errorf("open upload failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		h.log.Errorf("read upload failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return nil, false
	}
	return data, true
}

// UploadStockHoldings parses a Groww stock report, enriches each row with a
// ticker and sector, and replaces the caller's stored stock holdings with
// the result. Parse failures leave the stored set untouched.
func (h *Handler) UploadStockHoldings(c *gin.Context) {
	user := auth.CurrentUser(c)
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	rows, err := ingest.ParseStockReport(data)
	if err != nil {
		h.log.Warnf("stock report rejected for user %d: %v", user.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	holdings := make([]models.StockHolding, 0, len(rows))
	for _, row := range rows {
		ticker := h.market.ResolveTicker(ctx, row.Name)
		sector := h.market.ResolveSector(ctx, ticker)
		holdings = append(holdings, models.StockHolding{
			Name:          row.Name,
			ISIN:          row.ISIN,
			Ticker:        ticker,
			Sector:        sector,
			Quantity:      row.Quantity,
			AvgBuyPrice:   row.AvgBuyPrice,
			BuyValue:      row.BuyValue,
			ClosingPrice:  row.ClosingPrice,
			ClosingValue:  row.ClosingValue,
			UnrealizedPnL: row.UnrealizedPnL,
		})
	}

	stored, err := h.repo.ReplaceStockHoldings(ctx, user.ID, holdings)
	if err != nil {
		h.log.Errorf("replace stock holdings failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store holdings"})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *Handler) ListStockHoldings(c *gin.Context) {
	user := auth.CurrentUser(c)
	holdings, err := h.repo.ListStockHoldings(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Errorf("list stock holdings failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, holdings)
}

// UploadMutualFundHoldings parses a Groww mutual fund report and replaces
// the caller's stored scheme holdings with it. No enrichment applies.
func (h *Handler) UploadMutualFundHoldings(c *gin.Context) {
	user := auth.CurrentUser(c)
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	rows, err := ingest.ParseMutualFundReport(data)
	if err != nil {
		h.log.Warnf("mutual fund report rejected for user %d: %v", user.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holdings := make([]models.MutualFundHolding, 0, len(rows))
	for _, row := range rows {
		holdings = append(holdings, models.MutualFundHolding{
			SchemeName:    row.SchemeName,
			AMC:           row.AMC,
			Category:      row.Category,
			SubCategory:   row.SubCategory,
			FolioNo:       row.FolioNo,
			Source:        row.Source,
			Units:         row.Units,
			InvestedValue: row.InvestedValue,
			CurrentValue:  row.CurrentValue,
			Returns:       row.Returns,
			XIRR:          row.XIRR,
		})
	}

	stored, err := h.repo.ReplaceMutualFundHoldings(c.Request.Context(), user.ID, holdings)
	if err != nil {
		h.log.Errorf("replace mutual fund holdings failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store holdings"})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *Handler) ListMutualFundHoldings(c *gin.Context) {
	user := auth.CurrentUser(c)
	holdings, err := h.repo.ListMutualFundHoldings(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Errorf("list mutual fund holdings failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, holdings)
}
