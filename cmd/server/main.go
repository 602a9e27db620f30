package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/rudra-dhamecha/groww-financial-tracker/internal/auth"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/config"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/database"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/handlers"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/market"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err)
	}

	db, err := initDB(cfg.PostgresURL)
	if err != nil {
		logger.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	repo := database.New(db, logger)
	marketClient := market.NewClient(cfg.MarketAPIURL, cfg.MarketTimeout, logger)
	authSvc := auth.NewService(cfg.JWTSecret, cfg.TokenExpiry, logger)
	h := handlers.NewHandler(repo, marketClient, authSvc, logger)

	rg := gin.Default()
	rg.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := rg.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", authSvc.Middleware(repo))
	authed.GET("/auth/me", h.Me)
	authed.POST("/stock_holdings/upload", h.UploadStockHoldings)
	authed.GET("/stock_holdings/", h.ListStockHoldings)
	authed.POST("/mutual_fund_holdings/upload", h.UploadMutualFundHoldings)
	authed.GET("/mutual_fund_holdings/", h.ListMutualFundHoldings)

	logger.Infof("server starting on :%s", cfg.Port)
	rg.Run(fmt.Sprintf(":" + cfg.Port))
}

func initDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}
