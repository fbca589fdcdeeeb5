package main

import (
	"context"
	"flag"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/config"
	"github.com/yeremiapane/restaurant-manager/database"
	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/router"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

func main() {
	initSchema := flag.Bool("init-schema", false, "create tables and indexes, then exit")
	flag.Parse()

	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	schema := database.NewSchemaManager(db)
	if err := schema.EnsureSchema(context.Background()); err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialize schema: %v", err)
	}
	status, err := schema.Check(context.Background())
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to verify schema: %v", err)
	}
	if *initSchema {
		utils.InfoLogger.WithField("tables", len(status.Tables)).Info("Schema initialized")
		return
	}

	policy, err := services.ParsePaymentPolicy(cfg.PaymentAmountCheck)
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid PAYMENT_AMOUNT_CHECK: %v", err)
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := kds.NewHub()
	svc := services.New(db, hub, policy)
	r := router.SetupRouter(svc, hub, router.Options{
		CORSOrigin:         cfg.CORSOrigin,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
	})

	utils.InfoLogger.Infof("Listening on port %s (driver=%s, payment check=%s)", cfg.Port, cfg.DBDriver, svc.Lifecycle.Policy())
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
