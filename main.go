package main

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eco_rewards/chain"
	"github.com/eco_rewards/config"
	"github.com/eco_rewards/handler"
	"github.com/eco_rewards/model"
	"github.com/eco_rewards/repository"
	"github.com/eco_rewards/router"
	"github.com/eco_rewards/service"
)

func main() {
	cfg := config.Load()

	db := initDB(cfg.DatabaseDSN)

	chainClient, err := chain.Dial(cfg.RPCURL, cfg.ChainID)
	if err != nil {
		log.Fatalf("dial chain rpc: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	tripRepo := repository.NewTripRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)
	recordRepo := repository.NewCarbonRecordRepository(db)

	bindingSvc := service.NewBindingService(db, profileRepo)
	settlementSvc := service.NewSettlementService(db)
	scanner := service.NewScanner(chainClient, cfg.ScanRatePerSec)
	rewardsSvc := service.NewRewardsService(profileRepo, recordRepo, scanner, cfg.ScanWindowBlocks, cfg.ScanMaxResults)
	tripSvc := service.NewTripService(db)

	rewardsHandler := handler.NewRewardsHandler(bindingSvc, settlementSvc, scanner, rewardsSvc,
		cfg.ScanWindowBlocks, cfg.ScanMaxResults, cfg.ScanTimeout)
	tripHandler := handler.NewTripHandler(profileRepo, tripRepo, itineraryRepo, tripSvc)

	r := router.SetupRouter(rewardsHandler, tripHandler)

	log.Printf("Carbon Rewards Service running on :%d", cfg.Port)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// ----------------- 初始化数据库 -----------------
func initDB(dsn string) *gorm.DB {
	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey,
	// which the binding and settlement services rely on
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal(err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}
	return db
}
