package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"github.com/streetcanvas/streetcanvas/src/api/config"
	"github.com/streetcanvas/streetcanvas/src/api/data"
	"github.com/streetcanvas/streetcanvas/src/api/types"
	"github.com/streetcanvas/streetcanvas/src/api/webserver"
	"github.com/streetcanvas/streetcanvas/src/chain"
	"github.com/streetcanvas/streetcanvas/src/lifecycle"
	"github.com/streetcanvas/streetcanvas/src/views"
)

var allModels = []interface{}{
	&types.Setting{}, &types.Contract{},
}

// Sepolia deployment of the platform contracts.
var defaultContracts = map[string]string{
	"wall":            "0x377f17e2e00fc1419FbdEe9256dBEB2d10BF80B4",
	"gallery":         "0x1A948eFfce9778a90B301D05BC877c353E2dd7c8",
	"painting_nft":    "0xa0704674d4174773f6b7ADcA2a6e3CafA5892DBc",
	"painting_shares": "0x8bEacf1DB7e487b5AC66918327305E4aab2b7C91",
	"role_manager":    "0x0Ec3C186B24a9441dEc0323C95D736C15229D7F4",
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func seedContracts(db *gorm.DB, chainID int64) {
	for name, addr := range defaultContracts {
		_ = db.FirstOrCreate(&types.Contract{}, types.Contract{
			Name: name, ChainID: chainID, Address: addr,
		}).Error
	}
}

func contractAddresses(db *gorm.DB, chainID int64) chain.Addresses {
	resolve := func(name string) common.Address {
		addr := data.ContractAddress(db, name, chainID)
		if addr == "" {
			log.Fatalf("no %s contract registered for chain %d", name, chainID)
		}
		return common.HexToAddress(addr)
	}
	return chain.Addresses{
		Wall:           resolve("wall"),
		Gallery:        resolve("gallery"),
		PaintingNFT:    resolve("painting_nft"),
		PaintingShares: resolve("painting_shares"),
		RoleManager:    resolve("role_manager"),
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	seedContracts(db, cfg.ChainID)
	if err := data.LoadSettings(db); err != nil {
		log.Printf("settings: %v", err)
	}

	rdb := data.MustRedis(cfg.RedisURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chainClient, err := chain.Dial(ctx, cfg.RPCURL, contractAddresses(db, cfg.ChainID))
	if err != nil {
		log.Fatalf("chain: %v", err)
	}

	var signer *chain.Session
	if cfg.OperatorKey != "" {
		signer, err = chain.NewSession(cfg.OperatorKey, cfg.ChainID)
		if err != nil {
			log.Fatalf("operator session: %v", err)
		}
		log.Printf("signing as %s", signer.Address())
	}

	snaps := data.NewSnapshots(rdb, time.Duration(cfg.SnapshotTTL)*time.Second)
	manager := lifecycle.New(chainClient, snaps)
	aggregator := views.New(chainClient)

	router := webserver.New(cfg, rdb, webserver.Deps{
		Chain:   chainClient,
		Manager: manager,
		Views:   aggregator,
		Snaps:   snaps,
		Signer:  signer,
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("api listening on :%s", cfg.Port)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)
}
