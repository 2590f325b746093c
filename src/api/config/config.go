package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	MySQLDSN    string
	RedisURL    string
	JWTSecret   string
	RPCURL      string
	Port        string
	ChainID     int64
	OperatorKey string
	SnapshotTTL int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	chainID, _ := strconv.ParseInt(getenv("CHAIN_ID", "11155111"), 10, 64)
	ttl, _ := strconv.Atoi(getenv("SNAPSHOT_TTL", "30"))
	return Config{
		MySQLDSN:    getenv("MYSQL_DSN", "streetcanvas:streetcanvas@tcp(127.0.0.1:3306)/streetcanvas"),
		RedisURL:    getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:   getenv("JWT_SECRET", ""),
		RPCURL:      getenv("RPC_URL", "wss://ethereum-sepolia-rpc.publicnode.com"),
		Port:        getenv("PORT", "8080"),
		ChainID:     chainID,
		OperatorKey: os.Getenv("OPERATOR_KEY"),
		SnapshotTTL: ttl,
	}
}
