package types

import "time"

// Setting is a named platform setting; env vars override at load time.
type Setting struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:255"`
}

// Contract records a deployed platform contract address per chain.
type Contract struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:32;uniqueIndex:idx_contract_chain;not null"` // wall|gallery|painting_nft|role_manager
	ChainID   int64  `gorm:"uniqueIndex:idx_contract_chain;not null"`
	Address   string `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
