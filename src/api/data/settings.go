package data

import (
	"os"
	"strings"
	"sync"

	"github.com/streetcanvas/streetcanvas/src/api/types"
	"gorm.io/gorm"
)

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from the database into cache.
func LoadSettings(db *gorm.DB) error {
	var settings []types.Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}
	return nil
}

// GetSetting retrieves a setting with env fallback (SETTING_NAME form).
func GetSetting(name string) string {
	settingsMu.RLock()
	v := settingsCache[name]
	settingsMu.RUnlock()
	if v == "" {
		v = os.Getenv(strings.ToUpper(name))
	}
	return v
}

// ContractAddress resolves a deployed contract address for a chain, letting
// env vars (WALL_CONTRACT etc.) override the registry row.
func ContractAddress(db *gorm.DB, name string, chainID int64) string {
	if v := os.Getenv(strings.ToUpper(name) + "_CONTRACT"); v != "" {
		return v
	}
	var c types.Contract
	if err := db.First(&c, "name = ? AND chain_id = ?", name, chainID).Error; err != nil {
		return ""
	}
	return c.Address
}
