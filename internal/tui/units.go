package tui

import (
	"fmt"

	"nutrilog/internal/analysis"
	"nutrilog/internal/config"
	"nutrilog/internal/store"
)

// Units formats water volumes based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatWater formats millilitres in the user's preferred unit
func (u Units) FormatWater(ml float64) string {
	if u.IsOunces() {
		return fmt.Sprintf("%.1f oz", ml/analysis.MLPerOunce)
	}
	return fmt.Sprintf("%.0f ml", ml)
}

// WaterLabel returns the short unit label ("ml" or "oz")
func (u Units) WaterLabel() string {
	if u.IsOunces() {
		return store.UnitOZ
	}
	return store.UnitML
}

// IsOunces returns true if water is shown in fluid ounces
func (u Units) IsOunces() bool {
	return u.cfg.WaterUnit == store.UnitOZ
}
