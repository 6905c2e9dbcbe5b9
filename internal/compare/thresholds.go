// internal/compare/thresholds.go
package compare

// ArpThresholds tunes the ARP classification
type ArpThresholds struct {
	// SuccessTolerance is the largest count change still reported as unchanged
	SuccessTolerance int `yaml:"success_count_tolerance"`
	// ErrorDrop is the count drop above which the table is reported as broken
	ErrorDrop int `yaml:"error_count_drop"`
}

// SessionThresholds tunes the session table classification (percentages)
type SessionThresholds struct {
	StablePct       float64 `yaml:"stable_pct"`
	DropErrorPct    float64 `yaml:"drop_error_pct"`
	IncreaseWarnPct float64 `yaml:"increase_warn_pct"`
	ModeratePct     float64 `yaml:"moderate_pct"`
}

// SessionCountThresholds tunes the session count classification (percentages)
type SessionCountThresholds struct {
	StablePct    float64 `yaml:"stable_pct"`
	DropErrorPct float64 `yaml:"drop_error_pct"`
	ModeratePct  float64 `yaml:"moderate_pct"`
}

// Thresholds groups the per-command tuning knobs
type Thresholds struct {
	Arp          ArpThresholds          `yaml:"arp"`
	Sessions     SessionThresholds      `yaml:"sessions"`
	SessionCount SessionCountThresholds `yaml:"session_count"`
}

// DefaultThresholds returns the stock classification limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		Arp: ArpThresholds{
			SuccessTolerance: 1,
			ErrorDrop:        2,
		},
		Sessions: SessionThresholds{
			StablePct:       5,
			DropErrorPct:    20,
			IncreaseWarnPct: 50,
			ModeratePct:     10,
		},
		SessionCount: SessionCountThresholds{
			StablePct:    5,
			DropErrorPct: 15,
			ModeratePct:  10,
		},
	}
}
