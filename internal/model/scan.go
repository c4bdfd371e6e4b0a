package model

// ScanResult is one qualifying instrument from a scan run. Immutable once
// produced; JSON tags match the dashboard API payloads.
type ScanResult struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	ATRValue      float64 `json:"atr_value"`
	ATRPercentage float64 `json:"atr_percentage"`
	ATRPeriod     int     `json:"atr_period"`
	ATRMultiplier float64 `json:"atr_multiplier"`
}

// ScanSettings are the tunables read at the start of each scan run.
type ScanSettings struct {
	MinATRPercentage float64 `json:"min_atr_percentage"`
	ATRPeriod        int     `json:"atr_period"`
	ATRMultiplier    float64 `json:"atr_multiplier"`
	Interval         string  `json:"interval"`
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	MinATRPercentage *float64 `json:"min_atr_percentage"`
	ATRPeriod        *int     `json:"atr_period"`
	ATRMultiplier    *float64 `json:"atr_multiplier"`
	Interval         *string  `json:"interval"`
}

// Apply merges the non-nil patch fields into s.
func (p SettingsPatch) Apply(s *ScanSettings) {
	if p.MinATRPercentage != nil {
		s.MinATRPercentage = *p.MinATRPercentage
	}
	if p.ATRPeriod != nil {
		s.ATRPeriod = *p.ATRPeriod
	}
	if p.ATRMultiplier != nil {
		s.ATRMultiplier = *p.ATRMultiplier
	}
	if p.Interval != nil {
		s.Interval = *p.Interval
	}
}
