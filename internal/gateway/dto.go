package gateway

import "atr-scanner/internal/model"

// scanDataResponse is the payload of GET /api/scan-data. Results are always
// sorted descending by atr_percentage; last_update is RFC3339 or null when
// no scan has completed yet.
type scanDataResponse struct {
	Results      []model.ScanResult `json:"results"`
	LastUpdate   *string            `json:"last_update"`
	Scanning     bool               `json:"scanning"`
	TotalSymbols int                `json:"total_symbols"`
	ScanSettings model.ScanSettings `json:"scan_settings"`
}

// updateSettingsResponse is the payload of a successful POST /api/update-settings.
type updateSettingsResponse struct {
	Status   string             `json:"status"`
	Settings model.ScanSettings `json:"settings"`
}

// exportResponse is the payload of GET /api/export-symbols: a comma-joined
// watchlist string plus the number of symbols in it.
type exportResponse struct {
	Symbols string `json:"symbols"`
	Count   int    `json:"count"`
}
