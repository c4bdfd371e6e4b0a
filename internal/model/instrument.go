package model

// Instrument represents a tradeable futures contract as reported by the
// exchange's instrument listing.
type Instrument struct {
	Symbol       string `json:"symbol"`
	QuoteAsset   string `json:"quote_asset"`
	ContractType string `json:"contract_type"` // PERPETUAL, CURRENT_QUARTER, ...
	Status       string `json:"status"`        // TRADING, SETTLING, BREAK, ...
}

// Tradable reports whether the instrument is a perpetual contract that is
// currently open for trading. Only tradable instruments are scan candidates.
func (i *Instrument) Tradable() bool {
	return i.ContractType == "PERPETUAL" && i.Status == "TRADING"
}
