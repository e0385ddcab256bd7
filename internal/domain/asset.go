package domain

// Asset is one symbol-search candidate returned by an external source.
// Price is optional; not every source includes one in search results.
type Asset struct {
	Symbol     string     `json:"symbol"`
	Name       string     `json:"name"`
	AssetClass AssetClass `json:"type"`
	Price      *float64   `json:"price,omitempty"`
}

// Quote source tiers, in order of preference.
const (
	QuoteSourceLive     = "live"
	QuoteSourceFallback = "fallback"
	QuoteSourceDefault  = "default"
)

// Quote is a current price for a symbol. Source records which tier answered:
// the live provider, the fixed per-symbol table, or the default constant.
type Quote struct {
	Symbol     string     `json:"symbol"`
	AssetClass AssetClass `json:"type"`
	Price      float64    `json:"price"`
	Source     string     `json:"source"`
}
