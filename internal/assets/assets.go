// Package assets holds the static asset-identity table served verbatim on
// /assets and used to stamp base_id/quote_id onto ticker entries. The ids are
// the aggregator-wide unified cryptoasset ids; the table is immutable after
// load and shared read-only across requests.
package assets

import "strings"

// Asset describes one listed asset in the external identity table.
type Asset struct {
	Name                 string `json:"name"`
	UnifiedCryptoassetID int64  `json:"unified_cryptoasset_id"`
	CanWithdraw          bool   `json:"can_withdraw"`
	CanDeposit           bool   `json:"can_deposit"`
}

// Table maps token symbols to their external identities.
var Table = map[string]Asset{
	"BTC":  {Name: "Bitcoin", UnifiedCryptoassetID: 1, CanWithdraw: true, CanDeposit: true},
	"ETH":  {Name: "Ethereum", UnifiedCryptoassetID: 1027, CanWithdraw: true, CanDeposit: true},
	"USDT": {Name: "Tether", UnifiedCryptoassetID: 825, CanWithdraw: true, CanDeposit: true},
	"TOMO": {Name: "TomoChain", UnifiedCryptoassetID: 2570, CanWithdraw: true, CanDeposit: true},
	"USDC": {Name: "USD Coin", UnifiedCryptoassetID: 3408, CanWithdraw: true, CanDeposit: true},
	"DAI":  {Name: "Dai", UnifiedCryptoassetID: 4943, CanWithdraw: true, CanDeposit: true},
	"WBTC": {Name: "Wrapped Bitcoin", UnifiedCryptoassetID: 3717, CanWithdraw: true, CanDeposit: true},
	"TRX":  {Name: "TRON", UnifiedCryptoassetID: 1958, CanWithdraw: true, CanDeposit: true},
	"BNB":  {Name: "BNB", UnifiedCryptoassetID: 1839, CanWithdraw: true, CanDeposit: true},
	"LTC":  {Name: "Litecoin", UnifiedCryptoassetID: 2, CanWithdraw: true, CanDeposit: true},
}

// ID returns the unified cryptoasset id for a symbol, or 0 when the symbol is
// not in the table. Absent symbols are never an error.
func ID(symbol string) int64 {
	asset, ok := Table[strings.ToUpper(symbol)]
	if !ok {
		return 0
	}
	return asset.UnifiedCryptoassetID
}
