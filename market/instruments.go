// market/instruments.go
package market

import (
	"fmt"
	"sort"
)

// InstrumentType selects the pip-value and lot rounding conventions.
type InstrumentType string

const (
	Forex     InstrumentType = "forex"
	Commodity InstrumentType = "commodity"
	Stock     InstrumentType = "stock"
	Crypto    InstrumentType = "crypto"
)

// Valid reports whether t is one of the known instrument types.
func (t InstrumentType) Valid() bool {
	switch t {
	case Forex, Commodity, Stock, Crypto:
		return true
	}
	return false
}

// Instrument is the static per-symbol configuration used by the lot
// calculator and the rate service.
type Instrument struct {
	ID          string
	DisplayName string
	Type        InstrumentType
	Category    string

	// ContractSize is the number of units in one lot.
	ContractSize float64
	IsJPYPair    bool

	// PipValue is the account-currency value of a one unit move on one lot.
	// Forex instruments derive theirs from ContractSize instead.
	PipValue float64
	MinLot   float64

	Decimal    int // price display precision
	LotDecimal int // lot display precision

	APISymbol     string
	BackupSymbols []string
}

// Categories used by the instrument picker.
const (
	CategoryCrossYen = "cross-yen"
	CategoryUSD      = "usd"
	CategoryGold     = "gold"
	CategoryStock    = "stock"
	CategoryCrypto   = "crypto"
)

// DefaultInstrumentID is selected when nothing else is configured.
const DefaultInstrumentID = "USDJPY"

var Instruments = map[string]Instrument{
	"USDJPY": {
		ID:            "USDJPY",
		DisplayName:   "USD/JPY",
		Type:          Forex,
		Category:      CategoryCrossYen,
		ContractSize:  100000,
		IsJPYPair:     true,
		PipValue:      1000,
		MinLot:        0.01,
		Decimal:       3,
		LotDecimal:    2,
		APISymbol:     "USDJPY",
		BackupSymbols: []string{"USDJPY=X"},
	},
	"EURJPY": {
		ID:            "EURJPY",
		DisplayName:   "EUR/JPY",
		Type:          Forex,
		Category:      CategoryCrossYen,
		ContractSize:  100000,
		IsJPYPair:     true,
		PipValue:      1000,
		MinLot:        0.01,
		Decimal:       3,
		LotDecimal:    2,
		APISymbol:     "EURJPY",
		BackupSymbols: []string{"EURJPY=X"},
	},
	"GBPJPY": {
		ID:            "GBPJPY",
		DisplayName:   "GBP/JPY",
		Type:          Forex,
		Category:      CategoryCrossYen,
		ContractSize:  100000,
		IsJPYPair:     true,
		PipValue:      1000,
		MinLot:        0.01,
		Decimal:       3,
		LotDecimal:    2,
		APISymbol:     "GBPJPY",
		BackupSymbols: []string{"GBPJPY=X"},
	},
	"EURUSD": {
		ID:            "EURUSD",
		DisplayName:   "EUR/USD",
		Type:          Forex,
		Category:      CategoryUSD,
		ContractSize:  100000,
		MinLot:        0.01,
		Decimal:       5,
		LotDecimal:    2,
		APISymbol:     "EURUSD",
		BackupSymbols: []string{"EURUSD=X"},
	},
	"GBPUSD": {
		ID:            "GBPUSD",
		DisplayName:   "GBP/USD",
		Type:          Forex,
		Category:      CategoryUSD,
		ContractSize:  100000,
		MinLot:        0.01,
		Decimal:       5,
		LotDecimal:    2,
		APISymbol:     "GBPUSD",
		BackupSymbols: []string{"GBPUSD=X"},
	},
	"XAUUSD": {
		ID:           "XAUUSD",
		DisplayName:  "Gold",
		Type:         Commodity,
		Category:     CategoryGold,
		ContractSize: 100,
		// $1 move * 100oz * 150 JPY/USD
		PipValue:      15000,
		MinLot:        0.01,
		Decimal:       2,
		LotDecimal:    2,
		APISymbol:     "XAUUSD",
		BackupSymbols: []string{"GC=F"},
	},
	"NIKKEI225": {
		ID:            "NIKKEI225",
		DisplayName:   "Nikkei 225",
		Type:          Stock,
		Category:      CategoryStock,
		ContractSize:  100,
		IsJPYPair:     true,
		PipValue:      100,
		MinLot:        0.1,
		Decimal:       0,
		LotDecimal:    1,
		APISymbol:     "^N225",
		BackupSymbols: []string{"N225"},
	},
	"BTCUSD": {
		ID:            "BTCUSD",
		DisplayName:   "Bitcoin",
		Type:          Crypto,
		Category:      CategoryCrypto,
		ContractSize:  1,
		PipValue:      150000,
		MinLot:        0.0001,
		Decimal:       2,
		LotDecimal:    4,
		APISymbol:     "bitcoin",
		BackupSymbols: []string{"BTC"},
	},
	"ETHUSD": {
		ID:            "ETHUSD",
		DisplayName:   "Ethereum",
		Type:          Crypto,
		Category:      CategoryCrypto,
		ContractSize:  1,
		PipValue:      150000,
		MinLot:        0.001,
		Decimal:       2,
		LotDecimal:    3,
		APISymbol:     "ethereum",
		BackupSymbols: []string{"ETH"},
	},
}

// Lookup returns the catalog entry for id. Any spelling accepted by
// NormalizePair works ("USD/JPY", "usdjpy", "GOLD/USD").
func Lookup(id string) (Instrument, error) {
	if inst, ok := Instruments[id]; ok {
		return inst, nil
	}
	key := CatalogKey(id)
	if inst, ok := Instruments[key]; ok {
		return inst, nil
	}
	return Instrument{}, fmt.Errorf("unknown instrument %q", id)
}

// ByCategory returns the instruments of one category sorted by ID.
func ByCategory(category string) []Instrument {
	var out []Instrument
	for _, inst := range Instruments {
		if inst.Category == category {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns all catalog IDs sorted.
func IDs() []string {
	ids := make([]string, 0, len(Instruments))
	for id := range Instruments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
