package risk

import (
	"fmt"
	"math"

	"github.com/rustyeddy/tradelog/market"
)

// LotInput describes one position-sizing request. StopLossDistance is in
// pips for forex and in price units for everything else.
type LotInput struct {
	Balance          float64
	RiskPercent      float64 // 2 means 2% of Balance
	StopLossDistance float64
	Instrument       market.Instrument

	// ContractSizeOverride replaces the instrument contract size for forex
	// only. Zero keeps the instrument default.
	ContractSizeOverride float64

	// USDJPYRate converts dollar-quoted pip values into yen. Only read for
	// forex pairs that are not quoted in yen.
	USDJPYRate float64
}

// LotResult is the recommended size and what it actually risks.
type LotResult struct {
	Lots           float64
	RiskAmount     float64 // requested risk, floored to whole units
	PipValuePerLot float64
	RawLots        float64 // before rounding and clamping

	ActualRisk        float64 // Lots * stop * pip value
	ActualRiskPercent float64
	Clamped           bool // Lots was raised to the instrument minimum
}

// ValidationError names the input field that was rejected.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	if v <= 0 {
		return &ValidationError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}

func validateInstrument(inst market.Instrument) error {
	if !inst.Type.Valid() {
		return fmt.Errorf("instrument %q: unknown type %q", inst.ID, inst.Type)
	}
	if err := positive("min_lot", inst.MinLot); err != nil {
		return err
	}
	if inst.Type == market.Forex {
		return positive("contract_size", inst.ContractSize)
	}
	return positive("pip_value", inst.PipValue)
}

// ContractSize resolves the contract size used for sizing. The override
// only applies to forex.
func ContractSize(inst market.Instrument, override float64) float64 {
	if inst.Type == market.Forex && override > 0 && !math.IsInf(override, 0) {
		return override
	}
	return inst.ContractSize
}

// PipValuePerLot returns the account-currency value of one pip (one price
// unit for non-forex) on one lot. Dollar-quoted forex needs a usable
// usdJPYRate; otherwise the error wraps market.ErrRateUnavailable.
func PipValuePerLot(inst market.Instrument, contractSize, usdJPYRate float64) (float64, error) {
	if inst.Type != market.Forex {
		return inst.PipValue, nil
	}
	if inst.IsJPYPair {
		return contractSize / 100, nil
	}
	if !market.ValidRate(usdJPYRate) {
		return 0, fmt.Errorf("%s pip value needs a USD/JPY rate: %w", inst.ID, market.ErrRateUnavailable)
	}
	return contractSize / 10000 * usdJPYRate, nil
}

// floorTo floors v to the given number of decimals. A small tolerance keeps
// values like 0.29 (stored as 0.28999...) from dropping a step.
func floorTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(v*p+1e-9) / p
}

func roundLots(raw float64, inst market.Instrument) float64 {
	switch inst.Type {
	case market.Forex:
		return floorTo(raw, 2)
	case market.Crypto:
		return floorTo(raw, 4)
	case market.Commodity:
		return math.Max(floorTo(raw, 2), inst.MinLot)
	case market.Stock:
		return floorTo(raw, 1)
	}
	return raw
}

// ComputeRecommendedLot sizes a position so that hitting the stop loses
// RiskPercent of Balance. The result never goes below the instrument's
// MinLot; when that clamp kicks in Clamped is set and ActualRisk shows the
// larger amount actually at stake.
func ComputeRecommendedLot(in LotInput) (LotResult, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"balance", in.Balance},
		{"risk_percent", in.RiskPercent},
		{"stop_loss_distance", in.StopLossDistance},
	} {
		if err := positive(f.name, f.v); err != nil {
			return LotResult{}, err
		}
	}
	if in.RiskPercent > 100 {
		return LotResult{}, &ValidationError{Field: "risk_percent", Value: in.RiskPercent, Reason: "must not exceed 100"}
	}
	if err := validateInstrument(in.Instrument); err != nil {
		return LotResult{}, err
	}

	riskAmount := in.Balance * (in.RiskPercent / 100)
	contract := ContractSize(in.Instrument, in.ContractSizeOverride)
	pipValue, err := PipValuePerLot(in.Instrument, contract, in.USDJPYRate)
	if err != nil {
		return LotResult{}, err
	}

	if err := outOfRange("balance", in.Balance, riskAmount); err != nil {
		return LotResult{}, err
	}

	raw := riskAmount / (in.StopLossDistance * pipValue)
	if err := outOfRange("stop_loss_distance", in.StopLossDistance, raw); err != nil {
		return LotResult{}, err
	}
	lots := roundLots(raw, in.Instrument)
	res := LotResult{
		RiskAmount:     math.Floor(riskAmount),
		PipValuePerLot: pipValue,
		RawLots:        raw,
	}
	if lots < in.Instrument.MinLot {
		lots = in.Instrument.MinLot
	}
	res.Lots = lots
	res.Clamped = raw < in.Instrument.MinLot
	res.ActualRisk = lots * in.StopLossDistance * pipValue
	res.ActualRiskPercent = RiskPct(res.ActualRisk, in.Balance) * 100
	if err := outOfRange("stop_loss_distance", in.StopLossDistance, res.ActualRisk); err != nil {
		return LotResult{}, err
	}
	if err := outOfRange("balance", in.Balance, res.ActualRiskPercent); err != nil {
		return LotResult{}, err
	}
	return res, nil
}

// outOfRange rejects a non-finite intermediate result, blaming the input
// that produced it.
func outOfRange(field string, input, result float64) error {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return &ValidationError{Field: field, Value: input, Reason: "result out of range"}
	}
	return nil
}
